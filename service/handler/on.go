package handler

import (
	"github.com/viant/launch/model/event"
	"github.com/viant/launch/runtime/execution"
)

// OnShutdown handles shutdown events
func OnShutdown(fn func(shutdown *event.Shutdown, ctx *execution.Context) ([]execution.Entity, error), options ...Option) *Handler {
	options = append([]Option{
		WithDescription("OnShutdown"),
		WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			if fn == nil {
				return nil, nil
			}
			return fn(evt.(*event.Shutdown), ctx)
		}),
	}, options...)
	return New(MatchName(event.ShutdownName), options...)
}

// OnExecutionComplete handles completion of the target action, any action when target is nil
func OnExecutionComplete(target execution.Action, fn func(complete *execution.ExecutionComplete, ctx *execution.Context) ([]execution.Entity, error), options ...Option) *Handler {
	options = append([]Option{
		WithDescription(describe("OnExecutionComplete", describeTarget(target))),
		WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			if fn == nil {
				return nil, nil
			}
			return fn(evt.(*execution.ExecutionComplete), ctx)
		}),
	}, options...)
	return New(func(evt execution.Event) bool {
		complete, ok := evt.(*execution.ExecutionComplete)
		if !ok {
			return false
		}
		return target == nil || complete.Action() == target
	}, options...)
}

// OnProcessStart handles start of processes started by the target action, any process when target is nil
func OnProcessStart(target execution.Action, fn func(started *event.ProcessStarted, ctx *execution.Context) ([]execution.Entity, error), options ...Option) *Handler {
	options = append([]Option{
		WithDescription(describe("OnProcessStart", describeTarget(target))),
		WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			if fn == nil {
				return nil, nil
			}
			return fn(evt.(*event.ProcessStarted), ctx)
		}),
	}, options...)
	return New(func(evt execution.Event) bool {
		started, ok := evt.(*event.ProcessStarted)
		return ok && (target == nil || started.Action() == target)
	}, options...)
}

// OnProcessExit handles exit of processes started by the target action, any process when target is nil
func OnProcessExit(target execution.Action, fn func(exited *event.ProcessExited, ctx *execution.Context) ([]execution.Entity, error), options ...Option) *Handler {
	options = append([]Option{
		WithDescription(describe("OnProcessExit", describeTarget(target))),
		WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			if fn == nil {
				return nil, nil
			}
			return fn(evt.(*event.ProcessExited), ctx)
		}),
	}, options...)
	return New(func(evt execution.Event) bool {
		exited, ok := evt.(*event.ProcessExited)
		return ok && (target == nil || exited.Action() == target)
	}, options...)
}

// OnProcessIO handles process output; nil functions skip the matching stream
func OnProcessIO(target execution.Action, onStdout, onStderr func(io event.IO, ctx *execution.Context) ([]execution.Entity, error), options ...Option) *Handler {
	options = append([]Option{
		WithDescription(describe("OnProcessIO", describeTarget(target))),
		WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			switch actual := evt.(type) {
			case *event.ProcessStdout:
				if onStdout != nil {
					return onStdout(actual, ctx)
				}
			case *event.ProcessStderr:
				if onStderr != nil {
					return onStderr(actual, ctx)
				}
			}
			return nil, nil
		}),
	}, options...)
	return New(func(evt execution.Event) bool {
		switch actual := evt.(type) {
		case *event.ProcessStdout:
			return onStdout != nil && (target == nil || actual.Action() == target)
		case *event.ProcessStderr:
			return onStderr != nil && (target == nil || actual.Action() == target)
		}
		return false
	}, options...)
}

func describeTarget(target execution.Action) string {
	if target == nil {
		return ""
	}
	return target.Describe()
}
