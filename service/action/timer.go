package action

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viant/launch/model/event"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/handler"
)

// Timer visits its actions once the period elapses; the run waits for it.
// A shutdown cancels a timer that has not fired yet.
type Timer struct {
	Base
	Period           execution.Substitutions
	actions          []execution.Entity
	cancelOnShutdown bool
	future           *execution.Future
}

func (t *Timer) Describe() string {
	return fmt.Sprintf("TimerAction(period: %s, actions: %d)", substitution.Describe(t.Period), len(t.actions))
}

// Future returns timer completion future
func (t *Timer) Future() *execution.Future {
	return t.future
}

func (t *Timer) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	t.future = nil
	period, err := t.period(ctx)
	if err != nil {
		return nil, err
	}
	future := execution.NewFuture()
	t.future = future
	ctx.RegisterPending(future)

	var expired, shutdown *handler.Handler
	expired = handler.New(func(evt execution.Event) bool {
		actual, ok := evt.(*event.TimerExpired)
		return ok && actual.Timer() == t
	}, handler.WithHandleOnce(true), handler.WithDescription(t.Describe()), handler.WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
		if shutdown != nil {
			ctx.UnregisterEventHandler(shutdown)
		}
		if !future.Complete(nil) {
			return nil, nil
		}
		return t.actions, nil
	}))
	ctx.RegisterGlobalEventHandler(expired)

	timer := time.AfterFunc(period, func() {
		if err := ctx.EmitEvent(event.NewTimerExpired(t)); err != nil {
			ctx.Logger().Printf("failed to emit timer expiration: %v", err)
			future.Complete(err)
		}
	})
	if t.cancelOnShutdown {
		shutdown = handler.OnShutdown(func(_ *event.Shutdown, ctx *execution.Context) ([]execution.Entity, error) {
			timer.Stop()
			ctx.UnregisterEventHandler(expired)
			future.Cancel()
			return nil, nil
		}, handler.WithHandleOnce(true))
		ctx.RegisterGlobalEventHandler(shutdown)
	}
	return nil, nil
}

func (t *Timer) period(ctx *execution.Context) (time.Duration, error) {
	text, err := substitution.Perform(ctx, t.Period)
	if err != nil {
		return 0, execution.NewResolutionError(t, err)
	}
	text = strings.TrimSpace(text)
	if duration, err := time.ParseDuration(text); err == nil {
		return duration, nil
	}
	seconds, err := strconv.ParseFloat(text, 64)
	if err != nil || seconds < 0 {
		return 0, execution.NewConfigurationError(t, fmt.Errorf("invalid timer period: '%s'", text))
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// TimerOption represents timer option
type TimerOption func(t *Timer)

// WithCancelOnShutdown sets cancel on shutdown, enabled by default
func WithCancelOnShutdown(flag bool) TimerOption {
	return func(t *Timer) {
		t.cancelOnShutdown = flag
	}
}

// WithTimerCondition sets timer condition
func WithTimerCondition(cond execution.Condition) TimerOption {
	return func(t *Timer) {
		t.condition = cond
	}
}

// NewTimer creates timer action, the period is either seconds or a Go duration
func NewTimer(period execution.Substitutions, actions []execution.Entity, options ...TimerOption) *Timer {
	ret := &Timer{Period: period, actions: actions, cancelOnShutdown: true}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
