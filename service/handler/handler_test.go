package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/launch/model/event"
	"github.com/viant/launch/runtime/execution"
)

type testAction struct {
	name     string
	executed int
}

func (a *testAction) Describe() string { return a.name }

func (a *testAction) Condition() execution.Condition { return nil }

func (a *testAction) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	a.executed++
	return nil, nil
}

func TestHandler_HandleOnce(t *testing.T) {
	ctx := execution.NewContext(context.Background())
	calls := 0
	shutdown := OnShutdown(func(shutdown *event.Shutdown, ctx *execution.Context) ([]execution.Entity, error) {
		calls++
		return nil, nil
	}, WithHandleOnce(true))
	ctx.RegisterEventHandler(shutdown)
	assert.True(t, ctx.WouldHandleEvent(event.NewShutdown()))
	assert.NoError(t, ctx.EmitEventSync(event.NewShutdown()))
	assert.NoError(t, ctx.EmitEventSync(event.NewShutdown()))
	assert.Equal(t, 1, calls)
	assert.False(t, ctx.WouldHandleEvent(event.NewShutdown()))
}

func TestOnExecutionComplete(t *testing.T) {
	target := &testAction{name: "target"}
	other := &testAction{name: "other"}
	follow := &testAction{name: "follow"}
	ctx := execution.NewContext(context.Background())
	ctx.RegisterEventHandler(OnExecutionComplete(target, nil, WithEntities(follow)))

	_, err := execution.Visit(ctx, other)
	assert.NoError(t, err)
	assert.Equal(t, 0, follow.executed)

	_, err = execution.Visit(ctx, target)
	assert.NoError(t, err)
	assert.Equal(t, 1, follow.executed)
}

func TestOnProcessIO(t *testing.T) {
	starter := &testAction{name: "starter"}
	process := event.Process{Action: starter, Name: "p-1"}
	var stdout []string
	h := OnProcessIO(starter, func(io event.IO, ctx *execution.Context) ([]execution.Entity, error) {
		stdout = append(stdout, string(io.Text()))
		return nil, nil
	}, nil)

	testCases := []struct {
		description string
		event       execution.Event
		expect      bool
	}{
		{description: "stdout of target", event: event.NewProcessStdout(process, []byte("a")), expect: true},
		{description: "stderr without handler", event: event.NewProcessStderr(process, []byte("b")), expect: false},
		{description: "stdout of other action", event: event.NewProcessStdout(event.Process{Action: &testAction{name: "x"}}, []byte("c")), expect: false},
		{description: "exit", event: event.NewProcessExited(process, 0), expect: false},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, h.Matches(testCase.event), testCase.description)
	}
	ctx := execution.NewContext(context.Background())
	ctx.RegisterEventHandler(h)
	assert.NoError(t, ctx.EmitEventSync(event.NewProcessStdout(process, []byte("hello"))))
	assert.Equal(t, []string{"hello"}, stdout)
}

func TestOnProcessExit(t *testing.T) {
	starter := &testAction{name: "starter"}
	var codes []int
	h := OnProcessExit(nil, func(exited *event.ProcessExited, ctx *execution.Context) ([]execution.Entity, error) {
		codes = append(codes, exited.ReturnCode())
		return nil, nil
	})
	ctx := execution.NewContext(context.Background())
	ctx.RegisterEventHandler(h)
	assert.NoError(t, ctx.EmitEventSync(event.NewProcessStarted(event.Process{Action: starter})))
	assert.NoError(t, ctx.EmitEventSync(event.NewProcessExited(event.Process{Action: starter}, 7)))
	assert.Equal(t, []int{7}, codes)
	assert.Equal(t, "OnProcessExit", h.Describe())
}

func TestHandler_Error(t *testing.T) {
	ctx := execution.NewContext(context.Background())
	ctx.RegisterEventHandler(New(MatchName(event.ShutdownName), WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
		return nil, errors.New("boom")
	})))
	err := ctx.EmitEventSync(event.NewShutdown())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}
