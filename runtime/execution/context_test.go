package execution

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/launch/service/messaging"
	"github.com/viant/launch/service/messaging/memory"
)

func TestContext_LaunchConfigurations(t *testing.T) {
	ctx := newTestContext(WithLaunchConfigurations(map[string]string{"b": "2", "a": "1"}))
	assert.Equal(t, []string{"a", "b"}, ctx.LaunchConfigurations().Keys())

	ctx.PushLaunchConfigurations()
	assert.Equal(t, 2, ctx.Depth())
	ctx.SetLaunchConfiguration("a", "10")
	ctx.SetLaunchConfiguration("c", "3")
	ctx.UnsetLaunchConfiguration("b")
	value, _ := ctx.LaunchConfiguration("a")
	assert.Equal(t, "10", value)
	assert.Equal(t, []string{"a", "c"}, ctx.LaunchConfigurations().Keys())

	require.NoError(t, ctx.PopLaunchConfigurations())
	value, _ = ctx.LaunchConfiguration("a")
	assert.Equal(t, "1", value)
	_, ok := ctx.LaunchConfiguration("c")
	assert.False(t, ok)
	_, ok = ctx.LaunchConfiguration("b")
	assert.True(t, ok)

	err := ctx.PopLaunchConfigurations()
	assert.True(t, errors.Is(err, ErrBaseFrame))
	var configurationErr *ConfigurationError
	assert.True(t, errors.As(err, &configurationErr))
	assert.Equal(t, 1, ctx.Depth())
}

func TestContext_Snapshot(t *testing.T) {
	ctx := newTestContext()
	ctx.SetLaunchConfiguration("a", "1")
	snapshot := ctx.LaunchConfigurations()
	ctx.SetLaunchConfiguration("a", "2")
	value, _ := snapshot.Get("a")
	assert.Equal(t, "1", value)
}

func TestContext_Locals(t *testing.T) {
	ctx := newTestContext()
	ctx.ExtendLocals(map[string]interface{}{"dir": "/a"})
	ctx.PushLaunchConfigurations()
	ctx.ExtendLocals(map[string]interface{}{"dir": "/b"})
	value, _ := ctx.Local("dir")
	assert.Equal(t, "/b", value)
	ctx.DeleteLocal("dir")
	_, ok := ctx.Local("dir")
	assert.False(t, ok)
	require.NoError(t, ctx.PopLaunchConfigurations())
	value, _ = ctx.Local("dir")
	assert.Equal(t, "/a", value)
}

func TestContext_EmitEventSync(t *testing.T) {
	testCases := []struct {
		description string
		setup       func(ctx *Context, handled *[]string)
		expect      []string
		expectErr   bool
	}{
		{
			description: "base frame first, registration order",
			setup: func(ctx *Context, handled *[]string) {
				ctx.PushLaunchConfigurations()
				ctx.RegisterEventHandler(&testHandler{name: "scoped", eventName: "e", handled: handled})
				ctx.RegisterGlobalEventHandler(&testHandler{name: "global1", eventName: "e", handled: handled})
				ctx.RegisterGlobalEventHandler(&testHandler{name: "global2", eventName: "e", handled: handled})
				ctx.RegisterEventHandler(&testHandler{name: "other", eventName: "x", handled: handled})
			},
			expect: []string{"global1", "global2", "scoped"},
		},
		{
			description: "popped frame drops handlers",
			setup: func(ctx *Context, handled *[]string) {
				ctx.PushLaunchConfigurations()
				ctx.RegisterEventHandler(&testHandler{name: "scoped", eventName: "e", handled: handled})
				_ = ctx.PopLaunchConfigurations()
				ctx.RegisterEventHandler(&testHandler{name: "base", eventName: "e", handled: handled})
			},
			expect: []string{"base"},
		},
		{
			description: "unregistered during dispatch",
			setup: func(ctx *Context, handled *[]string) {
				second := &testHandler{name: "second", eventName: "e", handled: handled}
				ctx.RegisterEventHandler(&testHandler{name: "first", eventName: "e", handled: handled, onHandle: func(ctx *Context) {
					ctx.UnregisterEventHandler(second)
				}})
				ctx.RegisterEventHandler(second)
			},
			expect: []string{"first"},
		},
		{
			description: "handler entities visited before next handler",
			setup: func(ctx *Context, handled *[]string) {
				ctx.RegisterEventHandler(&testHandler{name: "first", eventName: "e", handled: handled, entities: []Entity{
					&testAction{name: "action", trace: handled},
				}})
				ctx.RegisterEventHandler(&testHandler{name: "second", eventName: "e", handled: handled})
			},
			expect: []string{"first", "action", "second"},
		},
		{
			description: "handler error",
			setup: func(ctx *Context, handled *[]string) {
				ctx.RegisterEventHandler(&testHandler{name: "first", eventName: "e", handled: handled, err: errors.New("boom")})
				ctx.RegisterEventHandler(&testHandler{name: "second", eventName: "e", handled: handled})
			},
			expect:    []string{"first"},
			expectErr: true,
		},
	}
	for _, testCase := range testCases {
		ctx := newTestContext()
		var handled []string
		testCase.setup(ctx, &handled)
		err := ctx.EmitEventSync(&testEvent{name: "e"})
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
		} else {
			assert.NoError(t, err, testCase.description)
		}
		assert.Equal(t, testCase.expect, handled, testCase.description)
	}
}

func TestContext_HandleOnce(t *testing.T) {
	ctx := newTestContext()
	var handled []string
	once := &testHandler{name: "once", eventName: "e", once: true, handled: &handled}
	ctx.RegisterEventHandler(once)
	assert.True(t, ctx.WouldHandleEvent(&testEvent{name: "e"}))
	require.NoError(t, ctx.EmitEventSync(&testEvent{name: "e"}))
	require.NoError(t, ctx.EmitEventSync(&testEvent{name: "e"}))
	assert.Equal(t, []string{"once"}, handled)
	assert.False(t, ctx.WouldHandleEvent(&testEvent{name: "e"}))
	assert.False(t, ctx.UnregisterEventHandler(once))
}

func TestContext_ProcessNext(t *testing.T) {
	ctx := newTestContext()
	var handled []string
	ctx.RegisterEventHandler(&testHandler{name: "h", eventName: "e", handled: &handled})
	assert.True(t, ctx.Idle())

	require.NoError(t, ctx.EmitEvent(&testEvent{name: "e"}))
	assert.Error(t, ctx.EmitEvent(nil))
	assert.False(t, ctx.Idle())
	assert.Empty(t, handled)

	processed, err := ctx.ProcessNext(context.Background(), time.Second)
	require.NoError(t, err)
	assert.True(t, processed)
	assert.Equal(t, []string{"h"}, handled)
	assert.True(t, ctx.Idle())

	processed, err = ctx.ProcessNext(context.Background(), 10*time.Millisecond)
	assert.NoError(t, err)
	assert.False(t, processed)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ctx.ProcessNext(cancelled, time.Second)
	assert.Error(t, err)
}

func TestContext_EmitEventFullQueue(t *testing.T) {
	ctx := newTestContext(WithQueue(memory.NewQueue[Event](memory.Config{QueueBuffer: 1})))
	var handled []string
	ctx.RegisterEventHandler(&testHandler{name: "burst", eventName: "e", handled: &handled, onHandle: func(ctx *Context) {
		for i := 0; i < 3; i++ {
			assert.NoError(t, ctx.EmitEvent(&testEvent{name: "f"}))
		}
	}})
	ctx.RegisterEventHandler(&testHandler{name: "f", eventName: "f", handled: &handled})
	require.NoError(t, ctx.EmitEvent(&testEvent{name: "e"}))

	done := make(chan error, 1)
	go func() {
		for !ctx.Idle() {
			if _, err := ctx.ProcessNext(context.Background(), 10*time.Millisecond); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("emitting on a full queue blocked the dispatching goroutine")
	}
	assert.Equal(t, []string{"burst", "f", "f", "f"}, handled)
}

func TestContext_DeadLetters(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expect      int
	}{
		{description: "dispatched", expect: 0},
		{description: "handler error", err: errors.New("boom"), expect: 1},
	}
	for _, testCase := range testCases {
		ctx := newTestContext()
		ctx.RegisterEventHandler(&testHandler{name: "h", eventName: "e", err: testCase.err})
		require.NoError(t, ctx.EmitEvent(&testEvent{name: "e"}), testCase.description)
		processed, err := ctx.ProcessNext(context.Background(), time.Second)
		assert.True(t, processed, testCase.description)
		assert.Equal(t, testCase.err != nil, err != nil, testCase.description)
		assert.Equal(t, testCase.expect, ctx.DeadLetters(), testCase.description)
		assert.True(t, ctx.Idle(), testCase.description)
	}
	plain := struct{ messaging.Queue[Event] }{memory.NewQueue[Event](memory.DefaultConfig())}
	assert.Equal(t, 0, newTestContext(WithQueue(plain)).DeadLetters())
}

func TestContext_Pending(t *testing.T) {
	ctx := newTestContext()
	first, second := NewFuture(), NewFuture()
	ctx.RegisterPending(first)
	ctx.RegisterPending(second)
	assert.Equal(t, 2, ctx.Pending())
	first.Complete(nil)
	assert.Equal(t, 1, ctx.Pending())
	assert.False(t, ctx.Idle())
	second.Cancel()
	assert.Equal(t, 0, ctx.Pending())
	assert.True(t, ctx.Idle())
}

func TestContext_Shutdown(t *testing.T) {
	ctx := newTestContext()
	assert.False(t, ctx.IsShutdown())
	assert.True(t, ctx.MarkShutdown("first"))
	assert.False(t, ctx.MarkShutdown("second"))
	assert.True(t, ctx.IsShutdown())
	assert.Equal(t, "first", ctx.ShutdownReason())
}

func TestContext_Environment(t *testing.T) {
	env := mapEnvironment{"A": "1"}
	ctx := newTestContext(WithEnvironment(env))
	ctx.PushEnvironment()
	require.NoError(t, ctx.Environment().Set("B", "2"))
	require.NoError(t, ctx.Environment().Set("A", "10"))
	require.NoError(t, ctx.PopEnvironment())
	assert.Equal(t, mapEnvironment{"A": "1"}, env)

	err := ctx.PopEnvironment()
	assert.True(t, errors.Is(err, ErrBaseEnvironment))
}
