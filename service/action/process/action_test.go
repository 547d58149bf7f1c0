package process

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/launch/model/event"
	"github.com/viant/launch/policy"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/action"
	"github.com/viant/launch/service/handler"
)

type fakeRunner struct {
	mux      sync.Mutex
	requests []*Request
	result   *Result
	err      error
	block    bool
}

func (r *fakeRunner) Run(ctx context.Context, request *Request) (*Result, error) {
	r.mux.Lock()
	r.requests = append(r.requests, request)
	r.mux.Unlock()
	request.OnStart(101)
	if r.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return r.result, r.err
}

type recorder struct {
	names []string
	codes []int
	out   []string
}

func (r *recorder) handler() *handler.Handler {
	return handler.New(func(evt execution.Event) bool {
		return strings.HasPrefix(evt.Name(), "launch.events.process.")
	}, handler.WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
		r.names = append(r.names, evt.Name())
		switch actual := evt.(type) {
		case *event.ProcessExited:
			r.codes = append(r.codes, actual.ReturnCode())
		case event.IO:
			r.out = append(r.out, string(actual.Text()))
		}
		return nil, nil
	}))
}

func drain(t *testing.T, ctx *execution.Context) {
	deadline := time.Now().Add(2 * time.Second)
	for !ctx.Idle() {
		if time.Now().After(deadline) {
			t.Fatalf("context did not become idle")
		}
		_, err := ctx.ProcessNext(context.Background(), 10*time.Millisecond)
		require.NoError(t, err)
	}
}

func TestExecuteProcess(t *testing.T) {
	testCases := []struct {
		description string
		result      *Result
		err         error
		expectNames []string
		expectCode  int
		expectOut   []string
	}{
		{
			description: "success",
			result:      &Result{Stdout: "hi", Status: 0},
			expectNames: []string{event.ProcessStartedName, event.ProcessStdoutName, event.ProcessExitedName},
			expectOut:   []string{"hi"},
		},
		{
			description: "failure",
			result:      &Result{Stderr: "oops", Status: 3},
			expectNames: []string{event.ProcessStartedName, event.ProcessStderrName, event.ProcessExitedName},
			expectCode:  3,
			expectOut:   []string{"oops"},
		},
		{
			description: "failure with both streams",
			result:      &Result{Stdout: "out\n", Stderr: "err\n", Status: 3},
			expectNames: []string{event.ProcessStartedName, event.ProcessStdoutName, event.ProcessStderrName, event.ProcessExitedName},
			expectCode:  3,
			expectOut:   []string{"out\n", "err\n"},
		},
		{
			description: "runner error",
			err:         errors.New("boom"),
			expectNames: []string{event.ProcessStartedName, event.ProcessStderrName, event.ProcessExitedName},
			expectCode:  -1,
			expectOut:   []string{"boom"},
		},
	}
	for _, testCase := range testCases {
		ctx := execution.NewContext(context.Background(), execution.WithLaunchConfigurations(map[string]string{"who": "world"}))
		rec := &recorder{}
		ctx.RegisterEventHandler(rec.handler())
		runner := &fakeRunner{result: testCase.result, err: testCase.err}
		exited := 0
		cmd, err := substitution.Parse("echo $(var who)")
		require.NoError(t, err)
		proc := New(cmd, WithRunner(runner), WithName(substitution.Literal("greeter")), WithEnv("A", substitution.Literal("1")),
			WithOnExit(action.NewOpaqueFunction("exit", func(ctx *execution.Context) ([]execution.Entity, error) {
				exited++
				return nil, nil
			})))
		completed := 0
		ctx.RegisterEventHandler(handler.OnExecutionComplete(proc, func(_ *execution.ExecutionComplete, _ *execution.Context) ([]execution.Entity, error) {
			completed++
			return nil, nil
		}))

		require.NoError(t, ctx.VisitAll(proc), testCase.description)
		drain(t, ctx)

		assert.Equal(t, testCase.expectNames, rec.names, testCase.description)
		assert.Equal(t, []int{testCase.expectCode}, rec.codes, testCase.description)
		assert.Equal(t, testCase.expectOut, rec.out, testCase.description)
		assert.Equal(t, 1, exited, testCase.description)
		assert.Equal(t, 1, completed, testCase.description)
		require.Len(t, runner.requests, 1, testCase.description)
		assert.Equal(t, "echo world", runner.requests[0].Command, testCase.description)
		assert.Equal(t, map[string]string{"A": "1"}, runner.requests[0].Env, testCase.description)
		assert.True(t, strings.HasPrefix(runner.requests[0].Name, "greeter-"), testCase.description)
	}
}

func TestExecuteProcess_Shutdown(t *testing.T) {
	ctx := execution.NewContext(context.Background())
	runner := &fakeRunner{block: true}
	proc := New(substitution.Literal("sleep 100"), WithRunner(runner))
	rec := &recorder{}
	ctx.RegisterEventHandler(rec.handler())
	require.NoError(t, ctx.VisitAll(proc))
	assert.False(t, ctx.Idle())
	require.NoError(t, ctx.EmitEventSync(event.NewShutdown(event.WithReason("test"))))
	drain(t, ctx)
	assert.True(t, proc.Future().IsDone())
	assert.True(t, errors.Is(proc.Future().Err(), execution.ErrCancelled))
	assert.Equal(t, []int{-1}, rec.codes)
	assert.Len(t, ctx.EventHandlers(), 1)
}

func TestExecuteProcess_EmptyCommand(t *testing.T) {
	ctx := execution.NewContext(context.Background())
	_, err := execution.Visit(ctx, New(substitution.Literal("  "), WithRunner(&fakeRunner{})))
	var resolutionErr *execution.ResolutionError
	assert.True(t, errors.As(err, &resolutionErr))
}

func TestExecuteProcess_Policy(t *testing.T) {
	testCases := []struct {
		description string
		policy      *policy.Policy
		expectRun   bool
	}{
		{description: "no policy", expectRun: true},
		{description: "dry run", policy: &policy.Policy{Mode: policy.ModeDeny}},
		{description: "blocked", policy: &policy.Policy{BlockList: []string{"echo"}}},
		{description: "allowed", policy: &policy.Policy{AllowList: []string{"echo"}}, expectRun: true},
	}
	for _, testCase := range testCases {
		ctx := execution.NewContext(policy.WithPolicy(context.Background(), testCase.policy))
		runner := &fakeRunner{result: &Result{}}
		proc := New(substitution.Literal("echo hi"), WithRunner(runner))
		require.NoError(t, ctx.VisitAll(proc), testCase.description)
		drain(t, ctx)
		assert.Equal(t, testCase.expectRun, len(runner.requests) == 1, testCase.description)
		assert.Equal(t, testCase.expectRun, proc.Future() != nil, testCase.description)
	}
}
