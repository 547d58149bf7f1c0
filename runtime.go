package launch

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/viant/launch/internal/clock"
	"github.com/viant/launch/model/event"
	"github.com/viant/launch/progress"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/service/handler"
)

// Runtime drives a single launch run: the goroutine calling Run owns the
// launch context and dispatches queued events until no work is left.
type Runtime struct {
	id              string
	launch          *execution.Context
	progress        *progress.Progress
	pollInterval    time.Duration
	shutdownTimeout time.Duration
	mux             sync.Mutex
	running         bool
}

// ID returns run ID
func (r *Runtime) ID() string {
	return r.id
}

// Progress returns a snapshot of the action counters
func (r *Runtime) Progress() progress.Progress {
	return r.progress.Snapshot()
}

// Context returns the launch context, it must only be used by the run goroutine
func (r *Runtime) Context() *execution.Context {
	return r.launch
}

// IncludeDescription enqueues the description, it is visited once the run loop dispatches it
func (r *Runtime) IncludeDescription(description *execution.Description) error {
	if description == nil {
		return fmt.Errorf("description was nil")
	}
	return r.launch.EmitEvent(event.NewIncludeLaunchDescription(description))
}

// Shutdown enqueues a shutdown event
func (r *Runtime) Shutdown(reason string, dueToInterrupt bool) error {
	return r.launch.EmitEvent(event.NewShutdown(event.WithReason(reason), event.WithDueToInterrupt(dueToInterrupt)))
}

// Run dispatches events until the queue is empty and no asynchronous work is
// pending. Cancelling ctx requests an interrupt shutdown; the loop then keeps
// running until the cancelled work settles. The first error triggers a
// shutdown, a bounded drain and is returned.
func (r *Runtime) Run(ctx context.Context) error {
	r.mux.Lock()
	if r.running {
		r.mux.Unlock()
		return fmt.Errorf("launch %v is already running", r.id)
	}
	r.running = true
	r.mux.Unlock()
	defer func() {
		r.mux.Lock()
		r.running = false
		r.mux.Unlock()
	}()

	started := clock.Now()
	logger := r.launch.Logger()
	logger.Printf("launch %v started", r.id)
	interrupted := false
	for {
		if !interrupted && ctx.Err() != nil {
			interrupted = true
			if err := r.Shutdown(ctx.Err().Error(), true); err != nil {
				return r.abort(err)
			}
		}
		processed, err := r.launch.ProcessNext(context.Background(), r.pollInterval)
		if err != nil {
			return r.abort(err)
		}
		if !processed && r.launch.Idle() {
			break
		}
	}
	snapshot := r.progress.Snapshot()
	logger.Printf("launch %v completed in %v, actions: %d, skipped: %d, failed: %d",
		r.id, clock.Since(started), snapshot.VisitedActions, snapshot.SkippedActions, snapshot.FailedActions)
	return nil
}

// abort shuts the launch down after a failure and waits up to the shutdown
// timeout for cancelled work to settle
func (r *Runtime) abort(cause error) error {
	logger := r.launch.Logger()
	logger.Printf("launch %v failed: %v", r.id, cause)
	shutdown := event.NewShutdown(event.WithReason(cause.Error()))
	if err := r.launch.EmitEventSync(shutdown); err != nil {
		logger.Printf("failed to handle %v: %v", shutdown, err)
	}
	deadline := clock.Now().Add(r.shutdownTimeout)
	for clock.Now().Before(deadline) {
		processed, err := r.launch.ProcessNext(context.Background(), r.pollInterval)
		if err != nil {
			logger.Printf("failed to process event during shutdown: %v", err)
			continue
		}
		if !processed && r.launch.Idle() {
			break
		}
	}
	if dropped := r.launch.DeadLetters(); dropped > 0 {
		logger.Printf("launch %v rejected %d event(s)", r.id, dropped)
	}
	return cause
}

func (r *Runtime) registerHandlers() {
	r.launch.RegisterGlobalEventHandler(handler.OnShutdown(func(shutdown *event.Shutdown, ctx *execution.Context) ([]execution.Entity, error) {
		if ctx.MarkShutdown(shutdown.Reason()) {
			ctx.Logger().Printf("launch %v shutting down: %v", r.id, shutdown)
		}
		return nil, nil
	}, handler.WithDescription("OnShutdown(launch)")))
	r.launch.RegisterGlobalEventHandler(handler.New(handler.MatchName(event.IncludeLaunchDescriptionName),
		handler.WithDescription("OnIncludeLaunchDescription(launch)"),
		handler.WithFunc(func(evt execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
			return []execution.Entity{evt.(*event.IncludeLaunchDescription).Description()}, nil
		})))
	logOutput := func(output event.IO, ctx *execution.Context) ([]execution.Entity, error) {
		for _, line := range strings.Split(strings.TrimRight(string(output.Text()), "\n"), "\n") {
			ctx.Logger().Printf("[%v] %v", output.ProcessName(), line)
		}
		return nil, nil
	}
	r.launch.RegisterGlobalEventHandler(handler.OnProcessIO(nil, logOutput, logOutput))
}

func newRuntime(id string, launch *execution.Context, tracker *progress.Progress, pollInterval, shutdownTimeout time.Duration) *Runtime {
	ret := &Runtime{
		id:              id,
		launch:          launch,
		progress:        tracker,
		pollInterval:    pollInterval,
		shutdownTimeout: shutdownTimeout,
	}
	ret.registerHandlers()
	return ret
}
