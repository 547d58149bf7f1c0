package progress

import (
	"context"
	"sync"
	"time"
)

// Delta represents an incremental counter change. The fields are signed, a
// negative value decrements the counter.
type Delta struct {
	Visited   int
	Completed int
	Skipped   int
	Failed    int
	Running   int
}

// Progress keeps aggregated action counters of a single launch run. It is safe
// for concurrent use.
type Progress struct {
	RunID     string
	StartedAt time.Time

	// VisitedActions counts actions whose condition held
	VisitedActions   int
	CompletedActions int
	// SkippedActions counts actions whose condition did not hold
	SkippedActions int
	FailedActions  int
	// RunningActions counts visited actions with unsettled asynchronous work
	RunningActions int

	sync.Mutex
	onChange func(Progress)
}

// Update applies the delta. The onChange callback, if any, receives a copy of
// the updated counters outside the critical section.
func (p *Progress) Update(d Delta) {
	if p == nil {
		return
	}
	p.Lock()
	p.VisitedActions += d.Visited
	p.CompletedActions += d.Completed
	p.SkippedActions += d.Skipped
	p.FailedActions += d.Failed
	p.RunningActions += d.Running
	snapshot := p.copy()
	cb := p.onChange
	p.Unlock()
	if cb != nil {
		cb(snapshot)
	}
}

// Snapshot returns a copy of the tracker
func (p *Progress) Snapshot() Progress {
	if p == nil {
		return Progress{}
	}
	p.Lock()
	defer p.Unlock()
	return p.copy()
}

// OnChange registers a callback invoked after every update, nil disables it
func (p *Progress) OnChange(cb func(Progress)) {
	if p == nil {
		return
	}
	p.Lock()
	p.onChange = cb
	p.Unlock()
}

func (p *Progress) copy() Progress {
	return Progress{
		RunID:            p.RunID,
		StartedAt:        p.StartedAt,
		VisitedActions:   p.VisitedActions,
		CompletedActions: p.CompletedActions,
		SkippedActions:   p.SkippedActions,
		FailedActions:    p.FailedActions,
		RunningActions:   p.RunningActions,
	}
}

type trackerKeyT struct{}

var trackerKey trackerKeyT

// WithNewTracker creates a tracker, embeds it in a derived context and returns both
func WithNewTracker(ctx context.Context, runID string, onChange func(Progress)) (context.Context, *Progress) {
	if ctx == nil {
		ctx = context.Background()
	}
	tr := &Progress{
		RunID:     runID,
		StartedAt: time.Now(),
		onChange:  onChange,
	}
	return context.WithValue(ctx, trackerKey, tr), tr
}

// FromContext extracts the tracker from ctx
func FromContext(ctx context.Context) (*Progress, bool) {
	if ctx == nil {
		return nil, false
	}
	tr, ok := ctx.Value(trackerKey).(*Progress)
	return tr, ok
}

// UpdateCtx applies the delta to the tracker carried by ctx, if any
func UpdateCtx(ctx context.Context, d Delta) {
	if tr, ok := FromContext(ctx); ok {
		tr.Update(d)
	}
}
