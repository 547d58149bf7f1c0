package progress

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	var changes []Progress
	ctx, tracker := WithNewTracker(context.Background(), "run-1", func(p Progress) {
		changes = append(changes, p)
	})
	UpdateCtx(ctx, Delta{Visited: 1, Running: 1})
	UpdateCtx(ctx, Delta{Running: -1, Completed: 1})
	UpdateCtx(ctx, Delta{Skipped: 1})

	snapshot := tracker.Snapshot()
	assert.Equal(t, "run-1", snapshot.RunID)
	assert.Equal(t, 1, snapshot.VisitedActions)
	assert.Equal(t, 1, snapshot.CompletedActions)
	assert.Equal(t, 1, snapshot.SkippedActions)
	assert.Equal(t, 0, snapshot.RunningActions)
	assert.Len(t, changes, 3)
	assert.Equal(t, 1, changes[0].RunningActions)
}

func TestProgress_Nil(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Visited: 1})
	tracker.OnChange(nil)
	assert.Equal(t, 0, tracker.Snapshot().VisitedActions)
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	UpdateCtx(context.Background(), Delta{Visited: 1})
}

func TestProgress_Concurrent(t *testing.T) {
	_, tracker := WithNewTracker(context.Background(), "run", nil)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Update(Delta{Visited: 1, Completed: 1})
		}()
	}
	wg.Wait()
	snapshot := tracker.Snapshot()
	assert.Equal(t, 20, snapshot.VisitedActions)
	assert.Equal(t, 20, snapshot.CompletedActions)
}
