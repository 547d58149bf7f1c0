package execution

import "sync"

// Future represents asynchronously completing work. It is completed exactly
// once and runs a single continuation; the continuation is invoked before the
// future reports itself settled, so a settled future never has an outstanding
// continuation.
type Future struct {
	mu           sync.Mutex
	completed    bool
	err          error
	continuation func(err error)
	done         chan struct{}
}

// Complete completes the future, it returns false if already completed
func (f *Future) Complete(err error) bool {
	f.mu.Lock()
	if f.completed {
		f.mu.Unlock()
		return false
	}
	f.completed = true
	f.err = err
	continuation := f.continuation
	f.mu.Unlock()
	if continuation != nil {
		continuation(err)
	}
	close(f.done)
	return true
}

// Cancel completes the future with ErrCancelled
func (f *Future) Cancel() bool {
	return f.Complete(ErrCancelled)
}

// OnDone registers the continuation; when the future is already completed the
// continuation runs immediately.
func (f *Future) OnDone(fn func(err error)) error {
	f.mu.Lock()
	if f.continuation != nil {
		f.mu.Unlock()
		return ErrContinuationRegistered
	}
	f.continuation = fn
	if !f.completed {
		f.mu.Unlock()
		return nil
	}
	err := f.err
	f.mu.Unlock()
	fn(err)
	return nil
}

// Done returns a channel closed once the future is settled
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// IsDone returns true if the future is settled
func (f *Future) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Err returns completion error
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// NewFuture creates a future
func NewFuture() *Future {
	return &Future{done: make(chan struct{})}
}
