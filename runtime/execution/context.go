package execution

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/viant/launch/service/messaging"
	"github.com/viant/launch/service/messaging/memory"
)

// Context represents the state of a single launch run: scoped launch
// configurations, environment view, registered event handlers, the event
// queue and the pending asynchronous work.
//
// Frames, locals and handlers are owned by the orchestration goroutine; only
// EmitEvent, RegisterPending, Idle and the shutdown accessors are safe to call
// from other goroutines.
type Context struct {
	context.Context
	frames       []*frame
	environment  Environment
	environments []map[string]string
	queue        messaging.Queue[Event]
	logger       *log.Logger
	pendingMu    sync.Mutex
	pending      []*Future
	shutdownMu   sync.RWMutex
	shutdown     bool
	reason       string
}

// PushLaunchConfigurations pushes a copy of the current frame
func (c *Context) PushLaunchConfigurations() {
	c.frames = append(c.frames, c.top().clone())
}

// PopLaunchConfigurations discards the current frame with its handlers
func (c *Context) PopLaunchConfigurations() error {
	if len(c.frames) <= 1 {
		return NewConfigurationError(nil, ErrBaseFrame)
	}
	c.frames[len(c.frames)-1] = nil
	c.frames = c.frames[:len(c.frames)-1]
	return nil
}

// Depth returns number of configuration frames
func (c *Context) Depth() int {
	return len(c.frames)
}

// SetLaunchConfiguration sets a launch configuration in the current frame
func (c *Context) SetLaunchConfiguration(name, value string) {
	c.top().configurations.Set(name, value)
}

// UnsetLaunchConfiguration removes a launch configuration from the current frame
func (c *Context) UnsetLaunchConfiguration(name string) {
	c.top().configurations.Delete(name)
}

// LaunchConfiguration returns a launch configuration visible in the current frame
func (c *Context) LaunchConfiguration(name string) (string, bool) {
	return c.top().configurations.Get(name)
}

// LaunchConfigurations returns a snapshot of the current frame configurations
func (c *Context) LaunchConfigurations() *Configurations {
	return c.top().configurations.Clone()
}

// ExtendLocals adds launch file locals to the current frame
func (c *Context) ExtendLocals(locals map[string]interface{}) {
	for k, v := range locals {
		c.top().locals[k] = v
	}
}

// Local returns a launch file local
func (c *Context) Local(name string) (interface{}, bool) {
	value, ok := c.top().locals[name]
	return value, ok
}

// DeleteLocal removes a launch file local from the current frame
func (c *Context) DeleteLocal(name string) {
	delete(c.top().locals, name)
}

// Environment returns the environment view
func (c *Context) Environment() Environment {
	return c.environment
}

// PushEnvironment saves the current environment
func (c *Context) PushEnvironment() {
	c.environments = append(c.environments, c.environment.Environ())
}

// PopEnvironment restores the last saved environment
func (c *Context) PopEnvironment() error {
	if len(c.environments) == 0 {
		return NewConfigurationError(nil, ErrBaseEnvironment)
	}
	snapshot := c.environments[len(c.environments)-1]
	c.environments = c.environments[:len(c.environments)-1]
	return restore(c.environment, snapshot)
}

// Logger returns the logger
func (c *Context) Logger() *log.Logger {
	return c.logger
}

// RegisterEventHandler registers a handler in the current frame; it is dropped when the frame is popped
func (c *Context) RegisterEventHandler(handler EventHandler) {
	top := c.top()
	top.handlers = append(top.handlers, handler)
}

// RegisterGlobalEventHandler registers a handler in the base frame
func (c *Context) RegisterGlobalEventHandler(handler EventHandler) {
	c.frames[0].handlers = append(c.frames[0].handlers, handler)
}

// UnregisterEventHandler removes a handler, it returns false if the handler is not registered
func (c *Context) UnregisterEventHandler(handler EventHandler) bool {
	for _, f := range c.frames {
		for i, candidate := range f.handlers {
			if candidate == handler {
				f.handlers = append(f.handlers[:i:i], f.handlers[i+1:]...)
				return true
			}
		}
	}
	return false
}

// EventHandlers returns registered handlers, base frame first
func (c *Context) EventHandlers() []EventHandler {
	var ret []EventHandler
	for _, f := range c.frames {
		ret = append(ret, f.handlers...)
	}
	return ret
}

func (c *Context) isRegistered(handler EventHandler) bool {
	for _, f := range c.frames {
		for _, candidate := range f.handlers {
			if candidate == handler {
				return true
			}
		}
	}
	return false
}

// WouldHandleEvent returns true if any registered handler matches the event
func (c *Context) WouldHandleEvent(event Event) bool {
	for _, f := range c.frames {
		for _, handler := range f.handlers {
			if handler.Matches(event) {
				return true
			}
		}
	}
	return false
}

// EmitEvent enqueues the event for dispatch by the orchestration loop; it
// does not block, so the orchestration goroutine may emit while dispatching
func (c *Context) EmitEvent(event Event) error {
	if event == nil {
		return fmt.Errorf("event was nil")
	}
	return c.queue.Publish(context.Background(), &event)
}

// EmitEventSync dispatches the event to the matching handlers in registration
// order; entities returned by a handler are visited before the next handler runs.
func (c *Context) EmitEventSync(event Event) error {
	var matched []EventHandler
	for _, f := range c.frames {
		for _, handler := range f.handlers {
			if handler.Matches(event) {
				matched = append(matched, handler)
			}
		}
	}
	for _, handler := range matched {
		if !c.isRegistered(handler) {
			continue
		}
		if handler.HandleOnce() {
			c.UnregisterEventHandler(handler)
		}
		entities, err := handler.Handle(event, c)
		if err != nil {
			return fmt.Errorf("failed to handle %v with %v: %w", event.Name(), handler.Describe(), err)
		}
		if err = c.VisitAll(entities...); err != nil {
			return err
		}
	}
	return nil
}

// ProcessNext waits up to the timeout for a queued event and dispatches it;
// it returns false when no event was available. An event whose dispatch fails
// is rejected to the queue dead letters.
func (c *Context) ProcessNext(ctx context.Context, timeout time.Duration) (bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	message, err := c.queue.Consume(waitCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return false, nil
		}
		return false, err
	}
	if message == nil {
		return false, nil
	}
	if err = c.EmitEventSync(*message.T()); err != nil {
		if nErr := message.Nack(err); nErr != nil {
			c.logger.Printf("failed to reject %v: %v", (*message.T()).Name(), nErr)
		}
		return true, err
	}
	return true, message.Ack()
}

// DeadLetters returns the number of events whose dispatch failed, it is 0 when the queue keeps no dead letters
func (c *Context) DeadLetters() int {
	if queue, ok := c.queue.(interface{ DLQSize() int }); ok {
		return queue.DLQSize()
	}
	return 0
}

// VisitAll visits entities depth first in declaration order
func (c *Context) VisitAll(entities ...Entity) error {
	for _, entity := range entities {
		children, err := Visit(c, entity)
		if err != nil {
			return err
		}
		if len(children) == 0 {
			continue
		}
		if err = c.VisitAll(children...); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPending registers asynchronous work the run has to wait for
func (c *Context) RegisterPending(future *Future) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	c.pending = append(c.pending, future)
}

// Pending returns number of unsettled futures
func (c *Context) Pending() int {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	active := c.pending[:0]
	for _, future := range c.pending {
		if !future.IsDone() {
			active = append(active, future)
		}
	}
	for i := len(active); i < len(c.pending); i++ {
		c.pending[i] = nil
	}
	c.pending = active
	return len(active)
}

// Idle returns true when no event is queued and no pending work is running
func (c *Context) Idle() bool {
	return c.Pending() == 0 && c.queue.Size() == 0
}

// MarkShutdown marks the run as shutting down; only the first reason is kept
func (c *Context) MarkShutdown(reason string) bool {
	c.shutdownMu.Lock()
	defer c.shutdownMu.Unlock()
	if c.shutdown {
		return false
	}
	c.shutdown = true
	c.reason = reason
	return true
}

// IsShutdown returns true once shutdown was marked
func (c *Context) IsShutdown() bool {
	c.shutdownMu.RLock()
	defer c.shutdownMu.RUnlock()
	return c.shutdown
}

// ShutdownReason returns the shutdown reason
func (c *Context) ShutdownReason() string {
	c.shutdownMu.RLock()
	defer c.shutdownMu.RUnlock()
	return c.reason
}

func (c *Context) top() *frame {
	return c.frames[len(c.frames)-1]
}

// NewContext creates a launch context
func NewContext(ctx context.Context, options ...Option) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ret := &Context{
		Context: ctx,
		frames:  []*frame{newFrame()},
	}
	for _, option := range options {
		option(ret)
	}
	if ret.environment == nil {
		ret.environment = OSEnvironment()
	}
	if ret.queue == nil {
		ret.queue = memory.NewQueue[Event](memory.DefaultConfig())
	}
	if ret.logger == nil {
		ret.logger = log.New(os.Stderr, "[launch] ", log.LstdFlags)
	}
	return ret
}
