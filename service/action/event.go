package action

import (
	"fmt"

	"github.com/viant/launch/model/event"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// RegisterEventHandler registers a handler in the current scope
type RegisterEventHandler struct {
	Base
	handler execution.EventHandler
}

func (a *RegisterEventHandler) Describe() string {
	return fmt.Sprintf("RegisterEventHandler(%s)", a.handler.Describe())
}

// Handler returns the handler
func (a *RegisterEventHandler) Handler() execution.EventHandler {
	return a.handler
}

func (a *RegisterEventHandler) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	ctx.RegisterEventHandler(a.handler)
	return nil, nil
}

// NewRegisterEventHandler creates register handler action
func NewRegisterEventHandler(handler execution.EventHandler, options ...Option) *RegisterEventHandler {
	return &RegisterEventHandler{Base: NewBase(options...), handler: handler}
}

// UnregisterEventHandler removes a registered handler
type UnregisterEventHandler struct {
	Base
	handler execution.EventHandler
}

func (a *UnregisterEventHandler) Describe() string {
	return fmt.Sprintf("UnregisterEventHandler(%s)", a.handler.Describe())
}

func (a *UnregisterEventHandler) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	if !ctx.UnregisterEventHandler(a.handler) {
		return nil, fmt.Errorf("event handler %s is not registered", a.handler.Describe())
	}
	return nil, nil
}

// NewUnregisterEventHandler creates unregister handler action
func NewUnregisterEventHandler(handler execution.EventHandler, options ...Option) *UnregisterEventHandler {
	return &UnregisterEventHandler{Base: NewBase(options...), handler: handler}
}

// EmitEvent enqueues an event
type EmitEvent struct {
	Base
	event execution.Event
}

func (a *EmitEvent) Describe() string {
	return fmt.Sprintf("EmitEvent(%s)", a.event.Name())
}

func (a *EmitEvent) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	return nil, ctx.EmitEvent(a.event)
}

// NewEmitEvent creates emit event action
func NewEmitEvent(evt execution.Event, options ...Option) *EmitEvent {
	return &EmitEvent{Base: NewBase(options...), event: evt}
}

// Shutdown emits a shutdown event
type Shutdown struct {
	Base
	Reason execution.Substitutions
}

func (a *Shutdown) Describe() string {
	if len(a.Reason) == 0 {
		return "Shutdown"
	}
	return fmt.Sprintf("Shutdown(%s)", substitution.Describe(a.Reason))
}

func (a *Shutdown) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	reason, err := substitution.Perform(ctx, a.Reason)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	return nil, ctx.EmitEvent(event.NewShutdown(event.WithReason(reason)))
}

// NewShutdown creates shutdown action, empty reason defaults to the shutdown event default
func NewShutdown(reason execution.Substitutions, options ...Option) *Shutdown {
	return &Shutdown{Base: NewBase(options...), Reason: reason}
}
