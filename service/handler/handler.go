package handler

import (
	"fmt"

	"github.com/viant/launch/runtime/execution"
)

// Matcher reports whether an event is of interest
type Matcher func(event execution.Event) bool

// Func handles an event
type Func func(event execution.Event, ctx *execution.Context) ([]execution.Entity, error)

// Handler is a generic event handler built from a matcher and a handling function
type Handler struct {
	matcher     Matcher
	handle      Func
	entities    []execution.Entity
	once        bool
	description string
}

// Matches returns true if the event matches
func (h *Handler) Matches(event execution.Event) bool {
	return h.matcher(event)
}

// Handle handles the event; static entities are returned after the handling function results
func (h *Handler) Handle(event execution.Event, ctx *execution.Context) ([]execution.Entity, error) {
	var ret []execution.Entity
	if h.handle != nil {
		entities, err := h.handle(event, ctx)
		if err != nil {
			return nil, err
		}
		ret = append(ret, entities...)
	}
	return append(ret, h.entities...), nil
}

// HandleOnce returns true if handler is unregistered after first handled event
func (h *Handler) HandleOnce() bool {
	return h.once
}

func (h *Handler) Describe() string {
	if h.description != "" {
		return h.description
	}
	return "EventHandler"
}

// Option represents handler option
type Option func(h *Handler)

// WithHandleOnce sets handle once flag
func WithHandleOnce(once bool) Option {
	return func(h *Handler) {
		h.once = once
	}
}

// WithDescription sets handler description
func WithDescription(description string) Option {
	return func(h *Handler) {
		h.description = description
	}
}

// WithFunc sets handling function
func WithFunc(fn Func) Option {
	return func(h *Handler) {
		h.handle = fn
	}
}

// WithEntities sets entities returned on every handled event
func WithEntities(entities ...execution.Entity) Option {
	return func(h *Handler) {
		h.entities = entities
	}
}

// New creates a handler
func New(matcher Matcher, options ...Option) *Handler {
	ret := &Handler{matcher: matcher}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// MatchName returns matcher for event name
func MatchName(name string) Matcher {
	return func(event execution.Event) bool {
		return event != nil && event.Name() == name
	}
}

func describe(kind string, target string) string {
	if target == "" {
		return kind
	}
	return fmt.Sprintf("%s(%s)", kind, target)
}
