package action

import (
	"fmt"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

type override struct {
	name  string
	value execution.Substitutions
}

// Group yields its children, optionally scoped within a launch configuration frame.
// A scoped group expands to Push, Set..., children..., Pop; an unscoped one to Set..., children...
type Group struct {
	Base
	actions   []execution.Entity
	scoped    bool
	overrides []override
}

func (g *Group) Describe() string {
	return fmt.Sprintf("GroupAction(scoped: %v, actions: %d)", g.scoped, len(g.actions))
}

// Scoped returns true if group pushes its own frame
func (g *Group) Scoped() bool {
	return g.scoped
}

// Actions returns group children
func (g *Group) Actions() []execution.Entity {
	return g.actions
}

func (g *Group) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	var ret = make([]execution.Entity, 0, len(g.actions)+len(g.overrides)+2)
	if g.scoped {
		ret = append(ret, NewPushLaunchConfigurations())
	}
	for _, item := range g.overrides {
		ret = append(ret, NewSetLaunchConfiguration(substitution.Literal(item.name), item.value))
	}
	ret = append(ret, g.actions...)
	if g.scoped {
		ret = append(ret, NewPopLaunchConfigurations())
	}
	return ret, nil
}

// GroupOption represents group option
type GroupOption func(g *Group)

// WithScoped sets group scoping, groups are scoped by default
func WithScoped(scoped bool) GroupOption {
	return func(g *Group) {
		g.scoped = scoped
	}
}

// WithLaunchConfiguration adds launch configuration override, overrides are applied in insertion order
func WithLaunchConfiguration(name string, value execution.Substitutions) GroupOption {
	return func(g *Group) {
		g.overrides = append(g.overrides, override{name: name, value: value})
	}
}

// WithGroupCondition sets group condition
func WithGroupCondition(cond execution.Condition) GroupOption {
	return func(g *Group) {
		g.condition = cond
	}
}

// NewGroup creates group action
func NewGroup(actions []execution.Entity, options ...GroupOption) *Group {
	ret := &Group{actions: actions, scoped: true}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
