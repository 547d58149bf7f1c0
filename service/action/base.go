package action

import (
	"github.com/viant/launch/runtime/condition"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/service/frontend"
)

// Base holds state shared by all actions
type Base struct {
	condition execution.Condition
}

// Condition returns action condition or nil
func (b *Base) Condition() execution.Condition {
	return b.condition
}

// Option represents action option
type Option func(b *Base)

// WithCondition sets action condition
func WithCondition(cond execution.Condition) Option {
	return func(b *Base) {
		b.condition = cond
	}
}

// NewBase creates action base
func NewBase(options ...Option) Base {
	ret := Base{}
	for _, opt := range options {
		opt(&ret)
	}
	return ret
}

// ParseBase parses attributes common to all actions: if and unless
func ParseBase(entity frontend.Entity, parser frontend.Parser) (Base, error) {
	ifText, hasIf := entity.Text("if")
	unlessText, hasUnless := entity.Text("unless")
	if hasIf && hasUnless {
		return Base{}, &execution.ConfigurationError{Action: entity.TypeName(), Err: execution.ErrBothConditions}
	}
	switch {
	case hasIf:
		expression, err := parser.ParseSubstitution(ifText)
		if err != nil {
			return Base{}, &execution.ConfigurationError{Action: entity.TypeName(), Err: err}
		}
		return NewBase(WithCondition(condition.NewIf(expression))), nil
	case hasUnless:
		expression, err := parser.ParseSubstitution(unlessText)
		if err != nil {
			return Base{}, &execution.ConfigurationError{Action: entity.TypeName(), Err: err}
		}
		return NewBase(WithCondition(condition.NewUnless(expression))), nil
	}
	return Base{}, nil
}
