package action

import (
	"fmt"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// SetEnvironmentVariable sets a process environment variable
type SetEnvironmentVariable struct {
	Base
	Name  execution.Substitutions
	Value execution.Substitutions
}

func (a *SetEnvironmentVariable) Describe() string {
	return fmt.Sprintf("SetEnvironmentVariable(%s=%s)", substitution.Describe(a.Name), substitution.Describe(a.Value))
}

func (a *SetEnvironmentVariable) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	name, err := substitution.Perform(ctx, a.Name)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	value, err := substitution.Perform(ctx, a.Value)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	if err = ctx.Environment().Set(name, value); err != nil {
		return nil, err
	}
	return nil, nil
}

// NewSetEnvironmentVariable creates set environment action
func NewSetEnvironmentVariable(name, value execution.Substitutions, options ...Option) *SetEnvironmentVariable {
	return &SetEnvironmentVariable{Base: NewBase(options...), Name: name, Value: value}
}

// UnsetEnvironmentVariable removes a process environment variable
type UnsetEnvironmentVariable struct {
	Base
	Name execution.Substitutions
}

func (a *UnsetEnvironmentVariable) Describe() string {
	return fmt.Sprintf("UnsetEnvironmentVariable(%s)", substitution.Describe(a.Name))
}

func (a *UnsetEnvironmentVariable) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	name, err := substitution.Perform(ctx, a.Name)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	return nil, ctx.Environment().Unset(name)
}

// NewUnsetEnvironmentVariable creates unset environment action
func NewUnsetEnvironmentVariable(name execution.Substitutions, options ...Option) *UnsetEnvironmentVariable {
	return &UnsetEnvironmentVariable{Base: NewBase(options...), Name: name}
}

// PushEnvironment saves the environment
type PushEnvironment struct {
	Base
}

func (a *PushEnvironment) Describe() string {
	return "PushEnvironment"
}

func (a *PushEnvironment) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	ctx.PushEnvironment()
	return nil, nil
}

// NewPushEnvironment creates push environment action
func NewPushEnvironment(options ...Option) *PushEnvironment {
	return &PushEnvironment{Base: NewBase(options...)}
}

// PopEnvironment restores the last saved environment
type PopEnvironment struct {
	Base
}

func (a *PopEnvironment) Describe() string {
	return "PopEnvironment"
}

func (a *PopEnvironment) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	if err := ctx.PopEnvironment(); err != nil {
		return nil, execution.NewConfigurationError(a, err)
	}
	return nil, nil
}

// NewPopEnvironment creates pop environment action
func NewPopEnvironment(options ...Option) *PopEnvironment {
	return &PopEnvironment{Base: NewBase(options...)}
}
