package action

import (
	"fmt"
	"strings"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// PushLaunchConfigurations pushes a copy of the current launch configuration frame
type PushLaunchConfigurations struct {
	Base
}

func (a *PushLaunchConfigurations) Describe() string {
	return "PushLaunchConfigurations"
}

func (a *PushLaunchConfigurations) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	ctx.PushLaunchConfigurations()
	return nil, nil
}

// NewPushLaunchConfigurations creates push action
func NewPushLaunchConfigurations(options ...Option) *PushLaunchConfigurations {
	return &PushLaunchConfigurations{Base: NewBase(options...)}
}

// PopLaunchConfigurations discards the current launch configuration frame
type PopLaunchConfigurations struct {
	Base
}

func (a *PopLaunchConfigurations) Describe() string {
	return "PopLaunchConfigurations"
}

func (a *PopLaunchConfigurations) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	if err := ctx.PopLaunchConfigurations(); err != nil {
		return nil, execution.NewConfigurationError(a, err)
	}
	return nil, nil
}

// NewPopLaunchConfigurations creates pop action
func NewPopLaunchConfigurations(options ...Option) *PopLaunchConfigurations {
	return &PopLaunchConfigurations{Base: NewBase(options...)}
}

// SetLaunchConfiguration sets a launch configuration in the current frame
type SetLaunchConfiguration struct {
	Base
	Name  execution.Substitutions
	Value execution.Substitutions
}

func (a *SetLaunchConfiguration) Describe() string {
	return fmt.Sprintf("SetLaunchConfiguration(%s=%s)", substitution.Describe(a.Name), substitution.Describe(a.Value))
}

func (a *SetLaunchConfiguration) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	name, err := substitution.Perform(ctx, a.Name)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	value, err := substitution.Perform(ctx, a.Value)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	ctx.SetLaunchConfiguration(name, value)
	return nil, nil
}

// NewSetLaunchConfiguration creates set action
func NewSetLaunchConfiguration(name, value execution.Substitutions, options ...Option) *SetLaunchConfiguration {
	return &SetLaunchConfiguration{Base: NewBase(options...), Name: name, Value: value}
}

// UnsetLaunchConfiguration removes a launch configuration from the current frame
type UnsetLaunchConfiguration struct {
	Base
	Name execution.Substitutions
}

func (a *UnsetLaunchConfiguration) Describe() string {
	return fmt.Sprintf("UnsetLaunchConfiguration(%s)", substitution.Describe(a.Name))
}

func (a *UnsetLaunchConfiguration) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	name, err := substitution.Perform(ctx, a.Name)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	ctx.UnsetLaunchConfiguration(name)
	return nil, nil
}

// NewUnsetLaunchConfiguration creates unset action
func NewUnsetLaunchConfiguration(name execution.Substitutions, options ...Option) *UnsetLaunchConfiguration {
	return &UnsetLaunchConfiguration{Base: NewBase(options...), Name: name}
}

// DeclareLaunchArgument declares a launch argument; an argument without a default is required
type DeclareLaunchArgument struct {
	Base
	Name        string
	Default     execution.Substitutions
	Description string
	Choices     []string
}

func (a *DeclareLaunchArgument) Describe() string {
	return fmt.Sprintf("DeclareLaunchArgument(%s)", a.Name)
}

// Required returns true if the argument has no default
func (a *DeclareLaunchArgument) Required() bool {
	return a.Default == nil
}

func (a *DeclareLaunchArgument) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	value, ok := ctx.LaunchConfiguration(a.Name)
	if !ok {
		if a.Required() {
			return nil, execution.NewConfigurationError(a, fmt.Errorf("required launch argument '%s' was not provided", a.Name))
		}
		var err error
		if value, err = substitution.Perform(ctx, a.Default); err != nil {
			return nil, execution.NewResolutionError(a, err)
		}
		ctx.SetLaunchConfiguration(a.Name, value)
	}
	if len(a.Choices) > 0 && !contains(a.Choices, value) {
		return nil, execution.NewConfigurationError(a, fmt.Errorf("argument '%s' value '%s' is not one of [%s]", a.Name, value, strings.Join(a.Choices, ", ")))
	}
	return nil, nil
}

// NewDeclareLaunchArgument creates launch argument declaration, nil default marks the argument required
func NewDeclareLaunchArgument(name string, defaultValue execution.Substitutions, options ...Option) *DeclareLaunchArgument {
	return &DeclareLaunchArgument{Base: NewBase(options...), Name: name, Default: defaultValue}
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
