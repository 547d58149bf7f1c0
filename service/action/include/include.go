package include

import (
	"fmt"
	"strings"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/action"
)

// Argument represents a launch argument passed to the included description
type Argument struct {
	Name  string
	Value execution.Substitutions
}

// IncludeLaunchDescription visits another launch description. Launch arguments
// become launch configurations of the current scope and the included file
// location is exposed to $(dirname) while its description is visited.
type IncludeLaunchDescription struct {
	action.Base
	source    Source
	arguments []Argument
}

func (a *IncludeLaunchDescription) Describe() string {
	return fmt.Sprintf("IncludeLaunchDescription(%s)", a.source.Describe())
}

// Arguments returns launch arguments
func (a *IncludeLaunchDescription) Arguments() []Argument {
	return a.arguments
}

func (a *IncludeLaunchDescription) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	description, location, err := a.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err = a.checkRequired(ctx, description); err != nil {
		return nil, err
	}
	var ret = make([]execution.Entity, 0, len(a.arguments)+3)
	for _, argument := range a.arguments {
		ret = append(ret, action.NewSetLaunchConfiguration(substitution.Literal(argument.Name), argument.Value))
	}
	if location != "" {
		previous, hasPrevious := ctx.Local(substitution.CurrentLaunchFileDirectory)
		ret = append(ret, action.NewOpaqueFunction("SetLaunchFileLocation", func(ctx *execution.Context) ([]execution.Entity, error) {
			ctx.ExtendLocals(map[string]interface{}{substitution.CurrentLaunchFileDirectory: Dir(location)})
			return nil, nil
		}))
		ret = append(ret, description)
		ret = append(ret, action.NewOpaqueFunction("ResetLaunchFileLocation", func(ctx *execution.Context) ([]execution.Entity, error) {
			if hasPrevious {
				ctx.ExtendLocals(map[string]interface{}{substitution.CurrentLaunchFileDirectory: previous})
			} else {
				ctx.DeleteLocal(substitution.CurrentLaunchFileDirectory)
			}
			return nil, nil
		}))
		return ret, nil
	}
	return append(ret, description), nil
}

// checkRequired reports required launch arguments of the included description
// that are neither passed nor already configured. Conditionally included
// arguments, including everything under a conditional group, and arguments
// declared in nested includes are not inspected.
func (a *IncludeLaunchDescription) checkRequired(ctx *execution.Context, description *execution.Description) error {
	provided := map[string]bool{}
	for _, argument := range a.arguments {
		provided[argument.Name] = true
	}
	var missing []string
	for _, declared := range declaredArguments(description.Entities()) {
		if !declared.Required() || provided[declared.Name] {
			continue
		}
		if _, ok := ctx.LaunchConfiguration(declared.Name); ok {
			continue
		}
		missing = append(missing, declared.Name)
	}
	if len(missing) > 0 {
		return execution.NewConfigurationError(a, fmt.Errorf("included launch description is missing required arguments: [%s]", strings.Join(missing, ", ")))
	}
	return nil
}

func declaredArguments(entities []execution.Entity) []*action.DeclareLaunchArgument {
	var ret []*action.DeclareLaunchArgument
	for _, entity := range entities {
		if conditional, ok := entity.(execution.Action); ok && conditional.Condition() != nil {
			continue
		}
		switch actual := entity.(type) {
		case *action.DeclareLaunchArgument:
			ret = append(ret, actual)
		case *action.Group:
			ret = append(ret, declaredArguments(actual.Actions())...)
		case *execution.Description:
			ret = append(ret, declaredArguments(actual.Entities())...)
		}
	}
	return ret
}

// Option represents include option
type Option func(a *IncludeLaunchDescription)

// WithArgument adds launch argument, arguments are set in insertion order
func WithArgument(name string, value execution.Substitutions) Option {
	return func(a *IncludeLaunchDescription) {
		a.arguments = append(a.arguments, Argument{Name: name, Value: value})
	}
}

// WithCondition sets include condition
func WithCondition(cond execution.Condition) Option {
	return func(a *IncludeLaunchDescription) {
		a.Base = action.NewBase(action.WithCondition(cond))
	}
}

// New creates include action
func New(source Source, options ...Option) *IncludeLaunchDescription {
	ret := &IncludeLaunchDescription{source: source}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
