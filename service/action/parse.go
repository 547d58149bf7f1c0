package action

import (
	"fmt"
	"strconv"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/frontend"
)

// Register registers launch file tags handled by this package
func Register(registry *frontend.Registry) {
	registry.Register("arg", ParseDeclareLaunchArgument)
	registry.Register("let", ParseSetLaunchConfiguration)
	registry.Register("unset", ParseUnsetLaunchConfiguration)
	registry.Register("group", ParseGroup)
	registry.Register("set_env", ParseSetEnvironmentVariable)
	registry.Register("unset_env", ParseUnsetEnvironmentVariable)
	registry.Register("push_env", ParsePushEnvironment)
	registry.Register("pop_env", ParsePopEnvironment)
	registry.Register("log", ParseLogInfo)
	registry.Register("shutdown", ParseShutdown)
	registry.Register("timer", ParseTimer)
}

// ParseDeclareLaunchArgument parses arg: {name, default, description, choices}
func ParseDeclareLaunchArgument(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	name, err := requiredText(entity, "name")
	if err != nil {
		return nil, err
	}
	ret := &DeclareLaunchArgument{Base: base, Name: name}
	if text, ok := entity.Text("default"); ok {
		if ret.Default, err = parser.ParseSubstitution(text); err != nil {
			return nil, err
		}
	}
	attrs := struct {
		Description string   `json:"description"`
		Choices     []string `json:"choices"`
	}{}
	if err = entity.Decode(&attrs); err != nil {
		return nil, err
	}
	ret.Description = attrs.Description
	ret.Choices = attrs.Choices
	return ret, nil
}

// ParseSetLaunchConfiguration parses let: {name, value}
func ParseSetLaunchConfiguration(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	name, err := parseSubstitutionAttr(entity, parser, "name", true)
	if err != nil {
		return nil, err
	}
	value, err := parseSubstitutionAttr(entity, parser, "value", true)
	if err != nil {
		return nil, err
	}
	return &SetLaunchConfiguration{Base: base, Name: name, Value: value}, nil
}

// ParseUnsetLaunchConfiguration parses unset: {name}
func ParseUnsetLaunchConfiguration(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	name, err := parseSubstitutionAttr(entity, parser, "name", true)
	if err != nil {
		return nil, err
	}
	return &UnsetLaunchConfiguration{Base: base, Name: name}, nil
}

// ParseGroup parses group: {scoped, launch_configurations, children}
func ParseGroup(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	scoped := true
	if text, ok := entity.Text("scoped"); ok {
		if scoped, err = strconv.ParseBool(text); err != nil {
			return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("invalid scoped value: %w", err)}
		}
	}
	options := []GroupOption{WithScoped(scoped), WithGroupCondition(base.condition)}
	err = entity.Pairs("launch_configurations", func(name, text string) error {
		value, err := parser.ParseSubstitution(text)
		if err != nil {
			return err
		}
		options = append(options, WithLaunchConfiguration(name, value))
		return nil
	})
	if err != nil {
		return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("invalid launch_configurations: %w", err)}
	}
	actions, err := parseChildren(entity, parser)
	if err != nil {
		return nil, err
	}
	return NewGroup(actions, options...), nil
}

// ParseSetEnvironmentVariable parses set_env: {name, value}
func ParseSetEnvironmentVariable(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	name, err := parseSubstitutionAttr(entity, parser, "name", true)
	if err != nil {
		return nil, err
	}
	value, err := parseSubstitutionAttr(entity, parser, "value", true)
	if err != nil {
		return nil, err
	}
	return &SetEnvironmentVariable{Base: base, Name: name, Value: value}, nil
}

// ParseUnsetEnvironmentVariable parses unset_env: {name}
func ParseUnsetEnvironmentVariable(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	name, err := parseSubstitutionAttr(entity, parser, "name", true)
	if err != nil {
		return nil, err
	}
	return &UnsetEnvironmentVariable{Base: base, Name: name}, nil
}

// ParsePushEnvironment parses push_env
func ParsePushEnvironment(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	return &PushEnvironment{Base: base}, nil
}

// ParsePopEnvironment parses pop_env
func ParsePopEnvironment(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	return &PopEnvironment{Base: base}, nil
}

// ParseLogInfo parses log: {message}
func ParseLogInfo(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	message, err := parseSubstitutionAttr(entity, parser, "message", true)
	if err != nil {
		return nil, err
	}
	return &LogInfo{Base: base, Message: message}, nil
}

// ParseShutdown parses shutdown: {reason}
func ParseShutdown(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	reason, err := parseSubstitutionAttr(entity, parser, "reason", false)
	if err != nil {
		return nil, err
	}
	return &Shutdown{Base: base, Reason: reason}, nil
}

// ParseTimer parses timer: {period, cancel_on_shutdown, children}
func ParseTimer(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	period, err := parseSubstitutionAttr(entity, parser, "period", true)
	if err != nil {
		return nil, err
	}
	cancelOnShutdown := true
	if text, ok := entity.Text("cancel_on_shutdown"); ok {
		if cancelOnShutdown, err = strconv.ParseBool(text); err != nil {
			return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("invalid cancel_on_shutdown value: %w", err)}
		}
	}
	actions, err := parseChildren(entity, parser)
	if err != nil {
		return nil, err
	}
	return NewTimer(period, actions, WithCancelOnShutdown(cancelOnShutdown), WithTimerCondition(base.condition)), nil
}

func parseChildren(entity frontend.Entity, parser frontend.Parser) ([]execution.Entity, error) {
	children, _ := entity.Entities("children")
	return parser.ParseActions(children)
}

func requiredText(entity frontend.Entity, name string) (string, error) {
	text, ok := entity.Text(name)
	if !ok {
		return "", &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("attribute '%s' is required", name)}
	}
	return text, nil
}

func parseSubstitutionAttr(entity frontend.Entity, parser frontend.Parser, name string, required bool) (execution.Substitutions, error) {
	text, ok := entity.Text(name)
	if !ok {
		if required {
			return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("attribute '%s' is required", name)}
		}
		return substitution.Literal(""), nil
	}
	ret, err := parser.ParseSubstitution(text)
	if err != nil {
		return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: err}
	}
	return ret, nil
}
