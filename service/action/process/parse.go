package process

import (
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/service/action"
	"github.com/viant/launch/service/frontend"
)

// Register registers the executable tag
func Register(registry *frontend.Registry, runner Runner) {
	registry.Register("executable", func(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
		return Parse(entity, parser, runner)
	})
}

type attributes struct {
	Cmd         string            `json:"cmd"`
	Name        string            `json:"name"`
	Cwd         string            `json:"cwd"`
	Env         map[string]string `json:"env"`
	Host        string            `json:"host"`
	Credentials string            `json:"credentials"`
	TimeoutMs   int               `json:"timeoutMs"`
}

// Parse parses executable: {cmd, name, cwd, env, host, credentials, timeoutMs, on_exit}
func Parse(entity frontend.Entity, parser frontend.Parser, runner Runner) (execution.Action, error) {
	base, err := action.ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	attrs := &attributes{}
	if err = entity.Decode(attrs); err != nil {
		return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: err}
	}
	if attrs.Cmd == "" {
		return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: errRequiredCmd}
	}
	ret := &ExecuteProcess{Base: base, Host: attrs.Host, Credentials: attrs.Credentials, TimeoutMs: attrs.TimeoutMs, runner: runner}
	if ret.runner == nil {
		ret.runner = defaultRunner
	}
	if ret.Cmd, err = parser.ParseSubstitution(attrs.Cmd); err != nil {
		return nil, err
	}
	if attrs.Name != "" {
		if ret.Name, err = parser.ParseSubstitution(attrs.Name); err != nil {
			return nil, err
		}
	}
	if attrs.Cwd != "" {
		if ret.Cwd, err = parser.ParseSubstitution(attrs.Cwd); err != nil {
			return nil, err
		}
	}
	for name, value := range attrs.Env {
		if ret.Env == nil {
			ret.Env = map[string]execution.Substitutions{}
		}
		if ret.Env[name], err = parser.ParseSubstitution(value); err != nil {
			return nil, err
		}
	}
	if children, ok := entity.Entities("on_exit"); ok {
		if ret.OnExit, err = parser.ParseActions(children); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
