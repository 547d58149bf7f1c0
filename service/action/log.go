package action

import (
	"fmt"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// LogInfo writes a message to the launch logger
type LogInfo struct {
	Base
	Message execution.Substitutions
}

func (a *LogInfo) Describe() string {
	return fmt.Sprintf("LogInfo(%s)", substitution.Describe(a.Message))
}

func (a *LogInfo) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	message, err := substitution.Perform(ctx, a.Message)
	if err != nil {
		return nil, execution.NewResolutionError(a, err)
	}
	ctx.Logger().Printf("[INFO] %s", message)
	return nil, nil
}

// NewLogInfo creates log action
func NewLogInfo(message execution.Substitutions, options ...Option) *LogInfo {
	return &LogInfo{Base: NewBase(options...), Message: message}
}

// OpaqueFunction runs a Go function when visited; returned entities are visited next
type OpaqueFunction struct {
	Base
	name string
	fn   func(ctx *execution.Context) ([]execution.Entity, error)
}

func (a *OpaqueFunction) Describe() string {
	return fmt.Sprintf("OpaqueFunction(%s)", a.name)
}

func (a *OpaqueFunction) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	return a.fn(ctx)
}

// NewOpaqueFunction creates function action
func NewOpaqueFunction(name string, fn func(ctx *execution.Context) ([]execution.Entity, error), options ...Option) *OpaqueFunction {
	return &OpaqueFunction{Base: NewBase(options...), name: name, fn: fn}
}
