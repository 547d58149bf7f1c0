package execution

import (
	"errors"
	"fmt"
)

var (
	ErrBaseFrame                  = errors.New("cannot pop the base launch configuration frame")
	ErrBaseEnvironment            = errors.New("cannot pop the base environment")
	ErrBothConditions             = errors.New("if and unless conditions can't be used simultaneously")
	ErrUndefinedConfiguration     = errors.New("launch configuration is not set")
	ErrInvalidConditionExpression = errors.New("invalid condition expression")
	ErrCancelled                  = errors.New("cancelled")
	ErrContinuationRegistered     = errors.New("future continuation already registered")
)

// ConfigurationError represents a fatal construction or scoping error
type ConfigurationError struct {
	Action string
	Err    error
}

func (e *ConfigurationError) Error() string {
	if e.Action == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	return fmt.Sprintf("configuration error in %v: %v", e.Action, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ResolutionError represents substitution or condition evaluation failure
type ResolutionError struct {
	Action string
	Err    error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("failed to resolve %v: %v", e.Action, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// ExecutionError represents action execution failure
type ExecutionError struct {
	Action string
	Err    error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to execute %v: %v", e.Action, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// NewConfigurationError creates a configuration error, entity can be nil
func NewConfigurationError(entity Entity, err error) error {
	ret := &ConfigurationError{Err: err}
	if entity != nil {
		ret.Action = entity.Describe()
	}
	return ret
}

// NewResolutionError creates a resolution error
func NewResolutionError(entity Entity, err error) error {
	var resolution *ResolutionError
	if errors.As(err, &resolution) {
		return err
	}
	return &ResolutionError{Action: entity.Describe(), Err: err}
}

// NewExecutionError creates an execution error; typed errors raised by nested
// visitations are passed through so that the innermost description is kept.
func NewExecutionError(entity Entity, err error) error {
	var (
		execution     *ExecutionError
		resolution    *ResolutionError
		configuration *ConfigurationError
	)
	if errors.As(err, &execution) || errors.As(err, &resolution) || errors.As(err, &configuration) {
		return err
	}
	return &ExecutionError{Action: entity.Describe(), Err: err}
}
