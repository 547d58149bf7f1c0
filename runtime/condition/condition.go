package condition

import (
	"fmt"
	"strings"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
)

// If holds when the resolved expression is truthy: true or 1, case insensitive.
// Any text other than true, 1, false or 0 fails evaluation.
type If struct {
	Expression execution.Substitutions
}

func (c *If) Evaluate(ctx *execution.Context) (bool, error) {
	return evaluate(ctx, c.Expression)
}

func (c *If) Describe() string {
	return fmt.Sprintf("If(%s)", substitution.Describe(c.Expression))
}

// Unless is the complement of If
type Unless struct {
	Expression execution.Substitutions
}

func (c *Unless) Evaluate(ctx *execution.Context) (bool, error) {
	ok, err := evaluate(ctx, c.Expression)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c *Unless) Describe() string {
	return fmt.Sprintf("Unless(%s)", substitution.Describe(c.Expression))
}

// Equals holds when both sides resolve to the same text
type Equals struct {
	Left  execution.Substitutions
	Right execution.Substitutions
}

func (c *Equals) Evaluate(ctx *execution.Context) (bool, error) {
	left, err := substitution.Perform(ctx, c.Left)
	if err != nil {
		return false, err
	}
	right, err := substitution.Perform(ctx, c.Right)
	if err != nil {
		return false, err
	}
	return left == right, nil
}

func (c *Equals) Describe() string {
	return fmt.Sprintf("Equals(%s, %s)", substitution.Describe(c.Left), substitution.Describe(c.Right))
}

// Predicate wraps a function
type Predicate struct {
	Name string
	Fn   func(ctx *execution.Context) (bool, error)
}

func (c *Predicate) Evaluate(ctx *execution.Context) (bool, error) {
	return c.Fn(ctx)
}

func (c *Predicate) Describe() string {
	if c.Name == "" {
		return "Predicate()"
	}
	return fmt.Sprintf("Predicate(%s)", c.Name)
}

// NewIf creates an If condition
func NewIf(expression execution.Substitutions) *If {
	return &If{Expression: expression}
}

// NewUnless creates an Unless condition
func NewUnless(expression execution.Substitutions) *Unless {
	return &Unless{Expression: expression}
}

// NewEquals creates an Equals condition
func NewEquals(left, right execution.Substitutions) *Equals {
	return &Equals{Left: left, Right: right}
}

// NewPredicate creates a Predicate condition
func NewPredicate(name string, fn func(ctx *execution.Context) (bool, error)) *Predicate {
	return &Predicate{Name: name, Fn: fn}
}

func evaluate(ctx *execution.Context, expression execution.Substitutions) (bool, error) {
	text, err := substitution.Perform(ctx, expression)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("%w: '%s', expected one of true, 1, false, 0", execution.ErrInvalidConditionExpression, text)
}
