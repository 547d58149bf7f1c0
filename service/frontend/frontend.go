package frontend

import (
	"context"

	"github.com/viant/launch/runtime/execution"
)

// Entity represents a parsed launch file element, for example
//
//	- executable: {cmd: "echo hi", if: $(var talk)}
//
// is an entity of type "executable" with cmd and if attributes.
type Entity interface {
	// TypeName returns entity tag
	TypeName() string
	// Text returns scalar attribute text
	Text(name string) (string, bool)
	// Entities returns nested entities of a list attribute, for example children
	Entities(name string) ([]Entity, bool)
	// Pairs visits scalar entries of a mapping attribute in declaration order, an absent attribute is not visited
	Pairs(name string, visit func(key, text string) error) error
	// Has returns true if attribute is defined
	Has(name string) bool
	// Decode converts entity attributes into the target struct pointer
	Decode(target interface{}) error
}

// Parser builds actions and substitutions from entities
type Parser interface {
	ParseAction(entity Entity) (execution.Action, error)
	ParseActions(entities []Entity) ([]execution.Entity, error)
	ParseSubstitution(text string) (execution.Substitutions, error)
	LoadDescription(ctx context.Context, URL string) (*execution.Description, error)
}

// ParseFunc builds an action from an entity
type ParseFunc func(entity Entity, parser Parser) (execution.Action, error)
