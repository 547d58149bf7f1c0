package execution

import (
	"fmt"
	"strings"
)

// Entity represents an element of a launch description.
type Entity interface {
	// Describe returns a human-readable description used in diagnostics
	Describe() string
}

// Visitor is an entity that controls its own visitation, for example a
// description returning its entities.
type Visitor interface {
	Entity
	Visit(ctx *Context) ([]Entity, error)
}

// Action represents an intention to do something, executed when visited.
type Action interface {
	Entity
	// Condition returns the gating condition or nil
	Condition() Condition
	// Execute runs the action; returned entities are visited before the next sibling
	Execute(ctx *Context) ([]Entity, error)
}

// Completer is implemented by actions whose work completes asynchronously.
// A nil future means the action completed synchronously.
type Completer interface {
	Future() *Future
}

// Description is an ordered list of entities; visiting it yields the entities.
type Description struct {
	entities []Entity
}

// Entities returns the description entities
func (d *Description) Entities() []Entity {
	return d.entities
}

// Describe returns description
func (d *Description) Describe() string {
	var names []string
	for _, entity := range d.entities {
		names = append(names, entity.Describe())
	}
	return fmt.Sprintf("Description(%s)", strings.Join(names, ", "))
}

// Visit returns the description entities
func (d *Description) Visit(ctx *Context) ([]Entity, error) {
	return d.entities, nil
}

// NewDescription creates a launch description
func NewDescription(entities ...Entity) *Description {
	return &Description{entities: entities}
}
