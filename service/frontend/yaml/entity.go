package yaml

import (
	"github.com/viant/launch/internal/yml"
	"github.com/viant/launch/service/frontend"
	"github.com/viant/structology/conv"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Entity represents a YAML launch file element
type Entity struct {
	tag       string
	node      *yml.Node
	converter *conv.Converter
}

func (e *Entity) TypeName() string {
	return e.tag
}

// Line returns entity line in the launch file
func (e *Entity) Line() int {
	if e.node == nil {
		return 0
	}
	return e.node.Line
}

func (e *Entity) Text(name string) (string, bool) {
	value := e.node.Lookup(name)
	if value.IsNull() {
		return "", false
	}
	if value.Kind == yaml.ScalarNode {
		return value.Value, true
	}
	return toolbox.AsString(value.Interface()), true
}

func (e *Entity) Entities(name string) ([]frontend.Entity, bool) {
	value := e.node.Lookup(name)
	if value.IsNull() || value.Kind != yaml.SequenceNode {
		return nil, false
	}
	var ret []frontend.Entity
	_ = value.Items(func(index int, item *yml.Node) error {
		ret = append(ret, newEntity(name, item, e.converter))
		return nil
	})
	return ret, true
}

func (e *Entity) Pairs(name string, visit func(key, text string) error) error {
	value := e.node.Lookup(name)
	if value.IsNull() {
		return nil
	}
	return value.Pairs(func(key string, node *yml.Node) error {
		if node.Kind == yaml.ScalarNode {
			return visit(key, node.Value)
		}
		return visit(key, toolbox.AsString(node.Interface()))
	})
}

func (e *Entity) Has(name string) bool {
	return e.node.Lookup(name) != nil
}

// Decode converts entity attributes into target using json field names
func (e *Entity) Decode(target interface{}) error {
	if e.node.IsNull() {
		return nil
	}
	return e.converter.Convert(e.node.Interface(), target)
}

// newEntity creates an entity from a list item: a single key mapping such as
// {group: {...}} is a tagged entity, any other item is an untagged entity
// named after the list attribute, for example include arg items.
func newEntity(listName string, item *yml.Node, converter *conv.Converter) *Entity {
	if item.Kind == yaml.MappingNode && len(item.Content) == 2 {
		value := (*yml.Node)(item.Content[1])
		if value.IsNull() || value.Kind == yaml.MappingNode {
			return &Entity{tag: item.Content[0].Value, node: value, converter: converter}
		}
	}
	return &Entity{tag: listName, node: item, converter: converter}
}
