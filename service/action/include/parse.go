package include

import (
	"fmt"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/service/action"
	"github.com/viant/launch/service/frontend"
)

// Register registers the include tag
func Register(registry *frontend.Registry) {
	registry.Register("include", Parse)
}

// Parse parses include: {file, arg: [{name, value}]}
func Parse(entity frontend.Entity, parser frontend.Parser) (execution.Action, error) {
	base, err := action.ParseBase(entity, parser)
	if err != nil {
		return nil, err
	}
	location, ok := entity.Text("file")
	if !ok {
		return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("attribute 'file' is required")}
	}
	path, err := parser.ParseSubstitution(location)
	if err != nil {
		return nil, err
	}
	ret := New(NewFileSource(path, parser))
	ret.Base = base
	arguments, _ := entity.Entities("arg")
	for _, argument := range arguments {
		name, ok := argument.Text("name")
		if !ok {
			return nil, &execution.ConfigurationError{Action: entity.TypeName(), Err: fmt.Errorf("argument name is required")}
		}
		text, _ := argument.Text("value")
		value, err := parser.ParseSubstitution(text)
		if err != nil {
			return nil, err
		}
		ret.arguments = append(ret.arguments, Argument{Name: name, Value: value})
	}
	return ret, nil
}
