package substitution

import (
	"fmt"
	"sync"

	"github.com/viant/launch/runtime/execution"
	"github.com/viant/parsly"
)

// Constructor creates a substitution from parsed arguments
type Constructor func(args []execution.Substitutions) (execution.Substitution, error)

var (
	registry = map[string]Constructor{
		"var":     newLaunchConfiguration,
		"env":     newEnvironmentVariable,
		"dirname": newThisLaunchFileDir,
	}
	registryMux sync.RWMutex
)

// Register registers a substitution constructor under the expression name
func Register(name string, constructor Constructor) {
	registryMux.Lock()
	defer registryMux.Unlock()
	registry[name] = constructor
}

func lookup(name string) (Constructor, bool) {
	registryMux.RLock()
	defer registryMux.RUnlock()
	constructor, ok := registry[name]
	return constructor, ok
}

// Parse parses text with embedded $(name arg ...) expressions, for example
// "$(env HOME)/$(var robot r1)". Arguments may nest other expressions.
func Parse(expression string) (execution.Substitutions, error) {
	cursor := parsly.NewCursor("", []byte(expression), 0)
	var result execution.Substitutions
	for cursor.Pos < cursor.InputSize {
		matched := cursor.MatchAny(openToken, textToken)
		switch matched.Code {
		case openCode:
			sub, err := parseSubstitution(cursor)
			if err != nil {
				return nil, err
			}
			result = append(result, sub)
		case textCode:
			result = append(result, Text(matched.Text(cursor)))
		default:
			return nil, cursor.NewError(openToken, textToken)
		}
	}
	if len(result) == 0 {
		result = Literal("")
	}
	return result, nil
}

// parseSubstitution parses an expression after its "$(" opening
func parseSubstitution(cursor *parsly.Cursor) (execution.Substitution, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, identifierToken)
	if matched.Code != identifierCode {
		return nil, cursor.NewError(identifierToken)
	}
	name := matched.Text(cursor)
	var args []execution.Substitutions
	var current execution.Substitutions
	for {
		matched = cursor.MatchAny(whitespaceToken, closeToken, openToken, argumentToken)
		switch matched.Code {
		case whitespaceCode:
			if len(current) > 0 {
				args = append(args, current)
				current = nil
			}
		case closeCode:
			if len(current) > 0 {
				args = append(args, current)
			}
			constructor, ok := lookup(name)
			if !ok {
				return nil, fmt.Errorf("unknown substitution '%s'", name)
			}
			return constructor(args)
		case openCode:
			nested, err := parseSubstitution(cursor)
			if err != nil {
				return nil, err
			}
			current = append(current, nested)
		case argumentCode:
			current = append(current, Text(unquote(matched.Text(cursor))))
		default:
			return nil, cursor.NewError(closeToken)
		}
	}
}

func unquote(text string) string {
	if len(text) >= 2 && (text[0] == '\'' || text[0] == '"') && text[len(text)-1] == text[0] {
		return text[1 : len(text)-1]
	}
	return text
}

func newLaunchConfiguration(args []execution.Substitutions) (execution.Substitution, error) {
	switch len(args) {
	case 1:
		return &LaunchConfiguration{Name: args[0]}, nil
	case 2:
		return &LaunchConfiguration{Name: args[0], Default: args[1], HasDefault: true}, nil
	}
	return nil, fmt.Errorf("var substitution expects 1 or 2 arguments, but had %d", len(args))
}

func newEnvironmentVariable(args []execution.Substitutions) (execution.Substitution, error) {
	switch len(args) {
	case 1:
		return &EnvironmentVariable{Name: args[0]}, nil
	case 2:
		return &EnvironmentVariable{Name: args[0], Default: args[1]}, nil
	}
	return nil, fmt.Errorf("env substitution expects 1 or 2 arguments, but had %d", len(args))
}

func newThisLaunchFileDir(args []execution.Substitutions) (execution.Substitution, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("dirname substitution doesn't expect arguments")
	}
	return &ThisLaunchFileDir{}, nil
}
