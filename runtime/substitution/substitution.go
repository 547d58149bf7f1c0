package substitution

import (
	"fmt"
	"strings"

	"github.com/viant/launch/runtime/execution"
)

// CurrentLaunchFileDirectory is the local holding the directory of the launch file being visited
const CurrentLaunchFileDirectory = "current_launch_file_directory"

// Perform resolves substitutions and concatenates the results
func Perform(ctx *execution.Context, substitutions execution.Substitutions) (string, error) {
	if len(substitutions) == 1 {
		return substitutions[0].Perform(ctx)
	}
	var builder strings.Builder
	for _, sub := range substitutions {
		text, err := sub.Perform(ctx)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

// Describe describes substitutions
func Describe(substitutions execution.Substitutions) string {
	var parts []string
	for _, sub := range substitutions {
		parts = append(parts, sub.Describe())
	}
	return strings.Join(parts, " + ")
}

// Text represents a literal
type Text string

func (t Text) Perform(ctx *execution.Context) (string, error) {
	return string(t), nil
}

func (t Text) Describe() string {
	return fmt.Sprintf("'%s'", string(t))
}

// Literal returns substitutions of a single literal
func Literal(text string) execution.Substitutions {
	return execution.Substitutions{Text(text)}
}

// LaunchConfiguration resolves a launch configuration value
type LaunchConfiguration struct {
	Name    execution.Substitutions
	Default execution.Substitutions
	// HasDefault distinguishes an empty default from no default
	HasDefault bool
}

func (l *LaunchConfiguration) Perform(ctx *execution.Context) (string, error) {
	name, err := Perform(ctx, l.Name)
	if err != nil {
		return "", err
	}
	if value, ok := ctx.LaunchConfiguration(name); ok {
		return value, nil
	}
	if l.HasDefault {
		return Perform(ctx, l.Default)
	}
	return "", fmt.Errorf("%w: '%s'", execution.ErrUndefinedConfiguration, name)
}

func (l *LaunchConfiguration) Describe() string {
	return fmt.Sprintf("LaunchConfig(%s)", Describe(l.Name))
}

// EnvironmentVariable resolves an environment variable, unset variables resolve to the default
type EnvironmentVariable struct {
	Name    execution.Substitutions
	Default execution.Substitutions
}

func (e *EnvironmentVariable) Perform(ctx *execution.Context) (string, error) {
	name, err := Perform(ctx, e.Name)
	if err != nil {
		return "", err
	}
	if value, ok := ctx.Environment().Get(name); ok {
		return value, nil
	}
	return Perform(ctx, e.Default)
}

func (e *EnvironmentVariable) Describe() string {
	return fmt.Sprintf("EnvVar(%s)", Describe(e.Name))
}

// ThisLaunchFileDir resolves the directory of the launch file being visited
type ThisLaunchFileDir struct{}

func (d *ThisLaunchFileDir) Perform(ctx *execution.Context) (string, error) {
	value, ok := ctx.Local(CurrentLaunchFileDirectory)
	if !ok {
		return "", fmt.Errorf("ThisLaunchFileDir used outside of a launch file")
	}
	return fmt.Sprintf("%v", value), nil
}

func (d *ThisLaunchFileDir) Describe() string {
	return "ThisLaunchFileDir()"
}
