package execution

import (
	"os"
	"strings"
)

// Environment represents the ambient process environment. Changes are process
// wide and are not rolled back automatically.
type Environment interface {
	Get(name string) (string, bool)
	Set(name, value string) error
	Unset(name string) error
	Environ() map[string]string
}

type osEnvironment struct{}

func (e osEnvironment) Get(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (e osEnvironment) Set(name, value string) error {
	return os.Setenv(name, value)
}

func (e osEnvironment) Unset(name string) error {
	return os.Unsetenv(name)
}

func (e osEnvironment) Environ() map[string]string {
	ret := map[string]string{}
	for _, pair := range os.Environ() {
		if idx := strings.Index(pair, "="); idx > 0 {
			ret[pair[:idx]] = pair[idx+1:]
		}
	}
	return ret
}

// OSEnvironment returns the process environment
func OSEnvironment() Environment {
	return osEnvironment{}
}

// restore replaces the environment content with the snapshot
func restore(env Environment, snapshot map[string]string) error {
	for name := range env.Environ() {
		if _, ok := snapshot[name]; !ok {
			if err := env.Unset(name); err != nil {
				return err
			}
		}
	}
	for name, value := range snapshot {
		if current, ok := env.Get(name); ok && current == value {
			continue
		}
		if err := env.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
