package execution

import (
	"log"
	"sort"

	"github.com/viant/launch/service/messaging"
)

type Option func(c *Context)

// WithEnvironment sets the environment view
func WithEnvironment(environment Environment) Option {
	return func(c *Context) {
		c.environment = environment
	}
}

// WithQueue sets the event queue
func WithQueue(queue messaging.Queue[Event]) Option {
	return func(c *Context) {
		c.queue = queue
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *Context) {
		c.logger = logger
	}
}

// WithLaunchConfigurations seeds the base frame
func WithLaunchConfigurations(configurations map[string]string) Option {
	return func(c *Context) {
		names := make([]string, 0, len(configurations))
		for name := range configurations {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.frames[0].configurations.Set(name, configurations[name])
		}
	}
}
