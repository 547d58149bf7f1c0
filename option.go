package launch

import (
	"log"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/launch/policy"
	"github.com/viant/launch/progress"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/service/action/process"
	"github.com/viant/launch/service/frontend"
	"github.com/viant/launch/service/messaging"
	"github.com/viant/launch/tracing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option represents launch service option
type Option func(s *Service)

// WithConfig sets the service configuration
func WithConfig(config *Config) Option {
	return func(s *Service) {
		s.config = config
	}
}

// WithLogger sets the logger used by the launch context
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEnvironment sets the environment view, the process environment is used by default
func WithEnvironment(environment execution.Environment) Option {
	return func(s *Service) {
		s.environment = environment
	}
}

// WithRunner sets the process runner used by executable entities
func WithRunner(runner process.Runner) Option {
	return func(s *Service) {
		s.runner = runner
	}
}

// WithQueue sets the event queue
func WithQueue(queue messaging.Queue[execution.Event]) Option {
	return func(s *Service) {
		s.queue = queue
	}
}

// WithFs sets the file system used to load launch files
func WithFs(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithFsOptions sets launch file system options
func WithFsOptions(options ...storage.Option) Option {
	return func(s *Service) {
		s.fsOptions = options
	}
}

// WithBaseURL sets the location relative launch files are resolved against
func WithBaseURL(URL string) Option {
	return func(s *Service) {
		s.baseURL = URL
	}
}

// WithLaunchConfigurations seeds launch configurations, for example command line arguments
func WithLaunchConfigurations(configurations map[string]string) Option {
	return func(s *Service) {
		for k, v := range configurations {
			s.configurations[k] = v
		}
	}
}

// WithPolicy sets the process approval policy, it takes precedence over the configured one
func WithPolicy(p *policy.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithProgressListener sets a callback invoked on every action counter change
func WithProgressListener(fn func(progress.Progress)) Option {
	return func(s *Service) {
		s.onProgress = fn
	}
}

// WithParser registers an additional frontend entity parser
func WithParser(tag string, fn frontend.ParseFunc) Option {
	return func(s *Service) {
		s.parsers[tag] = fn
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile is empty the
// stdout exporter is used; otherwise traces are written to the supplied file path. The first
// successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing using a custom SpanExporter, for example
// OTLP, Jaeger or Zipkin.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
