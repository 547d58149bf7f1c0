package launch

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/launch/internal/idgen"
	"github.com/viant/launch/policy"
	"github.com/viant/launch/progress"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/action"
	"github.com/viant/launch/service/action/include"
	"github.com/viant/launch/service/action/process"
	"github.com/viant/launch/service/frontend"
	"github.com/viant/launch/service/frontend/yaml"
	"github.com/viant/launch/service/messaging"
	mmemory "github.com/viant/launch/service/messaging/memory"
	"github.com/viant/launch/tracing"
)

// Service represents a launch service: it owns the frontend, the action
// registry and the runtime of a single launch run.
type Service struct {
	config         *Config
	runtime        *Runtime
	registry       *frontend.Registry
	parser         *yaml.Service
	parsers        map[string]frontend.ParseFunc
	runner         process.Runner
	logger         *log.Logger
	environment    execution.Environment
	queue          messaging.Queue[execution.Event]
	fs             afs.Service
	fsOptions      []storage.Option
	baseURL        string
	configurations map[string]string
	policy         *policy.Policy
	onProgress     func(progress.Progress)
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	if err := s.ensureBaseSetup(); err != nil {
		return err
	}
	s.registry = frontend.NewRegistry()
	action.Register(s.registry)
	process.Register(s.registry, s.runner)
	include.Register(s.registry)
	for tag, fn := range s.parsers {
		s.registry.Register(tag, fn)
	}
	s.parser = yaml.New(s.registry, yaml.WithFs(s.fs), yaml.WithFsOptions(s.fsOptions...))

	for k, v := range s.config.Arguments {
		if _, ok := s.configurations[k]; !ok {
			s.configurations[k] = v
		}
	}
	runID := idgen.New()
	ctx, tracker := progress.WithNewTracker(context.Background(), runID, s.onProgress)
	if s.policy == nil {
		s.policy = policy.FromConfig(s.config.Policy)
	}
	if s.policy != nil {
		ctx = policy.WithPolicy(ctx, s.policy)
	}
	launchContext := execution.NewContext(ctx,
		execution.WithLogger(s.logger),
		execution.WithEnvironment(s.environment),
		execution.WithQueue(s.queue),
		execution.WithLaunchConfigurations(s.configurations))
	s.runtime = newRuntime(runID, launchContext, tracker,
		time.Duration(s.config.Runtime.PollIntervalMs)*time.Millisecond,
		time.Duration(s.config.Runtime.ShutdownTimeoutMs)*time.Millisecond)
	return nil
}

func (s *Service) ensureBaseSetup() error {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if s.config.Tracing.Enabled {
		tracingConfig := s.config.Tracing
		if err := tracing.Init(tracingConfig.Service, tracingConfig.Version, tracingConfig.OutputFile); err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	if s.logger == nil {
		s.logger = log.New(os.Stderr, "[launch] ", log.LstdFlags)
	}
	if s.environment == nil {
		s.environment = execution.OSEnvironment()
	}
	if s.runner == nil {
		s.runner = process.NewGoshRunner(time.Duration(s.config.Process.TimeoutMs) * time.Millisecond)
	}
	if s.queue == nil {
		queueConfig := mmemory.DefaultConfig()
		queueConfig.QueueBuffer = s.config.Queue.BufferSize
		s.queue = mmemory.NewQueue[execution.Event](queueConfig)
	}
	if s.fs == nil {
		s.fs = afs.New()
	}
	return nil
}

// Runtime returns the launch runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// Registry returns the frontend registry
func (s *Service) Registry() *frontend.Registry {
	return s.registry
}

// Parser returns the YAML frontend
func (s *Service) Parser() *yaml.Service {
	return s.parser
}

// DecodeYAML decodes a launch description
func (s *Service) DecodeYAML(data []byte) (*execution.Description, error) {
	return s.parser.DecodeYAML(data)
}

// Load loads a launch description from URL, relative URLs are resolved against the base URL
func (s *Service) Load(ctx context.Context, URL string) (*execution.Description, error) {
	return s.parser.LoadDescription(ctx, s.location(URL))
}

// IncludeDescription schedules the description to be visited by the run loop
func (s *Service) IncludeDescription(description *execution.Description) error {
	return s.runtime.IncludeDescription(description)
}

// IncludeFile schedules the launch file to be visited by the run loop; the
// file is loaded at visitation time so that $(dirname) resolves to its directory.
func (s *Service) IncludeFile(URL string, arguments ...include.Argument) error {
	source := include.NewFileSource(substitution.Literal(s.location(URL)), s.parser)
	var options []include.Option
	for _, argument := range arguments {
		options = append(options, include.WithArgument(argument.Name, argument.Value))
	}
	return s.runtime.IncludeDescription(execution.NewDescription(include.New(source, options...)))
}

// Run runs the launch until all work completes or ctx is cancelled
func (s *Service) Run(ctx context.Context) error {
	return s.runtime.Run(ctx)
}

// Progress returns a snapshot of the launch action counters
func (s *Service) Progress() progress.Progress {
	return s.runtime.Progress()
}

// Shutdown requests launch shutdown, it is safe to call from any goroutine
func (s *Service) Shutdown(reason string, dueToInterrupt bool) error {
	return s.runtime.Shutdown(reason, dueToInterrupt)
}

// Describe returns an indented tree of the launch file entities
func (s *Service) Describe(ctx context.Context, URL string) (string, error) {
	description, err := s.Load(ctx, URL)
	if err != nil {
		return "", err
	}
	builder := &strings.Builder{}
	describeTree(builder, description.Entities(), 0)
	return builder.String(), nil
}

func describeTree(builder *strings.Builder, entities []execution.Entity, depth int) {
	for _, entity := range entities {
		builder.WriteString(strings.Repeat("  ", depth))
		builder.WriteString(entity.Describe())
		builder.WriteString("\n")
		switch actual := entity.(type) {
		case *action.Group:
			describeTree(builder, actual.Actions(), depth+1)
		case *execution.Description:
			describeTree(builder, actual.Entities(), depth+1)
		}
	}
}

func (s *Service) location(URL string) string {
	if s.baseURL == "" || !url.IsRelative(URL) {
		return URL
	}
	return url.Join(s.baseURL, URL)
}

// New creates a launch service
func New(options ...Option) (*Service, error) {
	ret := &Service{
		parsers:        map[string]frontend.ParseFunc{},
		configurations: map[string]string{},
	}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
