package process

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/viant/launch/internal/idgen"
	"github.com/viant/launch/model/event"
	"github.com/viant/launch/policy"
	"github.com/viant/launch/runtime/execution"
	"github.com/viant/launch/runtime/substitution"
	"github.com/viant/launch/service/action"
	"github.com/viant/launch/service/handler"
)

// ExecuteProcess runs a command asynchronously. It emits ProcessStarted,
// ProcessStdout, ProcessStderr and ProcessExited events, visits its on exit
// actions once the process exits and is cancelled on shutdown.
type ExecuteProcess struct {
	action.Base
	Cmd         execution.Substitutions
	Name        execution.Substitutions
	Cwd         execution.Substitutions
	Env         map[string]execution.Substitutions
	Host        string
	Credentials string
	TimeoutMs   int
	OnExit      []execution.Entity
	runner      Runner
	future      *execution.Future
}

func (p *ExecuteProcess) Describe() string {
	return fmt.Sprintf("ExecuteProcess(%s)", substitution.Describe(p.Cmd))
}

// Future returns process completion future
func (p *ExecuteProcess) Future() *execution.Future {
	return p.future
}

func (p *ExecuteProcess) Execute(ctx *execution.Context) ([]execution.Entity, error) {
	p.future = nil
	process, err := p.resolve(ctx)
	if err != nil {
		return nil, execution.NewResolutionError(p, err)
	}
	if ctx.IsShutdown() {
		ctx.Logger().Printf("skipping %v: launch is shutting down", process.Name)
		return nil, nil
	}
	if !policy.FromContext(ctx).Approve(ctx, process.Cmd) {
		ctx.Logger().Printf("skipping %v: not approved by policy", process.Name)
		return nil, nil
	}
	future := execution.NewFuture()
	p.future = future
	ctx.RegisterPending(future)

	runCtx, cancel := context.WithCancel(context.Background())
	shutdown := handler.OnShutdown(func(_ *event.Shutdown, _ *execution.Context) ([]execution.Entity, error) {
		cancel()
		return nil, nil
	}, handler.WithHandleOnce(true), handler.WithDescription("OnShutdown("+process.Name+")"))
	ctx.RegisterGlobalEventHandler(shutdown)
	ctx.RegisterGlobalEventHandler(handler.OnProcessExit(p, func(exited *event.ProcessExited, ctx *execution.Context) ([]execution.Entity, error) {
		ctx.UnregisterEventHandler(shutdown)
		return p.OnExit, nil
	}, handler.WithHandleOnce(true)))

	request := &Request{
		Name:        process.Name,
		Command:     strings.Join(process.Cmd, " "),
		Cwd:         process.Cwd,
		Env:         process.Env,
		Host:        p.Host,
		Credentials: p.Credentials,
		TimeoutMs:   p.TimeoutMs,
	}
	go p.run(ctx, runCtx, cancel, request, process, future)
	return nil, nil
}

func (p *ExecuteProcess) run(ctx *execution.Context, runCtx context.Context, cancel context.CancelFunc, request *Request, process event.Process, future *execution.Future) {
	defer cancel()
	emit := func(evt execution.Event) {
		if err := ctx.EmitEvent(evt); err != nil {
			ctx.Logger().Printf("failed to emit %v for %v: %v", evt.Name(), process.Name, err)
		}
	}
	request.OnStart = func(pid int) {
		process.Pid = pid
		emit(event.NewProcessStarted(process))
	}
	result, err := p.runner.Run(runCtx, request)
	if result == nil {
		result = &Result{Status: -1}
		if err != nil {
			result.Stderr = err.Error()
		}
	}
	if result.Stdout != "" {
		emit(event.NewProcessStdout(process, []byte(result.Stdout)))
	}
	if result.Stderr != "" {
		emit(event.NewProcessStderr(process, []byte(result.Stderr)))
	}
	emit(event.NewProcessExited(process, result.Status))
	if errors.Is(runCtx.Err(), context.Canceled) {
		err = execution.ErrCancelled
	}
	if err != nil {
		ctx.Logger().Printf("process %v failed: %v", process.Name, err)
	}
	future.Complete(err)
}

func (p *ExecuteProcess) resolve(ctx *execution.Context) (event.Process, error) {
	ret := event.Process{Action: p}
	cmd, err := substitution.Perform(ctx, p.Cmd)
	if err != nil {
		return ret, err
	}
	ret.Cmd = strings.Fields(cmd)
	if len(ret.Cmd) == 0 {
		return ret, fmt.Errorf("empty command")
	}
	if len(p.Name) > 0 {
		if ret.Name, err = substitution.Perform(ctx, p.Name); err != nil {
			return ret, err
		}
	}
	if ret.Name == "" {
		ret.Name = path.Base(ret.Cmd[0])
	}
	ret.Name += "-" + idgen.Short()
	if len(p.Cwd) > 0 {
		if ret.Cwd, err = substitution.Perform(ctx, p.Cwd); err != nil {
			return ret, err
		}
	}
	if len(p.Env) > 0 {
		ret.Env = map[string]string{}
		names := make([]string, 0, len(p.Env))
		for name := range p.Env {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if ret.Env[name], err = substitution.Perform(ctx, p.Env[name]); err != nil {
				return ret, err
			}
		}
	}
	return ret, nil
}

// Option represents process option
type Option func(p *ExecuteProcess)

// WithName sets process name, a unique suffix is always appended
func WithName(name execution.Substitutions) Option {
	return func(p *ExecuteProcess) {
		p.Name = name
	}
}

// WithCwd sets working directory
func WithCwd(cwd execution.Substitutions) Option {
	return func(p *ExecuteProcess) {
		p.Cwd = cwd
	}
}

// WithEnv sets process environment variable
func WithEnv(name string, value execution.Substitutions) Option {
	return func(p *ExecuteProcess) {
		if p.Env == nil {
			p.Env = map[string]execution.Substitutions{}
		}
		p.Env[name] = value
	}
}

// WithHost sets remote host URL and credentials reference
func WithHost(host, credentials string) Option {
	return func(p *ExecuteProcess) {
		p.Host = host
		p.Credentials = credentials
	}
}

// WithTimeoutMs sets process timeout
func WithTimeoutMs(timeoutMs int) Option {
	return func(p *ExecuteProcess) {
		p.TimeoutMs = timeoutMs
	}
}

// WithOnExit sets actions visited once the process exits
func WithOnExit(entities ...execution.Entity) Option {
	return func(p *ExecuteProcess) {
		p.OnExit = entities
	}
}

// WithRunner sets process runner
func WithRunner(runner Runner) Option {
	return func(p *ExecuteProcess) {
		p.runner = runner
	}
}

// WithCondition sets process condition
func WithCondition(cond execution.Condition) Option {
	return func(p *ExecuteProcess) {
		p.Base = action.NewBase(action.WithCondition(cond))
	}
}

// New creates process action
func New(cmd execution.Substitutions, options ...Option) *ExecuteProcess {
	ret := &ExecuteProcess{Cmd: cmd}
	for _, opt := range options {
		opt(ret)
	}
	if ret.runner == nil {
		ret.runner = defaultRunner
	}
	return ret
}

var defaultRunner Runner = NewGoshRunner(0)
