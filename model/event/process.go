package event

import (
	"github.com/viant/launch/runtime/execution"
)

// Process event names
const (
	ProcessStartedName = "launch.events.process.ProcessStarted"
	ProcessExitedName  = "launch.events.process.ProcessExited"
	ProcessStdoutName  = "launch.events.process.ProcessStdout"
	ProcessStderrName  = "launch.events.process.ProcessStderr"
)

// Standard file descriptors
const (
	Stdout = 1
	Stderr = 2
)

// Process describes the running process an event refers to
type Process struct {
	Action execution.Action
	Name   string
	Cmd    []string
	Cwd    string
	Env    map[string]string
	Pid    int
}

// RunningProcess is the common part of process events
type RunningProcess struct {
	process Process
}

// Action returns the action that started the process
func (r *RunningProcess) Action() execution.Action {
	return r.process.Action
}

// ProcessName returns the unique process name
func (r *RunningProcess) ProcessName() string {
	return r.process.Name
}

// Cmd returns a copy of the process command line
func (r *RunningProcess) Cmd() []string {
	return append([]string(nil), r.process.Cmd...)
}

// Cwd returns the process working directory
func (r *RunningProcess) Cwd() string {
	return r.process.Cwd
}

// Env returns a copy of the process environment
func (r *RunningProcess) Env() map[string]string {
	if r.process.Env == nil {
		return nil
	}
	ret := make(map[string]string, len(r.process.Env))
	for k, v := range r.process.Env {
		ret[k] = v
	}
	return ret
}

// Pid returns the process id, zero when unknown
func (r *RunningProcess) Pid() int {
	return r.process.Pid
}

// ProcessStarted is emitted when a process starts
type ProcessStarted struct {
	RunningProcess
}

func (e *ProcessStarted) Name() string {
	return ProcessStartedName
}

// NewProcessStarted creates process started event
func NewProcessStarted(process Process) *ProcessStarted {
	return &ProcessStarted{RunningProcess{process: process}}
}

// ProcessExited is emitted when a process exits
type ProcessExited struct {
	RunningProcess
	returnCode int
}

func (e *ProcessExited) Name() string {
	return ProcessExitedName
}

// ReturnCode returns process exit code
func (e *ProcessExited) ReturnCode() int {
	return e.returnCode
}

// NewProcessExited creates process exited event
func NewProcessExited(process Process, returnCode int) *ProcessExited {
	return &ProcessExited{RunningProcess: RunningProcess{process: process}, returnCode: returnCode}
}

// ProcessIO carries process output
type ProcessIO struct {
	RunningProcess
	text []byte
	fd   int
}

// Text returns a copy of the output
func (e *ProcessIO) Text() []byte {
	return append([]byte(nil), e.text...)
}

// FD returns the file descriptor the output was written to
func (e *ProcessIO) FD() int {
	return e.fd
}

// IO is implemented by process output events
type IO interface {
	execution.Event
	Text() []byte
	FD() int
	ProcessName() string
}

// ProcessStdout carries process standard output, fd is always 1
type ProcessStdout struct {
	ProcessIO
}

func (e *ProcessStdout) Name() string {
	return ProcessStdoutName
}

// NewProcessStdout creates stdout event
func NewProcessStdout(process Process, text []byte) *ProcessStdout {
	return &ProcessStdout{ProcessIO{RunningProcess: RunningProcess{process: process}, text: text, fd: Stdout}}
}

// ProcessStderr carries process standard error, fd is always 2
type ProcessStderr struct {
	ProcessIO
}

func (e *ProcessStderr) Name() string {
	return ProcessStderrName
}

// NewProcessStderr creates stderr event
func NewProcessStderr(process Process, text []byte) *ProcessStderr {
	return &ProcessStderr{ProcessIO{RunningProcess: RunningProcess{process: process}, text: text, fd: Stderr}}
}
