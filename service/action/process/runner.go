package process

import "context"

// Request represents a command to run
type Request struct {
	Name        string
	Command     string
	Cwd         string
	Env         map[string]string
	Host        string
	Credentials string
	TimeoutMs   int
	// OnStart is called once the process started
	OnStart func(pid int)
}

// Result represents process outcome
type Result struct {
	Stdout string
	Stderr string
	Status int
}

// Runner runs processes; Run blocks until the process exits or ctx is cancelled
type Runner interface {
	Run(ctx context.Context, request *Request) (*Result, error)
}
