package process

import (
	"context"
	"fmt"
	"math"
	"os"
	"path"
	"strings"
	"time"

	"github.com/viant/afs/url"
	"github.com/viant/gosh"
	"github.com/viant/gosh/runner"
	"github.com/viant/gosh/runner/local"
	rssh "github.com/viant/gosh/runner/ssh"
	"github.com/viant/launch/internal/idgen"
	"github.com/viant/scy/cred/secret"
	"golang.org/x/crypto/ssh"
)

// Localhost represents local host URL
const Localhost = "bash://localhost/"

// GoshRunner runs processes in a shell session, locally or over ssh.
// Stderr is redirected to a per run file and read back once the command exits.
type GoshRunner struct {
	defaultTimeout time.Duration
}

// Run runs the request in a dedicated shell session
func (r *GoshRunner) Run(ctx context.Context, request *Request) (*Result, error) {
	service, err := r.session(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	defer service.Close()
	if request.OnStart != nil {
		request.OnStart(service.PID())
	}
	if request.Cwd != "" {
		if _, _, err = service.Run(ctx, fmt.Sprintf("cd %s", request.Cwd)); err != nil {
			return nil, fmt.Errorf("failed to change directory: %w", err)
		}
	}
	timeout := r.timeout(request)
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	errLocation := stderrLocation(request.Host)
	if isLocal(request.Host) {
		defer os.Remove(errLocation)
	}
	started := time.Now()
	stdout, status, err := service.Run(ctx, redirectStderr(request.Command, errLocation), r.runOptions(timeout)...)
	if elapsed := time.Since(started); timeout > 0 && elapsed > timeout && err == nil {
		err = fmt.Errorf("command %v timed out after: %s", request.Command, elapsed)
	}
	if err != nil {
		return &Result{Stderr: err.Error(), Status: -1}, err
	}
	stderr, _, err := service.Run(ctx, fmt.Sprintf("cat %s 2>/dev/null; rm -f %s", errLocation, errLocation))
	if err != nil {
		return &Result{Stdout: stdout, Status: status}, fmt.Errorf("failed to read stderr of %v: %w", request.Command, err)
	}
	return &Result{Stdout: stdout, Stderr: stderr, Status: status}, nil
}

// timeout returns the request timeout, zero means the process runs until it exits or the launch shuts down
func (r *GoshRunner) timeout(request *Request) time.Duration {
	if request.TimeoutMs > 0 {
		return time.Duration(request.TimeoutMs) * time.Millisecond
	}
	return r.defaultTimeout
}

// runOptions returns the gosh read options; gosh falls back to a one minute
// output window when none is given, so an unbounded run passes the largest one
func (r *GoshRunner) runOptions(timeout time.Duration) []runner.Option {
	if timeout > 0 {
		return []runner.Option{runner.WithTimeout(int(timeout.Milliseconds()))}
	}
	return []runner.Option{runner.WithTimeout(math.MaxInt)}
}

func redirectStderr(command, location string) string {
	command = strings.TrimRight(command, "; \t\n")
	return fmt.Sprintf("{ %s; } 2>%s", command, location)
}

func stderrLocation(host string) string {
	dir := "/tmp"
	if isLocal(host) {
		dir = os.TempDir()
	}
	return path.Join(dir, "launch-"+idgen.New()+".stderr")
}

func isLocal(host string) bool {
	return host == "" || url.Host(host) == "localhost"
}

func (r *GoshRunner) session(ctx context.Context, request *Request) (*gosh.Service, error) {
	host := request.Host
	if host == "" {
		host = Localhost
	}
	var options []runner.Option
	if len(request.Env) > 0 {
		options = append(options, runner.WithEnvironment(request.Env))
	}
	if isLocal(host) {
		return gosh.New(ctx, local.New(options...))
	}
	config, err := r.sshConfig(ctx, request.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to get SSH config: %w", err)
	}
	sshHost := url.Host(host)
	if !strings.Contains(sshHost, ":") {
		sshHost += ":22"
	}
	return gosh.New(ctx, rssh.New(sshHost, config, options...))
}

func (r *GoshRunner) sshConfig(ctx context.Context, credentials string) (*ssh.ClientConfig, error) {
	if credentials == "" {
		credentials = "localhost"
	}
	generic, err := secret.New().GetCredentials(ctx, credentials)
	if err != nil {
		return nil, err
	}
	return generic.SSH.Config(ctx)
}

// NewGoshRunner creates gosh runner, zero timeout leaves processes running until they exit or the launch shuts down
func NewGoshRunner(defaultTimeout time.Duration) *GoshRunner {
	return &GoshRunner{defaultTimeout: defaultTimeout}
}
