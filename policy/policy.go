package policy

import (
	"context"
	"path"
	"strings"
)

// Execution modes
const (
	ModeAsk  = "ask"  // ask before every process
	ModeAuto = "auto" // start processes automatically (default)
	ModeDeny = "deny" // never start processes, for example a dry run
)

// AskFunc is invoked when Mode==ask. Returning true approves the process.
// Implementations may mutate the policy, for example switching to ModeAuto
// after the first approval.
type AskFunc func(
	ctx context.Context,
	executable string, // executable base name, for example "echo"
	cmd []string, // full command line
	p *Policy,
) bool

// Policy represents process approval settings of a launch run. A nil *Policy
// starts every process.
type Policy struct {
	Mode      string   // ask / auto / deny (default = auto)
	AllowList []string // executables allowed (empty => all)
	BlockList []string // executables blocked
	Ask       AskFunc  // used only when Mode==ask
}

// Config represents the declarative, serialisable part of a Policy.
type Config struct {
	Mode      string   `json:"mode,omitempty" yaml:"mode,omitempty"`
	AllowList []string `json:"allow,omitempty" yaml:"allow,omitempty"`
	BlockList []string `json:"block,omitempty" yaml:"block,omitempty"`
}

// ToConfig converts a runtime Policy into a persistable Config.
func ToConfig(p *Policy) *Config {
	if p == nil {
		return nil
	}
	return &Config{
		Mode:      p.Mode,
		AllowList: append([]string(nil), p.AllowList...),
		BlockList: append([]string(nil), p.BlockList...),
	}
}

// FromConfig converts a Config to a runtime Policy (without AskFunc).
func FromConfig(c *Config) *Policy {
	if c == nil {
		return nil
	}
	return &Policy{
		Mode:      c.Mode,
		AllowList: append([]string(nil), c.AllowList...),
		BlockList: append([]string(nil), c.BlockList...),
	}
}

// IsAllowed evaluates AllowList and BlockList by case-insensitive comparison
// of the executable base name; BlockList has priority.
func (p *Policy) IsAllowed(executable string) bool {
	if p == nil {
		return true
	}
	normalized := strings.ToLower(path.Base(executable))
	for _, b := range p.BlockList {
		if normalized == strings.ToLower(b) {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if normalized == strings.ToLower(a) {
			return true
		}
	}
	return false
}

// Approve reports whether the command can be started
func (p *Policy) Approve(ctx context.Context, cmd []string) bool {
	if p == nil {
		return true
	}
	if len(cmd) == 0 || !p.IsAllowed(cmd[0]) {
		return false
	}
	switch strings.ToLower(p.Mode) {
	case ModeDeny:
		return false
	case ModeAsk:
		if p.Ask == nil {
			return false
		}
		return p.Ask(ctx, path.Base(cmd[0]), cmd, p)
	}
	return true
}

type ctxKeyT struct{}

var ctxKey ctxKeyT

// WithPolicy embeds policy in ctx.
func WithPolicy(ctx context.Context, p *Policy) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxKey, p)
}

// FromContext extracts the policy, nil when ctx carries none.
func FromContext(ctx context.Context) *Policy {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxKey).(*Policy); ok {
		return v
	}
	return nil
}
