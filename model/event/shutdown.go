package event

import "fmt"

// ShutdownName event name
const ShutdownName = "launch.events.Shutdown"

// DefaultShutdownReason is used when no reason was given
const DefaultShutdownReason = "reason not given"

// Shutdown requests the launch run to stop
type Shutdown struct {
	reason         string
	dueToInterrupt bool
}

// Name returns event name
func (s *Shutdown) Name() string {
	return ShutdownName
}

// Reason returns shutdown reason
func (s *Shutdown) Reason() string {
	return s.reason
}

// DueToInterrupt returns true if shutdown was caused by an interrupt signal
func (s *Shutdown) DueToInterrupt() bool {
	return s.dueToInterrupt
}

func (s *Shutdown) String() string {
	return fmt.Sprintf("Shutdown(reason: %v, due to interrupt: %v)", s.reason, s.dueToInterrupt)
}

// ShutdownOption represents shutdown option
type ShutdownOption func(s *Shutdown)

// WithReason sets shutdown reason
func WithReason(reason string) ShutdownOption {
	return func(s *Shutdown) {
		if reason != "" {
			s.reason = reason
		}
	}
}

// WithDueToInterrupt marks shutdown as caused by an interrupt
func WithDueToInterrupt(flag bool) ShutdownOption {
	return func(s *Shutdown) {
		s.dueToInterrupt = flag
	}
}

// NewShutdown creates a shutdown event
func NewShutdown(options ...ShutdownOption) *Shutdown {
	ret := &Shutdown{reason: DefaultShutdownReason}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}
