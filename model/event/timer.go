package event

import "github.com/viant/launch/runtime/execution"

// TimerExpiredName event name
const TimerExpiredName = "launch.events.TimerExpired"

// TimerExpired is emitted by a timer action once its period elapsed
type TimerExpired struct {
	timer execution.Action
}

func (e *TimerExpired) Name() string {
	return TimerExpiredName
}

// Timer returns the expired timer action
func (e *TimerExpired) Timer() execution.Action {
	return e.timer
}

// NewTimerExpired creates timer expired event
func NewTimerExpired(timer execution.Action) *TimerExpired {
	return &TimerExpired{timer: timer}
}
