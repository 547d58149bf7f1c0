package event

import "github.com/viant/launch/runtime/execution"

// IncludeLaunchDescriptionName event name
const IncludeLaunchDescriptionName = "launch.events.IncludeLaunchDescription"

// IncludeLaunchDescription asks the run to visit a description
type IncludeLaunchDescription struct {
	description *execution.Description
}

func (e *IncludeLaunchDescription) Name() string {
	return IncludeLaunchDescriptionName
}

// Description returns the description to include
func (e *IncludeLaunchDescription) Description() *execution.Description {
	return e.description
}

// NewIncludeLaunchDescription creates include event
func NewIncludeLaunchDescription(description *execution.Description) *IncludeLaunchDescription {
	return &IncludeLaunchDescription{description: description}
}
