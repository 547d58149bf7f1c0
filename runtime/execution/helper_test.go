package execution

import "context"

type testEvent struct {
	name string
}

func (e *testEvent) Name() string {
	return e.name
}

type testCondition struct {
	value bool
	err   error
}

func (c *testCondition) Evaluate(ctx *Context) (bool, error) {
	return c.value, c.err
}

func (c *testCondition) Describe() string {
	return "testCondition"
}

// testAction records its executions into a shared trace
type testAction struct {
	name      string
	condition Condition
	entities  []Entity
	err       error
	future    *Future
	trace     *[]string
}

func (a *testAction) Describe() string {
	return a.name
}

func (a *testAction) Condition() Condition {
	return a.condition
}

func (a *testAction) Future() *Future {
	return a.future
}

func (a *testAction) Execute(ctx *Context) ([]Entity, error) {
	if a.trace != nil {
		*a.trace = append(*a.trace, a.name)
	}
	return a.entities, a.err
}

type testHandler struct {
	name      string
	eventName string
	once      bool
	entities  []Entity
	err       error
	handled   *[]string
	onHandle  func(ctx *Context)
}

func (h *testHandler) Matches(event Event) bool {
	return event.Name() == h.eventName
}

func (h *testHandler) Handle(event Event, ctx *Context) ([]Entity, error) {
	if h.handled != nil {
		*h.handled = append(*h.handled, h.name)
	}
	if h.onHandle != nil {
		h.onHandle(ctx)
	}
	return h.entities, h.err
}

func (h *testHandler) HandleOnce() bool {
	return h.once
}

func (h *testHandler) Describe() string {
	return h.name
}

type mapEnvironment map[string]string

func (m mapEnvironment) Get(name string) (string, bool) {
	value, ok := m[name]
	return value, ok
}

func (m mapEnvironment) Set(name, value string) error {
	m[name] = value
	return nil
}

func (m mapEnvironment) Unset(name string) error {
	delete(m, name)
	return nil
}

func (m mapEnvironment) Environ() map[string]string {
	ret := map[string]string{}
	for k, v := range m {
		ret[k] = v
	}
	return ret
}

func newTestContext(options ...Option) *Context {
	options = append([]Option{WithEnvironment(mapEnvironment{})}, options...)
	return NewContext(context.Background(), options...)
}

// completions registers an ExecutionComplete recorder
func completions(ctx *Context) *[]string {
	var ret []string
	ctx.RegisterGlobalEventHandler(&completionRecorder{names: &ret})
	return &ret
}

type completionRecorder struct {
	names *[]string
}

func (r *completionRecorder) Matches(event Event) bool {
	_, ok := event.(*ExecutionComplete)
	return ok
}

func (r *completionRecorder) Handle(event Event, ctx *Context) ([]Entity, error) {
	*r.names = append(*r.names, event.(*ExecutionComplete).Action().Describe())
	return nil, nil
}

func (r *completionRecorder) HandleOnce() bool {
	return false
}

func (r *completionRecorder) Describe() string {
	return "completionRecorder"
}
