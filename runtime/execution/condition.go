package execution

// Condition gates action execution; it is evaluated at visitation time
type Condition interface {
	Evaluate(ctx *Context) (bool, error)
	Describe() string
}

// Substitution represents text resolved against the context at run time
type Substitution interface {
	Perform(ctx *Context) (string, error)
	Describe() string
}

// Substitutions represents a sequence of substitutions concatenated on resolution
type Substitutions []Substitution
