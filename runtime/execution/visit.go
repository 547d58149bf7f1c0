package execution

import (
	"errors"
	"fmt"

	"github.com/viant/launch/progress"
	"github.com/viant/launch/tracing"
)

// Visit visits an entity: visitors control their own visitation, actions are
// gated by their condition and executed.
func Visit(ctx *Context, entity Entity) ([]Entity, error) {
	switch actual := entity.(type) {
	case Visitor:
		return actual.Visit(ctx)
	case Action:
		return VisitAction(ctx, actual)
	case nil:
		return nil, fmt.Errorf("nil entity")
	}
	return nil, fmt.Errorf("entity %v is neither an action nor a visitor", entity.Describe())
}

// VisitAction evaluates the action condition and, when it holds, executes the
// action. Completion is reported exactly once per matched visitation whether
// Execute succeeds or fails: immediately for synchronous actions, or as the
// continuation of the action future.
func VisitAction(ctx *Context, action Action) (entities []Entity, err error) {
	if condition := action.Condition(); condition != nil {
		matched, cErr := condition.Evaluate(ctx)
		if cErr != nil {
			return nil, NewResolutionError(action, cErr)
		}
		if !matched {
			progress.UpdateCtx(ctx, progress.Delta{Skipped: 1})
			return nil, nil
		}
	}
	progress.UpdateCtx(ctx, progress.Delta{Visited: 1})
	_, span := tracing.StartSpan(ctx, "visit", "INTERNAL")
	span.WithAttributes(map[string]string{"action": action.Describe()})
	defer func() {
		if cErr := complete(ctx, action, err); cErr != nil && err == nil {
			err = cErr
		}
		tracing.EndSpan(span, err)
	}()
	if entities, err = action.Execute(ctx); err != nil {
		return nil, NewExecutionError(action, err)
	}
	return entities, nil
}

func complete(ctx *Context, action Action, execErr error) error {
	event := NewExecutionComplete(action)
	listened := ctx.WouldHandleEvent(event)
	if completer, ok := action.(Completer); ok {
		if future := completer.Future(); future != nil {
			progress.UpdateCtx(ctx, progress.Delta{Running: 1})
			return future.OnDone(func(err error) {
				progress.UpdateCtx(ctx, settled(err, -1))
				if !listened {
					return
				}
				if err := ctx.EmitEvent(event); err != nil {
					ctx.Logger().Printf("failed to emit %v: %v", event.Name(), err)
				}
			})
		}
	}
	progress.UpdateCtx(ctx, settled(execErr, 0))
	if !listened {
		return nil
	}
	return ctx.EmitEventSync(event)
}

func settled(err error, running int) progress.Delta {
	if err != nil && !errors.Is(err, ErrCancelled) {
		return progress.Delta{Failed: 1, Running: running}
	}
	return progress.Delta{Completed: 1, Running: running}
}
