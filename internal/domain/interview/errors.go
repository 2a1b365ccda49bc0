package interview

import (
	"errors"
	"fmt"
)

// ErrBusy is returned when a transition is attempted while a generation or
// evaluation call is still in flight on the same session.
var ErrBusy = errors.New("session has a request in flight")

// ValidationError reports bad caller input (empty topics, empty answer).
// The session state is unchanged and the caller may re-prompt.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TransitionError reports an operation attempted from a state that does not
// allow it, e.g. submitting an answer while reviewing.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while session is %s", e.Op, e.State)
}

// GenerationError wraps a failure of the question-generation call.
// The session has returned to the idle state and start may be retried.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("question generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// EvaluationError wraps a failure of the answer-evaluation call. The answer
// and elapsed time already recorded are kept; only the evaluation step is
// retried by submitting again.
type EvaluationError struct {
	Err error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("answer evaluation failed: %v", e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
