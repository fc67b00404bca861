package domain

import (
	"errors"
	"fmt"
)

// Application error type tags shared between activities and the workflow.
// Temporal surfaces these through ApplicationError.Type so callers can
// distinguish retryable generation failures from fatal state corruption.
const (
	// ErrTypeInput tags rejected user input. Never retried.
	ErrTypeInput = "InputError"

	// ErrTypeGeneration tags LLM transport or empty-response failures. Retried.
	ErrTypeGeneration = "GenerationError"

	// ErrTypeSchemaValidation tags parsed output that failed schema, role,
	// or rubric-coverage checks. Retried, since regeneration may produce a
	// conforming result.
	ErrTypeSchemaValidation = "SchemaValidationError"

	// ErrTypeStateValidation tags post-join panel-state inconsistencies.
	// Fatal: retrying cannot repair an inconsistent merge.
	ErrTypeStateValidation = "StateValidationError"
)

// ErrInvalidRequest indicates that a hiring request contains invalid data.
var ErrInvalidRequest = errors.New("invalid hiring request")

// ErrInvalidConfig indicates that the panel configuration is invalid.
var ErrInvalidConfig = errors.New("invalid panel configuration")

// ErrInvalidRubric indicates that a rubric failed structural validation.
var ErrInvalidRubric = errors.New("invalid rubric")

// ErrInvalidReview indicates that an agent review failed structural validation.
var ErrInvalidReview = errors.New("invalid agent review")

// ErrInconsistentPanel indicates that merged panel state failed consistency checks.
var ErrInconsistentPanel = errors.New("inconsistent panel state")

// WorkflowExecutionError wraps failures to start or await the hiring
// workflow from the client side. It is never produced inside workflow code.
type WorkflowExecutionError struct {
	Message string
	Cause   error
}

func (e *WorkflowExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *WorkflowExecutionError) Unwrap() error { return e.Cause }
