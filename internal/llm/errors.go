package llm

import "errors"

// Sentinel errors for generation failure classification.
// Callers wrap these with context and use errors.Is for retry decisions.
var (
	// ErrGeneration indicates the model call failed or returned text that
	// could not be parsed into the target type even after repair.
	ErrGeneration = errors.New("llm generation failed")

	// ErrSchemaValidation indicates the model returned parseable JSON that
	// does not satisfy the target type's structural constraints.
	ErrSchemaValidation = errors.New("llm output failed schema validation")

	// ErrMissingAPIKey indicates client construction was attempted without
	// an API key.
	ErrMissingAPIKey = errors.New("llm api key not configured")
)
