// Package domain provides operation contracts for the hiring evaluation
// pipeline. Defines input and output types that ensure type safety and clear
// interfaces between workflow orchestration and activity execution.
//
// Operation Contract Architecture:
//   - Input/Output types co-located with related domain types for cohesion
//   - All contracts include validation tags for runtime safety
//   - Inputs are validated by the activity before any remote call
//   - Outputs are revalidated against domain invariants before returning
//
// Operation Lifecycle:
//  1. Workflow creates typed input with validation
//  2. Activity validates input before processing
//  3. The generation gateway is called with typed error classification
//  4. Results are validated against domain invariants before returning
//  5. Failures carry typed tags for retry/escalation decisions
package domain

// Operation Contract Locations:
//
// Rubric Generation (rubric.go):
//   - GenerateRubricInput: documents and the target category count
//   - GenerateRubricOutput: validated rubric plus advisory lint warnings
//
// Panel Review (review.go):
//   - PerformReviewInput: role assignment, rubric, resume, and configuration
//   - PerformReviewOutput: exactly one review plus optional working memory
//
// Synthesis (synthesis.go):
//   - SynthesizeInput: the validated panel state after the join
//   - SynthesizeOutput: disagreements, decision packet, interview plan
//
// Operation Error Handling:
//   - Input validation errors are non-retryable and surface immediately
//   - Generation and schema validation errors are retryable; a fresh
//     generation attempt may produce a conforming result
//   - Panel-state validation errors are fatal and never retried
