// Package workflow implements Temporal workflow definitions for the panelist
// hiring pipeline.
//
// This package contains the orchestration logic that coordinates rubric
// generation, the parallel reviewer panel, and synthesis as one durable
// workflow. The workflow owns all run state and merge policy; activities
// receive inputs and return deltas.
//
// Key responsibilities include:
//
//   - Workflow definition and the activity dispatch names
//   - Run-state management and the review/memory merge operations
//   - Error handling and the standard retry policy
//   - The AND-join over parallel reviewer branches
//   - Client-side execution helper
//
// All workflows in this package follow Temporal best practices:
//
//   - Deterministic execution
//   - Proper error handling
//   - Versioning support
//   - Observability integration
//
// Workflows should not contain any non-deterministic operations
// such as random number generation, system time access, or external I/O.
// Such operations should be delegated to activities.
package workflow
