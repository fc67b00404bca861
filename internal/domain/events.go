package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event emitted by the pipeline.
// Typed constants provide compile-time safety and enable exhaustive
// switch statements for event handling.
type EventType string

const (
	// EventTypeRubricGenerated is emitted when rubric generation completes.
	// One event per run with category counts and lint findings.
	EventTypeRubricGenerated EventType = "RubricGenerated"

	// EventTypeReviewCompleted is emitted when a reviewer node finishes.
	// One event per panel role per run.
	EventTypeReviewCompleted EventType = "ReviewCompleted"

	// EventTypeDecisionIssued is emitted when synthesis produces the
	// decision packet. One event per run.
	EventTypeDecisionIssued EventType = "DecisionIssued"
)

// EventEnvelope wraps all events with consistent metadata for projection
// processing. Provides workflow context, idempotency, and sequencing that
// enable reliable event-driven projections and analytics.
type EventEnvelope struct {
	// IdempotencyKey ensures events are processed exactly once during retries.
	// Generated deterministically from workflow context and event content.
	IdempotencyKey string `json:"idempotency_key" validate:"required"`

	// EventType identifies the specific type of event for routing and processing.
	EventType EventType `json:"event_type" validate:"required"`

	// Version enables event schema evolution and backward compatibility.
	// Start at 1 and increment when event structure changes.
	Version int `json:"version" validate:"required,min=1"`

	// OccurredAt records when the event occurred in the system.
	// Should use workflow.Now(ctx) for deterministic time in workflows.
	OccurredAt time.Time `json:"occurred_at" validate:"required"`

	// TenantID identifies the tenant for event filtering.
	// Single-tenant deployments use "default".
	TenantID string `json:"tenant_id" validate:"required"`

	// WorkflowID identifies the Temporal workflow that generated this event.
	WorkflowID string `json:"workflow_id" validate:"required"`

	// RunID identifies the specific workflow execution run.
	RunID string `json:"run_id" validate:"required"`

	// Sequence enables ordered event processing for projections.
	// Set to 0 for now; true monotonic sequencing added when needed.
	Sequence int `json:"sequence" validate:"min=0"`

	// Payload contains the event-specific data as JSON.
	// Schema varies by EventType and Version.
	Payload json.RawMessage `json:"payload" validate:"required"`

	// Producer identifies the component that emitted this event.
	// Used for debugging and event source tracking.
	Producer string `json:"producer" validate:"required"`
}

// Validate checks if the event envelope meets all requirements.
func (e *EventEnvelope) Validate() error {
	return validate.Struct(e)
}

// RubricGeneratedPayload contains the data for RubricGenerated events.
type RubricGeneratedPayload struct {
	// RoleTitle is the title the rubric was generated for.
	RoleTitle string `json:"role_title" validate:"required"`

	// CategoryCount is the number of generated categories.
	CategoryCount int `json:"category_count" validate:"min=1"`

	// MustHaveCount is the number of categories flagged must-have.
	MustHaveCount int `json:"must_have_count" validate:"min=1"`

	// WarningCount is the number of advisory lint findings.
	WarningCount int `json:"warning_count" validate:"min=0"`
}

// Validate checks if the payload meets all requirements.
func (p *RubricGeneratedPayload) Validate() error {
	return validate.Struct(p)
}

// ReviewCompletedPayload contains the data for ReviewCompleted events.
type ReviewCompletedPayload struct {
	// AgentRole is the reviewer that completed.
	AgentRole AgentRole `json:"agent_role" validate:"required"`

	// CategoryCount is the number of categories scored.
	CategoryCount int `json:"category_count" validate:"min=1"`

	// MemoryExtracted reports whether a pass-one memory was produced.
	MemoryExtracted bool `json:"memory_extracted"`

	// LatencyMs measures the node's execution time in milliseconds.
	LatencyMs int64 `json:"latency_ms" validate:"min=0"`
}

// Validate checks if the payload meets all requirements.
func (p *ReviewCompletedPayload) Validate() error {
	return validate.Struct(p)
}

// DecisionIssuedPayload contains the data for DecisionIssued events.
type DecisionIssuedPayload struct {
	// RoleTitle is the evaluated role.
	RoleTitle string `json:"role_title" validate:"required"`

	// OverallFitScore is the packet's weighted score.
	OverallFitScore float64 `json:"overall_fit_score" validate:"gte=0,lte=5"`

	// Recommendation is the string form of the call; empty when withheld.
	Recommendation string `json:"recommendation,omitempty"`

	// DisagreementCount is the number of detected score conflicts.
	DisagreementCount int `json:"disagreement_count" validate:"min=0"`

	// MustHaveGapCount is the number of unmet must-have categories.
	MustHaveGapCount int `json:"must_have_gap_count" validate:"min=0"`
}

// Validate checks if the payload meets all requirements.
func (p *DecisionIssuedPayload) Validate() error {
	return validate.Struct(p)
}

// NewEventEnvelope creates a new EventEnvelope with required fields populated.
// The payload should be marshaled JSON for the specific event type.
func NewEventEnvelope(
	eventType EventType,
	tenantID string,
	workflowID, runID string,
	payload json.RawMessage,
	producer string,
) EventEnvelope {
	return EventEnvelope{
		EventType:  eventType,
		Version:    1,
		TenantID:   tenantID,
		WorkflowID: workflowID,
		RunID:      runID,
		Sequence:   0,
		Payload:    payload,
		Producer:   producer,
		OccurredAt: time.Now(),
	}
}

// GenerateIdempotencyKey creates a deterministic key for event deduplication.
// Combines workflow execution context with an event-specific suffix so that
// retries and replays produce identical keys for the same logical event.
func GenerateIdempotencyKey(workflowKey, eventSuffix string) string {
	hasher := sha256.New()
	hasher.Write([]byte(workflowKey + eventSuffix))
	return hex.EncodeToString(hasher.Sum(nil))
}

// RubricGeneratedIdempotencyKey generates the key for rubric events.
// Pattern: H(workflow_key || ":rubric:1").
func RubricGeneratedIdempotencyKey(workflowKey string) string {
	return GenerateIdempotencyKey(workflowKey, ":rubric:1")
}

// ReviewCompletedIdempotencyKey generates the key for review events.
// Pattern: H(workflow_key || ":review:" || role).
func ReviewCompletedIdempotencyKey(workflowKey string, role AgentRole) string {
	return GenerateIdempotencyKey(workflowKey, fmt.Sprintf(":review:%s", role))
}

// DecisionIssuedIdempotencyKey generates the key for decision events.
// Pattern: H(workflow_key || ":decision:1").
func DecisionIssuedIdempotencyKey(workflowKey string) string {
	return GenerateIdempotencyKey(workflowKey, ":decision:1")
}

// NewRubricGeneratedEvent creates a RubricGenerated event envelope.
func NewRubricGeneratedEvent(
	tenantID string,
	workflowID, runID string,
	rubric *Rubric,
	warningCount int,
) (EventEnvelope, error) {
	mustHaves := 0
	for i := range rubric.Categories {
		if rubric.Categories[i].IsMustHave {
			mustHaves++
		}
	}
	payload := RubricGeneratedPayload{
		RoleTitle:     rubric.RoleTitle,
		CategoryCount: len(rubric.Categories),
		MustHaveCount: mustHaves,
		WarningCount:  warningCount,
	}

	if err := payload.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid rubric generated payload: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	envelope := NewEventEnvelope(
		EventTypeRubricGenerated,
		tenantID,
		workflowID,
		runID,
		payloadJSON,
		"activity.generate_rubric",
	)
	envelope.IdempotencyKey = RubricGeneratedIdempotencyKey(workflowID + runID)

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return envelope, nil
}

// NewReviewCompletedEvent creates a ReviewCompleted event envelope.
func NewReviewCompletedEvent(
	tenantID string,
	workflowID, runID string,
	review *AgentReview,
	memoryExtracted bool,
	latencyMs int64,
) (EventEnvelope, error) {
	payload := ReviewCompletedPayload{
		AgentRole:       review.AgentRole,
		CategoryCount:   len(review.CategoryScores),
		MemoryExtracted: memoryExtracted,
		LatencyMs:       latencyMs,
	}

	if err := payload.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid review completed payload: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	envelope := NewEventEnvelope(
		EventTypeReviewCompleted,
		tenantID,
		workflowID,
		runID,
		payloadJSON,
		"activity.perform_review",
	)
	envelope.IdempotencyKey = ReviewCompletedIdempotencyKey(workflowID+runID, review.AgentRole)

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return envelope, nil
}

// NewDecisionIssuedEvent creates a DecisionIssued event envelope.
func NewDecisionIssuedEvent(
	tenantID string,
	workflowID, runID string,
	packet *DecisionPacket,
) (EventEnvelope, error) {
	recommendation := ""
	if packet.Recommendation != nil {
		recommendation = string(*packet.Recommendation)
	}
	payload := DecisionIssuedPayload{
		RoleTitle:         packet.RoleTitle,
		OverallFitScore:   packet.OverallFitScore,
		Recommendation:    recommendation,
		DisagreementCount: len(packet.Disagreements),
		MustHaveGapCount:  len(packet.MustHaveGaps),
	}

	if err := payload.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid decision issued payload: %w", err)
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return EventEnvelope{}, fmt.Errorf("failed to marshal payload: %w", err)
	}

	envelope := NewEventEnvelope(
		EventTypeDecisionIssued,
		tenantID,
		workflowID,
		runID,
		payloadJSON,
		"activity.synthesize",
	)
	envelope.IdempotencyKey = DecisionIssuedIdempotencyKey(workflowID + runID)

	if err := envelope.Validate(); err != nil {
		return EventEnvelope{}, fmt.Errorf("invalid event envelope: %w", err)
	}
	return envelope, nil
}
