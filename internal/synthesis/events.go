package synthesis

import (
	"context"
	"fmt"

	"github.com/hireloop/panelist/internal/domain"
	"github.com/hireloop/panelist/pkg/activity"
	"github.com/hireloop/panelist/pkg/events"
)

// EventEmitter handles domain event emission for synthesis. Emission is
// best-effort: failures are logged without affecting the activity.
type EventEmitter struct{ base activity.BaseActivities }

// NewEventEmitter creates a new EventEmitter with base activity infrastructure.
func NewEventEmitter(base activity.BaseActivities) *EventEmitter {
	return &EventEmitter{base: base}
}

// EmitDecisionIssued emits one DecisionIssued event per run, summarizing
// the packet without carrying candidate material.
func (e *EventEmitter) EmitDecisionIssued(
	ctx context.Context,
	packet *domain.DecisionPacket,
	wfCtx activity.WorkflowContext,
) {
	domainEvent, err := domain.NewDecisionIssuedEvent(
		wfCtx.TenantID,
		wfCtx.WorkflowID,
		wfCtx.RunID,
		packet,
	)
	if err != nil {
		activity.SafeLogError(ctx, "Failed to create DecisionIssued event",
			"role_title", packet.RoleTitle,
			"error", err)
		return
	}

	e.base.EmitEventSafe(ctx, convertDomainEventToEnvelope(domainEvent), "DecisionIssued")
}

// convertDomainEventToEnvelope converts domain.EventEnvelope to events.Envelope.
// This bridges the domain event system with the base activity infrastructure.
func convertDomainEventToEnvelope(domainEvent domain.EventEnvelope) events.Envelope {
	return events.Envelope{
		ID:             domainEvent.IdempotencyKey, // Use idempotency key for deterministic IDs
		Type:           string(domainEvent.EventType),
		Source:         domainEvent.Producer,
		Version:        fmt.Sprintf("%d.0.0", domainEvent.Version),
		Timestamp:      domainEvent.OccurredAt,
		IdempotencyKey: domainEvent.IdempotencyKey,
		TenantID:       domainEvent.TenantID,
		WorkflowID:     domainEvent.WorkflowID,
		RunID:          domainEvent.RunID,
		Payload:        domainEvent.Payload,
	}
}
