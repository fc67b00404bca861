package domain

import (
	"fmt"
	"strings"
	"time"
)

// StrengthOrRisk classifies an observation's signal direction.
type StrengthOrRisk string

const (
	// SignalStrength marks an observation supporting the candidate.
	SignalStrength StrengthOrRisk = "strength"

	// SignalRisk marks an observation counting against the candidate.
	SignalRisk StrengthOrRisk = "risk"

	// SignalNeutral marks context without a clear direction.
	SignalNeutral StrengthOrRisk = "neutral"
)

// ClaimAssessment grades how well a resume claim is evidenced.
type ClaimAssessment string

const (
	ClaimWellSupported      ClaimAssessment = "well-supported"
	ClaimPartiallySupported ClaimAssessment = "partially-supported"
	ClaimUnsupported        ClaimAssessment = "unsupported"
	ClaimContradictory      ClaimAssessment = "contradictory"
)

// KeyObservation is a single first-pass note tied to a rubric category.
type KeyObservation struct {
	// Category names the rubric category the observation informs.
	Category string `json:"category" validate:"required"`

	// Observation is the note itself.
	Observation string `json:"observation" validate:"required"`

	// EvidenceLocation points at the resume section the note derives from.
	EvidenceLocation string `json:"evidence_location" validate:"required"`

	// StrengthOrRisk classifies the observation's direction.
	StrengthOrRisk StrengthOrRisk `json:"strength_or_risk" validate:"required,oneof=strength risk neutral"`
}

// CrossReference links a resume claim to the sections that support or
// contradict it, enabling claim verification during pass two and in the
// generated interview plan.
type CrossReference struct {
	Claim                 string          `json:"claim" validate:"required"`
	ClaimLocation         string          `json:"claim_location" validate:"required"`
	SupportingEvidence    []string        `json:"supporting_evidence"`
	ContradictoryEvidence []string        `json:"contradictory_evidence"`
	Assessment            ClaimAssessment `json:"assessment" validate:"required,oneof=well-supported partially-supported unsupported contradictory"`
}

// Validate checks structural tags plus the evidence floor: a cross-reference
// with neither supporting nor contradictory evidence verifies nothing.
func (cr *CrossReference) Validate() error {
	if err := validate.Struct(cr); err != nil {
		return fmt.Errorf("cross reference validation failed: %w", err)
	}
	if len(cr.SupportingEvidence) == 0 && len(cr.ContradictoryEvidence) == 0 {
		return fmt.Errorf("%w: cross reference for claim %q lists no evidence",
			ErrInvalidReview, cr.Claim)
	}
	return nil
}

// IsContradicted reports whether the claim warrants verification in an
// interview: either assessed contradictory or carrying contradictory
// evidence.
func (cr *CrossReference) IsContradicted() bool {
	return cr.Assessment == ClaimContradictory || len(cr.ContradictoryEvidence) > 0
}

// WorkingMemory holds one reviewer's structured first-pass notes. It is
// created once per (role, run) by pass one, consumed by pass two of the same
// reviewer and later by synthesis, and never mutated after creation.
type WorkingMemory struct {
	// AgentRole is the reviewer that produced the memory. It must match
	// the key the memory is stored under in panel state.
	AgentRole AgentRole `json:"agent_role" validate:"required,oneof=HR Tech Product Compliance"`

	// KeyObservations are the extracted notes, three to fifteen of them.
	KeyObservations []KeyObservation `json:"key_observations" validate:"min=3,max=15,dive"`

	// CrossReferences link claims to their evidence.
	CrossReferences []CrossReference `json:"cross_references" validate:"dive"`

	// TimelineAnalysis summarizes career chronology; optional.
	TimelineAnalysis string `json:"timeline_analysis,omitempty"`

	// MissingInformation lists areas the resume is silent on.
	MissingInformation []string `json:"missing_information"`

	// Ambiguities lists statements needing clarification.
	Ambiguities []string `json:"ambiguities"`

	// CreatedAt records when the memory was extracted.
	CreatedAt time.Time `json:"created_at" validate:"required"`
}

// Validate checks structural tags and each cross-reference's evidence floor.
func (m *WorkingMemory) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("working memory validation failed: %w", err)
	}
	for i := range m.CrossReferences {
		if err := m.CrossReferences[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAgainstRubric enforces category alignment: every observation's
// category must name a category present in the rubric the memory was
// extracted for. Misaligned memory indicates the generation call drifted
// from the requested structure.
func (m *WorkingMemory) ValidateAgainstRubric(rubric *Rubric) error {
	if rubric == nil {
		return fmt.Errorf("%w: rubric is required for alignment check", ErrInvalidRubric)
	}
	known := make(map[string]struct{}, len(rubric.Categories))
	for i := range rubric.Categories {
		known[rubric.Categories[i].Name] = struct{}{}
	}
	var misaligned []string
	for i := range m.KeyObservations {
		if _, ok := known[m.KeyObservations[i].Category]; !ok {
			misaligned = append(misaligned, m.KeyObservations[i].Category)
		}
	}
	if len(misaligned) > 0 {
		return fmt.Errorf("%w: observation categories not in rubric: %v",
			ErrInvalidReview, sortedStrings(misaligned))
	}
	return nil
}

// ObservationsForCategory returns up to limit observations whose category
// text contains the given category name, case-insensitively. Synthesis uses
// this to pull grounding context into disagreement explanations.
func (m *WorkingMemory) ObservationsForCategory(categoryName string, limit int) []KeyObservation {
	if limit <= 0 {
		return nil
	}
	needle := strings.ToLower(categoryName)
	var matched []KeyObservation
	for _, obs := range m.KeyObservations {
		if strings.Contains(strings.ToLower(obs.Category), needle) {
			matched = append(matched, obs)
			if len(matched) == limit {
				break
			}
		}
	}
	return matched
}
