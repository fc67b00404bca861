package domain

import (
	"fmt"
	"math"
	"time"
)

// Recommendation is the synthesized hiring call. The 2.5-3.5 band with no
// must-have gaps deliberately withholds one (nil pointer in DecisionPacket),
// signaling "pending interview".
type Recommendation string

const (
	RecommendationHire     Recommendation = "Hire"
	RecommendationLeanHire Recommendation = "Lean hire"
	RecommendationLeanNo   Recommendation = "Lean no"
	RecommendationNo       Recommendation = "No"
)

// IsValidRecommendation reports whether the value is a recognized call.
func IsValidRecommendation(r Recommendation) bool {
	switch r {
	case RecommendationHire, RecommendationLeanHire, RecommendationLeanNo, RecommendationNo:
		return true
	default:
		return false
	}
}

// Disagreement records a rubric category where panel scores diverged by at
// least one point. Objects with a smaller delta must not be constructed;
// they do not represent a disagreement.
type Disagreement struct {
	// CategoryName is the disputed rubric category.
	CategoryName string `json:"category_name" validate:"required"`

	// AgentScores maps each scoring reviewer to its score.
	AgentScores map[AgentRole]int `json:"agent_scores" validate:"min=1"`

	// ScoreDelta is derived: max score minus min score across AgentScores.
	ScoreDelta float64 `json:"score_delta"`

	// Reason explains the conflict and, after enrichment, carries
	// working-memory context.
	Reason string `json:"reason" validate:"required"`

	// ResolutionApproach suggests how to settle the dispute.
	ResolutionApproach string `json:"resolution_approach" validate:"required"`
}

// NewDisagreement builds a disagreement, deriving ScoreDelta from the score
// map. Construction fails when the derived delta is below one or any role
// or score is out of range.
func NewDisagreement(categoryName string, agentScores map[AgentRole]int, reason, resolution string) (*Disagreement, error) {
	d := &Disagreement{
		CategoryName:       categoryName,
		AgentScores:        cloneScoreMap(agentScores),
		ScoreDelta:         scoreDelta(agentScores),
		Reason:             reason,
		ResolutionApproach: resolution,
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks structural tags, role validity, score ranges, and that
// ScoreDelta matches the derived value and meets the floor of one.
func (d *Disagreement) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("disagreement validation failed: %w", err)
	}
	for role, score := range d.AgentScores {
		if !IsValidAgentRole(role) {
			return fmt.Errorf("%w: disagreement references unknown role %q",
				ErrInvalidReview, role)
		}
		if score < 0 || score > 5 {
			return fmt.Errorf("%w: disagreement score %d for role %q out of range",
				ErrInvalidReview, score, role)
		}
	}
	derived := scoreDelta(d.AgentScores)
	if math.Abs(d.ScoreDelta-derived) > 1e-9 {
		return fmt.Errorf("%w: score delta %.1f does not match derived %.1f",
			ErrInvalidReview, d.ScoreDelta, derived)
	}
	if d.ScoreDelta < 1 {
		return fmt.Errorf("%w: score delta %.1f is below the disagreement floor of 1",
			ErrInvalidReview, d.ScoreDelta)
	}
	return nil
}

func scoreDelta(scores map[AgentRole]int) float64 {
	first := true
	var minScore, maxScore int
	for _, s := range scores {
		if first {
			minScore, maxScore = s, s
			first = false
			continue
		}
		if s < minScore {
			minScore = s
		}
		if s > maxScore {
			maxScore = s
		}
	}
	if first {
		return 0
	}
	return float64(maxScore - minScore)
}

// DecisionPacket is the synthesized hiring decision. It is created once at
// the end of a run and is immutable.
type DecisionPacket struct {
	// CandidateName is carried through from the request when provided.
	CandidateName string `json:"candidate_name,omitempty"`

	// RoleTitle comes from the rubric.
	RoleTitle string `json:"role_title" validate:"required"`

	// OverallFitScore is the weighted panel average, rounded to one decimal.
	OverallFitScore float64 `json:"overall_fit_score" validate:"gte=0,lte=5"`

	// Confidence maps the disagreement count to a discrete level.
	Confidence ConfidenceLevel `json:"confidence" validate:"required,oneof=high medium low"`

	// Recommendation is nil when withheld pending interview.
	Recommendation *Recommendation `json:"recommendation,omitempty"`

	// TopStrengths and TopRisks are the deduplicated panel consensus.
	TopStrengths []string `json:"top_strengths" validate:"min=3,max=5,dive,required"`
	TopRisks     []string `json:"top_risks" validate:"min=3,max=5,dive,required"`

	// MustHaveGaps names must-have categories averaging below threshold.
	MustHaveGaps []string `json:"must_have_gaps"`

	// Disagreements are the enriched score conflicts.
	Disagreements []Disagreement `json:"disagreements" validate:"dive"`

	// GeneratedAt records when synthesis produced the packet.
	GeneratedAt time.Time `json:"generated_at" validate:"required"`
}

// NewDecisionPacket creates a validated packet stamped with the current time.
func NewDecisionPacket(packet DecisionPacket) (*DecisionPacket, error) {
	return MakeDecisionPacket(packet, time.Now().UTC())
}

// MakeDecisionPacket creates a validated packet with an explicit timestamp.
// Synthesis uses this form so identical inputs produce identical packets
// apart from the timestamp the caller injects.
func MakeDecisionPacket(packet DecisionPacket, generatedAt time.Time) (*DecisionPacket, error) {
	packet.GeneratedAt = generatedAt
	if err := packet.Validate(); err != nil {
		return nil, err
	}
	return &packet, nil
}

// Validate enforces the packet's structural tags, disagreement validity, and
// the recommendation consistency invariants: Hire cannot coexist with
// must-have gaps, a score of 4.0 or above excludes negative calls, and a
// score below 2.0 excludes positive calls.
func (p *DecisionPacket) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("decision packet validation failed: %w", err)
	}
	for i := range p.Disagreements {
		if err := p.Disagreements[i].Validate(); err != nil {
			return err
		}
	}
	if p.Recommendation == nil {
		return nil
	}

	rec := *p.Recommendation
	if !IsValidRecommendation(rec) {
		return fmt.Errorf("%w: unknown recommendation %q", ErrInvalidReview, rec)
	}
	if rec == RecommendationHire && len(p.MustHaveGaps) > 0 {
		return fmt.Errorf("%w: recommendation %q conflicts with %d must-have gap(s)",
			ErrInvalidReview, rec, len(p.MustHaveGaps))
	}
	if p.OverallFitScore >= 4.0 && (rec == RecommendationLeanNo || rec == RecommendationNo) {
		return fmt.Errorf("%w: recommendation %q conflicts with fit score %.1f",
			ErrInvalidReview, rec, p.OverallFitScore)
	}
	if p.OverallFitScore < 2.0 && (rec == RecommendationHire || rec == RecommendationLeanHire) {
		return fmt.Errorf("%w: recommendation %q conflicts with fit score %.1f",
			ErrInvalidReview, rec, p.OverallFitScore)
	}
	return nil
}
