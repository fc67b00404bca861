// Package domain panel state models the aggregate one workflow run
// accumulates across stages. Parallel reviewer branches never touch this
// state directly: each branch returns its delta and the coordinator applies
// one of the two named merge operations, so no locking is required.
package domain

import (
	"fmt"
	"sort"
)

// PanelState is the run-scoped aggregate. Fields start empty and are filled
// additively by each stage; only the coordinator mutates it.
type PanelState struct {
	// Inputs, fixed at run start.
	JobDescription string `json:"job_description"`
	Resume         string `json:"resume"`
	CompanyContext string `json:"company_context"`
	CandidateName  string `json:"candidate_name,omitempty"`

	// Rubric is set once by rubric generation.
	Rubric *Rubric `json:"rubric,omitempty"`

	// RubricWarnings carries advisory lint findings.
	RubricWarnings []string `json:"rubric_warnings,omitempty"`

	// PanelReviews accumulates reviews append-only in completion order.
	PanelReviews []AgentReview `json:"panel_reviews"`

	// AgentWorkingMemory holds each reviewer's pass-one memory keyed by
	// role. Merged key-wise; first writer wins.
	AgentWorkingMemory map[AgentRole]*WorkingMemory `json:"agent_working_memory"`

	// Synthesis outputs.
	Disagreements  []Disagreement  `json:"disagreements,omitempty"`
	DecisionPacket *DecisionPacket `json:"decision_packet,omitempty"`
	InterviewPlan  *InterviewPlan  `json:"interview_plan,omitempty"`

	// Metadata carries free-form run annotations.
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewPanelState creates run state with the inputs fixed and all downstream
// slots empty.
func NewPanelState(jobDescription, resume, companyContext, candidateName string) *PanelState {
	return &PanelState{
		JobDescription:     jobDescription,
		Resume:             resume,
		CompanyContext:     companyContext,
		CandidateName:      candidateName,
		AgentWorkingMemory: make(map[AgentRole]*WorkingMemory),
	}
}

// AppendReview records a completed review. Reviews accumulate append-only;
// order reflects branch completion, not panel declaration order.
func (s *PanelState) AppendReview(review AgentReview) {
	s.PanelReviews = append(s.PanelReviews, review)
}

// InsertMemory adds a role's working memory under its role key. The first
// writer wins: a duplicate key leaves existing memory untouched and returns
// false so the coordinator can log the dropped write.
func (s *PanelState) InsertMemory(role AgentRole, memory *WorkingMemory) bool {
	if memory == nil {
		return false
	}
	if s.AgentWorkingMemory == nil {
		s.AgentWorkingMemory = make(map[AgentRole]*WorkingMemory)
	}
	if _, exists := s.AgentWorkingMemory[role]; exists {
		return false
	}
	s.AgentWorkingMemory[role] = memory
	return true
}

// ValidatePanelConsistency is the required checkpoint between fan-in and
// synthesis. It checks, in order: every review role is canonical, every
// memory key is canonical, the review-role set exactly equals the memory-key
// set, and each memory's embedded role equals its map key. Any violation is
// fatal; synthesis must never run against inconsistent state.
func ValidatePanelConsistency(reviews []AgentReview, memory map[AgentRole]*WorkingMemory) error {
	if err := ValidateReviewRoles(reviews); err != nil {
		return err
	}
	for role := range memory {
		if !IsValidAgentRole(role) {
			return fmt.Errorf("%w: working memory keyed by unknown role %q",
				ErrInconsistentPanel, role)
		}
	}

	reviewRoles := make(map[AgentRole]struct{}, len(reviews))
	for i := range reviews {
		reviewRoles[reviews[i].AgentRole] = struct{}{}
	}

	var missing, extra []string
	for role := range reviewRoles {
		if _, ok := memory[role]; !ok {
			missing = append(missing, string(role))
		}
	}
	for role := range memory {
		if _, ok := reviewRoles[role]; !ok {
			extra = append(extra, string(role))
		}
	}
	if len(missing) > 0 || len(extra) > 0 {
		sort.Strings(missing)
		sort.Strings(extra)
		return fmt.Errorf("%w: review and memory role sets differ: missing memory for %v, memory without review for %v",
			ErrInconsistentPanel, missing, extra)
	}

	for role, m := range memory {
		if m == nil {
			return fmt.Errorf("%w: nil working memory for role %q", ErrInconsistentPanel, role)
		}
		if m.AgentRole != role {
			return fmt.Errorf("%w: memory stored under %q declares role %q",
				ErrInconsistentPanel, role, m.AgentRole)
		}
	}
	return nil
}

// ValidateReviewRoles checks only that every review carries a canonical
// role. The coordinator uses this reduced check when working memory is
// disabled and the memory map is legitimately empty.
func ValidateReviewRoles(reviews []AgentReview) error {
	for i := range reviews {
		if !IsValidAgentRole(reviews[i].AgentRole) {
			return fmt.Errorf("%w: review from unknown role %q",
				ErrInconsistentPanel, reviews[i].AgentRole)
		}
	}
	return nil
}
