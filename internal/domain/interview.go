package domain

import (
	"fmt"
)

// InterviewQuestion is one targeted probe assigned to a panel role.
type InterviewQuestion struct {
	// Question is the prompt the interviewer asks.
	Question string `json:"question" validate:"required"`

	// Category ties the question to a rubric category or a synthesis
	// source such as Clarification or Gap Exploration.
	Category string `json:"category" validate:"required"`

	// InterviewerRole must equal the map key the question is stored under.
	InterviewerRole AgentRole `json:"interviewer_role" validate:"required,oneof=HR Tech Product Compliance"`

	// WhatToListenFor guides evaluation of the answer.
	WhatToListenFor []string `json:"what_to_listen_for" validate:"min=1,dive,required"`

	// RedFlags lists answer patterns that should concern the interviewer.
	RedFlags []string `json:"red_flags"`

	// FollowUpPrompts are optional deeper probes.
	FollowUpPrompts []string `json:"follow_up_prompts,omitempty"`
}

// InterviewPlan assigns questions to panel roles for the next round. It is
// created once by synthesis; a run that surfaces nothing to probe produces
// no plan at all rather than an empty one.
type InterviewPlan struct {
	// QuestionsByInterviewer maps each role to its assigned questions.
	// Roles may carry empty slices; at least one role must have a question.
	QuestionsByInterviewer map[AgentRole][]InterviewQuestion `json:"questions_by_interviewer" validate:"min=1"`

	// TimeEstimateMinutes is fifteen minutes per role with questions;
	// nil when not estimated.
	TimeEstimateMinutes *int `json:"time_estimate_minutes,omitempty" validate:"omitempty,gt=0"`

	// PriorityAreas are the deduplicated focus categories.
	PriorityAreas []string `json:"priority_areas" validate:"min=1,dive,required"`
}

// NewInterviewPlan creates a validated plan.
func NewInterviewPlan(questions map[AgentRole][]InterviewQuestion, priorityAreas []string, timeEstimateMinutes *int) (*InterviewPlan, error) {
	p := &InterviewPlan{
		QuestionsByInterviewer: questions,
		TimeEstimateMinutes:    timeEstimateMinutes,
		PriorityAreas:          priorityAreas,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks structural tags, role-key validity, that every question's
// interviewer role equals its containing key, and that at least one role
// carries at least one question.
func (p *InterviewPlan) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("interview plan validation failed: %w", err)
	}

	total := 0
	for role, questions := range p.QuestionsByInterviewer {
		if !IsValidAgentRole(role) {
			return fmt.Errorf("%w: interview plan keyed by unknown role %q",
				ErrInvalidReview, role)
		}
		for i := range questions {
			if questions[i].InterviewerRole != role {
				return fmt.Errorf("%w: question for %q filed under %q",
					ErrInvalidReview, questions[i].InterviewerRole, role)
			}
			if err := validate.Struct(&questions[i]); err != nil {
				return fmt.Errorf("interview question validation failed: %w", err)
			}
		}
		total += len(questions)
	}
	if total == 0 {
		return fmt.Errorf("%w: interview plan has no questions", ErrInvalidReview)
	}
	return nil
}

// TotalQuestions counts questions across all roles.
func (p *InterviewPlan) TotalQuestions() int {
	total := 0
	for _, questions := range p.QuestionsByInterviewer {
		total += len(questions)
	}
	return total
}
