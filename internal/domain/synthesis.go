package domain

import "fmt"

// SynthesizeInput carries the validated panel state into the synthesis
// stage. The coordinator runs the consistency checkpoint before building
// this input, so synthesis may assume the review and memory sets align.
type SynthesizeInput struct {
	Rubric             Rubric                       `json:"rubric"`
	PanelReviews       []AgentReview                `json:"panel_reviews" validate:"min=1,dive"`
	AgentWorkingMemory map[AgentRole]*WorkingMemory `json:"agent_working_memory"`
	CandidateName      string                       `json:"candidate_name,omitempty"`
	Config             PanelConfig                  `json:"config"`
}

// Validate checks the rubric, the review floor, and the configuration.
func (in *SynthesizeInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("synthesize input validation failed: %w", err)
	}
	if err := in.Rubric.Validate(); err != nil {
		return err
	}
	return in.Config.Validate()
}

// SynthesizeOutput carries the synthesis results: enriched disagreements,
// the decision packet, and the interview plan when one was warranted.
type SynthesizeOutput struct {
	Disagreements  []Disagreement `json:"disagreements"`
	DecisionPacket DecisionPacket `json:"decision_packet"`
	InterviewPlan  *InterviewPlan `json:"interview_plan,omitempty"`
}

// Validate revalidates the packet and any plan.
func (out *SynthesizeOutput) Validate() error {
	if err := out.DecisionPacket.Validate(); err != nil {
		return err
	}
	if out.InterviewPlan != nil {
		return out.InterviewPlan.Validate()
	}
	return nil
}
