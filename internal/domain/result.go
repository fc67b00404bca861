package domain

import "time"

// RunMetadata annotates a completed run with identifiers and timings.
type RunMetadata struct {
	WorkflowID     string      `json:"workflow_id"`
	RunID          string      `json:"run_id"`
	StartedAt      time.Time   `json:"started_at"`
	CompletedAt    time.Time   `json:"completed_at"`
	DurationMillis int64       `json:"duration_ms"`
	PanelRoles     []AgentRole `json:"panel_roles"`
	RubricWarnings []string    `json:"rubric_warnings,omitempty"`
}

// RunResult is the workflow's final structure: the seven run-state fields
// populated by the end of synthesis. The interview plan is nil when the run
// surfaced nothing to probe.
type RunResult struct {
	Rubric             *Rubric                      `json:"rubric"`
	PanelReviews       []AgentReview                `json:"panel_reviews"`
	AgentWorkingMemory map[AgentRole]*WorkingMemory `json:"agent_working_memory"`
	Disagreements      []Disagreement               `json:"disagreements"`
	DecisionPacket     *DecisionPacket              `json:"decision_packet"`
	InterviewPlan      *InterviewPlan               `json:"interview_plan,omitempty"`
	Metadata           RunMetadata                  `json:"metadata"`
}
