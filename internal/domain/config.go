package domain

import "fmt"

// Default panel configuration values.
const (
	DefaultMaxPanelAgents             = 4
	DefaultRubricCategoryCount        = 5
	DefaultDisagreementThreshold      = 1.0
	DefaultMaxQuestionsPerInterviewer = 7

	// DefaultActivityTimeoutSeconds bounds one pipeline stage. A reviewer
	// stage makes two sequential generation calls, so the bound covers both
	// with headroom for retries inside the gateway.
	DefaultActivityTimeoutSeconds = 300
)

// PanelConfig is the explicit, immutable configuration for one run. It
// travels inside the request; core components never consult ambient or
// process-global settings.
type PanelConfig struct {
	// EnableWorkingMemory toggles the two-pass protocol. When false the
	// reviewer collapses to a single scoring pass and the coordinator
	// skips memory merging and the review/memory set comparison.
	EnableWorkingMemory bool `json:"enable_working_memory"`

	// EnableProductAgent seats the optional fourth reviewer.
	EnableProductAgent bool `json:"enable_product_agent"`

	// MaxPanelAgents caps the fan-out width.
	MaxPanelAgents int `json:"max_panel_agents" validate:"gte=1,lte=10"`

	// RubricCategoryCount is the target category count requested from
	// rubric generation.
	RubricCategoryCount int `json:"rubric_categories_count" validate:"gte=3,lte=10"`

	// DisagreementThreshold is the score-delta cutoff for flagging a
	// category as disputed.
	DisagreementThreshold float64 `json:"disagreement_threshold" validate:"gte=0,lte=5"`

	// MaxQuestionsPerInterviewer caps each role's interview questions.
	MaxQuestionsPerInterviewer int `json:"max_interview_questions_per_agent" validate:"gte=1,lte=20"`

	// ActivityTimeoutSeconds is the start-to-close bound for each pipeline
	// stage, in seconds.
	ActivityTimeoutSeconds int64 `json:"activity_timeout_seconds" validate:"gte=30,lte=3600"`
}

// DefaultPanelConfig returns the stock configuration: working memory on,
// Product agent off, three-seat panel with room for a fourth.
func DefaultPanelConfig() PanelConfig {
	return PanelConfig{
		EnableWorkingMemory:        true,
		EnableProductAgent:         false,
		MaxPanelAgents:             DefaultMaxPanelAgents,
		RubricCategoryCount:        DefaultRubricCategoryCount,
		DisagreementThreshold:      DefaultDisagreementThreshold,
		MaxQuestionsPerInterviewer: DefaultMaxQuestionsPerInterviewer,
		ActivityTimeoutSeconds:     DefaultActivityTimeoutSeconds,
	}
}

// Validate checks the configuration's ranges.
func (c *PanelConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// PanelRoles returns the reviewer roles this configuration seats, in
// declaration order: HR, Tech, Compliance, then Product when enabled,
// truncated to MaxPanelAgents.
func (c *PanelConfig) PanelRoles() []AgentRole {
	roles := []AgentRole{RoleHR, RoleTech, RoleCompliance}
	if c.EnableProductAgent {
		roles = append(roles, RoleProduct)
	}
	if c.MaxPanelAgents > 0 && len(roles) > c.MaxPanelAgents {
		roles = roles[:c.MaxPanelAgents]
	}
	return roles
}
