package domain

import (
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance used for struct validation.
var validate = validator.New(validator.WithRequiredStructEnabled())

// cloneScoreMap creates a deep copy of a role-to-score map to prevent
// aliasing. Returns nil for nil input to maintain consistency.
func cloneScoreMap(m map[AgentRole]int) map[AgentRole]int {
	if m == nil {
		return nil
	}
	result := make(map[AgentRole]int, len(m))
	for k, v := range m {
		result[k] = v
	}
	return result
}
