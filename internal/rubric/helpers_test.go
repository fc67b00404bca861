package rubric

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hireloop/panelist/internal/domain"
)

// testCriteria returns anchor-level criteria that pass every advisory check.
func testCriteria() []domain.ScoringCriteria {
	return []domain.ScoringCriteria{
		{
			ScoreValue:  0,
			Description: "No evidence of the competency in any resume section",
			Indicators: []string{
				"Resume never mentions the competency area",
				"Listed projects are unrelated to the competency",
			},
		},
		{
			ScoreValue:  3,
			Description: "Adequate evidence with limited depth or unclear scale",
			Indicators: []string{
				"One project in the area without scale indicators",
				"Framework mentioned without production context",
			},
		},
		{
			ScoreValue:  5,
			Description: "Strong production evidence across multiple roles with scale",
			Indicators: []string{
				"Multiple production deployments with concrete metrics",
				"Clear ownership of systems operating at scale",
			},
		},
	}
}

func testCategory(name string, weight float64, mustHave bool) domain.RubricCategory {
	return domain.RubricCategory{
		Name:            name,
		Description:     "Evaluates depth of " + name + " based on resume evidence",
		Weight:          weight,
		IsMustHave:      mustHave,
		ScoringCriteria: testCriteria(),
	}
}

// testRubric builds a five-category rubric that passes both the hard domain
// invariants and the advisory lint.
func testRubric(t *testing.T) *domain.Rubric {
	t.Helper()

	r, err := domain.NewRubric("Senior Backend Engineer", []domain.RubricCategory{
		testCategory("Distributed Systems Depth", 0.30, true),
		testCategory("API Design Craft", 0.25, true),
		testCategory("Performance Engineering", 0.20, false),
		testCategory("Data Modeling Judgment", 0.15, false),
		testCategory("Operational Maturity", 0.10, false),
	})
	require.NoError(t, err)
	return r
}
