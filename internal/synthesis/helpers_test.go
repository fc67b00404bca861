package synthesis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hireloop/panelist/internal/domain"
)

func anchorCriteria() []domain.ScoringCriteria {
	return []domain.ScoringCriteria{
		{ScoreValue: 0, Description: "No evidence in any resume section", Indicators: []string{"Area never mentioned"}},
		{ScoreValue: 3, Description: "Adequate evidence with limited depth", Indicators: []string{"One project without scale"}},
		{ScoreValue: 5, Description: "Strong production evidence at scale", Indicators: []string{"Multiple deployments with metrics"}},
	}
}

func testRubric(t *testing.T) *domain.Rubric {
	t.Helper()

	r, err := domain.NewRubric("Senior Backend Engineer", []domain.RubricCategory{
		{
			Name:            "Distributed Systems Depth",
			Description:     "Consensus, replication, and fault tolerance in production",
			Weight:          0.40,
			IsMustHave:      true,
			ScoringCriteria: anchorCriteria(),
		},
		{
			Name:            "API Design Craft",
			Description:     "Interface design, versioning, and backward compatibility",
			Weight:          0.35,
			ScoringCriteria: anchorCriteria(),
		},
		{
			Name:            "Operational Maturity",
			Description:     "Monitoring, on-call discipline, and incident response",
			Weight:          0.25,
			ScoringCriteria: anchorCriteria(),
		},
	})
	require.NoError(t, err)
	return r
}

// reviewWithScores builds a review scoring exactly the categories present
// in the scores map, in rubric order. Strengths and risks carry the role
// name so aggregation tests can tell contributions apart.
func reviewWithScores(role domain.AgentRole, rubric *domain.Rubric, scores map[string]int) domain.AgentReview {
	var categoryScores []domain.CategoryScore
	for i := range rubric.Categories {
		name := rubric.Categories[i].Name
		score, ok := scores[name]
		if !ok {
			continue
		}
		categoryScores = append(categoryScores, domain.CategoryScore{
			CategoryName: name,
			Score:        score,
			Evidence: []domain.Evidence{
				{
					ResumeText:     "Built and operated the order-routing services",
					LineReference:  "Experience section, 2nd bullet",
					Interpretation: "Direct ownership of production systems",
				},
			},
			Gaps:       []string{},
			Confidence: domain.ConfidenceMedium,
		})
	}

	return domain.AgentReview{
		AgentRole:         role,
		CategoryScores:    categoryScores,
		OverallAssessment: "Credible production background with open questions on scale.",
		TopStrengths: []string{
			string(role) + " strength one",
			string(role) + " strength two",
			string(role) + " strength three",
		},
		TopRisks: []string{
			string(role) + " risk one",
			string(role) + " risk two",
			string(role) + " risk three",
		},
		FollowUpQuestions: []string{"What did the migration change for users?"},
	}
}

// memoryFor builds working memory with the given observations and empty
// probe sources; tests append ambiguities and cross-references as needed.
func memoryFor(role domain.AgentRole, observations ...domain.KeyObservation) *domain.WorkingMemory {
	return &domain.WorkingMemory{
		AgentRole:       role,
		KeyObservations: observations,
		CreatedAt:       time.Date(2025, 6, 12, 9, 30, 0, 0, time.UTC),
	}
}

func observation(category, text, location string, label domain.StrengthOrRisk) domain.KeyObservation {
	return domain.KeyObservation{
		Category:         category,
		Observation:      text,
		EvidenceLocation: location,
		StrengthOrRisk:   label,
	}
}

func synthInput(t *testing.T, reviews []domain.AgentReview, memory map[domain.AgentRole]*domain.WorkingMemory) domain.SynthesizeInput {
	t.Helper()
	return domain.SynthesizeInput{
		Rubric:             *testRubric(t),
		PanelReviews:       reviews,
		AgentWorkingMemory: memory,
		Config:             domain.DefaultPanelConfig(),
	}
}

// evenPanel scores every category identically for both reviewers.
func evenPanel(rubric *domain.Rubric, score int) []domain.AgentReview {
	scores := make(map[string]int, len(rubric.Categories))
	for i := range rubric.Categories {
		scores[rubric.Categories[i].Name] = score
	}
	return []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, scores),
		reviewWithScores(domain.RoleTech, rubric, scores),
	}
}
