package review

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

func testMemory(role domain.AgentRole, rubric *domain.Rubric) *domain.WorkingMemory {
	return &domain.WorkingMemory{
		AgentRole: role,
		KeyObservations: []domain.KeyObservation{
			{
				Category:         rubric.Categories[0].Name,
				Observation:      "Led a three-service migration onto a consensus-backed store",
				EvidenceLocation: "Experience > Acme Corp section",
				StrengthOrRisk:   domain.SignalStrength,
			},
			{
				Category:         rubric.Categories[1].Name,
				Observation:      "No scale indicators for the public API work",
				EvidenceLocation: "N/A - absent from all sections",
				StrengthOrRisk:   domain.SignalRisk,
			},
			{
				Category:         rubric.Categories[2].Name,
				Observation:      "On-call rotation mentioned once without incident detail",
				EvidenceLocation: "Experience > Beta Systems section",
				StrengthOrRisk:   domain.SignalNeutral,
			},
		},
		CrossReferences: []domain.CrossReference{
			{
				Claim:              "Five years of distributed systems work",
				ClaimLocation:      "Summary > Headline",
				SupportingEvidence: []string{"Experience > Acme Corp (2019-2024)"},
				Assessment:         domain.ClaimWellSupported,
			},
		},
		TimelineAnalysis:   "Steady progression from junior to senior across two companies.",
		MissingInformation: []string{"Team size", "Monitoring practices", "Incident history"},
		Ambiguities:        []string{"Scope of 'led migration' is unclear", "Production status of the API work is unclear"},
		CreatedAt:          time.Now(),
	}
}

func testReview(role domain.AgentRole, rubric *domain.Rubric) *domain.AgentReview {
	scores := make([]domain.CategoryScore, 0, len(rubric.Categories))
	for i := range rubric.Categories {
		scores = append(scores, domain.CategoryScore{
			CategoryName: rubric.Categories[i].Name,
			Score:        3,
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

	return &domain.AgentReview{
		AgentRole:         role,
		CategoryScores:    scores,
		OverallAssessment: "Solid production engineer with verifiable ownership and a few unquantified claims.",
		TopStrengths:      []string{"Production ownership", "Consistent claims", "Clear progression"},
		TopRisks:          []string{"No impact metrics", "Unclear team scope", "Single-domain depth"},
		FollowUpQuestions: []string{"What did the migration change for users?"},
	}
}
