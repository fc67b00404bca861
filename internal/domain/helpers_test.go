package domain

import (
	"testing"
	"time"
)

// fixedTime pins timestamps so fixtures stay comparable across runs.
var fixedTime = time.Date(2025, time.June, 12, 9, 30, 0, 0, time.UTC)

func anchorLevels() []ScoringCriteria {
	return []ScoringCriteria{
		{ScoreValue: 0, Description: "No evidence in any resume section", Indicators: []string{"Area never mentioned"}},
		{ScoreValue: 3, Description: "Adequate evidence with limited depth", Indicators: []string{"One project without scale"}},
		{ScoreValue: 5, Description: "Strong production evidence at scale", Indicators: []string{"Multiple deployments with metrics"}},
	}
}

func testCategories() []RubricCategory {
	return []RubricCategory{
		{
			Name:            "Distributed Systems Depth",
			Description:     "Consensus, replication, and fault tolerance in production",
			Weight:          0.40,
			IsMustHave:      true,
			ScoringCriteria: anchorLevels(),
		},
		{
			Name:            "API Design Craft",
			Description:     "Interface design, versioning, and backward compatibility",
			Weight:          0.35,
			ScoringCriteria: anchorLevels(),
		},
		{
			Name:            "Operational Maturity",
			Description:     "Monitoring, on-call discipline, and incident response",
			Weight:          0.25,
			ScoringCriteria: anchorLevels(),
		},
	}
}

func testRubric(t *testing.T) *Rubric {
	t.Helper()

	r, err := MakeRubric("Senior Backend Engineer", testCategories(), fixedTime)
	if err != nil {
		t.Fatalf("building test rubric: %v", err)
	}
	return r
}

func testEvidence() []Evidence {
	return []Evidence{
		{
			ResumeText:     "Built and operated the order-routing services",
			LineReference:  "Experience section, 2nd bullet",
			Interpretation: "Direct ownership of production systems",
		},
	}
}

// testReview scores every rubric category at the given score. Strengths and
// risks carry the role name so merge tests can tell contributions apart.
func testReview(role AgentRole, rubric *Rubric, score int) AgentReview {
	scores := make([]CategoryScore, 0, len(rubric.Categories))
	for i := range rubric.Categories {
		scores = append(scores, CategoryScore{
			CategoryName: rubric.Categories[i].Name,
			Score:        score,
			Evidence:     testEvidence(),
			Confidence:   ConfidenceMedium,
		})
	}
	return AgentReview{
		AgentRole:         role,
		CategoryScores:    scores,
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

func testObservation(category, text string) KeyObservation {
	return KeyObservation{
		Category:         category,
		Observation:      text,
		EvidenceLocation: "Experience section",
		StrengthOrRisk:   SignalStrength,
	}
}

// testMemory builds a minimal valid working memory aligned with testRubric.
func testMemory(role AgentRole) *WorkingMemory {
	return &WorkingMemory{
		AgentRole: role,
		KeyObservations: []KeyObservation{
			testObservation("Distributed Systems Depth", "Led the consensus-layer rewrite"),
			testObservation("API Design Craft", "Versioned the public API without breaking clients"),
			testObservation("Operational Maturity", "Ran on-call for the payments tier"),
		},
		CreatedAt: fixedTime,
	}
}
