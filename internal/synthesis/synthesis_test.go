package synthesis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/panelist/internal/domain"
)

func TestRunPanelSplitOnOneCategory(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{
			"Distributed Systems Depth": 4, "API Design Craft": 2, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{
			"Distributed Systems Depth": 4, "API Design Craft": 4, "Operational Maturity": 4,
		}),
	}
	input := synthInput(t, reviews, nil)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, output.Disagreements, 1)
	assert.Equal(t, "API Design Craft", output.Disagreements[0].CategoryName)
	assert.Equal(t, domain.ConfidenceMedium, output.DecisionPacket.Confidence)
	assert.Equal(t, output.Disagreements, output.DecisionPacket.Disagreements)

	require.NotNil(t, output.InterviewPlan)
	require.Len(t, output.InterviewPlan.QuestionsByInterviewer[domain.RoleHR], 1,
		"the low scorer probes the dispute")
	assert.Equal(t, "API Design Craft",
		output.InterviewPlan.QuestionsByInterviewer[domain.RoleHR][0].Category)
}

func TestRunMustHaveGapBlocksHire(t *testing.T) {
	rubric := testRubric(t)
	scores := map[string]int{
		"Distributed Systems Depth": 2, "API Design Craft": 4, "Operational Maturity": 4,
	}
	input := synthInput(t, []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, scores),
		reviewWithScores(domain.RoleTech, rubric, scores),
	}, nil)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	packet := output.DecisionPacket
	assert.InDelta(t, 3.2, packet.OverallFitScore, 1e-9)
	require.Len(t, packet.MustHaveGaps, 1)
	assert.Contains(t, packet.MustHaveGaps[0], "Distributed Systems Depth")
	require.NotNil(t, packet.Recommendation)
	assert.Equal(t, domain.RecommendationNo, *packet.Recommendation)
	assert.Equal(t, domain.ConfidenceHigh, packet.Confidence,
		"aligned reviewers are confident even about a bad fit")
}

func TestRunConsensusHire(t *testing.T) {
	rubric := testRubric(t)
	input := synthInput(t, evenPanel(rubric, 4), nil)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	packet := output.DecisionPacket
	assert.Empty(t, output.Disagreements)
	assert.InDelta(t, 4.0, packet.OverallFitScore, 1e-9)
	assert.Equal(t, domain.ConfidenceHigh, packet.Confidence)
	require.NotNil(t, packet.Recommendation)
	assert.Equal(t, domain.RecommendationHire, *packet.Recommendation)
	assert.Empty(t, packet.MustHaveGaps)
	assert.Nil(t, output.InterviewPlan, "consensus with nothing unresolved needs no interview")
}

func TestRunEnrichesDisagreementsFromMemory(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{
			"Distributed Systems Depth": 4, "API Design Craft": 2, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{
			"Distributed Systems Depth": 4, "API Design Craft": 4, "Operational Maturity": 4,
		}),
	}
	memory := map[domain.AgentRole]*domain.WorkingMemory{
		domain.RoleHR: memoryFor(domain.RoleHR,
			observation("API Design Craft", "Public API work lacks versioning detail", "Experience > Acme Corp", domain.SignalRisk),
		),
		domain.RoleTech: memoryFor(domain.RoleTech,
			observation("API Design Craft", "Shipped two public API versions", "Experience > Acme Corp", domain.SignalStrength),
		),
	}
	input := synthInput(t, reviews, memory)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	require.Len(t, output.Disagreements, 1)
	reason := output.Disagreements[0].Reason
	assert.Contains(t, reason, "Working Memory Context:")
	assert.Contains(t, reason, "- HR (score: 2) noted:")
	assert.Contains(t, reason, "Public API work lacks versioning detail")
	assert.Contains(t, reason, "- Tech (score: 4) noted:")
	assert.Contains(t, reason, "Shipped two public API versions")
	assert.Equal(t, reason, output.DecisionPacket.Disagreements[0].Reason,
		"the packet carries the enriched reasons")
}

func TestRunAggregatesStrengthsAcrossPanel(t *testing.T) {
	rubric := testRubric(t)
	reviews := evenPanel(rubric, 4)
	reviews[0].TopStrengths = []string{"Production ownership", "Clear writing", "Steady delivery"}
	reviews[1].TopStrengths = []string{"production ownership", "Deep streaming experience", "Sensible scope cuts"}
	input := synthInput(t, reviews, nil)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	strengths := output.DecisionPacket.TopStrengths
	require.Len(t, strengths, 5)
	assert.Equal(t, "Production ownership", strengths[0],
		"the repeated strength leads with its first-seen spelling")
	assert.NotContains(t, strengths, "production ownership")
}

func TestRunDeterministic(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{
			"Distributed Systems Depth": 2, "API Design Craft": 2, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{
			"Distributed Systems Depth": 3, "API Design Craft": 4, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleCompliance, rubric, map[string]int{
			"Distributed Systems Depth": 2, "API Design Craft": 3, "Operational Maturity": 5,
		}),
	}
	memory := map[domain.AgentRole]*domain.WorkingMemory{
		domain.RoleHR: memoryFor(domain.RoleHR,
			observation("Distributed Systems Depth", "Single-node systems only", "Experience", domain.SignalRisk),
		),
		domain.RoleTech: memoryFor(domain.RoleTech,
			observation("API Design Craft", "Shipped two public API versions", "Experience", domain.SignalStrength),
		),
	}
	memory[domain.RoleHR].Ambiguities = []string{"Scope of 'led migration' is unclear"}
	memory[domain.RoleTech].MissingInformation = []string{"Team size", "Monitoring practices"}

	input := synthInput(t, reviews, memory)
	generatedAt := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)

	first, err := Run(&input, generatedAt)
	require.NoError(t, err)
	second, err := Run(&input, generatedAt)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input and timestamp yield identical output")
}

func TestRunOutputValidates(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{
			"Distributed Systems Depth": 2, "API Design Craft": 2, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{
			"Distributed Systems Depth": 4, "API Design Craft": 4, "Operational Maturity": 4,
		}),
	}
	input := synthInput(t, reviews, nil)

	output, err := Run(&input, time.Now().UTC())

	require.NoError(t, err)
	assert.NoError(t, output.Validate())
}
