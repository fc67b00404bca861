package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/panelist/internal/domain"
)

func TestPlanProbesMustHaveGap(t *testing.T) {
	rubric := testRubric(t)
	scores := map[string]int{
		"Distributed Systems Depth": 2, "API Design Craft": 4, "Operational Maturity": 4,
	}
	input := synthInput(t, []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, scores),
		reviewWithScores(domain.RoleTech, rubric, scores),
	}, nil)

	plan, err := buildInterviewPlan(&input, collectScores(&input.Rubric, input.PanelReviews), nil)

	require.NoError(t, err)
	require.NotNil(t, plan)

	require.Len(t, plan.QuestionsByInterviewer[domain.RoleHR], 1,
		"every reviewer who scored the gap low asks about it")
	require.Len(t, plan.QuestionsByInterviewer[domain.RoleTech], 1)

	q := plan.QuestionsByInterviewer[domain.RoleHR][0]
	assert.Equal(t,
		"This role requires strong Distributed Systems Depth. Can you walk me through specific examples where you've demonstrated this?",
		q.Question)
	assert.Equal(t, "Distributed Systems Depth", q.Category)
	assert.Equal(t, domain.RoleHR, q.InterviewerRole)
	assert.Contains(t, q.WhatToListenFor, "Measurable outcomes")
	assert.Contains(t, q.RedFlags, "Team achievements without personal contribution")

	assert.Equal(t, []string{"Distributed Systems Depth"}, plan.PriorityAreas)
	require.NotNil(t, plan.TimeEstimateMinutes)
	assert.Equal(t, 30, *plan.TimeEstimateMinutes, "fifteen minutes per role with questions")
}

func TestPlanGapQuestionOnlyForLowScorers(t *testing.T) {
	rubric := testRubric(t)
	input := synthInput(t, []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{"Distributed Systems Depth": 2}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{"Distributed Systems Depth": 3}),
	}, nil)

	plan, err := buildInterviewPlan(&input, collectScores(&input.Rubric, input.PanelReviews), nil)

	require.NoError(t, err)
	require.NotNil(t, plan, "mean 2.5 is a gap")
	assert.Len(t, plan.QuestionsByInterviewer[domain.RoleHR], 1)
	assert.Empty(t, plan.QuestionsByInterviewer[domain.RoleTech],
		"a reviewer at the threshold has nothing to probe")
}

func TestPlanAssignsDisagreementToLowestScorer(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{"API Design Craft": 2}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{"API Design Craft": 4}),
	}
	input := synthInput(t, reviews, nil)
	scores := collectScores(&input.Rubric, input.PanelReviews)

	disagreements, err := detectDisagreements(&input.Rubric, scores, 1.0)
	require.NoError(t, err)

	plan, err := buildInterviewPlan(&input, scores, disagreements)

	require.NoError(t, err)
	require.NotNil(t, plan)
	require.Len(t, plan.QuestionsByInterviewer[domain.RoleHR], 1, "the skeptic asks")
	assert.Empty(t, plan.QuestionsByInterviewer[domain.RoleTech])

	q := plan.QuestionsByInterviewer[domain.RoleHR][0]
	assert.Equal(t,
		"Tell me about your experience with API Design Craft. What's your approach and what results have you achieved?",
		q.Question)
	assert.Equal(t, "API Design Craft", q.Category)
	assert.Equal(t, []string{"API Design Craft"}, plan.PriorityAreas)
}

func TestPlanDisagreementTieGoesToEarlierCompletion(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleCompliance, rubric, map[string]int{"API Design Craft": 2}),
		reviewWithScores(domain.RoleHR, rubric, map[string]int{"API Design Craft": 2}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{"API Design Craft": 4}),
	}
	input := synthInput(t, reviews, nil)
	scores := collectScores(&input.Rubric, input.PanelReviews)

	disagreements, err := detectDisagreements(&input.Rubric, scores, 1.0)
	require.NoError(t, err)

	plan, err := buildInterviewPlan(&input, scores, disagreements)

	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.Len(t, plan.QuestionsByInterviewer[domain.RoleCompliance], 1,
		"first reviewer at the minimum wins the tie")
	assert.Empty(t, plan.QuestionsByInterviewer[domain.RoleHR])
}

func TestPlanMemoryQuestionsPerSourceLimits(t *testing.T) {
	rubric := testRubric(t)
	input := synthInput(t, evenPanel(rubric, 4), nil)

	memory := memoryFor(domain.RoleHR,
		observation("Distributed Systems Depth", "Solid consensus work", "Experience", domain.SignalStrength),
	)
	memory.Ambiguities = []string{
		"Scope of 'led migration' is unclear",
		"Production status of the API work is unclear",
		"Third ambiguity that must not render",
	}
	memory.MissingInformation = []string{"Team size", "Monitoring practices", "Incident history"}
	memory.CrossReferences = []domain.CrossReference{
		{
			Claim:                 "Five years of distributed systems work",
			ClaimLocation:         "Summary > Headline",
			ContradictoryEvidence: []string{"Experience shows three years"},
			Assessment:            domain.ClaimPartiallySupported,
		},
		{
			Claim:                 "Led a team of ten",
			ClaimLocation:         "Summary",
			ContradictoryEvidence: []string{"No leadership history listed"},
			Assessment:            domain.ClaimContradictory,
		},
	}
	input.AgentWorkingMemory = map[domain.AgentRole]*domain.WorkingMemory{domain.RoleHR: memory}

	plan, err := buildInterviewPlan(&input, collectScores(&input.Rubric, input.PanelReviews), nil)

	require.NoError(t, err)
	require.NotNil(t, plan)

	questions := plan.QuestionsByInterviewer[domain.RoleHR]
	require.Len(t, questions, 5, "two ambiguities, two gaps, one claim")

	assert.Equal(t, "Can you clarify: Scope of 'led migration' is unclear?", questions[0].Question)
	assert.Equal(t, "Clarification", questions[0].Category)
	assert.Equal(t, "Clarification", questions[1].Category)
	assert.Equal(t,
		"I noticed your resume doesn't mention Team size. Can you speak to your experience in this area?",
		questions[2].Question)
	assert.Equal(t, "Gap Exploration", questions[2].Category)
	assert.Equal(t, "Gap Exploration", questions[3].Category)
	assert.Equal(t,
		"Your resume states 'Five years of distributed systems work'. Can you walk me through specific examples?",
		questions[4].Question)
	assert.Equal(t, "Claim Verification", questions[4].Category)

	for _, q := range questions {
		assert.NotContains(t, q.Question, "Third ambiguity")
		assert.NotContains(t, q.Question, "Led a team of ten",
			"only one contradicted claim is verified")
	}

	assert.Empty(t, plan.QuestionsByInterviewer[domain.RoleTech])
	require.NotNil(t, plan.TimeEstimateMinutes)
	assert.Equal(t, 15, *plan.TimeEstimateMinutes)
	assert.Equal(t, []string{"Clarification", "Gap Exploration", "Claim Verification"},
		plan.PriorityAreas,
		"memory questions feed priority areas only as the fallback")
}

func TestPlanHonorsPerRoleCap(t *testing.T) {
	rubric := testRubric(t)
	reviews := []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, map[string]int{
			"Distributed Systems Depth": 2, "API Design Craft": 2, "Operational Maturity": 4,
		}),
		reviewWithScores(domain.RoleTech, rubric, map[string]int{
			"Distributed Systems Depth": 2, "API Design Craft": 4, "Operational Maturity": 4,
		}),
	}
	input := synthInput(t, reviews, nil)
	input.Config.MaxQuestionsPerInterviewer = 2

	memory := memoryFor(domain.RoleHR,
		observation("Distributed Systems Depth", "Solid consensus work", "Experience", domain.SignalStrength),
	)
	memory.Ambiguities = []string{"Scope of 'led migration' is unclear"}
	input.AgentWorkingMemory = map[domain.AgentRole]*domain.WorkingMemory{domain.RoleHR: memory}

	scores := collectScores(&input.Rubric, input.PanelReviews)
	disagreements, err := detectDisagreements(&input.Rubric, scores, 1.0)
	require.NoError(t, err)
	require.Len(t, disagreements, 1)

	plan, err := buildInterviewPlan(&input, scores, disagreements)

	require.NoError(t, err)
	require.NotNil(t, plan)

	questions := plan.QuestionsByInterviewer[domain.RoleHR]
	require.Len(t, questions, 2, "cap applies across sources in order")
	assert.Equal(t, "Distributed Systems Depth", questions[0].Category,
		"gap question claims the first slot")
	assert.Equal(t, "API Design Craft", questions[1].Category,
		"disagreement question claims the second; memory misses out")
}

func TestPlanNilWhenNothingToProbe(t *testing.T) {
	rubric := testRubric(t)
	input := synthInput(t, evenPanel(rubric, 4), nil)

	plan, err := buildInterviewPlan(&input, collectScores(&input.Rubric, input.PanelReviews), nil)

	require.NoError(t, err)
	assert.Nil(t, plan, "a clean run needs no interview plan")
}

func TestPlanValidates(t *testing.T) {
	rubric := testRubric(t)
	scores := map[string]int{
		"Distributed Systems Depth": 2, "API Design Craft": 4, "Operational Maturity": 4,
	}
	input := synthInput(t, []domain.AgentReview{
		reviewWithScores(domain.RoleHR, rubric, scores),
		reviewWithScores(domain.RoleTech, rubric, scores),
	}, nil)

	plan, err := buildInterviewPlan(&input, collectScores(&input.Rubric, input.PanelReviews), nil)

	require.NoError(t, err)
	require.NotNil(t, plan)
	assert.NoError(t, plan.Validate())
}
