// Package synthesis turns validated panel state into the run's final
// artifacts: enriched disagreements, the decision packet, and the interview
// plan. No generation happens here. Every step is a pure function of the
// input plus one injected timestamp, so identical panel state always yields
// an identical packet apart from generated_at.
package synthesis

import (
	"time"

	"github.com/hireloop/panelist/internal/domain"
)

// roleScore pairs one reviewer with the score it gave one category. Slices
// of roleScore preserve review completion order, which drives every ordered
// rendering below. The AgentScores maps on the wire are never iterated.
type roleScore struct {
	Role  domain.AgentRole
	Score int
}

// panelScores indexes the ordered per-category scores by category name.
// Iteration is always driven by rubric category order.
type panelScores map[string][]roleScore

// collectScores gathers each reviewer's score per rubric category, keeping
// review completion order within each category. Reviewers that did not
// score a category are skipped.
func collectScores(rubric *domain.Rubric, reviews []domain.AgentReview) panelScores {
	scores := make(panelScores, len(rubric.Categories))
	for i := range rubric.Categories {
		name := rubric.Categories[i].Name
		for j := range reviews {
			if cs := reviews[j].ScoreForCategory(name); cs != nil {
				scores[name] = append(scores[name], roleScore{
					Role:  reviews[j].AgentRole,
					Score: cs.Score,
				})
			}
		}
	}
	return scores
}

// Run executes the synthesis pipeline: disagreement detection, memory
// enrichment, decision packet assembly, and interview planning. The caller
// injects generatedAt so the packet timestamp is the pipeline's only
// non-derived value.
func Run(input *domain.SynthesizeInput, generatedAt time.Time) (*domain.SynthesizeOutput, error) {
	scores := collectScores(&input.Rubric, input.PanelReviews)

	disagreements, err := detectDisagreements(&input.Rubric, scores, input.Config.DisagreementThreshold)
	if err != nil {
		return nil, err
	}
	enrichDisagreements(disagreements, scores, input.AgentWorkingMemory)

	packet, err := buildDecisionPacket(input, scores, disagreements, generatedAt)
	if err != nil {
		return nil, err
	}

	plan, err := buildInterviewPlan(input, scores, disagreements)
	if err != nil {
		return nil, err
	}

	return &domain.SynthesizeOutput{
		Disagreements:  disagreements,
		DecisionPacket: *packet,
		InterviewPlan:  plan,
	}, nil
}
