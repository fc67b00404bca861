package synthesis

import (
	"fmt"
	"strings"

	"github.com/hireloop/panelist/internal/domain"
)

const (
	// criticalDelta is the spread at which a disagreement stops being
	// resolvable by questioning alone.
	criticalDelta = 2.0

	resolutionCritical = "Critical disagreement - requires interview validation and reference checks"
	resolutionModerate = "Moderate disagreement - recommend targeted interview questions"

	// enrichmentObservationLimit caps how many observations one role
	// contributes to a disagreement's memory context.
	enrichmentObservationLimit = 2
)

// detectDisagreements scans rubric categories in rubric order and emits a
// disagreement wherever the score spread reaches the configured threshold.
// Categories scored by fewer than two reviewers are skipped. The model
// floor keeps the effective threshold at one point even when the
// configured value is lower.
func detectDisagreements(rubric *domain.Rubric, scores panelScores, threshold float64) ([]domain.Disagreement, error) {
	var disagreements []domain.Disagreement

	for i := range rubric.Categories {
		name := rubric.Categories[i].Name
		pairs := scores[name]
		if len(pairs) < 2 {
			continue
		}

		minScore, maxScore := pairs[0].Score, pairs[0].Score
		for _, pair := range pairs[1:] {
			if pair.Score < minScore {
				minScore = pair.Score
			}
			if pair.Score > maxScore {
				maxScore = pair.Score
			}
		}
		delta := float64(maxScore - minScore)
		if delta < 1 || delta < threshold {
			continue
		}

		var highRoles, lowRoles []string
		agentScores := make(map[domain.AgentRole]int, len(pairs))
		for _, pair := range pairs {
			agentScores[pair.Role] = pair.Score
			if pair.Score == maxScore {
				highRoles = append(highRoles, string(pair.Role))
			}
			if pair.Score == minScore {
				lowRoles = append(lowRoles, string(pair.Role))
			}
		}

		reason := fmt.Sprintf(
			"Score conflict detected: %s scored %d, while %s scored %d (delta: %.1f). "+
				"This suggests different priorities or interpretation of evidence.",
			strings.Join(highRoles, ", "), maxScore,
			strings.Join(lowRoles, ", "), minScore,
			delta,
		)

		resolution := resolutionModerate
		if delta >= criticalDelta {
			resolution = resolutionCritical
		}

		d, err := domain.NewDisagreement(name, agentScores, reason, resolution)
		if err != nil {
			return nil, fmt.Errorf("building disagreement for category %q: %w", name, err)
		}
		disagreements = append(disagreements, *d)
	}

	return disagreements, nil
}

// enrichDisagreements appends working-memory context to each disagreement's
// reason: per scoring role in collection order, up to two observations
// whose category matches the disputed one. Roles without memory are
// skipped; when no memory exists at all the reasons are left untouched.
func enrichDisagreements(disagreements []domain.Disagreement, scores panelScores, memory map[domain.AgentRole]*domain.WorkingMemory) {
	if len(memory) == 0 {
		return
	}

	for i := range disagreements {
		d := &disagreements[i]

		var b strings.Builder
		b.WriteString(d.Reason)
		b.WriteString("\n\nWorking Memory Context:")

		for _, pair := range scores[d.CategoryName] {
			m := memory[pair.Role]
			if m == nil {
				continue
			}

			relevant := m.ObservationsForCategory(d.CategoryName, enrichmentObservationLimit)
			if len(relevant) == 0 {
				fmt.Fprintf(&b, "\n- %s (score: %d): No specific observations recorded for this category",
					pair.Role, pair.Score)
				continue
			}

			fmt.Fprintf(&b, "\n- %s (score: %d) noted:", pair.Role, pair.Score)
			for _, obs := range relevant {
				text := obs.Observation
				if obs.EvidenceLocation != "" {
					text += fmt.Sprintf(" (from %s)", obs.EvidenceLocation)
				}
				if obs.StrengthOrRisk != "" {
					text += fmt.Sprintf(" [%s]", obs.StrengthOrRisk)
				}
				fmt.Fprintf(&b, "\n  • %s", text)
			}
		}

		d.Reason = b.String()
	}
}
