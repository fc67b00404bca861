package synthesis

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hireloop/panelist/internal/domain"
)

const (
	// mustHaveGapThreshold is the panel-average floor below which a
	// must-have category counts as an unmet requirement.
	mustHaveGapThreshold = 3.0

	hireScoreFloor     = 4.0
	leanHireScoreFloor = 3.5
	leanNoScoreCeiling = 2.5

	// maxConsensusItems caps the deduplicated strengths and risks lists.
	maxConsensusItems = 5

	// mediumConfidenceCeiling is the highest disagreement count that still
	// maps to medium confidence.
	mediumConfidenceCeiling = 2
)

// categoryMean is the simple average of the collected scores for one
// category. Zero scores yield zero.
func categoryMean(pairs []roleScore) float64 {
	if len(pairs) == 0 {
		return 0
	}
	sum := 0
	for _, pair := range pairs {
		sum += pair.Score
	}
	return float64(sum) / float64(len(pairs))
}

// overallFitScore is the weighted panel average over the categories at
// least one reviewer scored, rounded to one decimal. The denominator is
// the weight sum of scored categories only, so partial coverage does not
// drag the score toward zero.
func overallFitScore(rubric *domain.Rubric, scores panelScores) float64 {
	weighted := 0.0
	totalWeight := 0.0

	for i := range rubric.Categories {
		pairs := scores[rubric.Categories[i].Name]
		if len(pairs) == 0 {
			continue
		}
		weighted += rubric.Categories[i].Weight * categoryMean(pairs)
		totalWeight += rubric.Categories[i].Weight
	}

	if totalWeight == 0 {
		return 0
	}
	return math.Round(weighted/totalWeight*10) / 10
}

// confidenceFor maps the disagreement count onto a discrete confidence
// level: none is high, one or two is medium, more is low.
func confidenceFor(disagreementCount int) domain.ConfidenceLevel {
	switch {
	case disagreementCount == 0:
		return domain.ConfidenceHigh
	case disagreementCount <= mediumConfidenceCeiling:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}

// consensusItems deduplicates panel items case-insensitively on trimmed
// text, counts repeats, and returns the five most repeated using the first
// occurrence's original spelling. The sort is stable, so ties stay in
// first-appearance order.
func consensusItems(items []string) []string {
	type entry struct {
		original string
		count    int
	}

	index := make(map[string]int, len(items))
	entries := make([]entry, 0, len(items))
	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if at, seen := index[key]; seen {
			entries[at].count++
			continue
		}
		index[key] = len(entries)
		entries = append(entries, entry{original: item, count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].count > entries[j].count })
	if len(entries) > maxConsensusItems {
		entries = entries[:maxConsensusItems]
	}

	result := make([]string, len(entries))
	for i := range entries {
		result[i] = entries[i].original
	}
	return result
}

// mustHaveGaps lists must-have categories whose panel mean fell below the
// gap threshold, in rubric order. Categories nobody scored are skipped;
// coverage validation upstream makes that unreachable in practice.
func mustHaveGaps(rubric *domain.Rubric, scores panelScores) []string {
	var gaps []string
	for i := range rubric.Categories {
		category := &rubric.Categories[i]
		if !category.IsMustHave {
			continue
		}
		pairs := scores[category.Name]
		if len(pairs) == 0 {
			continue
		}
		if avg := categoryMean(pairs); avg < mustHaveGapThreshold {
			gaps = append(gaps, fmt.Sprintf(
				"Must-have category '%s' scored below threshold (avg: %.1f/5.0)",
				category.Name, avg))
		}
	}
	return gaps
}

// recommendationFor applies the policy ladder in fixed order. A nil return
// withholds the call, signaling "pending interview". Gaps on a score of
// 4.0 or above also withhold: the packet invariants exclude negative calls
// at that score, and the gap list blocks the hire on its own.
func recommendationFor(fitScore float64, gapCount int) *domain.Recommendation {
	switch {
	case fitScore >= hireScoreFloor && gapCount == 0:
		return recommendationPtr(domain.RecommendationHire)
	case fitScore >= leanHireScoreFloor && gapCount == 0:
		return recommendationPtr(domain.RecommendationLeanHire)
	case gapCount > 0:
		if fitScore >= hireScoreFloor {
			return nil
		}
		return recommendationPtr(domain.RecommendationNo)
	case fitScore < leanNoScoreCeiling:
		return recommendationPtr(domain.RecommendationLeanNo)
	default:
		return nil
	}
}

func recommendationPtr(r domain.Recommendation) *domain.Recommendation { return &r }

// buildDecisionPacket assembles and validates the packet from the already
// enriched disagreements and the collected scores.
func buildDecisionPacket(input *domain.SynthesizeInput, scores panelScores, disagreements []domain.Disagreement, generatedAt time.Time) (*domain.DecisionPacket, error) {
	fitScore := overallFitScore(&input.Rubric, scores)

	var allStrengths, allRisks []string
	for i := range input.PanelReviews {
		allStrengths = append(allStrengths, input.PanelReviews[i].TopStrengths...)
		allRisks = append(allRisks, input.PanelReviews[i].TopRisks...)
	}

	gaps := mustHaveGaps(&input.Rubric, scores)

	return domain.MakeDecisionPacket(domain.DecisionPacket{
		CandidateName:   input.CandidateName,
		RoleTitle:       input.Rubric.RoleTitle,
		OverallFitScore: fitScore,
		Confidence:      confidenceFor(len(disagreements)),
		Recommendation:  recommendationFor(fitScore, len(gaps)),
		TopStrengths:    consensusItems(allStrengths),
		TopRisks:        consensusItems(allRisks),
		MustHaveGaps:    gaps,
		Disagreements:   disagreements,
	}, generatedAt)
}
