package synthesis

import (
	"fmt"

	"github.com/hireloop/panelist/internal/domain"
)

const (
	// minutesPerInterviewer sizes the time estimate: fifteen minutes per
	// role that received at least one question.
	minutesPerInterviewer = 15

	// Per-role pulls from one reviewer's working memory.
	memoryAmbiguityLimit     = 2
	memoryMissingInfoLimit   = 2
	memoryContradictionLimit = 1
)

// buildInterviewPlan assembles questions from three sources in fixed order:
// must-have gaps, disagreements, and working memory. Returns nil when the
// run surfaced nothing to probe.
func buildInterviewPlan(input *domain.SynthesizeInput, scores panelScores, disagreements []domain.Disagreement) (*domain.InterviewPlan, error) {
	b := newPlanBuilder(input.PanelReviews, input.Config.MaxQuestionsPerInterviewer)

	b.addMustHaveGapQuestions(&input.Rubric, scores)
	b.addDisagreementQuestions(scores, disagreements)
	b.addMemoryQuestions(input.AgentWorkingMemory)

	return b.plan()
}

// planBuilder accumulates questions per role under the per-role cap and
// tracks priority areas in first-seen order. All iteration runs over the
// review slice, never over maps, so assignment is reproducible.
type planBuilder struct {
	reviews    []domain.AgentReview
	capPerRole int

	questions     map[domain.AgentRole][]domain.InterviewQuestion
	priorityAreas []string
	prioritySeen  map[string]struct{}
}

func newPlanBuilder(reviews []domain.AgentReview, capPerRole int) *planBuilder {
	questions := make(map[domain.AgentRole][]domain.InterviewQuestion, len(reviews))
	for i := range reviews {
		if _, ok := questions[reviews[i].AgentRole]; !ok {
			questions[reviews[i].AgentRole] = []domain.InterviewQuestion{}
		}
	}
	return &planBuilder{
		reviews:      reviews,
		capPerRole:   capPerRole,
		questions:    questions,
		prioritySeen: make(map[string]struct{}),
	}
}

// assign appends a question to a role's list unless the role is already at
// the cap. Later sources lose out: assignment is first-come-first-served
// in source order.
func (b *planBuilder) assign(role domain.AgentRole, q domain.InterviewQuestion) {
	if len(b.questions[role]) >= b.capPerRole {
		return
	}
	b.questions[role] = append(b.questions[role], q)
}

func (b *planBuilder) markPriority(area string) {
	if _, seen := b.prioritySeen[area]; seen {
		return
	}
	b.prioritySeen[area] = struct{}{}
	b.priorityAreas = append(b.priorityAreas, area)
}

// addMustHaveGapQuestions probes each gapped must-have category: every
// reviewer who personally scored it below the gap threshold is asked to
// validate it in the interview.
func (b *planBuilder) addMustHaveGapQuestions(rubric *domain.Rubric, scores panelScores) {
	for i := range rubric.Categories {
		category := &rubric.Categories[i]
		if !category.IsMustHave {
			continue
		}
		pairs := scores[category.Name]
		if len(pairs) == 0 || categoryMean(pairs) >= mustHaveGapThreshold {
			continue
		}

		b.markPriority(category.Name)

		for j := range b.reviews {
			cs := b.reviews[j].ScoreForCategory(category.Name)
			if cs == nil || float64(cs.Score) >= mustHaveGapThreshold {
				continue
			}
			b.assign(b.reviews[j].AgentRole, domain.InterviewQuestion{
				Question: fmt.Sprintf(
					"This role requires strong %s. Can you walk me through specific examples where you've demonstrated this?",
					category.Name),
				Category:        category.Name,
				InterviewerRole: b.reviews[j].AgentRole,
				WhatToListenFor: []string{"Concrete examples", "Measurable outcomes", "Clear ownership", "Technical depth"},
				RedFlags:        []string{"Vague responses", "Lack of specifics", "Team achievements without personal contribution"},
			})
		}
	}
}

// addDisagreementQuestions assigns each disputed category to the reviewer
// that scored it lowest; the skeptic asks. Ties go to the earlier
// completion.
func (b *planBuilder) addDisagreementQuestions(scores panelScores, disagreements []domain.Disagreement) {
	for i := range disagreements {
		d := &disagreements[i]
		b.markPriority(d.CategoryName)

		pairs := scores[d.CategoryName]
		if len(pairs) == 0 {
			continue
		}
		lowest := pairs[0]
		for _, pair := range pairs[1:] {
			if pair.Score < lowest.Score {
				lowest = pair
			}
		}

		b.assign(lowest.Role, domain.InterviewQuestion{
			Question: fmt.Sprintf(
				"Tell me about your experience with %s. What's your approach and what results have you achieved?",
				d.CategoryName),
			Category:        d.CategoryName,
			InterviewerRole: lowest.Role,
			WhatToListenFor: []string{"Detailed examples", "Specific metrics", "Clear methodology", "Lessons learned"},
			RedFlags:        []string{"Inconsistent with resume", "Surface-level understanding", "Unable to discuss trade-offs"},
		})
	}
}

// addMemoryQuestions turns each reviewer's unresolved notes into probes for
// that same reviewer: up to two ambiguities, two missing-information items,
// and one contradicted claim. Memory-derived questions do not feed the
// priority areas.
func (b *planBuilder) addMemoryQuestions(memory map[domain.AgentRole]*domain.WorkingMemory) {
	if len(memory) == 0 {
		return
	}

	visited := make(map[domain.AgentRole]struct{}, len(b.reviews))
	for i := range b.reviews {
		role := b.reviews[i].AgentRole
		if _, done := visited[role]; done {
			continue
		}
		visited[role] = struct{}{}

		m := memory[role]
		if m == nil {
			continue
		}

		for _, ambiguity := range firstN(m.Ambiguities, memoryAmbiguityLimit) {
			b.assign(role, domain.InterviewQuestion{
				Question:        fmt.Sprintf("Can you clarify: %s?", ambiguity),
				Category:        "Clarification",
				InterviewerRole: role,
				WhatToListenFor: []string{"Specific examples", "Clear ownership", "Concrete details", "Timeline"},
				RedFlags:        []string{"Vague answers", "Deflection", "Inconsistency with resume"},
			})
		}

		for _, item := range firstN(m.MissingInformation, memoryMissingInfoLimit) {
			b.assign(role, domain.InterviewQuestion{
				Question: fmt.Sprintf(
					"I noticed your resume doesn't mention %s. Can you speak to your experience in this area?",
					item),
				Category:        "Gap Exploration",
				InterviewerRole: role,
				WhatToListenFor: []string{"Honest acknowledgment", "Related experience", "Learning approach", "Transferable skills"},
				RedFlags:        []string{"Defensive response", "Exaggeration", "Avoidance", "Overconfidence"},
			})
		}

		contradicted := 0
		for j := range m.CrossReferences {
			if !m.CrossReferences[j].IsContradicted() {
				continue
			}
			b.assign(role, domain.InterviewQuestion{
				Question: fmt.Sprintf(
					"Your resume states '%s'. Can you walk me through specific examples?",
					m.CrossReferences[j].Claim),
				Category:        "Claim Verification",
				InterviewerRole: role,
				WhatToListenFor: []string{"Detailed timeline", "Specific metrics", "Clear outcomes", "Consistency"},
				RedFlags:        []string{"Lack of specifics", "Timeline mismatch", "Backtracking", "Contradictory details"},
			})
			contradicted++
			if contradicted == memoryContradictionLimit {
				break
			}
		}
	}
}

// plan finalizes the builder. A run with zero questions yields no plan at
// all; otherwise the estimate counts fifteen minutes per role that has
// questions, and priority areas fall back to the assigned questions'
// categories when no gap or disagreement marked one.
func (b *planBuilder) plan() (*domain.InterviewPlan, error) {
	total := 0
	rolesWithQuestions := 0
	for _, questions := range b.questions {
		total += len(questions)
		if len(questions) > 0 {
			rolesWithQuestions++
		}
	}
	if total == 0 {
		return nil, nil
	}

	priorityAreas := b.priorityAreas
	if len(priorityAreas) == 0 {
		priorityAreas = b.fallbackPriorityAreas()
	}

	estimate := rolesWithQuestions * minutesPerInterviewer
	return domain.NewInterviewPlan(b.questions, priorityAreas, &estimate)
}

func (b *planBuilder) fallbackPriorityAreas() []string {
	var areas []string
	seen := make(map[string]struct{})
	for i := range b.reviews {
		for _, q := range b.questions[b.reviews[i].AgentRole] {
			if _, dup := seen[q.Category]; dup {
				continue
			}
			seen[q.Category] = struct{}{}
			areas = append(areas, q.Category)
		}
	}
	return areas
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
