package review

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hireloop/panelist/internal/domain"
)

const memoryPromptTemplate = `You are a %s agent performing systematic resume analysis for a hiring panel.

Your task is to extract working memory by carefully reading the resume and creating structured observations that will inform your evaluation in the next pass.

## Resume

%s

## Rubric Categories to Analyze

%s

## Working Memory Structure

Extract the following information:

1. Key observations (aim for 5-8 total across all categories). Each observation must include:
   - "category": the rubric category this observation relates to, exactly as named above
   - "observation": what you noticed in the resume
   - "evidence_location": where this was found (e.g., "Experience > Senior Engineer section"); use "N/A - absent from all sections" for observations about missing evidence
   - "strength_or_risk": "strength", "risk", or "neutral"
   Focus on concrete evidence: specific projects, technologies, timeframes, scale indicators. Note both strengths and gaps relative to the category requirements.

2. Cross-references (aim for 3-5). Verify claims from the resume summary or headline against the experience section. Each must include:
   - "claim": the claim being made
   - "claim_location": where the claim appears
   - "supporting_evidence": resume sections that support this claim
   - "contradictory_evidence": resume sections that contradict it
   - "assessment": "well-supported", "partially-supported", "unsupported", or "contradictory"

3. Timeline analysis (optional, recommended): career progression pattern, job tenure, seniority trajectory, and recency of the most relevant skills.

4. Missing information (aim for 3-5 items): important information absent for this seniority level or role, such as scale indicators, impact metrics, collaboration signals, or production practices.

5. Ambiguities needing clarification (aim for 2-4 items): statements that are vague, unclear in scope, or require interview follow-up.

## Output Format

Return a single valid JSON object:

{
  "agent_role": "%s",
  "key_observations": [
    {"category": "...", "observation": "...", "evidence_location": "...", "strength_or_risk": "strength"}
  ],
  "cross_references": [
    {"claim": "...", "claim_location": "...", "supporting_evidence": ["..."], "contradictory_evidence": [], "assessment": "well-supported"}
  ],
  "timeline_analysis": "...",
  "missing_information": ["..."],
  "ambiguities": ["..."]
}

Critical requirements:
1. agent_role must be exactly "%s"
2. key_observations must have 3-15 items
3. Every key_observation must include all four fields
4. Every cross_reference must include all five fields, with at least one of supporting_evidence or contradictory_evidence non-empty
5. Observation categories must use the rubric category names exactly

No prose outside the JSON.`

const reviewPromptTemplate = `You are a %s agent on a hiring panel evaluating a candidate's resume.

Your role focuses on:
%s

## Resume

%s

## Evaluation Rubric

%s
%s## Instructions

Evaluate the candidate against each rubric category%s:

1. Score each category from 0 to 5 using its scoring criteria. For every category provide:
   - "category_name": the category name exactly as it appears in the rubric
   - "score": integer 0-5
   - "evidence": at least one object with "resume_text" (a direct quote, not a paraphrase), "line_reference" (e.g., "Experience section, 2nd bullet"), and "interpretation" (why this evidence matters for the score)
   - "gaps": missing or unclear information that prevented a higher score (empty array if none)
   - "confidence": "high", "medium", or "low" based on evidence quality

Scoring guidance:
%s

2. Identify the top 3 strengths: the strongest qualifications, each backed by specific evidence.

3. Identify the top 3 risks: the biggest concerns or red flags, each backed by specific evidence.

4. Generate 3-5 follow-up interview questions derived from ambiguities, missing information, contradictions, or areas needing more depth.

5. Write a 2-3 sentence overall assessment from your role's perspective.
%s
## Output Format

Return a single valid JSON object:

{
  "agent_role": "%s",
  "category_scores": [
    {
      "category_name": "...",
      "score": 4,
      "evidence": [{"resume_text": "...", "line_reference": "...", "interpretation": "..."}],
      "gaps": ["..."],
      "confidence": "high"
    }
  ],
  "overall_assessment": "...",
  "top_strengths": ["...", "...", "..."],
  "top_risks": ["...", "...", "..."],
  "follow_up_questions": ["...", "...", "..."]
}

Critical requirements:
1. category_scores must cover ALL rubric categories, each exactly once, using exact names. Missing or extra categories fail validation.
2. Every category score needs at least one complete evidence object.
3. top_strengths and top_risks each need 3-5 items.
4. follow_up_questions needs at least 1 item (aim for 3-5).
5. agent_role must be exactly "%s".

No prose outside the JSON.`

// BuildMemoryPrompt renders the pass-one extraction prompt for a role.
func BuildMemoryPrompt(role domain.AgentRole, resume string, rubric *domain.Rubric) string {
	return fmt.Sprintf(memoryPromptTemplate,
		role,
		strings.TrimSpace(resume),
		categoriesDigest(rubric),
		role,
		role,
	)
}

// BuildReviewPrompt renders the pass-two evaluation prompt. When memory is
// nil (working memory disabled) the prompt omits the memory digest and
// grounding instruction.
func BuildReviewPrompt(role domain.AgentRole, resume string, rubric *domain.Rubric, memory *domain.WorkingMemory) string {
	profile := profileFor(role)

	memorySection := ""
	groundingClause := ""
	if memory != nil {
		memorySection = "\n## Working Memory (From First Pass)\n\n" + memoryDigest(memory) + "\n"
		groundingClause = ", using the working memory observations as your evidence base"
	}

	emphasis := ""
	if profile.EmphasisNotes != "" {
		emphasis = "\n" + profile.EmphasisNotes + "\n"
	}

	return fmt.Sprintf(reviewPromptTemplate,
		role,
		profile.FocusAreas,
		strings.TrimSpace(resume),
		rubricDigest(rubric),
		memorySection,
		groundingClause,
		profile.ScoringGuidance,
		emphasis,
		role,
		role,
	)
}

// rubricDigest renders the rubric in the structured form reviewers score
// against: numbered categories with weight, must-have flag, and criteria
// sorted by score level.
func rubricDigest(r *domain.Rubric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**Role: %s**\n\n", r.RoleTitle)
	b.WriteString("## Evaluation Categories\n\n")

	for i := range r.Categories {
		category := &r.Categories[i]

		mustHave := "No"
		if category.IsMustHave {
			mustHave = "Yes"
		}
		fmt.Fprintf(&b, "### %d. %s (Weight: %.2f, Must-Have: %s)\n", i+1, category.Name, category.Weight, mustHave)
		b.WriteString(category.Description + "\n\n")

		b.WriteString("**Scoring Criteria:**\n")
		criteria := make([]domain.ScoringCriteria, len(category.ScoringCriteria))
		copy(criteria, category.ScoringCriteria)
		sort.Slice(criteria, func(x, y int) bool { return criteria[x].ScoreValue < criteria[y].ScoreValue })

		for j := range criteria {
			fmt.Fprintf(&b, "- **Score %d**: %s\n", criteria[j].ScoreValue, criteria[j].Description)
			b.WriteString("  - Indicators:\n")
			for _, indicator := range criteria[j].Indicators {
				b.WriteString("    - " + indicator + "\n")
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// categoriesDigest renders the short category list used by the pass-one
// prompt, flagging must-haves.
func categoriesDigest(r *domain.Rubric) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The rubric has %d categories to evaluate:\n\n", len(r.Categories))
	for i := range r.Categories {
		label := ""
		if r.Categories[i].IsMustHave {
			label = " (Must-Have)"
		}
		fmt.Fprintf(&b, "%d. %s%s\n", i+1, r.Categories[i].Name, label)
	}

	return strings.TrimRight(b.String(), "\n")
}

// memoryDigest renders working memory for the pass-two prompt: observations
// grouped by category in first-seen order, then cross-references, timeline,
// missing information, and ambiguities.
func memoryDigest(m *domain.WorkingMemory) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Working Memory (%s Agent)\n\n", m.AgentRole)

	b.WriteString("### Key Observations\n\n")
	var categoryOrder []string
	byCategory := make(map[string][]domain.KeyObservation)
	for _, obs := range m.KeyObservations {
		if _, seen := byCategory[obs.Category]; !seen {
			categoryOrder = append(categoryOrder, obs.Category)
		}
		byCategory[obs.Category] = append(byCategory[obs.Category], obs)
	}
	for _, category := range categoryOrder {
		fmt.Fprintf(&b, "**%s:**\n", category)
		for _, obs := range byCategory[category] {
			fmt.Fprintf(&b, "- [%s] %s\n", strings.ToUpper(string(obs.StrengthOrRisk)), obs.Observation)
			fmt.Fprintf(&b, "  - Evidence: %s\n", obs.EvidenceLocation)
		}
		b.WriteString("\n")
	}

	if len(m.CrossReferences) > 0 {
		b.WriteString("### Cross-References\n\n")
		for _, ref := range m.CrossReferences {
			fmt.Fprintf(&b, "**Claim:** %q (%s)\n", ref.Claim, ref.ClaimLocation)
			fmt.Fprintf(&b, "**Assessment:** %s\n", ref.Assessment)
			if len(ref.SupportingEvidence) > 0 {
				b.WriteString("**Supporting Evidence:**\n")
				for _, evidence := range ref.SupportingEvidence {
					b.WriteString("  - " + evidence + "\n")
				}
			}
			if len(ref.ContradictoryEvidence) > 0 {
				b.WriteString("**Contradictory Evidence:**\n")
				for _, evidence := range ref.ContradictoryEvidence {
					b.WriteString("  - " + evidence + "\n")
				}
			}
			b.WriteString("\n")
		}
	}

	if m.TimelineAnalysis != "" {
		b.WriteString("### Timeline Analysis\n\n")
		b.WriteString(m.TimelineAnalysis + "\n\n")
	}

	if len(m.MissingInformation) > 0 {
		b.WriteString("### Missing Information\n\n")
		for _, item := range m.MissingInformation {
			b.WriteString("- " + item + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.Ambiguities) > 0 {
		b.WriteString("### Ambiguities Needing Clarification\n\n")
		for _, item := range m.Ambiguities {
			b.WriteString("- " + item + "\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
