package rubric

import (
	"fmt"
	"strings"

	"github.com/hireloop/panelist/internal/domain"
)

// promptTemplate instructs the model to produce a rubric as strict JSON.
// Placeholders, in order: category count, category count, job description,
// company context, category count.
const promptTemplate = `You are an expert hiring orchestrator designing evaluation rubrics for technical roles.

Your task is to generate a comprehensive, job-specific evaluation rubric that will be used by a panel of agents (HR, Technical, Compliance) to assess candidate resumes.

## Requirements

Generate a rubric with exactly %d categories that cover the key competencies for this role.

1. Rubric structure:
   - "role_title": the job title being evaluated (extract from the job description or derive from the role context)
   - "categories": exactly %d category objects

2. Each category must include:
   - "name": clear, descriptive category name (e.g., "Agent Orchestration Depth", never generic names like "Skills")
   - "description": detailed explanation of what this category evaluates
   - "weight": float between 0.0 and 1.0 representing importance
   - "is_must_have": boolean flag for critical requirements
   - "scoring_criteria": at least 3 scoring levels, each with:
     - "score_value": numeric score on a 0/3/5 scale
     - "description": what this score level represents (detailed, not one-liners)
     - "indicators": 2-4 specific, observable signals to look for in a resume

3. Weight distribution:
   - All category weights must sum to exactly 1.0
   - Critical skills get higher weights
   - Typical distribution: must-have categories 0.20-0.30, important 0.15-0.20, nice-to-have 0.10-0.15

4. Must-have requirements:
   - Mark 1-2 categories as "is_must_have": true
   - Must-haves represent core competencies without which the candidate cannot succeed

5. Scoring criteria:
   - Use the 0/3/5 scale: 0 (not present/poor), 3 (adequate/good), 5 (strong/excellent)
   - Include specific, observable indicators for each level
   - Focus on resume evidence, not interview performance

## Input Context

Job Description:
%s

Company Context:
%s

## Instructions

1. Extract or derive the role_title from the job description
2. Identify the %d most important competencies for this role
3. Use the company context to tailor category weights and must-have flags
4. Create specific, observable scoring criteria with concrete indicators
5. Ensure weights sum to exactly 1.0 and reflect the true importance hierarchy

Return only a single JSON object matching the structure above. No prose outside the JSON.`

// BuildPrompt renders the rubric generation prompt for the given input.
// A blank company context is replaced with an explicit marker so the model
// does not invent one.
func BuildPrompt(input domain.GenerateRubricInput) string {
	companyContext := strings.TrimSpace(input.CompanyContext)
	if companyContext == "" {
		companyContext = domain.DefaultCompanyContext
	}

	return fmt.Sprintf(promptTemplate,
		input.CategoryCount,
		input.CategoryCount,
		strings.TrimSpace(input.JobDescription),
		companyContext,
		input.CategoryCount,
	)
}
