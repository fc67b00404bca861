// Package domain provides core types and business logic for panel-based
// resume evaluation. It defines the rubric, working memory, review, and
// decision structures exchanged between pipeline stages, with embedded
// invariants enforced at construction time.
//
// Evaluation Architecture:
//   - Rubric-driven scoring with weighted categories and must-have flags.
//   - Two-pass reviewer protocol: observe (working memory), then score.
//   - Disagreement detection and deterministic synthesis into a decision.
//   - Operation contracts co-located with the types they transport.
package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// WeightSumTolerance is the allowed deviation from 1.0 for the sum of
// category weights across a rubric.
const WeightSumTolerance = 0.01

// ScoringCriteria anchors a single score level of a rubric category with a
// description and the concrete indicators a reviewer should look for.
type ScoringCriteria struct {
	// ScoreValue is the anchored score level on the 0-5 scale.
	ScoreValue int `json:"score_value" validate:"gte=0,lte=5"`

	// Description explains what performance at this level looks like.
	Description string `json:"description" validate:"required"`

	// Indicators are observable resume signals for this level.
	Indicators []string `json:"indicators" validate:"min=1,dive,required"`
}

// RubricCategory is one weighted competency the panel scores.
type RubricCategory struct {
	// Name uniquely identifies the category within its rubric.
	Name string `json:"name" validate:"required"`

	// Description explains what the category measures.
	Description string `json:"description" validate:"required"`

	// Weight is the category's share of the overall score. Weights across
	// a rubric must sum to 1.0 within WeightSumTolerance.
	Weight float64 `json:"weight" validate:"gte=0,lte=1"`

	// IsMustHave marks categories whose low scores block a positive
	// recommendation regardless of the weighted overall score.
	IsMustHave bool `json:"is_must_have"`

	// ScoringCriteria anchors at least three score levels with unique
	// score values.
	ScoringCriteria []ScoringCriteria `json:"scoring_criteria" validate:"min=3,dive"`
}

// CriteriaForScore returns the scoring criteria anchored at the given score
// value, or nil when the category defines no such level.
func (c *RubricCategory) CriteriaForScore(value int) *ScoringCriteria {
	for i := range c.ScoringCriteria {
		if c.ScoringCriteria[i].ScoreValue == value {
			return &c.ScoringCriteria[i]
		}
	}
	return nil
}

// Validate checks the category's struct tags plus score-level uniqueness.
func (c *RubricCategory) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("rubric category validation failed: %w", err)
	}
	return c.validateScoreLevels()
}

func (c *RubricCategory) validateScoreLevels() error {
	seen := make(map[int]struct{}, len(c.ScoringCriteria))
	for _, sc := range c.ScoringCriteria {
		if _, dup := seen[sc.ScoreValue]; dup {
			return fmt.Errorf("%w: category %q repeats score value %d",
				ErrInvalidRubric, c.Name, sc.ScoreValue)
		}
		seen[sc.ScoreValue] = struct{}{}
	}
	return nil
}

// Rubric is the evaluation standard one workflow run scores against.
// It is created once by rubric generation and never mutated afterwards;
// every reviewer and the synthesis stage consume the same instance.
type Rubric struct {
	// RoleTitle is the job title, extracted from the job description.
	RoleTitle string `json:"role_title" validate:"required"`

	// Categories are the weighted competencies in generation order.
	Categories []RubricCategory `json:"categories" validate:"min=1,dive"`

	// GeneratedAt records when the rubric was produced.
	GeneratedAt time.Time `json:"generated_at" validate:"required"`
}

// NewRubric creates a validated rubric stamped with the current time.
func NewRubric(roleTitle string, categories []RubricCategory) (*Rubric, error) {
	return MakeRubric(roleTitle, categories, time.Now().UTC())
}

// MakeRubric creates a validated rubric with an explicit generation time.
// Deterministic callers provide the timestamp instead of reading the clock.
func MakeRubric(roleTitle string, categories []RubricCategory, generatedAt time.Time) (*Rubric, error) {
	r := &Rubric{
		RoleTitle:   roleTitle,
		Categories:  categories,
		GeneratedAt: generatedAt,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate enforces the rubric's structural invariants: struct tags, unique
// category names, weights summing to 1.0 within tolerance, at least one
// must-have category, and unique score values per category.
func (r *Rubric) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("rubric validation failed: %w", err)
	}

	seen := make(map[string]struct{}, len(r.Categories))
	var weightSum float64
	hasMustHave := false
	for i := range r.Categories {
		c := &r.Categories[i]
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("%w: duplicate category name %q", ErrInvalidRubric, c.Name)
		}
		seen[c.Name] = struct{}{}
		weightSum += c.Weight
		if c.IsMustHave {
			hasMustHave = true
		}
		if err := c.validateScoreLevels(); err != nil {
			return err
		}
	}

	if math.Abs(weightSum-1.0) > WeightSumTolerance {
		return fmt.Errorf("%w: category weights sum to %.3f, expected 1.0 within %.2f",
			ErrInvalidRubric, weightSum, WeightSumTolerance)
	}
	if !hasMustHave {
		return fmt.Errorf("%w: no category is flagged must-have", ErrInvalidRubric)
	}
	return nil
}

// CategoryNames returns the category names in rubric order.
func (r *Rubric) CategoryNames() []string {
	names := make([]string, len(r.Categories))
	for i := range r.Categories {
		names[i] = r.Categories[i].Name
	}
	return names
}

// Category returns the category with the given name, or nil when absent.
func (r *Rubric) Category(name string) *RubricCategory {
	for i := range r.Categories {
		if r.Categories[i].Name == name {
			return &r.Categories[i]
		}
	}
	return nil
}

// HasCategory reports whether the rubric defines a category with the name.
func (r *Rubric) HasCategory(name string) bool {
	return r.Category(name) != nil
}

// GenerateRubricInput carries the inputs for the rubric generation stage.
// The resume is validated here even though rubric content derives from the
// job description alone: a run with no resume cannot proceed past fan-out,
// so it is rejected before the first remote call.
type GenerateRubricInput struct {
	JobDescription string `json:"job_description" validate:"required"`
	Resume         string `json:"resume"          validate:"required"`
	CompanyContext string `json:"company_context"`
	CategoryCount  int    `json:"category_count"  validate:"gte=3,lte=10"`
}

// Validate checks structural tags and rejects whitespace-only inputs.
func (in *GenerateRubricInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("generate rubric input validation failed: %w", err)
	}
	if strings.TrimSpace(in.JobDescription) == "" {
		return fmt.Errorf("%w: job description is blank", ErrInvalidRequest)
	}
	if strings.TrimSpace(in.Resume) == "" {
		return fmt.Errorf("%w: resume is blank", ErrInvalidRequest)
	}
	return nil
}

// GenerateRubricOutput carries the generated rubric plus advisory lint
// warnings. Warnings never fail the stage; they surface in run metadata.
type GenerateRubricOutput struct {
	Rubric   Rubric   `json:"rubric"`
	Warnings []string `json:"warnings,omitempty"`
}

// Validate revalidates the embedded rubric.
func (out *GenerateRubricOutput) Validate() error {
	return out.Rubric.Validate()
}

// sortedStrings returns a sorted copy, leaving the input untouched.
func sortedStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	sort.Strings(out)
	return out
}
