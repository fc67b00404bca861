package domain

import (
	"fmt"
)

// ConfidenceLevel grades how certain a reviewer or the synthesized decision
// is about its conclusion.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Evidence ties a score to a direct resume quote and its interpretation.
type Evidence struct {
	// ResumeText is the quoted resume fragment.
	ResumeText string `json:"resume_text" validate:"required"`

	// LineReference locates the quote; optional.
	LineReference string `json:"line_reference,omitempty"`

	// Interpretation explains what the quote demonstrates.
	Interpretation string `json:"interpretation" validate:"required"`
}

// CategoryScore is one reviewer's score for one rubric category, grounded
// in at least one piece of quoted evidence.
type CategoryScore struct {
	CategoryName string          `json:"category_name" validate:"required"`
	Score        int             `json:"score" validate:"gte=0,lte=5"`
	Evidence     []Evidence      `json:"evidence" validate:"min=1,dive"`
	Gaps         []string        `json:"gaps"`
	Confidence   ConfidenceLevel `json:"confidence" validate:"required,oneof=high medium low"`
}

// AgentReview is one reviewer's complete second-pass evaluation. It is
// produced once per (role, run), is immutable, and is appended into the
// run's review collection in completion order.
type AgentReview struct {
	// AgentRole is the reviewer that produced the review.
	AgentRole AgentRole `json:"agent_role" validate:"required,oneof=HR Tech Product Compliance"`

	// CategoryScores holds one score per rubric category.
	CategoryScores []CategoryScore `json:"category_scores" validate:"min=1,dive"`

	// OverallAssessment is the reviewer's short narrative summary.
	OverallAssessment string `json:"overall_assessment" validate:"required"`

	// TopStrengths and TopRisks each carry three to five items.
	TopStrengths []string `json:"top_strengths" validate:"min=3,max=5,dive,required"`
	TopRisks     []string `json:"top_risks" validate:"min=3,max=5,dive,required"`

	// FollowUpQuestions are the reviewer's suggested probes.
	FollowUpQuestions []string `json:"follow_up_questions" validate:"min=1,dive,required"`

	// ExpectedRubricCategories, when set, pins the exact category set the
	// review must cover. The reviewer node sets it from the rubric before
	// validation so partial or padded reviews are rejected.
	ExpectedRubricCategories []string `json:"expected_rubric_categories,omitempty"`
}

// Validate checks structural tags, category-name uniqueness, and, when
// ExpectedRubricCategories is set, exact coverage of that set.
func (r *AgentReview) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("agent review validation failed: %w", err)
	}

	seen := make(map[string]struct{}, len(r.CategoryScores))
	var duplicates []string
	for i := range r.CategoryScores {
		name := r.CategoryScores[i].CategoryName
		if _, dup := seen[name]; dup {
			duplicates = append(duplicates, name)
			continue
		}
		seen[name] = struct{}{}
	}
	if len(duplicates) > 0 {
		return fmt.Errorf("%w: duplicate category scores: %v",
			ErrInvalidReview, sortedStrings(duplicates))
	}

	if r.ExpectedRubricCategories != nil {
		if err := r.validateCoverage(seen); err != nil {
			return err
		}
	}
	return nil
}

// validateCoverage requires the scored category set to equal the expected
// set exactly. The error enumerates missing and unexpected names sorted so
// failures are reproducible and searchable.
func (r *AgentReview) validateCoverage(scored map[string]struct{}) error {
	expected := make(map[string]struct{}, len(r.ExpectedRubricCategories))
	for _, name := range r.ExpectedRubricCategories {
		expected[name] = struct{}{}
	}

	var missing, unexpected []string
	for name := range expected {
		if _, ok := scored[name]; !ok {
			missing = append(missing, name)
		}
	}
	for name := range scored {
		if _, ok := expected[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(missing) > 0 || len(unexpected) > 0 {
		return fmt.Errorf("%w: rubric coverage mismatch: missing %v, unexpected %v",
			ErrInvalidReview, sortedStrings(missing), sortedStrings(unexpected))
	}
	return nil
}

// ScoreForCategory returns this review's score for the named category, or
// nil when the reviewer did not score it.
func (r *AgentReview) ScoreForCategory(name string) *CategoryScore {
	for i := range r.CategoryScores {
		if r.CategoryScores[i].CategoryName == name {
			return &r.CategoryScores[i]
		}
	}
	return nil
}

// PerformReviewInput carries everything one reviewer activity needs: the
// role assignment, the rubric, and the raw inputs.
type PerformReviewInput struct {
	Role   AgentRole   `json:"role" validate:"required,oneof=HR Tech Product Compliance"`
	Resume string      `json:"resume" validate:"required"`
	Rubric Rubric      `json:"rubric"`
	Config PanelConfig `json:"config"`
}

// Validate checks the role, the resume, and the embedded rubric.
func (in *PerformReviewInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("perform review input validation failed: %w", err)
	}
	return in.Rubric.Validate()
}

// PerformReviewOutput carries the reviewer node's results: exactly one
// review and, when working memory is enabled, the pass-one memory keyed by
// the reviewer's role in the coordinator's merge.
type PerformReviewOutput struct {
	Review AgentReview    `json:"review"`
	Memory *WorkingMemory `json:"memory,omitempty"`
}

// Validate revalidates the review and any attached memory.
func (out *PerformReviewOutput) Validate() error {
	if err := out.Review.Validate(); err != nil {
		return err
	}
	if out.Memory != nil {
		return out.Memory.Validate()
	}
	return nil
}
