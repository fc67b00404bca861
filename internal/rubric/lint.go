package rubric

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hireloop/panelist/internal/domain"
)

// Advisory thresholds for rubric quality findings.
const (
	minCriteriaDescriptionLen = 20
	minIndicatorsPerLevel     = 2
	shortIndicatorLen         = 15
	maxSingleCategoryWeight   = 0.40
	minMustHaveWeight         = 0.20
	maxMustHaveWeight         = 0.35
	maxOptionalWeight         = 0.25
	minAdvisedCategories      = 3
	maxAdvisedCategories      = 10
)

// genericCategoryNames lists category names too vague to anchor scoring.
var genericCategoryNames = map[string]struct{}{
	"skills":         {},
	"experience":     {},
	"qualifications": {},
	"requirements":   {},
	"background":     {},
	"competencies":   {},
	"abilities":      {},
	"knowledge":      {},
}

// vagueIndicatorTerms flags indicators that restate a judgment instead of
// naming an observable signal.
var vagueIndicatorTerms = []string{"good", "bad", "some", "many", "few", "experience"}

// scoreAnchors are the score levels every category is advised to define so
// reviewers can interpolate between them.
var scoreAnchors = []int{0, 3, 5}

// Lint runs every advisory quality check against a structurally valid
// rubric. Findings are warnings for the hiring team, never rejections:
// a rubric that passes domain validation is always usable.
func Lint(r *domain.Rubric) []string {
	var findings []string
	findings = append(findings, lintSpecificity(r)...)
	findings = append(findings, lintScoreAnchors(r)...)
	findings = append(findings, lintWeightDistribution(r)...)
	return findings
}

// lintSpecificity checks that category names, criteria descriptions, and
// indicators are concrete enough to score against.
func lintSpecificity(r *domain.Rubric) []string {
	var findings []string

	for i := range r.Categories {
		category := &r.Categories[i]

		if _, generic := genericCategoryNames[strings.ToLower(category.Name)]; generic {
			findings = append(findings, fmt.Sprintf(
				"Category %q is too generic. Use more specific names like 'Python Backend Development' instead of 'Skills'.",
				category.Name))
		}

		for j := range category.ScoringCriteria {
			criteria := &category.ScoringCriteria[j]

			if len(criteria.Description) < minCriteriaDescriptionLen {
				findings = append(findings, fmt.Sprintf(
					"Scoring criteria description for score %d in %q is too brief (< %d chars). Provide detailed descriptions.",
					criteria.ScoreValue, category.Name, minCriteriaDescriptionLen))
			}

			if len(criteria.Indicators) < minIndicatorsPerLevel {
				findings = append(findings, fmt.Sprintf(
					"Scoring criteria for score %d in %q has only %d indicator(s). Provide at least %d indicators.",
					criteria.ScoreValue, category.Name, len(criteria.Indicators), minIndicatorsPerLevel))
			}

			for _, indicator := range criteria.Indicators {
				if len(indicator) >= shortIndicatorLen {
					continue
				}
				if containsVagueTerm(indicator) {
					findings = append(findings, fmt.Sprintf(
						"Indicator %q in %q appears vague. Use specific, observable criteria.",
						indicator, category.Name))
				}
			}
		}
	}

	return findings
}

// lintScoreAnchors checks that each category defines criteria at the 0, 3,
// and 5 anchor levels so reviewers can interpolate between them.
func lintScoreAnchors(r *domain.Rubric) []string {
	var findings []string

	for i := range r.Categories {
		category := &r.Categories[i]

		defined := make(map[int]bool, len(category.ScoringCriteria))
		for j := range category.ScoringCriteria {
			defined[category.ScoringCriteria[j].ScoreValue] = true
		}

		var missing []int
		for _, anchor := range scoreAnchors {
			if !defined[anchor] {
				missing = append(missing, anchor)
			}
		}
		if len(missing) > 0 {
			findings = append(findings, fmt.Sprintf(
				"Category %q is missing scoring anchors for levels %v. Define criteria at levels 0, 3, and 5.",
				category.Name, missing))
		}
	}

	return findings
}

// lintWeightDistribution checks weight balance and structural completeness:
// dominance, must-have weight bands, advised category count, duplicate
// names, and presence of a must-have category.
func lintWeightDistribution(r *domain.Rubric) []string {
	var findings []string

	for i := range r.Categories {
		category := &r.Categories[i]

		if category.Weight > maxSingleCategoryWeight {
			findings = append(findings, fmt.Sprintf(
				"Category %q has weight %.2f which is too high (> %.2f). Distribute weights more evenly.",
				category.Name, category.Weight, maxSingleCategoryWeight))
		}

		if category.IsMustHave {
			switch {
			case category.Weight < minMustHaveWeight:
				findings = append(findings, fmt.Sprintf(
					"Must-have category %q has weight %.2f which is too low (< %.2f). Must-have categories should have significant weight.",
					category.Name, category.Weight, minMustHaveWeight))
			case category.Weight > maxMustHaveWeight:
				findings = append(findings, fmt.Sprintf(
					"Must-have category %q has weight %.2f which is very high (> %.2f). Consider if this weight is appropriate.",
					category.Name, category.Weight, maxMustHaveWeight))
			}
		} else if category.Weight > maxOptionalWeight {
			findings = append(findings, fmt.Sprintf(
				"Non-must-have category %q has weight %.2f which is high (> %.2f). Consider if this should be a must-have category.",
				category.Name, category.Weight, maxOptionalWeight))
		}
	}

	switch count := len(r.Categories); {
	case count < minAdvisedCategories:
		findings = append(findings, fmt.Sprintf(
			"Rubric has only %d categories. Minimum is %d for comprehensive evaluation.",
			count, minAdvisedCategories))
	case count > maxAdvisedCategories:
		findings = append(findings, fmt.Sprintf(
			"Rubric has %d categories. Maximum is %d to avoid complexity.",
			count, maxAdvisedCategories))
	}

	if duplicates := duplicateCategoryNames(r); len(duplicates) > 0 {
		findings = append(findings, fmt.Sprintf(
			"Rubric has duplicate category names: %v. All categories must have unique names.",
			duplicates))
	}

	mustHaves := 0
	for i := range r.Categories {
		if r.Categories[i].IsMustHave {
			mustHaves++
		}
	}
	if mustHaves == 0 {
		findings = append(findings,
			"Rubric has no must-have categories. At least one category should be marked as must-have.")
	}

	return findings
}

// containsVagueTerm reports whether the indicator contains any term from the
// vague set, matched case-insensitively as a substring.
func containsVagueTerm(indicator string) bool {
	lowered := strings.ToLower(indicator)
	for _, term := range vagueIndicatorTerms {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}

// duplicateCategoryNames returns the sorted set of names appearing more
// than once.
func duplicateCategoryNames(r *domain.Rubric) []string {
	counts := make(map[string]int, len(r.Categories))
	for i := range r.Categories {
		counts[r.Categories[i].Name]++
	}

	var duplicates []string
	for name, count := range counts {
		if count > 1 {
			duplicates = append(duplicates, name)
		}
	}
	sort.Strings(duplicates)
	return duplicates
}
