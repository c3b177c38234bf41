// Package scoring converts a completed assessment into a reproducible fit
// score and category. Everything here is pure and synchronous.
package scoring

import "github.com/pazorg/candidatetrack/internal/domain"

// Result is the scoring snapshot cached on the candidate at submission time.
type Result struct {
	Score       int
	MaxScore    int
	Percentage  float64
	FitCategory string
}

// Thresholds are inclusive on the lower bound of each band.
const (
	highFitThreshold = 80.0
	reviewThreshold  = 50.0
)

// Score computes the fit score for an assessment. The caller must guarantee
// a full answer set; partially-answered assessments are not a valid call.
func Score(a *domain.AssessmentData) Result {
	score := 0
	maxScore := 0

	// Q1-2: raw 1-10 values, 20 points combined.
	score += a.Competitiveness
	score += a.MoneyMotivation
	maxScore += 20

	// Q3-20: Likert, raw agreement, 3 points per item.
	for _, v := range a.LikertResponses {
		score += v
		maxScore += 3
	}

	// Q21-30: true-scale items frame risk traits, so they are reverse
	// scored: "Never True" (0) contributes 3, "Always True" (3) contributes 0.
	for _, v := range a.TrueScaleResponses {
		score += 3 - v
		maxScore += 3
	}

	percentage := float64(score) / float64(maxScore) * 100

	// No rounding: the category comparison uses the raw float.
	category := domain.FitNotAligned
	switch {
	case percentage >= highFitThreshold:
		category = domain.FitHighFit
	case percentage >= reviewThreshold:
		category = domain.FitReview
	}

	return Result{
		Score:       score,
		MaxScore:    maxScore,
		Percentage:  percentage,
		FitCategory: category,
	}
}
