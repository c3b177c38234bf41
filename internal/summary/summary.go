// Package summary renders a deterministic narrative summary of a completed
// assessment. No AI call, no randomness: the same answers always produce the
// same five paragraphs, so summaries stay reproducible across re-reads and
// exports.
package summary

import (
	"math"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/scoring"
)

// Per-category seed offsets. Each category shifts the base seed by a fixed
// amount (reduced mod 1) so the five paragraphs do not all land on the same
// phrase index.
const (
	offsetCompetitiveness = 0.0
	offsetMoneyMotivation = 0.33
	offsetLikert          = 0.66
	offsetTrueScale       = 0.5
	offsetClosing         = 0.25
)

// Summarize returns exactly five paragraphs in fixed order: competitiveness,
// money motivation, Likert alignment, true-scale fit, closing.
func Summarize(a *domain.AssessmentData) []string {
	compBand := scaleBand(a.Competitiveness)
	moneyBand := scaleBand(a.MoneyMotivation)

	likertAvg := likertAverage(a)
	likertBand := BandHigh
	switch {
	case likertAvg < 1.5:
		likertBand = BandLow
	case likertAvg < 2.2:
		likertBand = BandModerate
	}

	trueRevAvg := trueScaleReversedAverage(a)
	trueBand := BandHigh
	switch {
	case trueRevAvg < 1.2:
		trueBand = BandLow
	case trueRevAvg < 2.0:
		trueBand = BandModerate
	}

	closing, ok := fitCategoryClosing[scoring.Score(a).FitCategory]
	if !ok {
		closing = fitCategoryClosing[domain.FitReview]
	}

	// Deterministic seed from the raw numeric answers. The prime weights are
	// part of the stored-summary contract; do not swap in a real RNG.
	seed := frac(float64(a.Competitiveness)*7 +
		float64(a.MoneyMotivation)*11 +
		likertAvg*13 +
		trueRevAvg*17)

	return []string{
		pickPhrase(competitivenessPhrases[compBand], seed, offsetCompetitiveness),
		pickPhrase(moneyMotivationPhrases[moneyBand], seed, offsetMoneyMotivation),
		pickPhrase(likertAlignmentPhrases[likertBand], seed, offsetLikert),
		pickPhrase(trueScaleFitPhrases[trueBand], seed, offsetTrueScale),
		pickPhrase(closing, seed, offsetClosing),
	}
}

// scaleBand buckets the two 1-10 scales.
func scaleBand(v int) Band {
	switch {
	case v <= 3:
		return BandLow
	case v <= 6:
		return BandModerate
	default:
		return BandHigh
	}
}

// likertAverage is the mean of the raw Likert answers, missing items ignored.
func likertAverage(a *domain.AssessmentData) float64 {
	sum, n := 0, 0
	for _, q := range domain.LikertQuestions {
		if v, ok := a.LikertResponses[q.ID]; ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// trueScaleReversedAverage is the mean of the true-scale answers after the
// same 3-v reversal the scoring engine applies.
func trueScaleReversedAverage(a *domain.AssessmentData) float64 {
	sum, n := 0, 0
	for _, q := range domain.TrueScaleQuestions {
		if v, ok := a.TrueScaleResponses[q.ID]; ok {
			sum += 3 - v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// pickPhrase selects one of three phrases from a deterministic seed variant:
// index = floor(frac(seed+offset) * 3), clamped to [0, 2].
func pickPhrase(phrases [3]string, seed, offset float64) string {
	idx := int(math.Floor(frac(seed+offset) * 3))
	if idx > 2 {
		idx = 2
	}
	if idx < 0 {
		idx = 0
	}
	return phrases[idx]
}

func frac(v float64) float64 {
	return math.Mod(v, 1)
}
