package scoring

import (
	"math"
	"testing"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// buildAssessment fills a complete answer set: 18 Likert values and 10
// true-scale values, in question-id order.
func buildAssessment(comp, money int, likert [18]int, trueScale [10]int) *domain.AssessmentData {
	a := &domain.AssessmentData{
		Competitiveness:    comp,
		MoneyMotivation:    money,
		LikertResponses:    map[int]int{},
		TrueScaleResponses: map[int]int{},
	}
	for i, q := range domain.LikertQuestions {
		a.LikertResponses[q.ID] = likert[i]
	}
	for i, q := range domain.TrueScaleQuestions {
		a.TrueScaleResponses[q.ID] = trueScale[i]
	}
	return a
}

func uniform18(v int) [18]int {
	var out [18]int
	for i := range out {
		out[i] = v
	}
	return out
}

func uniform10(v int) [10]int {
	var out [10]int
	for i := range out {
		out[i] = v
	}
	return out
}

func TestScorePerfect(t *testing.T) {
	a := buildAssessment(10, 10, uniform18(3), uniform10(0))
	r := Score(a)
	if r.Score != 104 || r.MaxScore != 104 {
		t.Fatalf("expected 104/104, got %d/%d", r.Score, r.MaxScore)
	}
	if r.Percentage != 100 {
		t.Fatalf("expected 100%%, got %v", r.Percentage)
	}
	if r.FitCategory != domain.FitHighFit {
		t.Fatalf("expected High Fit, got %s", r.FitCategory)
	}
}

func TestScoreWorst(t *testing.T) {
	// Competitiveness 0 is out of domain; 1 is the lowest valid answer.
	a := buildAssessment(1, 1, uniform18(0), uniform10(3))
	r := Score(a)
	if r.Score != 2 {
		t.Fatalf("expected score 2, got %d", r.Score)
	}
	if math.Abs(r.Percentage-100.0*2/104) > 1e-9 {
		t.Fatalf("unexpected percentage %v", r.Percentage)
	}
	if r.FitCategory != domain.FitNotAligned {
		t.Fatalf("expected Not Aligned, got %s", r.FitCategory)
	}
}

func TestScoreReverseScoring(t *testing.T) {
	base := buildAssessment(1, 1, uniform18(0), uniform10(3)) // true-scale all "Always True"
	flipped := buildAssessment(1, 1, uniform18(0), uniform10(0))
	if got := Score(base).Score; got != 2 {
		t.Fatalf("Always True answers should contribute 0, total %d", got)
	}
	if got := Score(flipped).Score; got != 2+30 {
		t.Fatalf("Never True answers should contribute 3 each, total %d", got)
	}
}

// likertTenThrees answers the first ten Likert items with 3 and item eleven
// with extra, the rest with 0.
func likertTenThrees(extra int) [18]int {
	var l [18]int
	for i := 0; i < 10; i++ {
		l[i] = 3
	}
	l[10] = extra
	return l
}

// trueScaleMostlyThrees answers the first len(lead) items with the given
// values and the rest with 3 (zero contribution after reversal).
func trueScaleMostlyThrees(lead ...int) [10]int {
	ts := uniform10(3)
	copy(ts[:], lead)
	return ts
}

func TestScoreCategoryBoundaries(t *testing.T) {
	cases := []struct {
		name      string
		comp      int
		money     int
		likert    [18]int
		trueScale [10]int
		wantScore int
		wantCat   string
	}{
		{
			// 10+10+31+0 = 51 -> 49.04%, just under the Review band.
			name: "just below fifty percent",
			comp: 10, money: 10,
			likert:    likertTenThrees(1),
			trueScale: uniform10(3),
			wantScore: 51,
			wantCat:   domain.FitNotAligned,
		},
		{
			// 10+10+32+0 = 52 -> exactly 50.0%, inclusive lower bound.
			name: "exactly fifty percent",
			comp: 10, money: 10,
			likert:    likertTenThrees(2),
			trueScale: uniform10(3),
			wantScore: 52,
			wantCat:   domain.FitReview,
		},
		{
			// 10+10+54+9 = 83 -> 79.81%, just under High Fit.
			name: "just below eighty percent",
			comp: 10, money: 10,
			likert:    uniform18(3),
			trueScale: trueScaleMostlyThrees(0, 0, 0),
			wantScore: 83,
			wantCat:   domain.FitReview,
		},
		{
			// 10+10+54+10 = 84 -> 80.77%, over the inclusive High Fit bound.
			name: "over eighty percent",
			comp: 10, money: 10,
			likert:    uniform18(3),
			trueScale: trueScaleMostlyThrees(0, 0, 0, 2),
			wantScore: 84,
			wantCat:   domain.FitHighFit,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := Score(buildAssessment(c.comp, c.money, c.likert, c.trueScale))
			if r.Score != c.wantScore {
				t.Fatalf("score = %d, want %d", r.Score, c.wantScore)
			}
			if want := 100 * float64(c.wantScore) / 104; math.Abs(r.Percentage-want) > 1e-9 {
				t.Fatalf("percentage = %v, want %v", r.Percentage, want)
			}
			if r.FitCategory != c.wantCat {
				t.Fatalf("category = %s, want %s", r.FitCategory, c.wantCat)
			}
		})
	}
}
