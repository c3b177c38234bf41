package pipeline

import (
	"testing"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
)

func TestCanAdvance(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{domain.StatusNew, domain.StatusInterviewComplete, true},
		{domain.StatusNew, domain.StatusAssessmentComplete, true},
		{domain.StatusInterviewComplete, domain.StatusInterviewComplete, true},
		{domain.StatusAssessmentComplete, domain.StatusInterviewComplete, false},
		{domain.StatusInterviewComplete, domain.StatusNew, false},
		{"bogus", domain.StatusNew, false},
		{domain.StatusNew, "bogus", false},
	}
	for _, c := range cases {
		if got := CanAdvance(c.from, c.to); got != c.want {
			t.Errorf("CanAdvance(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestHasCompletedAssessment(t *testing.T) {
	c := &domain.Candidate{Status: domain.StatusInterviewComplete}
	if HasCompletedAssessment(c) {
		t.Fatal("no assessment yet, should not be complete")
	}
	c.Assessment = &domain.AssessmentData{}
	if !HasCompletedAssessment(c) {
		t.Fatal("stored assessment must count as completed")
	}
	c = &domain.Candidate{Status: domain.StatusAssessmentComplete}
	if !HasCompletedAssessment(c) {
		t.Fatal("status assessment_complete must count as completed")
	}
}

func TestInfoForStage(t *testing.T) {
	info := InfoForStage(domain.StageOffer)
	if info.Label != "Offer Extended" {
		t.Errorf("unexpected label %q", info.Label)
	}
	if info.Message == "" {
		t.Error("message must not be empty")
	}

	// unknown stage falls back to Applied
	fallback := InfoForStage(domain.PipelineStage("Nonsense"))
	if fallback.Stage != domain.StageApplied {
		t.Errorf("fallback stage = %q, want Applied", fallback.Stage)
	}

	for _, st := range domain.PipelineStages {
		info := InfoForStage(st)
		if info.Label == "" || info.Message == "" {
			t.Errorf("stage %q missing label or message", st)
		}
	}
}

func TestReconcileStageBehindStatus(t *testing.T) {
	c := &domain.Candidate{
		ID:     "AB12CD34",
		Status: domain.StatusAssessmentComplete,
		AdminData: &domain.AdminData{
			PipelineStage: domain.StageScreening,
		},
	}
	divs := Reconcile([]*domain.Candidate{c})
	if len(divs) != 1 {
		t.Fatalf("got %d divergences, want 1", len(divs))
	}
	if divs[0].CandidateID != "AB12CD34" {
		t.Errorf("unexpected candidate id %q", divs[0].CandidateID)
	}
	if divs[0].Detail != "pipeline stage behind candidate status" {
		t.Errorf("unexpected detail %q", divs[0].Detail)
	}
}

func TestReconcileTerminalStagesExempt(t *testing.T) {
	c := &domain.Candidate{
		ID:     "AA11BB22",
		Status: domain.StatusAssessmentComplete,
		AdminData: &domain.AdminData{
			PipelineStage: domain.StageRejected,
		},
	}
	if divs := Reconcile([]*domain.Candidate{c}); len(divs) != 0 {
		t.Fatalf("terminal stage must be exempt, got %v", divs)
	}
}

func TestReconcileDisqualifiedAdvanced(t *testing.T) {
	c := &domain.Candidate{
		ID:     "CC33DD44",
		Status: domain.StatusNew,
		AdminData: &domain.AdminData{
			PipelineStage: domain.StageOffer,
			QuestionnaireDisqualified: &domain.Disqualification{
				At:          time.Now(),
				Reason:      domain.DisqualificationReason,
				QuestionKey: domain.DisqualificationQuestionKey,
			},
		},
	}
	divs := Reconcile([]*domain.Candidate{c})
	if len(divs) != 1 {
		t.Fatalf("got %d divergences, want 1", len(divs))
	}
	if divs[0].Detail != "disqualified candidate advanced in pipeline" {
		t.Errorf("unexpected detail %q", divs[0].Detail)
	}
}

func TestReconcileCleanFunnel(t *testing.T) {
	cands := []*domain.Candidate{
		{ID: "A", Status: domain.StatusNew},
		{ID: "B", Status: domain.StatusInterviewComplete, AdminData: &domain.AdminData{PipelineStage: domain.StageInterviewed}},
		{ID: "C", Status: domain.StatusAssessmentComplete, AdminData: &domain.AdminData{PipelineStage: domain.StageOffer}},
	}
	if divs := Reconcile(cands); len(divs) != 0 {
		t.Fatalf("expected no divergences, got %v", divs)
	}
}
