package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/identity"
	"github.com/pazorg/candidatetrack/internal/observability/metrics"
	"github.com/pazorg/candidatetrack/internal/pipeline"
	"github.com/pazorg/candidatetrack/internal/scoring"
)

// FunnelService handles applicant-facing lifecycle operations: intake and
// exit questionnaires, post-interview confirmation, assessment submission,
// resume uploads and status lookups. Every mutation ends in a single
// whole-row upsert.
type FunnelService struct {
	repo    domain.CandidateRepository
	resumes domain.ResumeStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewFunnelService creates a new funnel service
func NewFunnelService(repo domain.CandidateRepository, resumes domain.ResumeStore, logger *slog.Logger) *FunnelService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FunnelService{
		repo:    repo,
		resumes: resumes,
		logger:  logger,
		now:     time.Now,
	}
}

// IntakeSubmission is the reception-form payload.
type IntakeSubmission struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	City          string
	Questionnaire domain.Questionnaire
}

// ExitSubmission is the post-career-overview exit questionnaire payload.
type ExitSubmission struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Questionnaire domain.Questionnaire
}

// AssessmentSubmission is the assessment-room payload. Identity fields are
// optional overrides; empty values leave the stored record untouched.
type AssessmentSubmission struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	City       string
	Assessment domain.AssessmentData
}

// resolve finds the most recent candidate for the normalized email, or
// creates a fresh record. The boolean reports whether the record is new.
func (s *FunnelService) resolve(ctx context.Context, email string) (*domain.Candidate, bool, error) {
	normalized := identity.NormalizeEmail(email)
	if normalized == "" {
		return nil, false, &domain.ValidationError{Field: "email", Reason: "required"}
	}

	existing, err := s.repo.GetByEmail(ctx, normalized)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to resolve candidate: %w", err)
	}

	c := &domain.Candidate{
		ID:        identity.NewCandidateID(),
		Email:     normalized,
		Timestamp: s.now(),
		Status:    domain.StatusNew,
	}
	return c, true, nil
}

// SubmitIntake creates or updates a candidate from the intake questionnaire.
// Existing fields survive unless the submission supplies a value; resume URLs
// concatenate. Answering the eligibility question "no" sets the terminal
// disqualification marker and leaves status at new.
func (s *FunnelService) SubmitIntake(ctx context.Context, sub IntakeSubmission) (*domain.Candidate, error) {
	if err := validateName(sub.FirstName, sub.LastName); err != nil {
		return nil, err
	}

	c, created, err := s.resolve(ctx, sub.Email)
	if err != nil {
		return nil, err
	}

	mergeIdentity(c, sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.City)
	mergeQuestionnaire(c, sub.Questionnaire)

	if strings.EqualFold(sub.Questionnaire.LegallyEntitledCanada, "no") {
		ad := c.AdminView()
		if ad.QuestionnaireDisqualified == nil {
			ad.QuestionnaireDisqualified = &domain.Disqualification{
				At:          s.now(),
				Reason:      domain.DisqualificationReason,
				QuestionKey: domain.DisqualificationQuestionKey,
			}
			metrics.ObserveDisqualification()
		}
		c.AdminData = &ad
		// status stays at new: the disqualification branch is orthogonal
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		metrics.ObserveSubmission("intake", "error")
		return nil, fmt.Errorf("failed to persist intake: %w", err)
	}

	metrics.ObserveSubmission("intake", "ok")
	s.logger.Info("intake submitted",
		slog.String("candidate_id", c.ID),
		slog.Bool("created", created),
		slog.Bool("disqualified", c.Disqualified()),
	)
	return c, nil
}

// SubmitExitQuestionnaire creates or updates a candidate with the exit field
// set. Like intake it never advances status.
func (s *FunnelService) SubmitExitQuestionnaire(ctx context.Context, sub ExitSubmission) (*domain.Candidate, error) {
	if err := validateName(sub.FirstName, sub.LastName); err != nil {
		return nil, err
	}

	c, created, err := s.resolve(ctx, sub.Email)
	if err != nil {
		return nil, err
	}

	mergeIdentity(c, sub.FirstName, sub.LastName, sub.Email, sub.Phone, "")
	now := s.now()
	sub.Questionnaire.SubmittedAt = &now
	mergeQuestionnaire(c, sub.Questionnaire)

	if err := s.repo.Upsert(ctx, c); err != nil {
		metrics.ObserveSubmission("exit_questionnaire", "error")
		return nil, fmt.Errorf("failed to persist exit questionnaire: %w", err)
	}

	metrics.ObserveSubmission("exit_questionnaire", "ok")
	s.logger.Info("exit questionnaire submitted",
		slog.String("candidate_id", c.ID),
		slog.Bool("created", created),
	)
	return c, nil
}

// SubmitPostInterview records the interview confirmation and advances status
// to interview_complete. Resubmission overwrites the previous confirmation.
func (s *FunnelService) SubmitPostInterview(ctx context.Context, id string, pi domain.PostInterview) (*domain.Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch pi.CEOInvite {
	case "yes", "no", "declined":
	default:
		return nil, &domain.ValidationError{Field: "ceoInvite", Reason: "must be yes, no or declined"}
	}

	c.PostInterview = &pi
	if pipeline.CanAdvance(c.Status, domain.StatusInterviewComplete) {
		c.Status = domain.StatusInterviewComplete
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		metrics.ObserveSubmission("post_interview", "error")
		return nil, fmt.Errorf("failed to persist post-interview: %w", err)
	}

	metrics.ObserveSubmission("post_interview", "ok")
	s.logger.Info("post-interview submitted",
		slog.String("candidate_id", c.ID),
		slog.String("ceo_invite", pi.CEOInvite),
	)
	return c, nil
}

// LookupForAssessment resolves a candidate by email for the assessment flow.
// Returns ErrAssessmentCompleted when the candidate already finished, so
// every entry point short-circuits the same way.
func (s *FunnelService) LookupForAssessment(ctx context.Context, email string) (*domain.Candidate, error) {
	normalized := identity.NormalizeEmail(email)
	if normalized == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "required"}
	}

	c, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if pipeline.HasCompletedAssessment(c) {
		return c, domain.ErrAssessmentCompleted
	}
	return c, nil
}

// SubmitAssessment scores the answers and persists assessment, score,
// fitCategory and the status advance in one upsert. A second submission is
// rejected with ErrAssessmentCompleted.
func (s *FunnelService) SubmitAssessment(ctx context.Context, id string, sub AssessmentSubmission) (*domain.Candidate, scoring.Result, error) {
	var zero scoring.Result

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, zero, err
	}
	if pipeline.HasCompletedAssessment(c) {
		return c, zero, domain.ErrAssessmentCompleted
	}
	if err := validateAssessment(&sub.Assessment); err != nil {
		return nil, zero, err
	}

	mergeIdentity(c, sub.FirstName, sub.LastName, sub.Email, sub.Phone, sub.City)

	result := scoring.Score(&sub.Assessment)
	assessment := sub.Assessment
	c.Assessment = &assessment
	score := result.Score
	category := result.FitCategory
	c.Score = &score
	c.FitCategory = &category
	c.Status = domain.StatusAssessmentComplete

	if err := s.repo.Upsert(ctx, c); err != nil {
		metrics.ObserveSubmission("assessment", "error")
		return nil, zero, fmt.Errorf("failed to persist assessment: %w", err)
	}

	metrics.ObserveSubmission("assessment", "ok")
	metrics.ObserveAssessment(result.Percentage, result.FitCategory)
	s.logger.Info("assessment submitted",
		slog.String("candidate_id", c.ID),
		slog.Int("score", result.Score),
		slog.String("fit_category", result.FitCategory),
	)
	return c, result, nil
}

// UploadResume stores the file and appends its URL to the candidate's resume
// list. The list is append-only.
func (s *FunnelService) UploadResume(ctx context.Context, id, filename string, size int64, r io.Reader) (*domain.Candidate, string, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	url, err := s.resumes.Store(ctx, c.ID, filename, size, r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to store resume: %w", err)
	}

	if c.ApplicantQuestionnaire == nil {
		c.ApplicantQuestionnaire = &domain.Questionnaire{}
	}
	c.ApplicantQuestionnaire.MergeResumeURLs([]string{url})

	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, "", fmt.Errorf("failed to persist resume url: %w", err)
	}

	s.logger.Info("resume uploaded",
		slog.String("candidate_id", c.ID),
		slog.String("url", url),
	)
	return c, url, nil
}

// StatusForEmail returns the applicant-facing stage info for the candidate's
// current pipeline stage.
func (s *FunnelService) StatusForEmail(ctx context.Context, email string) (*domain.Candidate, pipeline.StageInfo, error) {
	normalized := identity.NormalizeEmail(email)
	if normalized == "" {
		return nil, pipeline.StageInfo{}, &domain.ValidationError{Field: "email", Reason: "required"}
	}

	c, err := s.repo.GetByEmail(ctx, normalized)
	if err != nil {
		return nil, pipeline.StageInfo{}, err
	}
	return c, pipeline.InfoForStage(c.AdminView().PipelineStage), nil
}

func validateName(first, last string) error {
	if strings.TrimSpace(first) == "" {
		return &domain.ValidationError{Field: "firstName", Reason: "required"}
	}
	if strings.TrimSpace(last) == "" {
		return &domain.ValidationError{Field: "lastName", Reason: "required"}
	}
	return nil
}

func validateAssessment(a *domain.AssessmentData) error {
	if a.Competitiveness < 1 || a.Competitiveness > 10 {
		return &domain.ValidationError{Field: "competitiveness", Reason: "must be between 1 and 10"}
	}
	if a.MoneyMotivation < 1 || a.MoneyMotivation > 10 {
		return &domain.ValidationError{Field: "moneyMotivation", Reason: "must be between 1 and 10"}
	}
	for _, q := range domain.LikertQuestions {
		v, ok := a.LikertResponses[q.ID]
		if !ok {
			return &domain.ValidationError{Field: "likertResponses", Reason: fmt.Sprintf("missing answer for question %d", q.ID)}
		}
		if v < 0 || v > 3 {
			return &domain.ValidationError{Field: "likertResponses", Reason: fmt.Sprintf("answer for question %d out of range", q.ID)}
		}
	}
	for _, q := range domain.TrueScaleQuestions {
		v, ok := a.TrueScaleResponses[q.ID]
		if !ok {
			return &domain.ValidationError{Field: "trueScaleResponses", Reason: fmt.Sprintf("missing answer for question %d", q.ID)}
		}
		if v < 0 || v > 3 {
			return &domain.ValidationError{Field: "trueScaleResponses", Reason: fmt.Sprintf("answer for question %d out of range", q.ID)}
		}
	}
	return nil
}

// mergeIdentity applies non-empty submitted identity fields over the stored
// record. Email is re-normalized; phone keeps digits only.
func mergeIdentity(c *domain.Candidate, first, last, email, phone, city string) {
	if v := strings.TrimSpace(first); v != "" {
		c.FirstName = v
	}
	if v := strings.TrimSpace(last); v != "" {
		c.LastName = v
	}
	if v := identity.NormalizeEmail(email); v != "" {
		c.Email = v
	}
	if v := identity.NormalizePhone(phone); v != "" {
		c.Phone = v
	}
	if v := strings.TrimSpace(city); v != "" {
		c.City = v
	}
}

// mergeQuestionnaire overlays submitted questionnaire fields onto the stored
// questionnaire. Scalars win when non-empty; resume URLs concatenate.
func mergeQuestionnaire(c *domain.Candidate, q domain.Questionnaire) {
	if c.ApplicantQuestionnaire == nil {
		stored := q
		c.ApplicantQuestionnaire = &stored
		return
	}

	dst := c.ApplicantQuestionnaire
	overlayString(&dst.Occupation, q.Occupation)
	overlayString(&dst.CurrentRole, q.CurrentRole)
	if len(q.BackgroundAreas) > 0 {
		dst.BackgroundAreas = q.BackgroundAreas
	}
	overlayString(&dst.BackgroundOther, q.BackgroundOther)
	overlayString(&dst.SalesExperience, q.SalesExperience)
	overlayString(&dst.SomethingAboutYourself, q.SomethingAboutYourself)
	overlayString(&dst.LegallyEntitledCanada, q.LegallyEntitledCanada)
	dst.MergeResumeURLs(q.ResumeURLs)

	overlayString(&dst.WhatStoodOut, q.WhatStoodOut)
	overlayString(&dst.WhyGoodFit, q.WhyGoodFit)
	overlayString(&dst.FinancialInvestmentLicense, q.FinancialInvestmentLicense)
	overlayString(&dst.LegallyEntitledCanadaFullTime, q.LegallyEntitledCanadaFullTime)
	overlayString(&dst.ComfortableVirtualEnvironment, q.ComfortableVirtualEnvironment)
	overlayString(&dst.ExcitedOffSiteSocial, q.ExcitedOffSiteSocial)
	overlayString(&dst.PositionInterest, q.PositionInterest)
	overlayString(&dst.QuestionsAboutOpportunity, q.QuestionsAboutOpportunity)
	overlayString(&dst.ContactPermission, q.ContactPermission)
	if q.SubmittedAt != nil {
		dst.SubmittedAt = q.SubmittedAt
	}
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
