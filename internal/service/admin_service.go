package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pazorg/candidatetrack/internal/domain"
	"github.com/pazorg/candidatetrack/internal/observability/metrics"
	"github.com/pazorg/candidatetrack/internal/summary"
	"github.com/pazorg/candidatetrack/pkg/cache"
)

// AdminService applies recruiter mutations to candidate records. Every write
// goes through ApplyAdminUpdate: read, merge admin data with defaults, apply
// a pure updater, persist the whole row.
type AdminService struct {
	repo      domain.CandidateRepository
	summaries *cache.Cache
	logger    *slog.Logger
	now       func() time.Time
}

const summaryCacheTTL = 10 * time.Minute

// NewAdminService creates a new admin service
func NewAdminService(repo domain.CandidateRepository, logger *slog.Logger) *AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{
		repo:      repo,
		summaries: cache.New(),
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all candidates
func (s *AdminService) List(ctx context.Context) ([]*domain.Candidate, error) {
	return s.repo.List(ctx)
}

// Get returns one candidate by id
func (s *AdminService) Get(ctx context.Context, id string) (*domain.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a candidate permanently. The handler requires an explicit
// confirmation before calling this.
func (s *AdminService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		metrics.ObserveAdminMutation("delete", "error")
		return err
	}
	s.summaries.Delete(summaryKey(id))
	metrics.ObserveAdminMutation("delete", "ok")
	s.logger.Info("candidate deleted", slog.String("candidate_id", id))
	return nil
}

// ApplyAdminUpdate reads the candidate, merges its admin data with defaults,
// applies updater and persists the full record in one write.
func (s *AdminService) ApplyAdminUpdate(ctx context.Context, id string, updater func(domain.AdminData) domain.AdminData) (*domain.Candidate, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := updater(c.AdminView())
	c.AdminData = &updated

	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to persist admin update: %w", err)
	}
	return c, nil
}

// AdminDataPatch carries the optional field updates of an admin-data PATCH.
// Nil pointers mean "leave unchanged".
type AdminDataPatch struct {
	PipelineStage        *domain.PipelineStage `json:"pipelineStage,omitempty"`
	Rating               *int                  `json:"rating,omitempty"`
	ClearRating          bool                  `json:"clearRating,omitempty"`
	InterviewScheduledAt *time.Time            `json:"interviewScheduledAt,omitempty"`
	NextStep             *string               `json:"nextStep,omitempty"`
	Tags                 []string              `json:"tags,omitempty"`
	ResumeReviewed       bool                  `json:"resumeReviewed,omitempty"`
	ClearDisqualified    bool                  `json:"clearDisqualified,omitempty"`
}

// UpdateAdminData validates and applies a field-level patch.
func (s *AdminService) UpdateAdminData(ctx context.Context, id string, patch AdminDataPatch) (*domain.Candidate, error) {
	if patch.PipelineStage != nil && !domain.ValidStage(*patch.PipelineStage) {
		return nil, &domain.ValidationError{Field: "pipelineStage", Reason: "unknown stage"}
	}
	if patch.Rating != nil && (*patch.Rating < 1 || *patch.Rating > 5) {
		return nil, &domain.ValidationError{Field: "rating", Reason: "must be between 1 and 5"}
	}

	c, err := s.ApplyAdminUpdate(ctx, id, func(ad domain.AdminData) domain.AdminData {
		if patch.PipelineStage != nil {
			ad.PipelineStage = *patch.PipelineStage
		}
		if patch.ClearRating {
			ad.Rating = nil
		} else if patch.Rating != nil {
			ad.Rating = patch.Rating
		}
		if patch.InterviewScheduledAt != nil {
			ad.InterviewScheduledAt = patch.InterviewScheduledAt
		}
		if patch.NextStep != nil {
			ad.NextStep = *patch.NextStep
		}
		if patch.Tags != nil {
			ad.Tags = dedupeTags(patch.Tags)
		}
		if patch.ResumeReviewed && ad.ResumeReviewedAt == nil {
			now := s.now()
			ad.ResumeReviewedAt = &now
		}
		if patch.ClearDisqualified {
			// explicit admin override of the terminal marker
			ad.QuestionnaireDisqualified = nil
		}
		return ad
	})
	if err != nil {
		metrics.ObserveAdminMutation("admin_data", "error")
		return nil, err
	}

	metrics.ObserveAdminMutation("admin_data", "ok")
	s.logger.Info("admin data updated", slog.String("candidate_id", id))
	return c, nil
}

// AddNote appends an immutable note with a fresh id and timestamp. Notes are
// never edited or removed.
func (s *AdminService) AddNote(ctx context.Context, id, text, authorEmail string) (*domain.Candidate, error) {
	if text == "" {
		return nil, &domain.ValidationError{Field: "text", Reason: "required"}
	}

	note := domain.AdminNote{
		ID:          uuid.NewString(),
		CreatedAt:   s.now(),
		Text:        text,
		AuthorEmail: authorEmail,
	}
	c, err := s.ApplyAdminUpdate(ctx, id, func(ad domain.AdminData) domain.AdminData {
		ad.Notes = append(ad.Notes, note)
		return ad
	})
	if err != nil {
		metrics.ObserveAdminMutation("note", "error")
		return nil, err
	}

	metrics.ObserveAdminMutation("note", "ok")
	s.logger.Info("note added",
		slog.String("candidate_id", id),
		slog.String("note_id", note.ID),
	)
	return c, nil
}

// LogEmail appends an entry to the email log. Dispatch is out of scope;
// entries record what the admin reports having sent.
func (s *AdminService) LogEmail(ctx context.Context, id, subject, emailType string) (*domain.Candidate, error) {
	if subject == "" {
		return nil, &domain.ValidationError{Field: "subject", Reason: "required"}
	}

	entry := domain.EmailLogEntry{
		SentAt:  s.now(),
		Subject: subject,
		Type:    emailType,
	}
	c, err := s.ApplyAdminUpdate(ctx, id, func(ad domain.AdminData) domain.AdminData {
		ad.EmailsSent = append(ad.EmailsSent, entry)
		return ad
	})
	if err != nil {
		metrics.ObserveAdminMutation("email_log", "error")
		return nil, err
	}

	metrics.ObserveAdminMutation("email_log", "ok")
	return c, nil
}

// BulkStageResult reports the outcome of a bulk stage change. Failures do
// not roll back prior successes.
type BulkStageResult struct {
	Updated []string          `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// BulkStageChange moves each listed candidate to stage, sequentially, with
// partial-success semantics.
func (s *AdminService) BulkStageChange(ctx context.Context, ids []string, stage domain.PipelineStage) (BulkStageResult, error) {
	if !domain.ValidStage(stage) {
		return BulkStageResult{}, &domain.ValidationError{Field: "pipelineStage", Reason: "unknown stage"}
	}
	if len(ids) == 0 {
		return BulkStageResult{}, &domain.ValidationError{Field: "ids", Reason: "required"}
	}

	result := BulkStageResult{Failed: map[string]string{}}
	for _, id := range ids {
		_, err := s.ApplyAdminUpdate(ctx, id, func(ad domain.AdminData) domain.AdminData {
			ad.PipelineStage = stage
			return ad
		})
		if err != nil {
			result.Failed[id] = err.Error()
			metrics.ObserveAdminMutation("bulk_stage", "error")
			continue
		}
		result.Updated = append(result.Updated, id)
		metrics.ObserveAdminMutation("bulk_stage", "ok")
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}

	s.logger.Info("bulk stage change",
		slog.String("stage", string(stage)),
		slog.Int("updated", len(result.Updated)),
		slog.Int("failed", len(ids)-len(result.Updated)),
	)
	return result, nil
}

// Summary renders (or returns the cached) narrative summary for a candidate
// with a completed assessment.
func (s *AdminService) Summary(ctx context.Context, id string) ([]string, error) {
	if cached, ok := s.summaries.Get(summaryKey(id)); ok {
		if paragraphs, ok := cached.([]string); ok {
			return paragraphs, nil
		}
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Assessment == nil {
		return nil, &domain.ValidationError{Field: "assessment", Reason: "not completed"}
	}

	paragraphs := summary.Summarize(c.Assessment)
	s.summaries.Set(summaryKey(id), paragraphs, summaryCacheTTL)
	return paragraphs, nil
}

func summaryKey(id string) string {
	return "summary:" + id
}

func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
