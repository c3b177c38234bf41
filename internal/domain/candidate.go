package domain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Candidate statuses. The status track is monotonic and mostly-forward; the
// system never rolls it back on its own.
const (
	StatusNew                = "new"
	StatusInterviewComplete  = "interview_complete"
	StatusAssessmentStarted  = "assessment_started"
	StatusAssessmentComplete = "assessment_complete"
)

// Fit categories derived from the assessment percentage.
const (
	FitHighFit    = "High Fit"
	FitReview     = "Review"
	FitNotAligned = "Not Aligned"
)

// PipelineStage is the recruiter-facing funnel position. It is maintained by
// admins independently of the status track and is never derived from it.
type PipelineStage string

const (
	StageApplied            PipelineStage = "Applied"
	StageScreening          PipelineStage = "Screening"
	StageInterviewScheduled PipelineStage = "Interview Scheduled"
	StageInterviewed        PipelineStage = "Interviewed"
	StageOffer              PipelineStage = "Offer"
	StageHired              PipelineStage = "Hired"
	StageRejected           PipelineStage = "Rejected"
	StageWithdrawn          PipelineStage = "Withdrawn"
)

// PipelineStages lists every stage in funnel order; Rejected and Withdrawn
// are terminal.
var PipelineStages = []PipelineStage{
	StageApplied,
	StageScreening,
	StageInterviewScheduled,
	StageInterviewed,
	StageOffer,
	StageHired,
	StageRejected,
	StageWithdrawn,
}

// ValidStage reports whether s is one of the eight known pipeline stages.
func ValidStage(s PipelineStage) bool {
	for _, st := range PipelineStages {
		if st == s {
			return true
		}
	}
	return false
}

// Candidate is the aggregate root. One row per candidate; nested structures
// are persisted as JSON and the key set is part of the export contract.
type Candidate struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	City      string    `json:"city"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`

	AdminData              *AdminData      `json:"adminData,omitempty"`
	ApplicantQuestionnaire *Questionnaire  `json:"applicantQuestionnaire,omitempty"`
	PostInterview          *PostInterview  `json:"postInterview,omitempty"`
	Assessment             *AssessmentData `json:"assessment,omitempty"`

	// Score and FitCategory are a snapshot taken at assessment submission,
	// never recomputed implicitly.
	Score       *int    `json:"score,omitempty"`
	FitCategory *string `json:"fitCategory,omitempty"`
}

// PostInterview is the structured confirmation written after the initial
// interview. Resubmitting overwrites the previous round.
type PostInterview struct {
	InterviewCompleted bool   `json:"interviewCompleted"`
	Consent            bool   `json:"consent"`
	CEOInvite          string `json:"ceoInvite"` // yes | no | declined
}

// AdminNote is immutable once created.
type AdminNote struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"createdAt"`
	Text        string    `json:"text"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
}

// EmailLogEntry records an email the admin "sent". Dispatch is not wired;
// entries are log-only.
type EmailLogEntry struct {
	SentAt  time.Time `json:"sentAt"`
	Subject string    `json:"subject"`
	Type    string    `json:"type,omitempty"`
}

// Disqualification is a terminal marker set when a hard eligibility question
// is answered negatively. Normal flow never clears it.
type Disqualification struct {
	At          time.Time `json:"at"`
	Reason      string    `json:"reason"`
	QuestionKey string    `json:"questionKey"`
}

// AdminData holds admin-owned state. Always obtain it through
// Candidate.AdminView (or NewAdminData) so missing sub-fields never surface
// as nils.
type AdminData struct {
	Notes                     []AdminNote       `json:"notes"`
	PipelineStage             PipelineStage     `json:"pipelineStage"`
	Rating                    *int              `json:"rating"` // 1-5 or null
	InterviewScheduledAt      *time.Time        `json:"interviewScheduledAt"`
	NextStep                  string            `json:"nextStep"`
	Tags                      []string          `json:"tags"`
	EmailsSent                []EmailLogEntry   `json:"emailsSent"`
	ResumeReviewedAt          *time.Time        `json:"resumeReviewedAt"`
	QuestionnaireDisqualified *Disqualification `json:"questionnaireDisqualified"`
}

// NewAdminData returns a fully-populated default AdminData. Readers always
// see every field, so merging with defaults happens in one place.
func NewAdminData() AdminData {
	return AdminData{
		Notes:         []AdminNote{},
		PipelineStage: StageApplied,
		NextStep:      "",
		Tags:          []string{},
		EmailsSent:    []EmailLogEntry{},
	}
}

// AdminView returns the candidate's admin data merged over defaults. The
// returned value is a copy; mutate it and write it back via Upsert.
func (c *Candidate) AdminView() AdminData {
	ad := NewAdminData()
	if c.AdminData == nil {
		return ad
	}
	src := *c.AdminData
	if src.Notes != nil {
		ad.Notes = src.Notes
	}
	if src.PipelineStage != "" {
		ad.PipelineStage = src.PipelineStage
	}
	ad.Rating = src.Rating
	ad.InterviewScheduledAt = src.InterviewScheduledAt
	ad.NextStep = src.NextStep
	if src.Tags != nil {
		ad.Tags = src.Tags
	}
	if src.EmailsSent != nil {
		ad.EmailsSent = src.EmailsSent
	}
	ad.ResumeReviewedAt = src.ResumeReviewedAt
	ad.QuestionnaireDisqualified = src.QuestionnaireDisqualified
	return ad
}

// Disqualified reports whether the candidate carries the terminal
// questionnaire disqualification marker.
func (c *Candidate) Disqualified() bool {
	return c.AdminData != nil && c.AdminData.QuestionnaireDisqualified != nil
}

// CandidateRepository defines data access for candidates. Implementations
// must treat Upsert as a whole-row write.
type CandidateRepository interface {
	List(ctx context.Context) ([]*Candidate, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	// GetByEmail matches the normalized email case-insensitively and returns
	// the most recent candidate.
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	Upsert(ctx context.Context, c *Candidate) error
	Delete(ctx context.Context, id string) error
}

// ResumeStore stores uploaded resume files and returns a public URL. The
// core only ever appends the returned URL to the candidate's resume list.
type ResumeStore interface {
	Store(ctx context.Context, candidateID, filename string, size int64, r io.Reader) (string, error)
}

// Sentinel errors shared across services and handlers.
var (
	// ErrNotFound is returned when a lookup by id or email finds nothing.
	ErrNotFound = errors.New("candidate not found")
	// ErrAssessmentCompleted guards every assessment entry point.
	ErrAssessmentCompleted = errors.New("assessment already completed")
)

// ValidationError marks malformed or missing input. It blocks the operation
// before anything reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
