// Package pipeline holds the two state tracks of the funnel: the
// system-derived candidate status and the recruiter-owned pipeline stage.
// The two tracks are maintained independently and are never derived from one
// another; Reconcile surfaces divergence for auditing instead of guessing.
package pipeline

import "github.com/pazorg/candidatetrack/internal/domain"

// statusRank orders the monotonic status track. Higher never rolls back.
var statusRank = map[string]int{
	domain.StatusNew:                0,
	domain.StatusInterviewComplete:  1,
	domain.StatusAssessmentStarted:  2,
	domain.StatusAssessmentComplete: 3,
}

// ValidStatus reports whether s is a known candidate status.
func ValidStatus(s string) bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvance reports whether moving from to the next status keeps the track
// monotonic. Equal status is allowed: post-interview resubmission overwrites
// in place.
func CanAdvance(from, to string) bool {
	f, ok1 := statusRank[from]
	t, ok2 := statusRank[to]
	return ok1 && ok2 && t >= f
}

// HasCompletedAssessment is the single guard shared by every assessment
// entry point: a candidate with a final assessment, or already marked
// complete, must short-circuit to the already-completed view.
func HasCompletedAssessment(c *domain.Candidate) bool {
	return c.Status == domain.StatusAssessmentComplete || c.Assessment != nil
}

// TerminalStage reports whether a pipeline stage ends the funnel.
func TerminalStage(s domain.PipelineStage) bool {
	return s == domain.StageRejected || s == domain.StageWithdrawn
}

// StageInfo is the applicant-facing description of a pipeline stage.
type StageInfo struct {
	Stage   domain.PipelineStage `json:"stage"`
	Label   string               `json:"label"`
	Message string               `json:"message"`
}

var stageInfos = map[domain.PipelineStage]StageInfo{
	domain.StageApplied: {
		Stage:   domain.StageApplied,
		Label:   "Application Received",
		Message: "Thank you for your application. We have received your information and it is currently under review.",
	},
	domain.StageScreening: {
		Stage:   domain.StageScreening,
		Label:   "Under Review",
		Message: "Your application is being reviewed by our team. We will contact you soon with next steps.",
	},
	domain.StageInterviewScheduled: {
		Stage:   domain.StageInterviewScheduled,
		Label:   "Interview Scheduled",
		Message: "Great news! An interview has been scheduled for you. Please check your email for details.",
	},
	domain.StageInterviewed: {
		Stage:   domain.StageInterviewed,
		Label:   "Interview Completed",
		Message: "Thank you for completing your interview. Our team is evaluating candidates and will be in touch soon.",
	},
	domain.StageOffer: {
		Stage:   domain.StageOffer,
		Label:   "Offer Extended",
		Message: "Congratulations! We have extended an offer to you. Please check your email for details and next steps.",
	},
	domain.StageHired: {
		Stage:   domain.StageHired,
		Label:   "Hired",
		Message: "Congratulations! You have been hired. Welcome to the team! Please check your email for onboarding information.",
	},
	domain.StageRejected: {
		Stage:   domain.StageRejected,
		Label:   "Not Selected",
		Message: "Thank you for your interest. Unfortunately, we have decided to move forward with other candidates at this time.",
	},
	domain.StageWithdrawn: {
		Stage:   domain.StageWithdrawn,
		Label:   "Application Withdrawn",
		Message: "Your application has been withdrawn. If you would like to reapply, please contact us.",
	},
}

// InfoForStage returns the applicant-facing label and message for a stage.
func InfoForStage(s domain.PipelineStage) StageInfo {
	if info, ok := stageInfos[s]; ok {
		return info
	}
	return stageInfos[domain.StageApplied]
}

// Divergence describes one candidate whose two state tracks disagree.
type Divergence struct {
	CandidateID string
	Status      string
	Stage       domain.PipelineStage
	Detail      string
}

// minimum stage expected for each status. The system never writes stages, so
// a lagging stage is not an error, only a reconciliation finding.
var expectedFloor = map[string]domain.PipelineStage{
	domain.StatusInterviewComplete:  domain.StageInterviewed,
	domain.StatusAssessmentStarted:  domain.StageInterviewed,
	domain.StatusAssessmentComplete: domain.StageInterviewed,
}

var stageOrder = map[domain.PipelineStage]int{
	domain.StageApplied:            0,
	domain.StageScreening:          1,
	domain.StageInterviewScheduled: 2,
	domain.StageInterviewed:        3,
	domain.StageOffer:              4,
	domain.StageHired:              5,
}

// Reconcile audits the status track against the admin pipeline stage and
// returns all divergences found. Terminal stages are exempt: an admin
// rejecting or withdrawing a candidate legitimately disagrees with status.
func Reconcile(candidates []*domain.Candidate) []Divergence {
	var out []Divergence
	for _, c := range candidates {
		ad := c.AdminView()
		if TerminalStage(ad.PipelineStage) {
			continue
		}
		if c.Disqualified() && ad.PipelineStage != domain.StageApplied && ad.PipelineStage != domain.StageScreening {
			out = append(out, Divergence{
				CandidateID: c.ID,
				Status:      c.Status,
				Stage:       ad.PipelineStage,
				Detail:      "disqualified candidate advanced in pipeline",
			})
			continue
		}
		floor, ok := expectedFloor[c.Status]
		if !ok {
			continue
		}
		if stageOrder[ad.PipelineStage] < stageOrder[floor] {
			out = append(out, Divergence{
				CandidateID: c.ID,
				Status:      c.Status,
				Stage:       ad.PipelineStage,
				Detail:      "pipeline stage behind candidate status",
			})
		}
	}
	return out
}
