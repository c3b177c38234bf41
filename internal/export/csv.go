// Package export renders the candidate list as flat files for recruiters.
// Assessment answers are emitted as their human-readable labels, never the
// raw numeric codes.
package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pazorg/candidatetrack/internal/domain"
)

// Headers is the fixed CSV column set, in order. Legacy questionnaire fields
// are present for every row and blank when absent.
func Headers() []string {
	headers := []string{
		"ID",
		"Name",
		"Email",
		"Phone",
		"City",
		"PipelineStage",
		"Rating",
		"DisqualifiedAtQuestionnaire",
		"DisqualifiedReason",
		"InterviewScheduledAt",
		"NextStep",
		"Tags",
		"NotesCount",
		"ResumeReviewedAt",
		"Occupation",
		"CurrentRole",
		"BackgroundAreas",
		"SalesExperience",
		"SomethingAboutYourself",
		"LegallyEntitledCanada",
		"WhatStoodOut",
		"WhyGoodFit",
		"FinancialInvestmentLicense",
		"LegallyEntitledCanadaFullTime",
		"ComfortableVirtual",
		"ExcitedOffSiteSocial",
		"PositionInterest",
		"QuestionsAboutOpportunity",
		"ContactPermission",
		"ResumeUrls",
		"Score",
		"Fit",
		"Interviewed",
		"CEO Invite",
		"Q1_Competitiveness",
		"Q2_MoneyMotivation",
	}
	for _, q := range domain.LikertQuestions {
		headers = append(headers, fmt.Sprintf("Q%d", q.ID))
	}
	for _, q := range domain.TrueScaleQuestions {
		headers = append(headers, fmt.Sprintf("Q%d", q.ID))
	}
	return headers
}

// Row renders one candidate as CSV cell values, aligned with Headers.
func Row(c *domain.Candidate) []string {
	a := c.Assessment
	q := c.ApplicantQuestionnaire
	ad := c.AdminView()

	disqualified := ""
	disqualifiedReason := ""
	if ad.QuestionnaireDisqualified != nil {
		disqualified = "Yes"
		disqualifiedReason = ad.QuestionnaireDisqualified.Reason
	}

	rating := ""
	if ad.Rating != nil {
		rating = strconv.Itoa(*ad.Rating)
	}

	score := ""
	if c.Score != nil {
		score = strconv.Itoa(*c.Score)
	}
	fit := "N/A"
	if c.FitCategory != nil && *c.FitCategory != "" {
		fit = *c.FitCategory
	}

	interviewed := "No"
	ceoInvite := "N/A"
	if c.PostInterview != nil {
		if c.PostInterview.InterviewCompleted {
			interviewed = "Yes"
		}
		if c.PostInterview.CEOInvite != "" {
			ceoInvite = c.PostInterview.CEOInvite
		}
	}

	row := []string{
		c.ID,
		strings.TrimSpace(c.FirstName + " " + c.LastName),
		c.Email,
		c.Phone,
		c.City,
		string(ad.PipelineStage),
		rating,
		disqualified,
		disqualifiedReason,
		formatTime(ad.InterviewScheduledAt),
		ad.NextStep,
		strings.Join(ad.Tags, "; "),
		strconv.Itoa(len(ad.Notes)),
		formatTime(ad.ResumeReviewedAt),
	}

	if q != nil {
		// older intake rows only carried the full-time eligibility field
		entitled := q.LegallyEntitledCanada
		if entitled == "" {
			entitled = q.LegallyEntitledCanadaFullTime
		}
		row = append(row,
			q.Occupation,
			q.CurrentRole,
			strings.Join(q.BackgroundAreas, "; "),
			q.SalesExperience,
			q.SomethingAboutYourself,
			entitled,
			q.WhatStoodOut,
			q.WhyGoodFit,
			q.FinancialInvestmentLicense,
			q.LegallyEntitledCanadaFullTime,
			q.ComfortableVirtualEnvironment,
			q.ExcitedOffSiteSocial,
			q.PositionInterest,
			q.QuestionsAboutOpportunity,
			q.ContactPermission,
			strings.Join(q.ResumeURLs, "; "),
		)
	} else {
		for i := 0; i < 16; i++ {
			row = append(row, "")
		}
	}

	row = append(row, score, fit, interviewed, ceoInvite)

	if a != nil {
		row = append(row,
			strconv.Itoa(a.Competitiveness),
			strconv.Itoa(a.MoneyMotivation),
		)
		// legacy partial rows may miss answers; those cells stay blank
		// instead of rendering the zero-value label
		for _, question := range domain.LikertQuestions {
			if v, ok := a.LikertResponses[question.ID]; ok {
				row = append(row, domain.LikertLabel(v))
			} else {
				row = append(row, "")
			}
		}
		for _, question := range domain.TrueScaleQuestions {
			if v, ok := a.TrueScaleResponses[question.ID]; ok {
				row = append(row, domain.TrueScaleLabel(v))
			} else {
				row = append(row, "")
			}
		}
	} else {
		for i := 0; i < 2+len(domain.LikertQuestions)+len(domain.TrueScaleQuestions); i++ {
			row = append(row, "")
		}
	}

	return row
}

// CSV renders the full candidate list as a CSV document. Cells containing a
// comma, quote or newline are quoted with internal quotes doubled; each cell
// is escaped exactly once.
func CSV(candidates []*domain.Candidate) string {
	var b strings.Builder
	writeCSVLine(&b, Headers())
	for _, c := range candidates {
		writeCSVLine(&b, Row(c))
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(escapeCSV(cell))
	}
	b.WriteByte('\n')
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
