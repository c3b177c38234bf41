package domain

import "time"

// QuestionnaireVariant distinguishes the two questionnaire schemas that have
// been collected over time. Export and summary code switch on the variant
// instead of probing individual optional fields.
type QuestionnaireVariant string

const (
	VariantIntakeV1 QuestionnaireVariant = "intake-v1"
	VariantExitV1   QuestionnaireVariant = "exit-v1"
)

// Questionnaire carries the applicant's answers. The persisted JSON is one
// flat object with optional fields, exactly as older records were stored, so
// the variant is derived rather than persisted.
type Questionnaire struct {
	// intake-v1 fields
	Occupation             string   `json:"occupation,omitempty"`
	CurrentRole            string   `json:"currentRole,omitempty"`
	BackgroundAreas        []string `json:"backgroundAreas,omitempty"`
	BackgroundOther        string   `json:"backgroundOther,omitempty"`
	SalesExperience        string   `json:"salesExperience,omitempty"`
	SomethingAboutYourself string   `json:"somethingAboutYourself,omitempty"`
	LegallyEntitledCanada  string   `json:"legallyEntitledCanada,omitempty"` // yes | no

	// ResumeUrls is append-only; uploads add, never replace.
	ResumeURLs []string `json:"resumeUrls,omitempty"`

	// exit-v1 fields (post live career overview exit questionnaire)
	WhatStoodOut                  string     `json:"whatStoodOut,omitempty"`
	WhyGoodFit                    string     `json:"whyGoodFit,omitempty"`
	FinancialInvestmentLicense    string     `json:"financialInvestmentLicense,omitempty"`
	LegallyEntitledCanadaFullTime string     `json:"legallyEntitledCanadaFullTime,omitempty"`
	ComfortableVirtualEnvironment string     `json:"comfortableVirtualEnvironment,omitempty"`
	ExcitedOffSiteSocial          string     `json:"excitedOffSiteSocial,omitempty"` // yes | no | maybe
	PositionInterest              string     `json:"positionInterest,omitempty"`
	QuestionsAboutOpportunity     string     `json:"questionsAboutOpportunity,omitempty"`
	ContactPermission             string     `json:"contactPermission,omitempty"`
	SubmittedAt                   *time.Time `json:"submittedAt,omitempty"`
}

// Variant classifies the questionnaire. Records written by the intake form
// always carry an occupation; exit-questionnaire records never do.
func (q *Questionnaire) Variant() QuestionnaireVariant {
	if q.Occupation == "" && (q.WhatStoodOut != "" || q.WhyGoodFit != "" || q.PositionInterest != "") {
		return VariantExitV1
	}
	return VariantIntakeV1
}

// MergeResumeURLs appends urls to the questionnaire's resume list.
func (q *Questionnaire) MergeResumeURLs(urls []string) {
	q.ResumeURLs = append(q.ResumeURLs, urls...)
}

// DisqualificationReason is the fixed reason recorded when the eligibility
// checkpoint is answered "no".
const DisqualificationReason = "Not legally entitled to work in Canada full-time."

// DisqualificationQuestionKey identifies the offending question for admins.
const DisqualificationQuestionKey = "legallyEntitledCanada"

// IntakeBackgroundAreas are the selectable background areas on the reception
// intake form.
var IntakeBackgroundAreas = []string{
	"Sales",
	"Customer Service",
	"Management / Leadership",
	"Entrepreneurial / Business Owner",
	"Trades / Skilled Labour",
	"Administrative / Office Support",
	"Basic Digital Skills / (CRM, Zoom, Google Workspace, etc.)",
	"Social Media / Marketing",
	"IT Advanced Skills (Advanced AI, Development, Data Intelligence and Infrastructure and Security)",
	"Web Developer",
	"Hospitality and Retail",
	"Health Care and Medical Field",
	"Other",
}

// AssessmentBackgroundAreas are the selectable background areas on the
// assessment room form.
var AssessmentBackgroundAreas = []string{
	"Sales",
	"Customer Service",
	"Management / Leadership",
	"Entrepreneurial / Business Owner",
	"Corporate / Professional",
	"Trades / Skilled Labour",
	"Administrative / Office Support",
	"Technical / Digital Skills (CRM, Zoom, Google Workspace, etc.)",
	"Social Media / Marketing",
	"Other",
}

// OccupationOptions are the employment-status choices shared by both intake
// flows.
var OccupationOptions = []struct {
	Value string `json:"value"`
	Label string `json:"label"`
}{
	{Value: "full-time", Label: "Employed full-time"},
	{Value: "part-time", Label: "Employed part-time"},
	{Value: "self-employed", Label: "Self-employed"},
	{Value: "student", Label: "Student"},
	{Value: "unemployed", Label: "Not currently employed"},
}
