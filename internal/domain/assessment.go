package domain

// AssessmentData holds the fixed leadership/EQ assessment answers. Once
// present on a candidate it is treated as final.
type AssessmentData struct {
	Occupation      string   `json:"occupation"`
	CurrentRole     string   `json:"currentRole"`
	BackgroundAreas []string `json:"backgroundAreas"`
	SalesExperience string   `json:"salesExperience"`

	Competitiveness int `json:"competitiveness"` // 1-10
	MoneyMotivation int `json:"moneyMotivation"` // 1-10

	// Keyed by question id. Likert answers run 0 (Strongly Disagree) to
	// 3 (Strongly Agree); true-scale answers run 0 (Never True) to
	// 3 (Always True) and describe traits undesirable for the role.
	LikertResponses    map[int]int `json:"likertResponses"`
	TrueScaleResponses map[int]int `json:"trueScaleResponses"`
}

// Question is one fixed assessment item.
type Question struct {
	ID   int    `json:"id"`
	Text string `json:"text"`
}

// LikertQuestions are items 3-20, scored by raw agreement.
var LikertQuestions = []Question{
	{ID: 3, Text: "I believe income should directly reflect performance."},
	{ID: 4, Text: "I enjoy public recognition for achievement."},
	{ID: 5, Text: "One of my long-term goals is financial independence."},
	{ID: 6, Text: "I prefer to lead rather than follow."},
	{ID: 7, Text: "I am comfortable making decisions under pressure."},
	{ID: 8, Text: "I naturally take ownership when things go wrong."},
	{ID: 9, Text: "I actively seek feedback to improve."},
	{ID: 10, Text: "I believe discipline is more important than motivation."},
	{ID: 11, Text: "I handle rejection well."},
	{ID: 12, Text: "I perform well without supervision."},
	{ID: 13, Text: "I am comfortable speaking with strangers."},
	{ID: 14, Text: "I enjoy persuading others when I believe in something."},
	{ID: 15, Text: "I stay consistent even when results are delayed."},
	{ID: 16, Text: "I prefer measurable goals."},
	{ID: 17, Text: "I thrive in competitive environments."},
	{ID: 18, Text: "I track my own performance metrics."},
	{ID: 19, Text: "I would rather earn based on results than tenure."},
	{ID: 20, Text: "I see myself building a team in the future."},
}

// TrueScaleQuestions are items 21-30. They frame risk traits, so scoring
// reverses them: an answer of 3 (Always True) contributes 0 fit points.
var TrueScaleQuestions = []Question{
	{ID: 21, Text: "I need to know exactly what I’m going to make next year and the year after that."},
	{ID: 22, Text: "When I’m working on something, I hate having my thought process interrupted."},
	{ID: 23, Text: "I hate adrenaline and high-pressure competitive situations."},
	{ID: 24, Text: "It is very gratifying knowing my paycheck is automatically deposited with safety and regularity."},
	{ID: 25, Text: "I hope to work with the same people forever and don’t want them to move on."},
	{ID: 26, Text: "I like my duties clearly spelled out with no ambiguity or spontaneity."},
	{ID: 27, Text: "If it’s not in my job description, I don’t do it."},
	{ID: 28, Text: "Sleep is incredibly important; I struggle if I don’t get eight hours."},
	{ID: 29, Text: "Work/life balance and “me time” are extremely important to me."},
	{ID: 30, Text: "Living a life of extremes and high intensity sounds stressful to me."},
}

// LikertLabel renders a 0-3 Likert answer as its human-readable label.
func LikertLabel(score int) string {
	switch score {
	case 3:
		return "Strongly Agree"
	case 2:
		return "Agree"
	case 1:
		return "Disagree"
	case 0:
		return "Strongly Disagree"
	}
	return ""
}

// TrueScaleLabel renders a 0-3 true-scale answer as its human-readable label.
func TrueScaleLabel(score int) string {
	switch score {
	case 3:
		return "Always True"
	case 2:
		return "Quite True"
	case 1:
		return "Rarely True"
	case 0:
		return "Never True"
	}
	return ""
}
