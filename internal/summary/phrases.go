package summary

import "github.com/pazorg/candidatetrack/internal/domain"

// Band buckets a numeric answer dimension for phrase selection.
type Band string

const (
	BandLow      Band = "low"
	BandModerate Band = "moderate"
	BandHigh     Band = "high"
)

// Pre-authored narrative building blocks, three per band per category. The
// phrase text is fixed; changing it breaks reproducibility of stored
// summaries across deployments.

var competitivenessPhrases = map[Band][3]string{
	BandLow: {
		"This candidate reports a lower competitive drive and may prefer collaborative or stable environments over head-to-head competition.",
		"Competitiveness is self-rated on the lower end; they may respond better to team-based or clearly structured goals rather than open competition.",
		"Lower self-reported competitiveness suggests they might need clear targets and a supportive environment to maintain momentum.",
	},
	BandModerate: {
		"This candidate shows a balanced competitive drive—willing to compete when needed without requiring constant rivalry.",
		"Moderate competitiveness indicates they can thrive in both collaborative and goal-driven settings.",
		"They report a middle-ground competitive drive, which can suit environments that mix teamwork with individual accountability.",
	},
	BandHigh: {
		"This candidate reports a strong competitive drive and is likely to thrive in target-based and high-stakes environments.",
		"High self-reported competitiveness suggests they are motivated by rankings, wins, and outperforming benchmarks.",
		"They indicate a strong desire to compete and excel, which aligns well with commission and performance-based roles.",
	},
}

var moneyMotivationPhrases = map[Band][3]string{
	BandLow: {
		"Income growth is self-rated as a weaker driver; they may be more motivated by stability, purpose, or work-life balance.",
		"Lower money motivation suggests compensation may need to be framed alongside non-financial rewards and meaning.",
		"They report that earnings potential is less central to their motivation; consider discussing total value proposition beyond pay.",
	},
	BandModerate: {
		"Money motivation is in the moderate range—they value income as one factor among others such as growth and culture.",
		"They indicate a balanced interest in earnings potential alongside other job factors.",
		"Moderate money motivation fits roles where pay is important but not the sole driver.",
	},
	BandHigh: {
		"This candidate is highly motivated by income growth and is likely to respond well to commission and performance-based pay.",
		"Strong money motivation suggests they are driven by earnings potential and tangible results.",
		"They report high motivation by income growth, which aligns with results-based compensation and upside opportunity.",
	},
}

var likertAlignmentPhrases = map[Band][3]string{
	BandLow: {
		"Their responses on leadership and performance attitudes show lower alignment with performance-based culture; they may prefer more predictable or supportive structures.",
		"Agreement with performance-driven and leadership statements is on the lower side; fit may depend on role design and onboarding.",
		"They tend to disagree or only partly agree with many performance/leadership items—worth exploring in interview how they view targets and feedback.",
	},
	BandModerate: {
		"They show mixed alignment with performance and leadership statements—some strong agreement, some hesitation. Interview can clarify areas of fit.",
		"Moderate agreement across leadership and performance items suggests they can grow into a high-accountability environment with the right support.",
		"Their responses indicate a middle ground on performance culture; they may need clarity on expectations and development path.",
	},
	BandHigh: {
		"Strong agreement with performance-based and leadership statements suggests good alignment with a results-oriented, high-accountability culture.",
		"They consistently agree with items on ownership, feedback, competition, and measurable goals—positive indicators for a sales/leadership track.",
		"High alignment with the leadership and performance statements indicates they are likely comfortable with targets, rejection, and self-direction.",
	},
}

var trueScaleFitPhrases = map[Band][3]string{
	BandLow: {
		"Their answers to the 'fit risk' items (preference for predictability, fixed pay, clear job description, etc.) suggest they may find a highly variable, high-intensity role stressful. Worth probing in interview.",
		"They tend to endorse statements that favour stability, fixed schedules, and clear boundaries—potential mismatch with uncapped commission and flexible intensity.",
		"Lower scores on reversed fit items indicate possible concerns around pressure, variable income, and work-life flexibility; discuss expectations openly.",
	},
	BandModerate: {
		"They show a mixed picture on stability vs. variable pay and intensity—some comfort with ambiguity and results-based work, some preference for structure. Interview can clarify.",
		"Moderate responses on the fit-risk items suggest they could adapt to a performance culture with clear communication and support.",
		"They are neither strongly averse nor strongly comfortable with high variability; onboarding and expectation-setting will be important.",
	},
	BandHigh: {
		"They largely reject statements that favour fixed pay, rigid job descriptions, and low pressure—positive signals for a commission-based, high-autonomy role.",
		"High scores on the reversed fit items suggest they are comfortable with variable income, ambiguity, and high-intensity environments.",
		"Their answers indicate low need for predictability and high tolerance for results-driven, flexible work—good fit indicators for sales/leadership.",
	},
}

var fitCategoryClosing = map[string][3]string{
	domain.FitHighFit: {
		"Overall assessment profile suggests high fit for a performance-based, leadership-oriented role. Recommend moving forward with next steps.",
		"Combined scores and response pattern indicate strong alignment. Consider prioritising for interview or offer.",
		"Profile is consistent with high fit; competitiveness, money motivation, and attitude items support a positive evaluation.",
	},
	domain.FitReview: {
		"Overall profile suggests a review candidate—some strong signals, some areas to probe in interview before deciding.",
		"Mixed indicators; recommend a structured interview to clarify fit and motivation before advancing.",
		"Worth a closer look: some alignment with the role, with a few areas to validate in conversation.",
	},
	domain.FitNotAligned: {
		"Overall profile suggests lower alignment with a high-performance, variable-pay environment. Consider other roles or a candid conversation about expectations.",
		"Scores and response patterns indicate potential mismatch; discuss their goals and the role demands before proceeding.",
		"Assessment points to possible misalignment; recommend clarifying their motivation and the role structure before next steps.",
	},
}
