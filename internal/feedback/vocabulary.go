package feedback

// Section identifies which part of a structured response the scanner is in.
type Section int

const (
	SectionNone Section = iota
	SectionFeedback
	SectionKeywordGap
	SectionScoreBreakdown
	SectionATSFeedback
)

// Line markers of the structured response format.
const (
	MarkerSectionFeedback = "- section_feedback:"
	MarkerKeywordGap      = "- keyword_gap:"
	MarkerScoreBreakdown  = "- score_breakdown:"
	MarkerATSFeedback     = "- ats_feedback:"

	ItemPrefix        = "- "
	KeyValueSeparator = ": "
	KeywordSeparator  = ", "
	KeywordQuote      = "'"
)

// Keys recognized under keyword_gap and ats_feedback.
const (
	KeyMissingKeywords = "missing_keywords"
	KeyWeakKeywords    = "weak_keywords"
	KeyATSCompatible   = "ATS_compatible"
	KeyATSIssues       = "issues"

	// ATSCompatibleLiteral is the only value that marks a resume as compatible.
	ATSCompatibleLiteral = "True"

	// NoIssuesLiteral is what the model writes when it found no ATS issues.
	NoIssuesLiteral = "None"
)

// ScoreKey names one entry of the score breakdown.
type ScoreKey string

const (
	ScoreOverall             ScoreKey = "overall_score"
	ScoreTechnicalSkills     ScoreKey = "technical_skills"
	ScoreSoftSkills          ScoreKey = "soft_skills"
	ScoreExperienceAlignment ScoreKey = "experience_alignment"
)

// ScoreKeys lists the recognized score keys in display order.
var ScoreKeys = []ScoreKey{
	ScoreOverall,
	ScoreTechnicalSkills,
	ScoreSoftSkills,
	ScoreExperienceAlignment,
}

// Sections lists the recognized sections in marker-matching order.
var Sections = []Section{
	SectionFeedback,
	SectionKeywordGap,
	SectionScoreBreakdown,
	SectionATSFeedback,
}

var sectionMarkers = map[Section]string{
	SectionFeedback:       MarkerSectionFeedback,
	SectionKeywordGap:     MarkerKeywordGap,
	SectionScoreBreakdown: MarkerScoreBreakdown,
	SectionATSFeedback:    MarkerATSFeedback,
}

var sectionNames = map[Section]string{
	SectionNone:           "none",
	SectionFeedback:       "section_feedback",
	SectionKeywordGap:     "keyword_gap",
	SectionScoreBreakdown: "score_breakdown",
	SectionATSFeedback:    "ats_feedback",
}

// Marker returns the header line prefix that opens s, or "" for SectionNone.
func (s Section) Marker() string {
	return sectionMarkers[s]
}

func (s Section) String() string {
	if name, ok := sectionNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsScoreKey reports whether key belongs to the fixed score vocabulary.
func IsScoreKey(key string) bool {
	for _, k := range ScoreKeys {
		if string(k) == key {
			return true
		}
	}
	return false
}
