package feedback

import (
	"strings"
)

// ParsedFeedback is the typed form of a structured analysis response.
type ParsedFeedback struct {
	SectionFeedback string              `json:"section_feedback"`
	ScoreBreakdown  map[ScoreKey]string `json:"score_breakdown"`
	KeywordGap      KeywordGap          `json:"keyword_gap"`
	ATSFeedback     ATSFeedback         `json:"ats_feedback"`
}

type KeywordGap struct {
	Missing []string `json:"missing"`
	Weak    string   `json:"weak"`
}

type ATSFeedback struct {
	Compatible bool   `json:"compatible"`
	Issues     string `json:"issues"`
}

// UpdateKind tells which field of ParsedFeedback a scanned line changes.
type UpdateKind int

const (
	UpdateNone UpdateKind = iota
	UpdateAppendFeedback
	UpdateScore
	UpdateMissingKeywords
	UpdateWeakKeywords
	UpdateATSCompatible
	UpdateATSIssues
)

// Update is the field change produced by a single line.
type Update struct {
	Kind       UpdateKind
	Score      ScoreKey
	Text       string
	Keywords   []string
	Compatible bool
}

// Step is the scanner's transition function. It trims line, then returns the
// section that is active afterwards and the field change the line carries.
// It has no side effects.
func Step(state Section, line string) (Section, Update) {
	line = strings.TrimSpace(line)

	for _, section := range Sections {
		if strings.HasPrefix(line, section.Marker()) {
			return section, Update{}
		}
	}

	if strings.HasPrefix(line, ItemPrefix) {
		key, value := splitItem(line)
		return state, routeItem(state, key, value)
	}

	if state == SectionFeedback {
		return state, Update{Kind: UpdateAppendFeedback, Text: line + "\n"}
	}

	return state, Update{}
}

func splitItem(line string) (string, string) {
	item := strings.TrimPrefix(line, ItemPrefix)
	key, value, found := strings.Cut(item, KeyValueSeparator)
	if !found {
		return item, ""
	}
	return key, value
}

func routeItem(state Section, key, value string) Update {
	switch state {
	case SectionScoreBreakdown:
		if IsScoreKey(key) {
			return Update{Kind: UpdateScore, Score: ScoreKey(key), Text: value}
		}
	case SectionKeywordGap:
		switch key {
		case KeyMissingKeywords:
			unquoted := strings.ReplaceAll(value, KeywordQuote, "")
			return Update{Kind: UpdateMissingKeywords, Keywords: strings.Split(unquoted, KeywordSeparator)}
		case KeyWeakKeywords:
			return Update{Kind: UpdateWeakKeywords, Text: strings.ReplaceAll(value, KeywordQuote, "")}
		}
	case SectionATSFeedback:
		switch key {
		case KeyATSCompatible:
			return Update{Kind: UpdateATSCompatible, Compatible: value == ATSCompatibleLiteral}
		case KeyATSIssues:
			return Update{Kind: UpdateATSIssues, Text: value}
		}
	}
	return Update{}
}

// Scanner folds Step over a sequence of lines.
type Scanner struct {
	state    Section
	feedback strings.Builder
	result   ParsedFeedback
}

func NewScanner() *Scanner {
	return &Scanner{
		result: ParsedFeedback{
			ScoreBreakdown: make(map[ScoreKey]string),
			KeywordGap:     KeywordGap{Missing: []string{}},
		},
	}
}

// Scan consumes one line and returns the update it produced.
func (s *Scanner) Scan(line string) Update {
	next, update := Step(s.state, line)
	s.state = next

	switch update.Kind {
	case UpdateAppendFeedback:
		s.feedback.WriteString(update.Text)
	case UpdateScore:
		s.result.ScoreBreakdown[update.Score] = update.Text
	case UpdateMissingKeywords:
		s.result.KeywordGap.Missing = update.Keywords
	case UpdateWeakKeywords:
		s.result.KeywordGap.Weak = update.Text
	case UpdateATSCompatible:
		s.result.ATSFeedback.Compatible = update.Compatible
	case UpdateATSIssues:
		s.result.ATSFeedback.Issues = update.Text
	}

	return update
}

// Section returns the currently active section.
func (s *Scanner) Section() Section {
	return s.state
}

// Result returns a copy of everything scanned so far.
func (s *Scanner) Result() ParsedFeedback {
	scores := make(map[ScoreKey]string, len(s.result.ScoreBreakdown))
	for k, v := range s.result.ScoreBreakdown {
		scores[k] = v
	}
	missing := make([]string, len(s.result.KeywordGap.Missing))
	copy(missing, s.result.KeywordGap.Missing)

	return ParsedFeedback{
		SectionFeedback: s.feedback.String(),
		ScoreBreakdown:  scores,
		KeywordGap: KeywordGap{
			Missing: missing,
			Weak:    s.result.KeywordGap.Weak,
		},
		ATSFeedback: s.result.ATSFeedback,
	}
}

// Parse reads a structured analysis response. It never fails: sections that
// are missing or malformed keep their zero values.
func Parse(raw string) ParsedFeedback {
	scanner := NewScanner()
	for _, line := range strings.Split(raw, "\n") {
		scanner.Scan(line)
	}
	return scanner.Result()
}
