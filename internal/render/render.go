package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"alfredoptarigan/jobfit-analyzer/internal/feedback"
)

const (
	DefaultBarWidth = 30
	ruleWidth       = 50
	labelWidth      = 22

	barFilled = "█"
	barEmpty  = "░"
	dot       = "●"
	none      = "None"
)

var (
	headingStyle = color.New(color.Bold, color.Underline)
	emphasis     = color.New(color.Bold)
	chipStyle    = color.New(color.FgHiWhite, color.BgRed)

	bandStyles = map[feedback.Band]*color.Color{
		feedback.BandHigh:   color.New(color.FgGreen),
		feedback.BandMedium: color.New(color.FgYellow),
		feedback.BandLow:    color.New(color.FgRed),
	}

	titleCaser = cases.Title(language.English)
)

// Renderer writes analysis results to a terminal.
type Renderer struct {
	out      io.Writer
	barWidth int
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out, barWidth: DefaultBarWidth}
}

// Answer prints the markdown reply with headings emphasized.
func (r *Renderer) Answer(raw string) {
	text := feedback.ExtractAnswer(raw)
	fmt.Fprintln(r.out, emphasizeMarkers(text))
}

// emphasizeMarkers turns the ***Heading*** markers left by ExtractAnswer into
// bold terminal text.
func emphasizeMarkers(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if len(line) > 6 && strings.HasPrefix(line, "***") && strings.HasSuffix(line, "***") {
			lines[i] = emphasis.Sprint(strings.TrimSuffix(strings.TrimPrefix(line, "***"), "***"))
		}
	}
	return strings.Join(lines, "\n")
}

// Feedback prints a parsed structured response.
func (r *Renderer) Feedback(fb feedback.ParsedFeedback) {
	r.heading("Score Breakdown")
	for _, key := range feedback.ScoreKeys {
		score, ok := fb.ScoreBreakdown[key]
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "%-*s %s %s\n", labelWidth, ScoreLabel(key), r.Bar(score), score)
	}

	if fb.SectionFeedback != "" {
		r.heading("Detailed Feedback")
		fmt.Fprint(r.out, fb.SectionFeedback)
	}

	r.heading("Keyword Gap")
	fmt.Fprintf(r.out, "Missing: %s\n", chips(fb.KeywordGap.Missing))
	weak := fb.KeywordGap.Weak
	if weak == "" {
		weak = none
	}
	fmt.Fprintf(r.out, "Weak: %s\n", weak)

	r.heading("ATS Compatibility")
	if fb.ATSFeedback.Compatible {
		fmt.Fprintf(r.out, "%s ATS Compatible\n", color.GreenString(dot))
	} else {
		fmt.Fprintf(r.out, "%s Not ATS Compatible\n", color.RedString(dot))
	}
	if fb.ATSFeedback.Issues != "" && fb.ATSFeedback.Issues != feedback.NoIssuesLiteral {
		fmt.Fprintf(r.out, "Issues: %s\n", fb.ATSFeedback.Issues)
	}
}

// Bar draws a score as a fixed-width bar colored by its band.
func (r *Renderer) Bar(score string) string {
	value := feedback.ScoreValue(score)
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := value * r.barWidth / 100

	bar := strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, r.barWidth-filled)
	return bandStyles[feedback.ClassifyScore(score)].Sprint(bar)
}

// ScoreLabel humanizes a score key: "technical_skills" becomes "Technical Skills".
func ScoreLabel(key feedback.ScoreKey) string {
	return titleCaser.String(strings.ReplaceAll(string(key), "_", " "))
}

func (r *Renderer) heading(title string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headingStyle.Sprint(title))
	fmt.Fprintln(r.out, strings.Repeat("─", ruleWidth))
}

func chips(keywords []string) string {
	var out []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		out = append(out, chipStyle.Sprintf(" %s ", kw))
	}
	if len(out) == 0 {
		return none
	}
	return strings.Join(out, " ")
}
