package render

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"alfredoptarigan/jobfit-analyzer/internal/feedback"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestScoreLabel(t *testing.T) {
	assert.Equal(t, "Overall Score", ScoreLabel(feedback.ScoreOverall))
	assert.Equal(t, "Technical Skills", ScoreLabel(feedback.ScoreTechnicalSkills))
	assert.Equal(t, "Experience Alignment", ScoreLabel(feedback.ScoreExperienceAlignment))
}

func TestBar(t *testing.T) {
	r := &Renderer{barWidth: 10}

	tests := []struct {
		score string
		want  string
	}{
		{"100", "██████████"},
		{"85", "████████░░"},
		{"0", "░░░░░░░░░░"},
		{"abc", "░░░░░░░░░░"},
		{"250", "██████████"},
		{"-5", "░░░░░░░░░░"},
	}

	for _, tt := range tests {
		t.Run(tt.score, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Bar(tt.score))
		})
	}
}

func TestFeedback_Full(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	r.Feedback(feedback.ParsedFeedback{
		SectionFeedback: "Strong backend background.\n",
		ScoreBreakdown: map[feedback.ScoreKey]string{
			feedback.ScoreOverall:    "85",
			feedback.ScoreSoftSkills: "60",
		},
		KeywordGap:  feedback.KeywordGap{Missing: []string{"Python", "", "Docker"}, Weak: "Leadership"},
		ATSFeedback: feedback.ATSFeedback{Compatible: true, Issues: "Tables in header"},
	})
	out := buf.String()

	assert.Contains(t, out, "Overall Score")
	assert.Contains(t, out, "Soft Skills")
	assert.NotContains(t, out, "Technical Skills")
	assert.NotContains(t, out, "Experience Alignment")
	assert.Contains(t, out, " 85\n")

	assert.Contains(t, out, "Strong backend background.")
	assert.Contains(t, out, "Missing:  Python   Docker \n")
	assert.Contains(t, out, "Weak: Leadership")
	assert.Contains(t, out, "● ATS Compatible")
	assert.Contains(t, out, "Issues: Tables in header")

	assert.Less(t, strings.Index(out, "Overall Score"), strings.Index(out, "Soft Skills"))
}

func TestFeedback_Defaults(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Feedback(feedback.Parse(""))
	out := buf.String()

	assert.Contains(t, out, "Weak: None")
	assert.Contains(t, out, "Missing: None")
	assert.Contains(t, out, "● Not ATS Compatible")
	assert.NotContains(t, out, "Issues:")
	assert.NotContains(t, out, "Detailed Feedback")
	assert.NotContains(t, out, barEmpty)
}

func TestFeedback_HidesNoneIssues(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Feedback(feedback.ParsedFeedback{
		ATSFeedback: feedback.ATSFeedback{Compatible: true, Issues: "None"},
	})

	assert.NotContains(t, buf.String(), "Issues:")
}

func TestAnswer(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Answer("<answer>## Strengths\nSolid Go experience</answer>")

	out := buf.String()
	assert.Contains(t, out, "\nStrengths\n")
	assert.NotContains(t, out, "***")
	assert.NotContains(t, out, "##")
	assert.Contains(t, out, "Solid Go experience")
}
