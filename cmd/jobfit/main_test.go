package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/jobfit-analyzer/internal/models"
)

const structuredReply = `- section_feedback:
Good Go background.
- score_breakdown:
- overall_score: 88
- technical_skills: 92
- keyword_gap:
- missing_keywords: 'Terraform'
- weak_keywords: ''
- ats_feedback:
- ATS_compatible: False
- issues: Two-column layout`

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderRaw(&buf, models.ParseModeStructured, structuredReply))

	out := buf.String()
	assert.Contains(t, out, "Overall Score")
	assert.Contains(t, out, "Technical Skills")
	assert.Contains(t, out, "Terraform")
	assert.Contains(t, out, "Weak: None")
	assert.Contains(t, out, "Not ATS Compatible")
	assert.Contains(t, out, "Issues: Two-column layout")
}

func TestRenderRaw_UnknownMode(t *testing.T) {
	var buf bytes.Buffer
	err := renderRaw(&buf, models.ParseMode("auto"), structuredReply)
	assert.ErrorContains(t, err, `unknown mode "auto"`)
	assert.Empty(t, buf.String())
}

func TestRenderCommand_Stdin(t *testing.T) {
	out, err := execute(t, "<answer>## Summary\nA close match</answer>", "render", "--mode", "answer", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "A close match")
	assert.NotContains(t, out, "<answer>")
}

func TestRenderCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reply.txt")
	require.NoError(t, os.WriteFile(path, []byte(structuredReply), 0644))

	out, err := execute(t, "", "render", "--mode", "structured", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Good Go background.")
	assert.Contains(t, out, " 92\n")
}

func TestAnalyzeCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "structured", r.FormValue("format"))
		assert.Equal(t, "critical", r.FormValue("tone"))
		_, _ = w.Write([]byte(structuredReply))
	}))
	defer server.Close()

	dir := t.TempDir()
	resume := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(resume, []byte("%PDF-1.4"), 0644))
	saved := filepath.Join(dir, "saved.txt")

	out, err := execute(t, "",
		"analyze",
		"--resume", resume,
		"--job-text", "Platform engineer with Terraform and Go",
		"--tone", "critical",
		"--format", "structured",
		"--server", server.URL,
		"--save", saved,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Overall Score")

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Equal(t, structuredReply, string(data))
}

func TestParseModeFor(t *testing.T) {
	assert.Equal(t, models.ParseModeStructured, parseModeFor(models.FormatStructured))
	assert.Equal(t, models.ParseModeAnswer, parseModeFor(models.FormatMarkdown))
	assert.Equal(t, models.ParseModeAnswer, parseModeFor(""))
}
