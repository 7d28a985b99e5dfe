package feedback

import (
	"regexp"
	"strings"
)

var (
	answerPattern = regexp.MustCompile(`(?s)<answer>(.*?)</answer>`)

	// The heading text stops at any line terminator, carriage returns included.
	headingPattern = regexp.MustCompile(`(?m)^#{1,6}\s+([^\r\n\x{2028}\x{2029}]*)`)
)

const escapedNewline = `\n`

// ExtractAnswer turns a markdown analysis response into display text. It
// unwraps the first <answer> block if there is one, undoes literal "\n"
// escapes and rewrites every heading line as bold-italic text.
func ExtractAnswer(raw string) string {
	text := raw
	if match := answerPattern.FindStringSubmatch(raw); match != nil {
		text = strings.TrimSpace(match[1])
	}

	text = strings.ReplaceAll(text, escapedNewline, "\n")

	return EmphasizeHeadings(text)
}

// EmphasizeHeadings rewrites "## Title" lines as "\n***Title***\n".
func EmphasizeHeadings(text string) string {
	return headingPattern.ReplaceAllString(text, "\n***${1}***\n")
}
