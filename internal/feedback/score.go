package feedback

import (
	"strconv"
	"strings"
)

// Band is the severity class of a score.
type Band int

const (
	BandLow Band = iota
	BandMedium
	BandHigh
)

const (
	HighScoreThreshold   = 90
	MediumScoreThreshold = 70
)

func (b Band) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

// ClassifyScore maps a reported score to its band. Scores that do not start
// with an integer count as 0.
func ClassifyScore(score string) Band {
	value := ScoreValue(score)
	switch {
	case value >= HighScoreThreshold:
		return BandHigh
	case value >= MediumScoreThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// ScoreValue reads the leading integer of score, so "85", " 85" and "85/100"
// all give 85. It returns 0 when there is none.
func ScoreValue(score string) int {
	s := strings.TrimLeft(score, " \t\r\n")

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}

	// On overflow ParseInt returns the clamped bound, which still lands in
	// the right band.
	value, _ := strconv.ParseInt(s[:end], 10, 0)
	return int(value)
}
