package models

type Tone string

const (
	ToneProfessional Tone = "professional"
	ToneFriendly     Tone = "friendly"
	ToneCritical     Tone = "critical"
)

// Tones lists the accepted analysis tones.
var Tones = []Tone{ToneProfessional, ToneFriendly, ToneCritical}

// ResponseFormat selects which reply shape the model is asked for.
type ResponseFormat string

const (
	FormatMarkdown   ResponseFormat = "markdown"
	FormatStructured ResponseFormat = "structured"
)

// ParseMode selects which parser handles a raw response.
type ParseMode string

const (
	ParseModeAnswer     ParseMode = "answer"
	ParseModeStructured ParseMode = "structured"
)

// MinJobDescriptionLength is the shortest job description worth analyzing.
const MinJobDescriptionLength = 10

type AnalyzeRequest struct {
	JobDescription string         `json:"job_description" validate:"required,min=10"`
	Tone           Tone           `json:"tone" validate:"required,oneof=professional friendly critical"`
	Format         ResponseFormat `json:"format" validate:"omitempty,oneof=markdown structured"`
}

// ResponseFormatOrDefault returns the requested format, markdown when unset.
func (r *AnalyzeRequest) ResponseFormatOrDefault() ResponseFormat {
	if r.Format == "" {
		return FormatMarkdown
	}
	return r.Format
}

type ParseRequest struct {
	Raw  string    `json:"raw"`
	Mode ParseMode `json:"mode" validate:"required,oneof=answer structured"`
}

type ParseAnswerResponse struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}
