package services

import (
	"fmt"

	"alfredoptarigan/jobfit-analyzer/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt creates the resume vs job description prompt in the
// requested reply format.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string, tone models.Tone, format models.ResponseFormat) string {
	if format == models.FormatStructured {
		return pb.buildStructuredPrompt(resumeText, jobDescription, tone)
	}
	return pb.buildMarkdownPrompt(resumeText, jobDescription, tone)
}

func (pb *PromptBuilder) buildMarkdownPrompt(resumeText, jobDescription string, tone models.Tone) string {
	return fmt.Sprintf(`You will be comparing a resume to a job description and providing detailed feedback and areas for improvement. Your response should be in markdown format.

First, carefully read the following resume:

<resume>
%s
</resume>

Now, carefully read the job description:

<job_description>
%s
</job_description>

Your tone should be: %s

Compare the resume content with respect to the job description. Consider the following aspects:

1. Skills match: How well do the candidate's skills align with the job requirements?
2. Experience relevance: Is the candidate's experience relevant to the position?
3. Education: Does the candidate's education meet the job requirements?
4. Achievements: Are there notable achievements that are relevant to the role?
5. Overall fit: How well does the candidate's profile match the job description?

Provide a detailed analysis of these aspects, highlighting both strengths and weaknesses. Then, suggest specific areas for improvement that would make the resume more competitive for this particular job.

Format your response in markdown, using appropriate headers, bullet points, and emphasis where necessary. Your response should include the following sections:

1. ## Overall Assessment
2. ## Strengths
3. ## Areas for Improvement
4. ## Specific Recommendations

Begin your response with:

<answer>

[Your markdown-formatted response here]

</answer>

Ensure that your feedback is constructive, specific, and actionable. Provide examples from both the resume and job description to support your analysis.`,
		resumeText, jobDescription, tone)
}

func (pb *PromptBuilder) buildStructuredPrompt(resumeText, jobDescription string, tone models.Tone) string {
	return fmt.Sprintf(`You are an expert recruiter and ATS specialist comparing a resume to a job description.

RESUME:
%s

JOB DESCRIPTION:
%s

Your tone should be: %s

Return your response ONLY as the following list, one item per line, with no markdown headers, code fences or text before or after it:

- section_feedback:
<free text feedback per resume section, one or more lines, no leading "- ">
- keyword_gap:
- missing_keywords: '<keyword>', '<keyword>', ...
- weak_keywords: '<keyword>', '<keyword>', ...
- score_breakdown:
- overall_score: <0-100>
- technical_skills: <0-100>
- soft_skills: <0-100>
- experience_alignment: <0-100>
- ats_feedback:
- ATS_compatible: <True or False>
- issues: <short description of ATS issues, or None>

Scores must be whole numbers. Be specific and base every statement on the provided text.`,
		resumeText, jobDescription, tone)
}
