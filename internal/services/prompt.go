package services

import (
	"strings"
)

const analysisPromptTemplate = `
Act as an expert ATS (Applicant Tracking System) and resume analysis engine.

Evaluate the resume below against the job description that follows it.

Produce:
- A match score percentage ("JD Match")
- Keywords found in the job description but absent from the resume ("MissingKeywords")
- Keywords present in both ("MatchingKeywords")
- A complete profile summary ("Profile Summary") covering:
    - Strengths
    - Weaknesses
    - Suggestions for improvement
    - Resume structure quality
    - Clarity and impact of writing
    - Relevance to job requirements
- An explanation of how the JD match score was calculated ("ScoreExplanation")

Resume:
{{resume}}

Job Description:
{{job_description}}

Respond ONLY with a JSON object in exactly this format, with no text before or after it:
{
    "JD Match": "percentage between 0-100",
    "MissingKeywords": ["keyword1", "keyword2", ...],
    "MatchingKeywords": ["keyword1", "keyword2", ...],
    "Profile Summary": "Detailed evaluation covering strengths, weaknesses, and improvement suggestions.",
    "ScoreExplanation": "How the score was calculated, broken down by component:
        - Keyword Match (e.g., matched 10/14 keywords = 71%)
        - Technical Skills Match (e.g., 4/6 required tools/technologies found = 67%)
        - Resume Structure & Presentation (e.g., clear formatting, quantified achievements = 80%)
        - Overall Relevance to Job Role (e.g., experience aligns with job = 75%)
        Mention what raised the score and what lowered it, such as missing skills or weak structure."
}
`

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildAnalysisPrompt embeds the trimmed resume and job description in the
// ATS instruction template. Output depends only on the two inputs.
func (pb *PromptBuilder) BuildAnalysisPrompt(resumeText, jobDescription string) (string, error) {
	resumeText = strings.TrimSpace(resumeText)
	jobDescription = strings.TrimSpace(jobDescription)

	if resumeText == "" || jobDescription == "" {
		return "", &ValidationError{Message: "resume text and job description cannot be empty"}
	}

	// A single-pass replacer never rescans inserted text, so placeholders
	// appearing inside a resume are left alone.
	r := strings.NewReplacer(
		"{{resume}}", resumeText,
		"{{job_description}}", jobDescription,
	)

	return r.Replace(analysisPromptTemplate), nil
}
