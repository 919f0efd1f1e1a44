package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Input caps keep prompts inside the model's comfortable window.
const (
	maxResumeChars  = 8000
	maxJobDescChars = 4000
	maxRawHTMLChars = 20000
)

// ErrBadModelOutput means the model answered with something that is not the
// JSON we asked for. Surfaced to the user as "try again", never retried.
var ErrBadModelOutput = errors.New("failed to parse model response")

// LLMService wraps the Gemini client. One instance is shared by all handlers.
type LLMService struct {
	Client llms.Model
}

func NewLLMService(apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	llm, err := googleai.New(context.Background(),
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const jobExtractionPrompt = `You are an expert job data extraction agent. Analyze the provided raw HTML/text from a job posting and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Extract the fields below strictly.
3. Output valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company",
    "job_title": "Job title (e.g. Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job, responsibilities and requirements. Remove HTML tags.",
    "work_type": "Remote | Hybrid | On-site | null",
    "job_type": "Full-time | Part-time | Contract | Contract-to-hire | Freelance | null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not guess.

### RAW CONTENT:
%s`

// ExtractJobDetails turns a raw job-posting page into structured JSON. The
// response is passed through to the client as-is.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (string, error) {
	if len(rawHTML) > maxRawHTMLChars {
		rawHTML = rawHTML[:maxRawHTMLChars]
	}
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(jobExtractionPrompt, rawHTML))
	if err != nil {
		return "", err
	}
	cleaned := stripFences(resp)
	if !json.Valid([]byte(cleaned)) {
		return "", ErrBadModelOutput
	}
	return cleaned, nil
}

// ScoreResult is the resume-vs-job-description verdict.
type ScoreResult struct {
	Score           int            `json:"score"`
	Summary         string         `json:"summary"`
	MatchedKeywords []string       `json:"matchedKeywords"`
	MissingKeywords []string       `json:"missingKeywords"`
	Suggestions     []string       `json:"suggestions"`
	SectionScores   map[string]int `json:"sectionScores"`
}

const scoringSystemPrompt = `You are an expert ATS (Applicant Tracking System) analyst and resume coach.
Analyze the provided resume text against a job description and return a JSON response only, no markdown, no prose.

Return this exact JSON shape:
{
  "score": <integer 0-100>,
  "summary": "<2-sentence overall assessment>",
  "matchedKeywords": ["<keyword>", ...],
  "missingKeywords": ["<keyword>", ...],
  "suggestions": ["<actionable suggestion>", ...],
  "sectionScores": {
    "skills": <0-100>,
    "experience": <0-100>,
    "education": <0-100>,
    "formatting": <0-100>
  }
}

Scoring guide:
- score: weighted average across keyword match (40%%), experience relevance (30%%), skills alignment (20%%), format (10%%)
- matchedKeywords: important skills/tools/terms from the JD found in the resume (max 20)
- missingKeywords: important skills/tools/terms from the JD NOT found in the resume (max 15)
- suggestions: 3-6 concrete, specific, actionable improvements the candidate can make
- sectionScores: individual section quality as a %%, not keyword match

Be strict but fair. Return ONLY valid JSON.

RESUME:
%s

JOB DESCRIPTION:
%s`

// ScoreResume asks the model to grade a resume against a job description.
func (s *LLMService) ScoreResume(ctx context.Context, resumeText, jobDescription string) (*ScoreResult, error) {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}
	if len(jobDescription) > maxJobDescChars {
		jobDescription = jobDescription[:maxJobDescChars]
	}

	prompt := fmt.Sprintf(scoringSystemPrompt, resumeText, jobDescription)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, err
	}
	return ParseScoreResult(resp)
}

// ParseScoreResult decodes the model's answer, tolerating stray markdown
// fences around the JSON.
func ParseScoreResult(raw string) (*ScoreResult, error) {
	cleaned := stripFences(raw)
	var result ScoreResult
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, ErrBadModelOutput
	}
	if result.Score < 0 || result.Score > 100 {
		return nil, ErrBadModelOutput
	}
	return &result, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
