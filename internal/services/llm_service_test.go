package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScoreJSON = `{
  "score": 72,
  "summary": "Solid backend profile, light on cloud experience.",
  "matchedKeywords": ["Go", "PostgreSQL"],
  "missingKeywords": ["Kubernetes"],
  "suggestions": ["Add a cloud project"],
  "sectionScores": {"skills": 80, "experience": 70, "education": 90, "formatting": 65}
}`

func TestParseScoreResult(t *testing.T) {
	result, err := ParseScoreResult(validScoreJSON)
	require.NoError(t, err)
	assert.Equal(t, 72, result.Score)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.MatchedKeywords)
	assert.Equal(t, 80, result.SectionScores["skills"])
}

func TestParseScoreResultStripsFences(t *testing.T) {
	fenced := "```json\n" + validScoreJSON + "\n```"
	result, err := ParseScoreResult(fenced)
	require.NoError(t, err)
	assert.Equal(t, 72, result.Score)
}

func TestParseScoreResultRejectsBadOutput(t *testing.T) {
	for _, raw := range []string{
		"I'm sorry, I can't score that resume.",
		`{"score": 150, "summary": "out of range"}`,
		`{"score": -1}`,
		"",
	} {
		_, err := ParseScoreResult(raw)
		assert.ErrorIs(t, err, ErrBadModelOutput, "raw %q", raw)
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
