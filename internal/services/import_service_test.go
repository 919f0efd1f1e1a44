package services

import (
	"strings"
	"testing"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRows(t *testing.T) {
	csvData := `Company,Job Title,Status,Notes
Acme,Backend Engineer,Applied,
"Globex, Inc.",SRE,Interview,"has a comma, and quotes"
`
	rows, err := ParseRows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Acme", rows[0]["Company"])
	assert.Equal(t, "Backend Engineer", rows[0]["Job Title"])

	// Quoted fields keep their embedded commas.
	assert.Equal(t, "Globex, Inc.", rows[1]["Company"])
	assert.Equal(t, "has a comma, and quotes", rows[1]["Notes"])
}

func TestParseRowsRaggedRecords(t *testing.T) {
	csvData := "Company,Job Title,Status\nAcme,Engineer\n"
	rows, err := ParseRows(strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0]["Company"])
	assert.Equal(t, "", rows[0]["Status"])
}

func TestParseRowsEmpty(t *testing.T) {
	rows, err := ParseRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMapRow(t *testing.T) {
	row := CSVRow{
		"Company":        "Acme",
		"Job Title":      "Backend Engineer",
		"Status":         "Interview",
		"Date Applied":   "3/7/2024",
		"Posting Link":   "https://example.com/job",
		"Source":         "LinkedIn",
		"Apply Method":   "LinkedIn- Easy Apply",
		"Location":       "Berlin",
		"Remote":         "Hybrid",
		"Job Type":       "Full-time",
		"Resume Version": "v2",
		"Cover Letter":   "Yes",
		"Notes":          "referred by a friend",
	}

	app, ok := MapRow(row, "user-1")
	require.True(t, ok)
	assert.Equal(t, "user-1", app.UserID)
	assert.Equal(t, "Acme", app.CompanyName)
	assert.Equal(t, "Interview", app.Status)
	require.NotNil(t, app.AppliedDate)
	assert.Equal(t, "2024-03-07", *app.AppliedDate)
	assert.Equal(t, "Hybrid", *app.WorkType)
	assert.True(t, app.CoverLetter)
}

func TestMapRowRejectsMissingCompany(t *testing.T) {
	_, ok := MapRow(CSVRow{"Job Title": "Engineer"}, "user-1")
	assert.False(t, ok)

	_, ok = MapRow(CSVRow{"Company": "   "}, "user-1")
	assert.False(t, ok)
}

func TestMapRowDefaults(t *testing.T) {
	app, ok := MapRow(CSVRow{"Company": "Acme"}, "user-1")
	require.True(t, ok)
	assert.Equal(t, models.StatusApplied, app.Status)
	assert.Nil(t, app.AppliedDate)
	assert.Nil(t, app.Source)
	assert.False(t, app.CoverLetter)
}

func TestMapRowBadDateBecomesNil(t *testing.T) {
	app, ok := MapRow(CSVRow{"Company": "Acme", "Date Applied": "sometime in spring"}, "user-1")
	require.True(t, ok)
	assert.Nil(t, app.AppliedDate)
}
