package services

import (
	"testing"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func app(id, status, appliedDate string, autoGhosted bool) models.Application {
	a := models.Application{ID: id, Status: status, AutoGhosted: autoGhosted}
	if appliedDate != "" {
		a.AppliedDate = &appliedDate
	}
	return a
}

func TestGhostCandidates(t *testing.T) {
	today := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	apps := []models.Application{
		app("fresh", models.StatusApplied, "2026-08-25", false),      // 7 days, below
		app("exactly", models.StatusApplied, "2026-08-11", false),    // 21 days, at threshold
		app("stale", models.StatusApplied, "2026-07-01", false),      // 62 days
		app("interview", models.StatusInterview, "2026-06-01", false), // not Applied
		app("nodate", models.StatusApplied, "", false),
	}

	got := GhostCandidates(apps, 21, today)
	require.Len(t, got, 2)

	// Oldest first.
	assert.Equal(t, "stale", got[0].Application.ID)
	assert.Equal(t, 62, got[0].DaysSince)
	assert.Equal(t, "exactly", got[1].Application.ID)
	assert.Equal(t, 21, got[1].DaysSince)
}

func TestGhostCandidatesThresholdMonotonic(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	apps := []models.Application{
		app("a", models.StatusApplied, "2026-08-20", false), // 12 days
		app("b", models.StatusApplied, "2026-08-01", false), // 31 days
		app("c", models.StatusApplied, "2026-07-01", false), // 62 days
	}

	// Raising the threshold can only shrink the candidate set.
	prev := len(GhostCandidates(apps, 1, today))
	for threshold := 2; threshold <= 90; threshold++ {
		n := len(GhostCandidates(apps, threshold, today))
		assert.LessOrEqual(t, n, prev, "threshold %d", threshold)
		prev = n
	}
}

func TestAutoRevertIDs(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	apps := []models.Application{
		app("recent-auto", models.StatusGhosted, "2026-08-25", true),  // 7 days, below threshold
		app("old-auto", models.StatusGhosted, "2026-07-01", true),     // still past threshold
		app("manual", models.StatusGhosted, "2026-08-25", false),      // manually ghosted, left alone
		app("applied", models.StatusApplied, "2026-08-25", false),
	}

	got := AutoRevertIDs(apps, 21, today)
	assert.Equal(t, []string{"recent-auto"}, got)
}

func TestAutoRevertIdempotent(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	apps := []models.Application{
		app("x", models.StatusGhosted, "2026-08-25", true),
	}

	first := AutoRevertIDs(apps, 21, today)
	require.Equal(t, []string{"x"}, first)

	// After the revert the record is Applied with the flag cleared; running
	// the classifier again must find nothing.
	apps[0].Status = models.StatusApplied
	apps[0].AutoGhosted = false
	assert.Empty(t, AutoRevertIDs(apps, 21, today))
}
