package services

import (
	"testing"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followUpApp(id, status, followUp string) models.Application {
	a := models.Application{ID: id, Status: status}
	if followUp != "" {
		a.FollowUpDate = &followUp
	}
	return a
}

func TestOverdueFollowUps(t *testing.T) {
	today := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	apps := []models.Application{
		followUpApp("today", models.StatusApplied, "2026-09-01"),
		followUpApp("past", models.StatusPhoneScreen, "2026-08-28"),
		followUpApp("future", models.StatusApplied, "2026-09-05"),
		followUpApp("rejected", models.StatusRejected, "2026-08-01"),
		followUpApp("ghosted", models.StatusGhosted, "2026-08-01"),
		followUpApp("none", models.StatusApplied, ""),
	}

	got := OverdueFollowUps(apps, today)

	require.Len(t, got.DueToday, 1)
	assert.Equal(t, "today", got.DueToday[0].ID)

	require.Len(t, got.PastDue, 1)
	assert.Equal(t, "past", got.PastDue[0].ID)
}

func TestOverdueFollowUpsEmptyNotNil(t *testing.T) {
	got := OverdueFollowUps(nil, time.Now())
	assert.NotNil(t, got.DueToday)
	assert.NotNil(t, got.PastDue)
}
