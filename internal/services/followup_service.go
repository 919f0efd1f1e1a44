package services

import (
	"slices"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

// FollowUps partitions overdue follow-up reminders for display.
type FollowUps struct {
	DueToday []models.Application `json:"due_today"`
	PastDue  []models.Application `json:"past_due"`
}

// OverdueFollowUps is a pure classifier: a record is overdue iff it has a
// follow-up date on or before today and its status is still active. It is
// recomputed from the current record set on every call, no state.
func OverdueFollowUps(apps []models.Application, today time.Time) FollowUps {
	out := FollowUps{
		DueToday: []models.Application{},
		PastDue:  []models.Application{},
	}
	for _, app := range apps {
		if app.FollowUpDate == nil || !slices.Contains(models.ActiveStatuses, app.Status) {
			continue
		}
		days, err := DaysBetween(*app.FollowUpDate, today)
		if err != nil {
			continue
		}
		switch {
		case days == 0:
			out.DueToday = append(out.DueToday, app)
		case days > 0:
			out.PastDue = append(out.PastDue, app)
		}
	}
	return out
}
