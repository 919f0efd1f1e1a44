package services

import (
	"testing"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func analyticsApp(status string, mut ...func(*models.Application)) models.Application {
	a := models.Application{Status: status}
	for _, m := range mut {
		m(&a)
	}
	return a
}

func withSource(s string) func(*models.Application) {
	return func(a *models.Application) { a.Source = &s }
}

func withApplied(d string) func(*models.Application) {
	return func(a *models.Application) { a.AppliedDate = &d }
}

func withApplyMethod(m string) func(*models.Application) {
	return func(a *models.Application) { a.ApplyMethod = &m }
}

func TestIsResponded(t *testing.T) {
	assert.False(t, IsResponded(analyticsApp(models.StatusApplied)))
	assert.False(t, IsResponded(analyticsApp(models.StatusGhosted)))
	assert.False(t, IsResponded(analyticsApp(models.StatusWithdrawn)))

	assert.True(t, IsResponded(analyticsApp(models.StatusPhoneScreen)))
	assert.True(t, IsResponded(analyticsApp(models.StatusInterview)))
	assert.True(t, IsResponded(analyticsApp(models.StatusRejected)))
	assert.True(t, IsResponded(analyticsApp(models.StatusOffer)))
}

func TestBuildDashboardTotals(t *testing.T) {
	apps := []models.Application{
		analyticsApp(models.StatusApplied),
		analyticsApp(models.StatusApplied),
		analyticsApp(models.StatusInterview),
		analyticsApp(models.StatusOffer),
	}

	d := BuildDashboard(apps)
	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 1, d.Interviews)
	assert.Equal(t, 1, d.InProgress)
	assert.Equal(t, 1, d.Offers)
	assert.Equal(t, 0, d.Rejected)
	assert.Equal(t, 50, d.ResponseRate) // 2 of 4 responded
}

func TestBuildDashboardGates(t *testing.T) {
	// 9 records: everything beyond the always-on sections stays locked.
	d := BuildDashboard(makeApps(9))
	require.NotNil(t, d.SplitsLock)
	assert.Equal(t, GateSplits, d.SplitsLock.Required)
	assert.Equal(t, 9, d.SplitsLock.Current)
	assert.Nil(t, d.DayOfWeek)
	require.NotNil(t, d.RatesLock)
	require.NotNil(t, d.ComparisonsLock)

	// 10 unlocks splits only.
	d = BuildDashboard(makeApps(10))
	assert.Nil(t, d.SplitsLock)
	assert.NotNil(t, d.DayOfWeek)
	assert.NotNil(t, d.RatesLock)
	assert.NotNil(t, d.ComparisonsLock)

	// 20 unlocks bucket rates, 25 unlocks comparisons.
	d = BuildDashboard(makeApps(20))
	assert.Nil(t, d.RatesLock)
	assert.NotNil(t, d.ComparisonsLock)

	d = BuildDashboard(makeApps(25))
	assert.Nil(t, d.ComparisonsLock)
}

func TestRateByDropsThinBuckets(t *testing.T) {
	// LinkedIn has 3 samples, Indeed only 2. Indeed must be absent entirely,
	// not shown as a misleading 0%.
	apps := []models.Application{
		analyticsApp(models.StatusInterview, withSource("LinkedIn")),
		analyticsApp(models.StatusApplied, withSource("LinkedIn")),
		analyticsApp(models.StatusApplied, withSource("LinkedIn")),
		analyticsApp(models.StatusApplied, withSource("Indeed")),
		analyticsApp(models.StatusApplied, withSource("Indeed")),
	}

	got := rateBy(apps, func(a models.Application) string { return deref(a.Source) }, true)
	require.Len(t, got, 1)
	assert.Equal(t, "LinkedIn", got[0].Name)
	assert.Equal(t, 33, got[0].Rate)
	assert.Equal(t, 3, got[0].Total)
}

func TestApplyMethodClass(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"LinkedIn- Easy Apply", "Easy Apply"},
		{"Dice-EasyApply", "Easy Apply"},
		{"LinkedIn- External Apply", "External Apply"},
		{"Company Website", "External Apply"},
		{"", ""},
	}
	for _, tt := range tests {
		var a models.Application
		if tt.method != "" {
			withApplyMethod(tt.method)(&a)
		}
		assert.Equal(t, tt.want, applyMethodClass(a), "method %q", tt.method)
	}
}

func TestTimelineKeepsLastTenDaysChronological(t *testing.T) {
	var apps []models.Application
	days := []string{
		"2026-08-01", "2026-08-02", "2026-08-03", "2026-08-04", "2026-08-05",
		"2026-08-06", "2026-08-07", "2026-08-08", "2026-08-09", "2026-08-10",
		"2026-08-11", "2026-08-12",
	}
	for _, day := range days {
		apps = append(apps, analyticsApp(models.StatusApplied, withApplied(day)))
		apps = append(apps, analyticsApp(models.StatusApplied, withApplied(day)))
	}

	got := timeline(apps)
	require.Len(t, got, 10)
	assert.Equal(t, "2026-08-03", got[0].Name) // two oldest days dropped
	assert.Equal(t, "2026-08-12", got[9].Name)
	for _, b := range got {
		assert.Equal(t, 2, b.Count)
	}
}

func TestCountByPreservesFirstSeenOrder(t *testing.T) {
	apps := []models.Application{
		analyticsApp(models.StatusInterview),
		analyticsApp(models.StatusApplied),
		analyticsApp(models.StatusInterview),
	}
	got := countBy(apps, func(a models.Application) string { return a.Status })
	require.Len(t, got, 2)
	assert.Equal(t, CountBucket{Name: models.StatusInterview, Count: 2}, got[0])
	assert.Equal(t, CountBucket{Name: models.StatusApplied, Count: 1}, got[1])
}
