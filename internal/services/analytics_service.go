package services

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

// Gates below which a dashboard section stays locked. Early numbers are noise;
// the UI shows a progress bar toward the gate instead of a misleading chart.
const (
	GateSplits       = 10 // day-of-week and job-type splits
	GateBucketRates  = 20 // per-source / per-job-type response rates
	GateComparisons  = 25 // apply-method and resume-version comparisons
	MinBucketSamples = 3  // buckets thinner than this are dropped, not shown as 0%
)

type CountBucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type RateBucket struct {
	Name  string `json:"name"`
	Rate  int    `json:"rate"`
	Total int    `json:"total"`
}

// LockInfo replaces a section that has not reached its gate yet.
type LockInfo struct {
	Required int `json:"required"`
	Current  int `json:"current"`
}

type Dashboard struct {
	Total        int `json:"total"`
	InProgress   int `json:"in_progress"`
	Interviews   int `json:"interviews"`
	Offers       int `json:"offers"`
	Rejected     int `json:"rejected"`
	ResponseRate int `json:"response_rate"`

	StatusCounts   []CountBucket `json:"status_counts"`
	WorkTypeCounts []CountBucket `json:"work_type_counts"`
	SourceCounts   []CountBucket `json:"source_counts"`
	Timeline       []CountBucket `json:"timeline"`

	DayOfWeek     []CountBucket `json:"day_of_week,omitempty"`
	JobTypeCounts []CountBucket `json:"job_type_counts,omitempty"`
	SplitsLock    *LockInfo     `json:"splits_lock,omitempty"`

	SourceResponse  []RateBucket `json:"source_response,omitempty"`
	JobTypeResponse []RateBucket `json:"job_type_response,omitempty"`
	RatesLock       *LockInfo    `json:"rates_lock,omitempty"`

	ApplyMethodResponse []RateBucket `json:"apply_method_response,omitempty"`
	ResumeResponse      []RateBucket `json:"resume_response,omitempty"`
	ComparisonsLock     *LockInfo    `json:"comparisons_lock,omitempty"`
}

// IsResponded reports whether the employer acted on the application: any
// status past the Applied/Ghosted limbo except a user withdrawal.
func IsResponded(app models.Application) bool {
	return slices.Contains(models.RespondedStatuses, app.Status)
}

// BuildDashboard computes every aggregate from the full record set in one
// pass structure. It is a pure function over the snapshot; callers refetch
// and recompute after any mutation.
func BuildDashboard(apps []models.Application) Dashboard {
	d := Dashboard{Total: len(apps)}

	inProgress := []string{models.StatusPhoneScreen, models.StatusInterview, models.StatusTakeHome, models.StatusFinalRound}
	interviews := []string{models.StatusInterview, models.StatusTakeHome, models.StatusFinalRound}

	responded := 0
	for _, app := range apps {
		if slices.Contains(inProgress, app.Status) {
			d.InProgress++
		}
		if slices.Contains(interviews, app.Status) {
			d.Interviews++
		}
		switch app.Status {
		case models.StatusOffer:
			d.Offers++
		case models.StatusRejected:
			d.Rejected++
		}
		if IsResponded(app) {
			responded++
		}
	}
	if d.Total > 0 {
		d.ResponseRate = roundRate(responded, d.Total)
	}

	d.StatusCounts = countBy(apps, func(a models.Application) string { return a.Status })
	d.WorkTypeCounts = countBy(apps, derefOrEmpty(func(a models.Application) *string { return a.WorkType }))
	d.SourceCounts = countBy(apps, derefOrEmpty(func(a models.Application) *string { return a.Source }))
	sort.SliceStable(d.SourceCounts, func(i, j int) bool { return d.SourceCounts[i].Count > d.SourceCounts[j].Count })
	d.Timeline = timeline(apps)

	if d.Total >= GateSplits {
		d.DayOfWeek = dayOfWeek(apps)
		d.JobTypeCounts = countBy(apps, derefOrEmpty(func(a models.Application) *string { return a.JobType }))
	} else {
		d.SplitsLock = &LockInfo{Required: GateSplits, Current: d.Total}
	}

	if d.Total >= GateBucketRates {
		d.SourceResponse = rateBy(apps, func(a models.Application) string { return deref(a.Source) }, true)
		d.JobTypeResponse = rateBy(apps, func(a models.Application) string { return deref(a.JobType) }, true)
	} else {
		d.RatesLock = &LockInfo{Required: GateBucketRates, Current: d.Total}
	}

	if d.Total >= GateComparisons {
		d.ApplyMethodResponse = rateBy(apps, applyMethodClass, false)
		d.ResumeResponse = rateBy(apps, func(a models.Application) string { return deref(a.ResumeVersion) }, true)
	} else {
		d.ComparisonsLock = &LockInfo{Required: GateComparisons, Current: d.Total}
	}

	return d
}

// applyMethodClass collapses the free-text apply method into the Easy Apply
// vs External comparison.
func applyMethodClass(a models.Application) string {
	m := strings.ToLower(deref(a.ApplyMethod))
	if m == "" {
		return ""
	}
	if strings.Contains(m, "easy apply") || strings.Contains(m, "easyapply") {
		return "Easy Apply"
	}
	return "External Apply"
}

func countBy(apps []models.Application, key func(models.Application) string) []CountBucket {
	counts := make(map[string]int)
	var order []string
	for _, app := range apps {
		k := key(app)
		if k == "" {
			continue
		}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}
	out := make([]CountBucket, 0, len(order))
	for _, k := range order {
		out = append(out, CountBucket{Name: k, Count: counts[k]})
	}
	return out
}

// rateBy computes per-bucket response rates. Buckets below MinBucketSamples
// are excluded entirely even when the whole set clears its gate.
func rateBy(apps []models.Application, key func(models.Application) string, sortDesc bool) []RateBucket {
	type tally struct{ total, responded int }
	tallies := make(map[string]*tally)
	var order []string
	for _, app := range apps {
		k := key(app)
		if k == "" {
			continue
		}
		t, ok := tallies[k]
		if !ok {
			t = &tally{}
			tallies[k] = t
			order = append(order, k)
		}
		t.total++
		if IsResponded(app) {
			t.responded++
		}
	}

	out := make([]RateBucket, 0, len(order))
	for _, k := range order {
		t := tallies[k]
		if t.total < MinBucketSamples {
			continue
		}
		out = append(out, RateBucket{Name: k, Rate: roundRate(t.responded, t.total), Total: t.total})
	}
	if sortDesc {
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rate > out[j].Rate })
	}
	return out
}

// timeline returns per-day application counts for the 10 most recent distinct
// days that have data, in chronological order.
func timeline(apps []models.Application) []CountBucket {
	counts := make(map[string]int)
	for _, app := range apps {
		if app.AppliedDate == nil {
			continue
		}
		counts[*app.AppliedDate]++
	}
	days := make([]string, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > 10 {
		days = days[len(days)-10:]
	}
	out := make([]CountBucket, 0, len(days))
	for _, day := range days {
		out = append(out, CountBucket{Name: day, Count: counts[day]})
	}
	return out
}

func dayOfWeek(apps []models.Application) []CountBucket {
	counts := [7]int{}
	for _, app := range apps {
		if app.AppliedDate == nil {
			continue
		}
		d, err := ParseCalendarDate(*app.AppliedDate, time.Local)
		if err != nil {
			continue
		}
		counts[int(d.Weekday())]++
	}
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	out := make([]CountBucket, 7)
	for i, name := range names {
		out[i] = CountBucket{Name: name, Count: counts[i]}
	}
	return out
}

func roundRate(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefOrEmpty(get func(models.Application) *string) func(models.Application) string {
	return func(a models.Application) string { return deref(get(a)) }
}
