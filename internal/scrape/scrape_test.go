package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLinkedIn(t *testing.T) {
	got := Detect("https://www.linkedin.com/jobs/view/12345", "Easy Apply now. This role is hybrid, full-time.")
	assert.Equal(t, "LinkedIn", got.Source)
	assert.Equal(t, "LinkedIn- Easy Apply", got.ApplyMethod)
	assert.Equal(t, "Hybrid", got.WorkType)
	assert.Equal(t, "Full-time", got.JobType)
}

func TestDetectLinkedInExternal(t *testing.T) {
	got := Detect("https://linkedin.com/jobs/view/999", "Apply on company website")
	assert.Equal(t, "LinkedIn- External Apply", got.ApplyMethod)
}

func TestDetectDice(t *testing.T) {
	got := Detect("https://www.dice.com/job-detail/abc", "EasyApply · contract position, remote")
	assert.Equal(t, "Dice", got.Source)
	assert.Equal(t, "Dice-EasyApply", got.ApplyMethod)
	assert.Equal(t, "Remote", got.WorkType)
	assert.Equal(t, "Contract", got.JobType)
}

func TestDetectIndeed(t *testing.T) {
	got := Detect("https://indeed.com/viewjob?jk=1", "part-time role")
	assert.Equal(t, "Indeed", got.Source)
	assert.Equal(t, "Indeed", got.ApplyMethod)
	assert.Equal(t, "Part-time", got.JobType)
}

func TestDetectFallback(t *testing.T) {
	got := Detect("https://careers.example.com/jobs/42", "Join us! On-site in Austin.")
	assert.Equal(t, "Company Website", got.Source)
	assert.Equal(t, "Company Website", got.ApplyMethod)
	assert.Equal(t, "On-site", got.WorkType)
}

func TestDetectBadURL(t *testing.T) {
	got := Detect("::not a url::", "remote")
	assert.Equal(t, "Company Website", got.Source)
	assert.Equal(t, "Remote", got.WorkType)
}

// "Remote" appears in boilerplate on many postings; more specific labels win.
func TestWorkTypePrecedence(t *testing.T) {
	assert.Equal(t, "Hybrid", detectWorkType("hybrid schedule, partly remote"))
	assert.Equal(t, "On-site", detectWorkType("onsite only, no remote"))
	assert.Equal(t, "", detectWorkType("no location info"))
}

func TestJobTypePrecedence(t *testing.T) {
	assert.Equal(t, "Contract-to-hire", detectJobType("contract to hire opportunity"))
	assert.Equal(t, "Contract", detectJobType("6 month contract"))
	assert.Equal(t, "", detectJobType("just a job"))
}
