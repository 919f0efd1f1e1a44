package services

import (
	"sort"
	"strings"

	"github.com/jobtrackr/jobtrackr/internal/models"
)

// PageSize is fixed for the applications table.
const PageSize = 20

// Filter is the criteria accepted by the applications list. Empty fields
// match everything; set fields combine with logical AND.
type Filter struct {
	Search   string
	Status   string
	WorkType string
	Source   string
}

// ApplyFilter narrows records in-memory, preserving the input order (the
// caller fetches newest-first). Search is a case-insensitive substring match
// against company name or job title.
func ApplyFilter(apps []models.Application, f Filter) []models.Application {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Application, 0, len(apps))
	for _, app := range apps {
		if search != "" &&
			!strings.Contains(strings.ToLower(app.CompanyName), search) &&
			!strings.Contains(strings.ToLower(app.JobTitle), search) {
			continue
		}
		if f.Status != "" && app.Status != f.Status {
			continue
		}
		if f.WorkType != "" && (app.WorkType == nil || *app.WorkType != f.WorkType) {
			continue
		}
		if f.Source != "" && (app.Source == nil || *app.Source != f.Source) {
			continue
		}
		out = append(out, app)
	}
	return out
}

// SourceOptions derives the source filter dropdown: the distinct non-null
// sources present in the record set, sorted.
func SourceOptions(apps []models.Application) []string {
	seen := make(map[string]bool)
	for _, app := range apps {
		if app.Source != nil && *app.Source != "" {
			seen[*app.Source] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Paginate slices one page out of the filtered set. An out-of-range page
// clamps to the last non-empty page, so a non-empty result set never renders
// an empty page.
func Paginate(apps []models.Application, page int) (pageItems []models.Application, clampedPage, totalPages int) {
	totalPages = (len(apps) + PageSize - 1) / PageSize
	if totalPages == 0 {
		return []models.Application{}, 1, 0
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * PageSize
	end := start + PageSize
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end], page, totalPages
}

// PageEllipsis marks a collapsed run of pages in PageNumbers output.
const PageEllipsis = -1

// PageNumbers builds the pagination strip: always page 1, the last page and
// the current page with its immediate neighbours, with gaps collapsed to a
// single ellipsis marker.
func PageNumbers(current, total int) []int {
	var kept []int
	for page := 1; page <= total; page++ {
		if page == 1 || page == total || abs(page-current) <= 1 {
			kept = append(kept, page)
		}
	}

	var out []int
	for i, page := range kept {
		if i > 0 && page-kept[i-1] > 1 {
			out = append(out, PageEllipsis)
		}
		out = append(out, page)
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
