// Package scrape turns captured job-board pages into the common application
// shape. Each job board gets its own strategy keyed by a host pattern; adding
// a site means adding a strategy, nothing in the core changes.
package scrape

import (
	"net/url"
	"strings"
)

// PageData is what a strategy can derive from a captured page.
type PageData struct {
	Source      string
	ApplyMethod string
	WorkType    string
	JobType     string
}

// Strategy recognizes one job board.
type Strategy struct {
	// HostPattern is matched as a substring of the page's hostname.
	HostPattern string
	Source      string
	// ApplyMethod derives the apply-method label from the page text.
	ApplyMethod func(pageText string) string
}

var strategies = []Strategy{
	{
		HostPattern: "linkedin.com",
		Source:      "LinkedIn",
		ApplyMethod: func(text string) string {
			if strings.Contains(text, "easy apply") {
				return "LinkedIn- Easy Apply"
			}
			return "LinkedIn- External Apply"
		},
	},
	{
		HostPattern: "dice.com",
		Source:      "Dice",
		ApplyMethod: func(text string) string {
			if strings.Contains(text, "easy apply") || strings.Contains(text, "easyapply") {
				return "Dice-EasyApply"
			}
			return "Dice-External"
		},
	},
	{
		HostPattern: "indeed.com",
		Source:      "Indeed",
		ApplyMethod: func(string) string { return "Indeed" },
	},
}

// fallback covers direct company career pages.
var fallback = Strategy{
	Source:      "Company Website",
	ApplyMethod: func(string) string { return "Company Website" },
}

// Detect picks the strategy for the job URL's host and derives source, apply
// method and the work/job type keywords from the page text.
func Detect(jobURL, pageText string) PageData {
	host := ""
	if u, err := url.Parse(jobURL); err == nil {
		host = strings.ToLower(u.Hostname())
	}

	strategy := fallback
	for _, s := range strategies {
		if strings.Contains(host, s.HostPattern) {
			strategy = s
			break
		}
	}

	text := strings.ToLower(pageText)
	return PageData{
		Source:      strategy.Source,
		ApplyMethod: strategy.ApplyMethod(text),
		WorkType:    detectWorkType(text),
		JobType:     detectJobType(text),
	}
}

// Order matters: "remote" shows up in boilerplate on many hybrid and on-site
// postings, so the more specific labels are checked first.
func detectWorkType(text string) string {
	switch {
	case strings.Contains(text, "on-site") || strings.Contains(text, "onsite"):
		return "On-site"
	case strings.Contains(text, "hybrid"):
		return "Hybrid"
	case strings.Contains(text, "remote"):
		return "Remote"
	}
	return ""
}

func detectJobType(text string) string {
	switch {
	case strings.Contains(text, "full-time") || strings.Contains(text, "full time"):
		return "Full-time"
	case strings.Contains(text, "part-time") || strings.Contains(text, "part time"):
		return "Part-time"
	case strings.Contains(text, "contract-to-hire") || strings.Contains(text, "contract to hire"):
		return "Contract-to-hire"
	case strings.Contains(text, "contract"):
		return "Contract"
	case strings.Contains(text, "freelance"):
		return "Freelance"
	}
	return ""
}
