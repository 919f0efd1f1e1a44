package dtos

// ApplicationRequest is the create/edit form payload. Optional selects arrive
// as null or are omitted; empty strings are normalized to null at the service
// boundary.
type ApplicationRequest struct {
	CompanyName   string  `json:"company_name" binding:"required"`
	JobTitle      string  `json:"job_title" binding:"required"`
	Status        string  `json:"status"`
	AppliedDate   *string `json:"applied_date"`
	JobURL        *string `json:"job_url"`
	Source        *string `json:"source"`
	ApplyMethod   *string `json:"apply_method"`
	Location      *string `json:"location"`
	JobType       *string `json:"job_type"`
	WorkType      *string `json:"work_type"`
	ResumeVersion *string `json:"resume_version"`
	CoverLetter   bool    `json:"cover_letter"`
	Notes         *string `json:"notes"`
	FollowUpDate  *string `json:"follow_up_date"`
}

// StatusUpdateRequest is the kanban drag payload.
type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ExtractionRequest asks the LLM to structure a raw job posting.
type ExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// CaptureRequest is what the browser extension posts. Fields it scraped from
// the page win; anything missing is derived server-side from the page text.
type CaptureRequest struct {
	JobURL      string  `json:"job_url" binding:"required"`
	PageText    string  `json:"page_text"`
	CompanyName string  `json:"company_name" binding:"required"`
	JobTitle    string  `json:"job_title" binding:"required"`
	Location    *string `json:"location"`
	Source      *string `json:"source"`
	ApplyMethod *string `json:"apply_method"`
	WorkType    *string `json:"work_type"`
	JobType     *string `json:"job_type"`
	AppliedDate *string `json:"applied_date"`
}

// GhostConfirmRequest selects the candidates to mark Ghosted.
type GhostConfirmRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// GhostUndoRequest takes back a confirmed batch within its window.
type GhostUndoRequest struct {
	Token string `json:"token" binding:"required"`
}

// ThresholdRequest updates the per-user ghost-detection threshold.
type ThresholdRequest struct {
	Days int `json:"days" binding:"required,min=1,max=365"`
}
