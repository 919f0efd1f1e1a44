package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application statuses. There is no transition graph; any status can be set
// from any other.
const (
	StatusApplied     = "Applied"
	StatusPhoneScreen = "Phone Screen"
	StatusInterview   = "Interview"
	StatusTakeHome    = "Take Home"
	StatusFinalRound  = "Final Round"
	StatusOffer       = "Offer"
	StatusRejected    = "Rejected"
	StatusGhosted     = "Ghosted"
	StatusWithdrawn   = "Withdrawn"
)

// AllStatuses is the order shown in status dropdowns.
var AllStatuses = []string{
	StatusApplied, StatusPhoneScreen, StatusInterview, StatusTakeHome,
	StatusFinalRound, StatusOffer, StatusRejected, StatusGhosted, StatusWithdrawn,
}

// ActiveStatuses are statuses where a follow-up reminder still makes sense.
var ActiveStatuses = []string{
	StatusApplied, StatusPhoneScreen, StatusInterview, StatusTakeHome, StatusFinalRound,
}

// RespondedStatuses mean the employer acted on the application.
var RespondedStatuses = []string{
	StatusPhoneScreen, StatusInterview, StatusTakeHome, StatusFinalRound,
	StatusOffer, StatusRejected,
}

// DefaultGhostThresholdDays is how long an "Applied" application sits in
// silence before it becomes a ghost candidate.
const DefaultGhostThresholdDays = 21

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Per-user ghost-detection threshold in days.
	GhostThresholdDays int `gorm:"default:21" json:"ghost_threshold_days"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.GhostThresholdDays == 0 {
		u.GhostThresholdDays = DefaultGhostThresholdDays
	}
	return nil
}

// Application is one job application. Dates are stored as plain YYYY-MM-DD
// strings: they are calendar dates with no timezone, and pushing them through
// timezone-aware parsing shifts them by a day depending on where the server runs.
type Application struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID string `gorm:"index;not null" json:"user_id"`

	CompanyName   string  `gorm:"not null" json:"company_name"`
	JobTitle      string  `gorm:"not null" json:"job_title"`
	Status        string  `gorm:"default:'Applied'" json:"status"`
	AppliedDate   *string `gorm:"type:varchar(10)" json:"applied_date"`
	JobURL        *string `json:"job_url"`
	Source        *string `json:"source"`
	ApplyMethod   *string `json:"apply_method"`
	Location      *string `json:"location"`
	JobType       *string `json:"job_type"`
	WorkType      *string `json:"work_type"`
	ResumeVersion *string `json:"resume_version"`
	CoverLetter   bool    `json:"cover_letter"`
	Notes         *string `gorm:"type:text" json:"notes"`
	FollowUpDate  *string `gorm:"type:varchar(10)" json:"follow_up_date"`

	// AutoGhosted is true only when the ghost-detection batch action moved the
	// record to Ghosted. Manual status changes always reset it.
	AutoGhosted bool `gorm:"default:false" json:"auto_ghosted"`

	// ImportedAt is set (to one shared RFC3339 instant) on every row of a CSV
	// import batch so the batch can be undone as a unit.
	ImportedAt *string `gorm:"index" json:"imported_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Resume is an uploaded resume file. Applications reference it by version
// name only, as a loose label rather than a foreign key.
type Resume struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      string `gorm:"index;not null" json:"user_id"`
	VersionName string `gorm:"not null" json:"version_name"`
	FileName    string `json:"file_name"`
	StorageKey  string `json:"-"`
}

func (r *Resume) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
