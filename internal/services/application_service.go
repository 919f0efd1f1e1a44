package services

import (
	"context"
	"errors"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/dtos"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not found")

// ListResult is one page of filtered applications plus everything the table
// needs to render its pagination strip.
type ListResult struct {
	Applications []models.Application `json:"applications"`
	Total        int                  `json:"total"`
	Page         int                  `json:"page"`
	TotalPages   int                  `json:"total_pages"`
	PageNumbers  []int                `json:"page_numbers"`
}

// ApplicationService owns the applications collection.
type ApplicationService struct {
	DB *gorm.DB
}

func NewApplicationService(db *gorm.DB) *ApplicationService {
	return &ApplicationService{DB: db}
}

// All fetches the user's full record set, newest first. Classifiers and the
// dashboard derive everything from this snapshot.
func (s *ApplicationService) All(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}

// List runs the filter/search/pagination pipeline over the current snapshot.
func (s *ApplicationService) List(ctx context.Context, userID string, f Filter, page int) (*ListResult, error) {
	apps, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := ApplyFilter(apps, f)
	pageItems, page, totalPages := Paginate(filtered, page)

	return &ListResult{
		Applications: pageItems,
		Total:        len(filtered),
		Page:         page,
		TotalPages:   totalPages,
		PageNumbers:  PageNumbers(page, totalPages),
	}, nil
}

// Sources lists the distinct sources present in the user's records, for the
// filter dropdown.
func (s *ApplicationService) Sources(ctx context.Context, userID string) ([]string, error) {
	apps, err := s.All(ctx, userID)
	if err != nil {
		return nil, err
	}
	return SourceOptions(apps), nil
}

func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*models.Application, error) {
	var app models.Application
	err := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) Create(ctx context.Context, userID string, req *dtos.ApplicationRequest) (*models.Application, error) {
	app := applicationFromRequest(req)
	app.UserID = userID
	if app.AppliedDate == nil {
		today := time.Now().Format(DateLayout)
		app.AppliedDate = &today
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// Update replaces the editable fields. A manual edit is never an automatic
// ghosting, so auto_ghosted is reset regardless of the status written.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, req *dtos.ApplicationRequest) (*models.Application, error) {
	existing, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	app := applicationFromRequest(req)
	app.ID = existing.ID
	app.UserID = existing.UserID
	app.ImportedAt = existing.ImportedAt
	app.CreatedAt = existing.CreatedAt
	app.AutoGhosted = false

	if err := s.DB.WithContext(ctx).Save(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus backs the kanban drag. Dragging a card into Ghosted by hand is
// a user decision, not an automatic one, so auto_ghosted is cleared here too.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, id, status string) (*models.Application, error) {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	err = s.DB.WithContext(ctx).Model(app).
		Updates(map[string]interface{}{
			"status":       status,
			"auto_ghosted": false,
		}).Error
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	res := s.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Application{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func applicationFromRequest(req *dtos.ApplicationRequest) *models.Application {
	status := req.Status
	if status == "" {
		status = models.StatusApplied
	}
	return &models.Application{
		CompanyName:   req.CompanyName,
		JobTitle:      req.JobTitle,
		Status:        status,
		AppliedDate:   blankToNil(req.AppliedDate),
		JobURL:        blankToNil(req.JobURL),
		Source:        blankToNil(req.Source),
		ApplyMethod:   blankToNil(req.ApplyMethod),
		Location:      blankToNil(req.Location),
		JobType:       blankToNil(req.JobType),
		WorkType:      blankToNil(req.WorkType),
		ResumeVersion: blankToNil(req.ResumeVersion),
		CoverLetter:   req.CoverLetter,
		Notes:         blankToNil(req.Notes),
		FollowUpDate:  blankToNil(req.FollowUpDate),
	}
}

// blankToNil keeps "no value" as a real null instead of an empty string, so
// filters and aggregations don't grow a phantom "" bucket.
func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
