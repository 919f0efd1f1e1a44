package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/gorm"
)

// ImportChunkSize is how many rows go into one insert. A failed chunk is
// tallied and skipped, never aborts the rest of the import.
const ImportChunkSize = 50

// ImportReport summarizes one CSV import.
type ImportReport struct {
	Total      int    `json:"total"`
	Success    int    `json:"success"`
	Failed     int    `json:"failed"`
	Skipped    int    `json:"skipped"`
	ImportedAt string `json:"imported_at"`
}

// ImportBatch is one past import, identified by its shared timestamp.
type ImportBatch struct {
	ImportedAt string `json:"imported_at"`
	Count      int    `json:"count"`
}

// CSVRow is a header-keyed record from the uploaded file.
type CSVRow map[string]string

// ParseRows reads a comma-separated file into header-keyed rows. Quoted
// fields containing commas come for free from encoding/csv.
func ParseRows(r io.Reader) ([]CSVRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]CSVRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(CSVRow, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = strings.TrimSpace(record[i])
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// MapRow converts one spreadsheet row into an application through the fixed
// column dictionary. Rows without a company name are rejected. Bad date cells
// become nulls, not errors.
func MapRow(row CSVRow, userID string) (models.Application, bool) {
	company := strings.TrimSpace(row["Company"])
	if company == "" {
		return models.Application{}, false
	}

	status := row["Status"]
	if status == "" {
		status = models.StatusApplied
	}

	return models.Application{
		UserID:        userID,
		CompanyName:   company,
		JobTitle:      row["Job Title"],
		Status:        status,
		AppliedDate:   NormalizeDate(row["Date Applied"]),
		JobURL:        optional(row["Posting Link"]),
		Source:        optional(row["Source"]),
		ApplyMethod:   optional(row["Apply Method"]),
		Location:      optional(row["Location"]),
		WorkType:      optional(row["Remote"]),
		JobType:       optional(row["Job Type"]),
		ResumeVersion: optional(row["Resume Version"]),
		CoverLetter:   strings.EqualFold(strings.TrimSpace(row["Cover Letter"]), "yes"),
		Notes:         optional(row["Notes"]),
	}, true
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// ImportService runs CSV imports and their grouped undo.
type ImportService struct {
	DB  *gorm.DB
	Log *slog.Logger
}

func NewImportService(db *gorm.DB, log *slog.Logger) *ImportService {
	return &ImportService{DB: db, Log: log}
}

// Import parses the file, stamps every accepted row with one shared
// imported_at instant and inserts in chunks, tallying per-chunk outcomes.
func (s *ImportService) Import(ctx context.Context, userID string, r io.Reader) (*ImportReport, error) {
	rows, err := ParseRows(r)
	if err != nil {
		return nil, err
	}

	importedAt := time.Now().UTC().Format(time.RFC3339)
	var apps []models.Application
	skipped := 0
	for _, row := range rows {
		app, ok := MapRow(row, userID)
		if !ok {
			skipped++
			continue
		}
		app.ImportedAt = &importedAt
		apps = append(apps, app)
	}

	report := &ImportReport{Total: len(apps), Skipped: skipped, ImportedAt: importedAt}
	for start := 0; start < len(apps); start += ImportChunkSize {
		end := start + ImportChunkSize
		if end > len(apps) {
			end = len(apps)
		}
		chunk := apps[start:end]
		if err := s.DB.WithContext(ctx).Create(&chunk).Error; err != nil {
			report.Failed += len(chunk)
			s.Log.ErrorContext(ctx, "import chunk failed", "rows", len(chunk), "err", err)
			continue
		}
		report.Success += len(chunk)
	}

	s.Log.InfoContext(ctx, "csv import finished",
		"total", report.Total, "success", report.Success, "failed", report.Failed)
	return report, nil
}

// RecentBatches lists the last few imports, newest first, with row counts.
func (s *ImportService) RecentBatches(ctx context.Context, userID string, limit int) ([]ImportBatch, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Select("imported_at").
		Where("user_id = ? AND imported_at IS NOT NULL", userID).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, app := range apps {
		counts[*app.ImportedAt]++
	}
	batches := make([]ImportBatch, 0, len(counts))
	for ts, n := range counts {
		batches = append(batches, ImportBatch{ImportedAt: ts, Count: n})
	}
	sort.Slice(batches, func(i, j int) bool { return batches[i].ImportedAt > batches[j].ImportedAt })
	if len(batches) > limit {
		batches = batches[:limit]
	}
	return batches, nil
}

// UndoBatch deletes every row sharing the given imported_at stamp and returns
// the exact number removed, straight from the delete's affected-row count.
func (s *ImportService) UndoBatch(ctx context.Context, userID, importedAt string) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("user_id = ? AND imported_at = ?", userID, importedAt).
		Delete(&models.Application{})
	if res.Error != nil {
		return 0, res.Error
	}
	s.Log.InfoContext(ctx, "undid csv import", "imported_at", importedAt, "removed", res.RowsAffected)
	return res.RowsAffected, nil
}
