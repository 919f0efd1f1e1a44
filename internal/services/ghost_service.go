package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jobtrackr/jobtrackr/internal/models"
	"gorm.io/gorm"
)

// UndoWindow is how long a confirmed ghost batch can be taken back.
const UndoWindow = 10 * time.Second

var ErrUndoExpired = errors.New("undo window expired")

// GhostCandidate is an Applied record that has gone silent past the threshold.
type GhostCandidate struct {
	Application models.Application `json:"application"`
	DaysSince   int                `json:"days_since_applied"`
}

// GhostCandidates returns the records with status Applied whose applied date
// is at least threshold days in the past, oldest first. Records without an
// applied date can't be classified and are skipped.
func GhostCandidates(apps []models.Application, threshold int, today time.Time) []GhostCandidate {
	var out []GhostCandidate
	for _, app := range apps {
		if app.Status != models.StatusApplied || app.AppliedDate == nil {
			continue
		}
		days, err := DaysBetween(*app.AppliedDate, today)
		if err != nil || days < threshold {
			continue
		}
		out = append(out, GhostCandidate{Application: app, DaysSince: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysSince > out[j].DaysSince
	})
	return out
}

// AutoRevertIDs returns the ids of auto-ghosted records whose elapsed days
// have fallen back below the threshold. Re-running it on already-reverted
// records is a no-op because they are no longer Ghosted.
func AutoRevertIDs(apps []models.Application, threshold int, today time.Time) []string {
	var ids []string
	for _, app := range apps {
		if app.Status != models.StatusGhosted || !app.AutoGhosted || app.AppliedDate == nil {
			continue
		}
		days, err := DaysBetween(*app.AppliedDate, today)
		if err != nil {
			continue
		}
		if days < threshold {
			ids = append(ids, app.ID)
		}
	}
	return ids
}

type undoWindow struct {
	userID    string
	ids       []string
	expiresAt time.Time
	timer     *time.Timer
}

// GhostService classifies stale applications and applies the confirm/undo
// batch mutations. Undo windows live in memory; they are short-lived enough
// that losing them on restart just means the undo button goes away.
type GhostService struct {
	DB  *gorm.DB
	Log *slog.Logger

	mu      sync.Mutex
	windows map[string]*undoWindow
}

func NewGhostService(db *gorm.DB, log *slog.Logger) *GhostService {
	return &GhostService{
		DB:      db,
		Log:     log,
		windows: make(map[string]*undoWindow),
	}
}

// Candidates re-runs the classifier for one user. Before collecting
// candidates it reverts any auto-ghosted record that no longer clears the
// threshold; the check is continuous re-classification, not a one-time action.
func (s *GhostService) Candidates(ctx context.Context, userID string, threshold int, today time.Time) ([]GhostCandidate, error) {
	apps, err := s.fetchAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	if revert := AutoRevertIDs(apps, threshold, today); len(revert) > 0 {
		if err := s.revert(ctx, userID, revert); err != nil {
			return nil, err
		}
		s.Log.InfoContext(ctx, "auto-reverted ghosted applications", "count", len(revert))
		apps, err = s.fetchAll(ctx, userID)
		if err != nil {
			return nil, err
		}
	}

	return GhostCandidates(apps, threshold, today), nil
}

// Confirm marks the selected candidates Ghosted with the auto flag set and
// opens an undo window for exactly that id set.
func (s *GhostService) Confirm(ctx context.Context, userID string, ids []string) (token string, expiresAt time.Time, err error) {
	if len(ids) == 0 {
		return "", time.Time{}, errors.New("no applications selected")
	}

	res := s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Updates(map[string]interface{}{
			"status":       models.StatusGhosted,
			"auto_ghosted": true,
		})
	if res.Error != nil {
		return "", time.Time{}, res.Error
	}

	token = uuid.NewString()
	expiresAt = time.Now().Add(UndoWindow)

	s.mu.Lock()
	w := &undoWindow{userID: userID, ids: ids, expiresAt: expiresAt}
	// Expiry only closes the window; the ghosting itself stands. The timer is
	// stopped on manual undo so the two paths can never both run.
	w.timer = time.AfterFunc(UndoWindow, func() {
		s.mu.Lock()
		delete(s.windows, token)
		s.mu.Unlock()
	})
	s.windows[token] = w
	s.mu.Unlock()

	s.Log.InfoContext(ctx, "confirmed ghost batch", "count", res.RowsAffected)
	return token, expiresAt, nil
}

// Undo reverts the exact id set of a confirmed batch, provided the window is
// still open. A window can be consumed at most once.
func (s *GhostService) Undo(ctx context.Context, userID, token string) (int, error) {
	s.mu.Lock()
	w, ok := s.windows[token]
	if !ok || w.userID != userID {
		s.mu.Unlock()
		return 0, ErrUndoExpired
	}
	delete(s.windows, token)
	w.timer.Stop()
	s.mu.Unlock()

	if err := s.revert(ctx, userID, w.ids); err != nil {
		return 0, err
	}
	return len(w.ids), nil
}

func (s *GhostService) revert(ctx context.Context, userID string, ids []string) error {
	return s.DB.WithContext(ctx).Model(&models.Application{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Updates(map[string]interface{}{
			"status":       models.StatusApplied,
			"auto_ghosted": false,
		}).Error
}

func (s *GhostService) fetchAll(ctx context.Context, userID string) ([]models.Application, error) {
	var apps []models.Application
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}
