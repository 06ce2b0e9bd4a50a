package progress

import (
	"github.com/quizia/backend/internal/models"
)

// Service reduces historical progress rows into per-subject summaries.
// Read-only; it owns no state of its own.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetUserProgress maps each subject to the user's highest level in it and
// the success rate recorded alongside that level.
func (s *Service) GetUserProgress(userID string) (map[string]models.SubjectProgress, error) {
	rows, err := s.store.ListUserProgress(userID)
	if err != nil {
		return nil, err
	}
	return Summarize(rows), nil
}

// Summarize groups rows by subject, keeping the first-seen (highest level,
// given descending input order) entry per subject.
func Summarize(rows []ProgressRow) map[string]models.SubjectProgress {
	summary := make(map[string]models.SubjectProgress)
	for _, r := range rows {
		if existing, ok := summary[r.SubjectName]; ok && existing.Level >= r.CurrentLevel {
			continue
		}
		summary[r.SubjectName] = models.SubjectProgress{
			Level:       r.CurrentLevel,
			Progression: r.SuccessRate,
			SubjectName: r.SubjectName,
		}
	}
	return summary
}
