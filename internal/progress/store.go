package progress

import (
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ProgressRow is one user_topic_progress row joined to its subject.
type ProgressRow struct {
	SubjectName  string
	CurrentLevel int
	SuccessRate  int
}

// ListUserProgress returns all progress rows for a user joined through
// topic to subject, highest level first.
func (s *Store) ListUserProgress(userID string) ([]ProgressRow, error) {
	rows, err := s.db.Query(
		`SELECT sub.name, p.current_level, p.success_rate
		 FROM user_topic_progress p
		 JOIN topics t ON t.id = p.topic_id
		 JOIN subjects sub ON sub.id = t.subject_id
		 WHERE p.user_id = $1
		 ORDER BY p.current_level DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user progress: %w", err)
	}
	defer rows.Close()

	var result []ProgressRow
	for rows.Next() {
		var r ProgressRow
		if err := rows.Scan(&r.SubjectName, &r.CurrentLevel, &r.SuccessRate); err != nil {
			return nil, fmt.Errorf("scan progress row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
