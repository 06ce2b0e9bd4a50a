package admin

import (
	"database/sql"
	"fmt"
	"time"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// UsageRow is one chat_conversations row as seen by the dashboard.
type UsageRow struct {
	UserID    string
	Model     string
	TokensIn  int
	TokensOut int
	Type      string
	CreatedAt time.Time
}

// ListRecentUsage returns the last 100 usage rows, newest first. The
// dashboard aggregates over this window only.
func (s *Store) ListRecentUsage() ([]UsageRow, error) {
	rows, err := s.db.Query(
		`SELECT user_id, model, tokens_in, tokens_out, type, created_at
		 FROM chat_conversations
		 ORDER BY created_at DESC
		 LIMIT 100`,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent usage: %w", err)
	}
	defer rows.Close()

	var result []UsageRow
	for rows.Next() {
		var r UsageRow
		if err := rows.Scan(&r.UserID, &r.Model, &r.TokensIn, &r.TokensOut, &r.Type, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// DeleteDuplicateConversations removes saved transcripts that share a
// (user, title) pair, keeping only the most recently updated one. Usage
// rows are never touched.
func (s *Store) DeleteDuplicateConversations() (int, error) {
	res, err := s.db.Exec(
		`DELETE FROM chat_conversations c
		 WHERE c.type = 'chat'
		   AND c.id NOT IN (
		     SELECT DISTINCT ON (user_id, title) id
		     FROM chat_conversations
		     WHERE type = 'chat'
		     ORDER BY user_id, title, updated_at DESC
		   )`,
	)
	if err != nil {
		return 0, fmt.Errorf("delete duplicate conversations: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
