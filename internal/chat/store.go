package chat

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/quizia/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListConversations returns the user's saved transcripts, newest first.
// Usage-only rows are excluded.
func (s *Store) ListConversations(userID string) ([]models.ChatConversation, error) {
	rows, err := s.db.Query(
		`SELECT id, user_id, type, model, tokens_in, tokens_out, title, messages, created_at, updated_at
		 FROM chat_conversations
		 WHERE user_id = $1 AND type = 'chat'
		 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var result []models.ChatConversation
	for rows.Next() {
		conv, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *conv)
	}
	return result, rows.Err()
}

// SaveConversation upserts a transcript. A request without an ID creates a
// new conversation; with an ID it overwrites that conversation if the user
// owns it.
func (s *Store) SaveConversation(userID string, req models.SaveConversationRequest) (*models.ChatConversation, error) {
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}

	messagesJSON, err := json.Marshal(req.Messages)
	if err != nil {
		return nil, fmt.Errorf("marshal messages: %w", err)
	}

	row := s.db.QueryRow(
		`INSERT INTO chat_conversations (id, user_id, type, model, tokens_in, tokens_out, title, messages, created_at, updated_at)
		 VALUES ($1, $2, 'chat', $3, 0, 0, $4, $5, NOW(), NOW())
		 ON CONFLICT (id) DO UPDATE SET
		   title = EXCLUDED.title,
		   model = EXCLUDED.model,
		   messages = EXCLUDED.messages,
		   updated_at = NOW()
		 WHERE chat_conversations.user_id = $2
		 RETURNING id, user_id, type, model, tokens_in, tokens_out, title, messages, created_at, updated_at`,
		id, userID, req.Model, req.Title, string(messagesJSON),
	)
	conv, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation %s not owned by user", id)
	}
	return conv, err
}

// UpdateConversation overwrites title, model and messages of an owned
// conversation. Returns false when no owned row matched.
func (s *Store) UpdateConversation(userID, id string, req models.SaveConversationRequest) (bool, error) {
	messagesJSON, err := json.Marshal(req.Messages)
	if err != nil {
		return false, fmt.Errorf("marshal messages: %w", err)
	}

	res, err := s.db.Exec(
		`UPDATE chat_conversations
		 SET title = $1, model = $2, messages = $3, updated_at = NOW()
		 WHERE id = $4 AND user_id = $5 AND type = 'chat'`,
		req.Title, req.Model, string(messagesJSON), id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("update conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteConversation removes an owned transcript. Returns false when no
// owned row matched.
func (s *Store) DeleteConversation(userID, id string) (bool, error) {
	res, err := s.db.Exec(
		`DELETE FROM chat_conversations WHERE id = $1 AND user_id = $2 AND type = 'chat'`,
		id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("delete conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// RecordUsage writes a token-usage row with no transcript attached.
func (s *Store) RecordUsage(userID, model string, tokensIn, tokensOut int, convType models.ConversationType) error {
	_, err := s.db.Exec(
		`INSERT INTO chat_conversations (id, user_id, type, model, tokens_in, tokens_out, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		uuid.NewString(), userID, string(convType), model, tokensIn, tokensOut,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// SaveTranscript writes a full transcript row carrying its own token usage.
func (s *Store) SaveTranscript(userID, title, model string, messages []models.ChatMessage, tokensIn, tokensOut int) error {
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO chat_conversations (id, user_id, type, model, tokens_in, tokens_out, title, messages, created_at, updated_at)
		 VALUES ($1, $2, 'chat', $3, $4, $5, $6, $7, NOW(), NOW())`,
		uuid.NewString(), userID, model, tokensIn, tokensOut, title, string(messagesJSON),
	)
	if err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// rowScanner covers both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConversation(row rowScanner) (*models.ChatConversation, error) {
	var conv models.ChatConversation
	var title, messagesJSON sql.NullString

	err := row.Scan(&conv.ID, &conv.UserID, &conv.Type, &conv.Model,
		&conv.TokensIn, &conv.TokensOut, &title, &messagesJSON,
		&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if title.Valid {
		conv.Title = &title.String
	}
	if messagesJSON.Valid && messagesJSON.String != "" {
		if err := json.Unmarshal([]byte(messagesJSON.String), &conv.Messages); err != nil {
			return nil, fmt.Errorf("unmarshal messages for %s: %w", conv.ID, err)
		}
	}
	return &conv, nil
}
