package models

import "time"

type ConversationType string

const (
	// TypeChat is a full saved transcript.
	TypeChat ConversationType = "chat"
	// TypeChatUsage records tokens only, for budget tracking.
	TypeChatUsage ConversationType = "chat_usage"
	// TypeQuizAnalysis records tokens spent scoring a quiz attempt.
	TypeQuizAnalysis ConversationType = "quiz_analysis"
)

// ChatConversation doubles as a transcript and a token-usage record,
// discriminated by Type. Usage-only rows have nil Title and Messages.
type ChatConversation struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      ConversationType `json:"type"`
	Model     string           `json:"model"`
	TokensIn  int              `json:"tokens_in"`
	TokensOut int              `json:"tokens_out"`
	Title     *string          `json:"title,omitempty"`
	Messages  []ChatMessage    `json:"messages,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AttachedFile is an uploaded file sent with a tutor message, as a
// base64 data URL.
type AttachedFile struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Data string `json:"data"`
}

type TutorChatRequest struct {
	Messages []ChatMessage  `json:"messages"`
	Model    string         `json:"model"`
	Files    []AttachedFile `json:"files"`
}

type RecommendChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Title    string        `json:"title"`
}

type SaveConversationRequest struct {
	ID       string        `json:"id,omitempty"`
	Title    string        `json:"title"`
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}
