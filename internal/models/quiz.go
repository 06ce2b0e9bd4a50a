package models

import "time"

// Question is one generated multiple-choice question. CorrectAnswer holds the
// exact text of the correct option, not an index.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// QuizSession is the resumable in-progress attempt, unique per
// (user, subject, level).
type QuizSession struct {
	ID            int64      `json:"id"`
	UserID        string     `json:"user_id"`
	Subject       string     `json:"subject"`
	Level         int        `json:"level"`
	Model         string     `json:"model"`
	AcademicLevel string     `json:"academic_level"`
	Questions     []Question `json:"questions"`
	Answers       []string   `json:"answers"`
	CurrentIndex  int        `json:"current_index"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type Subject struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"created_at"`
}

// Topic is one difficulty level within a subject; its name is always
// "Niveau {level}" and SortOrder carries the level number.
type Topic struct {
	ID          int64     `json:"id"`
	SubjectID   int64     `json:"subject_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"order"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserTopicProgress struct {
	ID             int64      `json:"id"`
	UserID         string     `json:"user_id"`
	TopicID        int64      `json:"topic_id"`
	UserName       string     `json:"user_name"`
	SubjectName    string     `json:"subject_name"`
	CurrentLevel   int        `json:"current_level"`
	ExercisesCount int        `json:"exercises_count"`
	CorrectCount   int        `json:"correct_count"`
	SuccessRate    int        `json:"success_rate"`
	IsMastered     bool       `json:"is_mastered"`
	MasteredAt     *time.Time `json:"mastered_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// ExerciseHistory is one answered question, append-only.
type ExerciseHistory struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	TopicID       int64     `json:"topic_id"`
	UserName      string    `json:"user_name"`
	Level         int       `json:"level"`
	Question      string    `json:"question"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	AIFeedback    *string   `json:"ai_feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ── Request Types ─────────────────────────────────────

type GenerateQuizRequest struct {
	Subject       string `json:"subject"`
	Level         int    `json:"level"`
	Model         string `json:"model"`
	AcademicLevel string `json:"academicLevel"`
	QuestionCount int    `json:"questionCount,omitempty"`
}

type SaveSessionRequest struct {
	Subject       string     `json:"subject"`
	Level         *int       `json:"level"`
	Model         string     `json:"model"`
	AcademicLevel string     `json:"academicLevel"`
	Questions     []Question `json:"questions"`
	Answers       []string   `json:"answers"`
	CurrentIndex  int        `json:"currentIndex"`
}

type AnalyzeQuizRequest struct {
	Subject   string     `json:"subject"`
	Level     *int       `json:"level"`
	Model     string     `json:"model"`
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers"`
}

// ── Response Types ────────────────────────────────────

type GenerateQuizResponse struct {
	Questions []Question `json:"questions"`
	Model     string     `json:"model"`
}

type SessionResponse struct {
	Session *QuizSession `json:"session"`
}

type AnalyzeQuizResponse struct {
	Score          int    `json:"score"`
	CorrectCount   int    `json:"correctCount"`
	TotalQuestions int    `json:"totalQuestions"`
	Passed         bool   `json:"passed"`
	Feedback       string `json:"feedback"`
	NextLevel      int    `json:"nextLevel"`
}
