package quiz

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/quizia/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Sessions ────────────────────────────────────────────

// SaveSession creates or replaces the session for (user, subject, level) in
// one atomic upsert, so concurrent starts resolve to last-writer-wins.
func (s *Store) SaveSession(userID, subject string, level int, model, academicLevel string, questions []models.Question, answers []string, currentIndex int) (*models.QuizSession, error) {
	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}
	if answers == nil {
		answers = []string{}
	}
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}

	var session models.QuizSession
	var rawQuestions, rawAnswers string
	err = s.db.QueryRow(
		`INSERT INTO quiz_sessions (user_id, subject, level, model, academic_level, questions, answers, current_index, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		 ON CONFLICT (user_id, subject, level) DO UPDATE SET
		   model = EXCLUDED.model,
		   academic_level = EXCLUDED.academic_level,
		   questions = EXCLUDED.questions,
		   answers = EXCLUDED.answers,
		   current_index = EXCLUDED.current_index,
		   updated_at = NOW()
		 RETURNING id, user_id, subject, level, model, academic_level, questions, answers, current_index, updated_at`,
		userID, subject, level, model, academicLevel, string(questionsJSON), string(answersJSON), currentIndex,
	).Scan(&session.ID, &session.UserID, &session.Subject, &session.Level, &session.Model,
		&session.AcademicLevel, &rawQuestions, &rawAnswers, &session.CurrentIndex, &session.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	if err := unmarshalSessionPayload(&session, rawQuestions, rawAnswers); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetSession returns the session for (user, subject, level), or nil if none
// exists.
func (s *Store) GetSession(userID, subject string, level int) (*models.QuizSession, error) {
	return s.scanSession(s.db.QueryRow(
		`SELECT id, user_id, subject, level, model, academic_level, questions, answers, current_index, updated_at
		 FROM quiz_sessions WHERE user_id = $1 AND subject = $2 AND level = $3`,
		userID, subject, level,
	))
}

// GetLatestSession returns the user's most recently touched session, or nil.
func (s *Store) GetLatestSession(userID string) (*models.QuizSession, error) {
	return s.scanSession(s.db.QueryRow(
		`SELECT id, user_id, subject, level, model, academic_level, questions, answers, current_index, updated_at
		 FROM quiz_sessions WHERE user_id = $1 ORDER BY updated_at DESC LIMIT 1`,
		userID,
	))
}

func (s *Store) scanSession(row *sql.Row) (*models.QuizSession, error) {
	var session models.QuizSession
	var rawQuestions, rawAnswers string
	err := row.Scan(&session.ID, &session.UserID, &session.Subject, &session.Level, &session.Model,
		&session.AcademicLevel, &rawQuestions, &rawAnswers, &session.CurrentIndex, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if err := unmarshalSessionPayload(&session, rawQuestions, rawAnswers); err != nil {
		return nil, err
	}
	return &session, nil
}

func unmarshalSessionPayload(session *models.QuizSession, rawQuestions, rawAnswers string) error {
	if err := json.Unmarshal([]byte(rawQuestions), &session.Questions); err != nil {
		return fmt.Errorf("unmarshal session questions: %w", err)
	}
	if err := json.Unmarshal([]byte(rawAnswers), &session.Answers); err != nil {
		return fmt.Errorf("unmarshal session answers: %w", err)
	}
	return nil
}

func (s *Store) DeleteSession(userID, subject string, level int) error {
	_, err := s.db.Exec(
		`DELETE FROM quiz_sessions WHERE user_id = $1 AND subject = $2 AND level = $3`,
		userID, subject, level,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ── Users ───────────────────────────────────────────────

func (s *Store) GetUserName(userID string) (string, error) {
	var name string
	err := s.db.QueryRow(`SELECT name FROM users WHERE id = $1`, userID).Scan(&name)
	if err == sql.ErrNoRows {
		return "Utilisateur", nil
	}
	if err != nil {
		return "", fmt.Errorf("get user name: %w", err)
	}
	return name, nil
}

// ── Usage records ───────────────────────────────────────

// RecordUsage writes a token-usage row for cost accounting. It deliberately
// runs outside the attempt transaction: a failure here must never block
// scoring.
func (s *Store) RecordUsage(userID, model string, tokensIn, tokensOut int, convType models.ConversationType) error {
	_, err := s.db.Exec(
		`INSERT INTO chat_conversations (id, user_id, type, model, tokens_in, tokens_out, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		uuid.NewString(), userID, convType, model, tokensIn, tokensOut,
	)
	if err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// ── Attempt finalization ────────────────────────────────

// FinalizeParams carries everything needed to persist a scored attempt.
type FinalizeParams struct {
	UserID       string
	UserName     string
	Subject      string
	Level        int
	Questions    []models.Question
	Answers      []string
	Score        int
	CorrectCount int
	Passed       bool
	Feedback     string
}

// FinalizeAttempt persists a scored attempt in a single transaction:
// subject and topic find-or-create, progress upsert, history rows,
// next-level topic pre-creation on a pass, and session deletion.
func (s *Store) FinalizeAttempt(ctx context.Context, p FinalizeParams) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	subjectID, err := findOrCreateSubject(tx, p.Subject)
	if err != nil {
		return err
	}

	topicID, err := findOrCreateTopic(tx, subjectID, p.Subject, p.Level, p.UserID, p.UserName)
	if err != nil {
		return err
	}

	newLevel := NextLevel(p.Level, p.Passed)
	var masteredAt *time.Time
	if p.Passed {
		now := time.Now()
		masteredAt = &now
	}

	// Counters accumulate across attempts; level only moves up; masteredAt
	// keeps its previous value on a failed retry.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_topic_progress
		   (user_id, topic_id, user_name, subject_name, current_level, exercises_count, correct_count, success_rate, is_mastered, mastered_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		 ON CONFLICT (user_id, topic_id) DO UPDATE SET
		   user_name = EXCLUDED.user_name,
		   subject_name = EXCLUDED.subject_name,
		   current_level = EXCLUDED.current_level,
		   exercises_count = user_topic_progress.exercises_count + EXCLUDED.exercises_count,
		   correct_count = user_topic_progress.correct_count + EXCLUDED.correct_count,
		   success_rate = EXCLUDED.success_rate,
		   is_mastered = EXCLUDED.is_mastered,
		   mastered_at = CASE WHEN EXCLUDED.is_mastered THEN EXCLUDED.mastered_at ELSE user_topic_progress.mastered_at END,
		   updated_at = NOW()`,
		p.UserID, topicID, p.UserName, p.Subject, newLevel, len(p.Questions), p.CorrectCount,
		p.Score, p.Passed, masteredAt,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}

	for i, q := range p.Questions {
		answer := ""
		if i < len(p.Answers) {
			answer = p.Answers[i]
		}
		var feedback *string
		if i == len(p.Questions)-1 && p.Feedback != "" {
			feedback = &p.Feedback
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO exercise_history (user_id, topic_id, user_name, level, question, user_answer, correct_answer, is_correct, ai_feedback)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			p.UserID, topicID, p.UserName, p.Level, q.Question, answer, q.CorrectAnswer,
			q.CorrectAnswer == answer, feedback,
		)
		if err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
	}

	// Keep the ladder one rung ahead
	if p.Passed {
		if _, err := findOrCreateTopic(tx, subjectID, p.Subject, p.Level+1, p.UserID, p.UserName); err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM quiz_sessions WHERE user_id = $1 AND subject = $2 AND level = $3`,
		p.UserID, p.Subject, p.Level,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	return nil
}

// SubjectIcon returns the dashboard icon for a subject name.
func SubjectIcon(subject string) string {
	switch subject {
	case "Mathématiques":
		return "⚡"
	case "Physique":
		return "🎯"
	default:
		return "📖"
	}
}

func findOrCreateSubject(tx *sql.Tx, name string) (int64, error) {
	var id int64
	// The no-op update makes RETURNING yield the existing row on conflict
	// without touching its description or icon.
	err := tx.QueryRow(
		`INSERT INTO subjects (name, description, icon)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		name, fmt.Sprintf("Cours de %s", name), SubjectIcon(name),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("find or create subject: %w", err)
	}
	return id, nil
}

func findOrCreateTopic(tx *sql.Tx, subjectID int64, subject string, level int, userID, userName string) (int64, error) {
	var id int64
	err := tx.QueryRow(
		`INSERT INTO topics (subject_id, name, description, sort_order, user_id, user_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (subject_id, name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		subjectID, fmt.Sprintf("Niveau %d", level), fmt.Sprintf("Niveau %d - %s", level, subject),
		level, userID, userName,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("find or create topic: %w", err)
	}
	return id, nil
}
