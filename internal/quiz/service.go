package quiz

import (
	"context"
	"fmt"
	"log"

	"github.com/quizia/backend/internal/generator"
	"github.com/quizia/backend/internal/models"
)

// Service owns the lifecycle of one quiz attempt: generation, resumable
// progress, scoring, level advancement and cleanup.
type Service struct {
	store *Store
	gen   *generator.Generator
}

func NewService(store *Store, gen *generator.Generator) *Service {
	return &Service{store: store, gen: gen}
}

// StartQuiz generates a fresh question set and persists it as the session
// for (user, subject, level). Nothing durable happens unless generation
// succeeds: a provider failure or malformed output fails the whole start.
func (s *Service) StartQuiz(ctx context.Context, userID string, req models.GenerateQuizRequest) (*models.GenerateQuizResponse, error) {
	count := req.QuestionCount
	if count <= 0 {
		count = QuestionCountForLevel(req.Level)
	}

	questions, _, err := s.gen.GenerateQuestions(ctx, req.Subject, req.Level, req.AcademicLevel, req.Model, count)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.SaveSession(userID, req.Subject, req.Level, req.Model, req.AcademicLevel, questions, nil, 0); err != nil {
		return nil, err
	}

	return &models.GenerateQuizResponse{Questions: questions, Model: req.Model}, nil
}

// GetSession returns the resumable session for (user, subject, level), or
// the user's most recent session when subject/level are not given. A nil
// session means fresh start.
func (s *Service) GetSession(userID, subject string, level *int) (*models.QuizSession, error) {
	if subject != "" && level != nil {
		return s.store.GetSession(userID, subject, *level)
	}
	return s.store.GetLatestSession(userID)
}

// SaveProgress upserts the in-progress session after an answered question.
func (s *Service) SaveProgress(userID string, req models.SaveSessionRequest) (*models.QuizSession, error) {
	return s.store.SaveSession(userID, req.Subject, *req.Level, req.Model, req.AcademicLevel,
		req.Questions, req.Answers, req.CurrentIndex)
}

// DeleteSession removes the session for (user, subject, level).
func (s *Service) DeleteSession(userID, subject string, level int) error {
	return s.store.DeleteSession(userID, subject, level)
}

// Analyze scores a completed attempt and closes it out: narrative feedback,
// usage record, subject/topic/progress/history writes, next-level topic
// pre-creation on a pass, and unconditional session deletion.
func (s *Service) Analyze(ctx context.Context, userID string, req models.AnalyzeQuizRequest) (*models.AnalyzeQuizResponse, error) {
	level := *req.Level
	score, correctCount := ComputeScore(req.Questions, req.Answers)
	passed := score >= PassingScore(level)

	userName, err := s.store.GetUserName(userID)
	if err != nil {
		return nil, err
	}

	feedback, usage, err := s.gen.GenerateFeedback(ctx, req.Subject, level, score, correctCount,
		req.Questions, req.Answers, passed, req.Model)
	if err != nil {
		return nil, fmt.Errorf("feedback generation: %w", err)
	}

	// Best effort: losing a usage row must never block scoring.
	if err := s.store.RecordUsage(userID, req.Model, usage.PromptTokens, usage.OutputTokens, models.TypeQuizAnalysis); err != nil {
		log.Printf("[quiz] failed to record usage for user %s: %v", userID, err)
	}

	err = s.store.FinalizeAttempt(ctx, FinalizeParams{
		UserID:       userID,
		UserName:     userName,
		Subject:      req.Subject,
		Level:        level,
		Questions:    req.Questions,
		Answers:      req.Answers,
		Score:        score,
		CorrectCount: correctCount,
		Passed:       passed,
		Feedback:     feedback,
	})
	if err != nil {
		return nil, err
	}

	return &models.AnalyzeQuizResponse{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: len(req.Questions),
		Passed:         passed,
		Feedback:       feedback,
		NextLevel:      NextLevel(level, passed),
	}, nil
}
