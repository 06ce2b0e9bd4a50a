package quiz

import (
	"testing"

	"github.com/quizia/backend/internal/models"
)

func TestPassingScore(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 50},
		{2, 60},
		{3, 80},
		{4, 95},
		{7, 95},
		{12, 95},
	}
	for _, tt := range tests {
		if got := PassingScore(tt.level); got != tt.want {
			t.Errorf("PassingScore(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func TestQuestionCountForLevel(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{1, 5},
		{2, 10},
		{3, 15},
		{5, 25},
	}
	for _, tt := range tests {
		if got := QuestionCountForLevel(tt.level); got != tt.want {
			t.Errorf("QuestionCountForLevel(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}

func makeQuestions(correct ...string) []models.Question {
	questions := make([]models.Question, len(correct))
	for i, c := range correct {
		questions[i] = models.Question{
			Question:      "Q?",
			Options:       []string{c, "B", "C", "D"},
			CorrectAnswer: c,
		}
	}
	return questions
}

func TestComputeScore(t *testing.T) {
	questions := makeQuestions("A", "A", "A", "A")

	score, correct := ComputeScore(questions, []string{"A", "A", "B", "B"})
	if score != 50 || correct != 2 {
		t.Errorf("got score=%d correct=%d, want 50/2", score, correct)
	}

	// Missing answers count as wrong.
	score, correct = ComputeScore(questions, []string{"A"})
	if score != 25 || correct != 1 {
		t.Errorf("short answers: got score=%d correct=%d, want 25/1", score, correct)
	}

	score, correct = ComputeScore(questions, nil)
	if score != 0 || correct != 0 {
		t.Errorf("no answers: got score=%d correct=%d, want 0/0", score, correct)
	}

	score, correct = ComputeScore(nil, nil)
	if score != 0 || correct != 0 {
		t.Errorf("no questions: got score=%d correct=%d, want 0/0", score, correct)
	}
}

func TestComputeScoreRounding(t *testing.T) {
	// 2/3 correct = 66.67%, rounds to 67.
	questions := makeQuestions("A", "A", "A")
	score, _ := ComputeScore(questions, []string{"A", "A", "B"})
	if score != 67 {
		t.Errorf("2/3 correct: got score=%d, want 67", score)
	}

	// 1/3 correct = 33.33%, rounds to 33.
	score, _ = ComputeScore(questions, []string{"A", "B", "B"})
	if score != 33 {
		t.Errorf("1/3 correct: got score=%d, want 33", score)
	}
}

func TestScoreAtThresholdPasses(t *testing.T) {
	// Level 1: exactly 50% passes, 49 would not. With 4 questions a 2/4
	// attempt lands exactly on the threshold.
	questions := makeQuestions("A", "A", "A", "A")
	score, _ := ComputeScore(questions, []string{"A", "A", "B", "B"})
	if score < PassingScore(1) {
		t.Errorf("score %d should pass level 1 threshold %d", score, PassingScore(1))
	}
	score, _ = ComputeScore(questions, []string{"A", "B", "B", "B"})
	if score >= PassingScore(1) {
		t.Errorf("score %d should fail level 1 threshold %d", score, PassingScore(1))
	}
}

func TestNextLevel(t *testing.T) {
	if got := NextLevel(3, true); got != 4 {
		t.Errorf("NextLevel(3, pass) = %d, want 4", got)
	}
	if got := NextLevel(3, false); got != 3 {
		t.Errorf("NextLevel(3, fail) = %d, want 3", got)
	}
}
