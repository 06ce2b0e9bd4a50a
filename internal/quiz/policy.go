package quiz

import (
	"math"

	"github.com/quizia/backend/internal/models"
)

// PassingScore returns the minimum score (0-100) required to pass a level.
// Thresholds ramp up with the level and jump to 95 from level 4 on.
func PassingScore(level int) int {
	switch {
	case level == 1:
		return 50
	case level == 2:
		return 60
	case level == 3:
		return 80
	case level >= 4:
		return 95
	default:
		return 70
	}
}

// QuestionCountForLevel returns how many questions an attempt at the given
// level contains: 5 at level 1, level×5 beyond.
func QuestionCountForLevel(level int) int {
	if level <= 1 {
		return 5
	}
	return level * 5
}

// ComputeScore counts exact answer matches and returns the rounded
// percentage score. Missing answers count as wrong.
func ComputeScore(questions []models.Question, answers []string) (score, correctCount int) {
	if len(questions) == 0 {
		return 0, 0
	}
	for i, q := range questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			correctCount++
		}
	}
	score = int(math.Round(float64(correctCount) / float64(len(questions)) * 100))
	return score, correctCount
}

// NextLevel returns the level the user should attempt next: one up on a
// pass, the same level for a retry.
func NextLevel(level int, passed bool) int {
	if passed {
		return level + 1
	}
	return level
}
