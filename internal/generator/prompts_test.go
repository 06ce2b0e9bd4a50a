package generator

import (
	"strings"
	"testing"

	"github.com/quizia/backend/internal/models"
)

func TestBuildQuestionPrompt(t *testing.T) {
	prompt := BuildQuestionPrompt("Mathématiques", 3, "universite", 15)

	required := []string{"Mathématiques", "15", "JSON", "correctAnswer", "4 options", "universitaire"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("question prompt missing keyword %q", keyword)
		}
	}

	if !strings.Contains(prompt, DifficultyInstruction(3)) {
		t.Error("question prompt should embed the level difficulty instruction")
	}
}

func TestBuildQuestionPrompt_UnknownAcademicLevel(t *testing.T) {
	prompt := BuildQuestionPrompt("Histoire", 1, "doctorat", 5)
	if !strings.Contains(prompt, "niveau général") {
		t.Error("unknown academic level should fall back to the general wording")
	}
}

func TestDifficultyInstruction(t *testing.T) {
	if DifficultyInstruction(1) == DifficultyInstruction(2) {
		t.Error("levels 1 and 2 should have distinct difficulty wording")
	}
	// High levels carry the level number so the wording keeps escalating.
	if !strings.Contains(DifficultyInstruction(7), "7") {
		t.Error("level 7 instruction should mention the level")
	}
}

func TestBuildFeedbackPrompt(t *testing.T) {
	questions := []models.Question{
		{Question: "Q1?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A"},
		{Question: "Q2?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "B"},
	}
	prompt := BuildFeedbackPrompt("Physique", 2, 50, 1, questions, []string{"A", "C"}, false)

	required := []string{"Physique", "niveau 2", "1/2", "50%", "✓ Correct", "✗ Incorrect", "réessayer"}
	for _, keyword := range required {
		if !strings.Contains(prompt, keyword) {
			t.Errorf("feedback prompt missing %q", keyword)
		}
	}
}

func TestBuildFeedbackPrompt_Passed(t *testing.T) {
	questions := []models.Question{
		{Question: "Q1?", Options: []string{"A", "B", "C", "D"}, CorrectAnswer: "A"},
	}
	prompt := BuildFeedbackPrompt("Chimie", 1, 100, 1, questions, []string{"A"}, true)

	if !strings.Contains(prompt, "niveau suivant") {
		t.Error("passing feedback should encourage moving to the next level")
	}
	if strings.Contains(prompt, "✗ Incorrect") {
		t.Error("all-correct attempt should not mark any answer incorrect")
	}
}
