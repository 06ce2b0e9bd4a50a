package generator

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/quizia/backend/internal/models"
)

func validQuestionJSON(count int) string {
	env := questionEnvelope{Questions: make([]models.Question, count)}
	for i := range env.Questions {
		env.Questions[i] = models.Question{
			Question:      "Quelle est la dérivée de x² ?",
			Options:       []string{"2x", "x", "x²", "2"},
			CorrectAnswer: "2x",
		}
	}
	data, _ := json.Marshal(env)
	return string(data)
}

func TestParseQuestions_ValidJSON(t *testing.T) {
	questions, err := ParseQuestions(validQuestionJSON(5))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("expected 5 questions, got %d", len(questions))
	}
	for i, q := range questions {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i+1, len(q.Options))
		}
	}
}

func TestParseQuestions_SurroundingProse(t *testing.T) {
	input := "Voici les questions demandées :\n\n" + validQuestionJSON(3) + "\n\nBonne chance !"

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with surrounding prose, got: %v", err)
	}
	if len(questions) != 3 {
		t.Errorf("expected 3 questions, got %d", len(questions))
	}
}

func TestParseQuestions_MarkdownFences(t *testing.T) {
	input := "```json\n" + validQuestionJSON(2) + "\n```"

	questions, err := ParseQuestions(input)
	if err != nil {
		t.Fatalf("expected no error with markdown fences, got: %v", err)
	}
	if len(questions) != 2 {
		t.Errorf("expected 2 questions, got %d", len(questions))
	}
}

func TestParseQuestions_NoJSON(t *testing.T) {
	if _, err := ParseQuestions("désolé, je ne peux pas générer de questions"); err == nil {
		t.Error("expected error for response without JSON")
	}
}

func TestParseQuestions_WrongOptionCount(t *testing.T) {
	input := `{"questions":[{"question":"Q?","options":["A","B","C"],"correctAnswer":"A"}]}`

	_, err := ParseQuestions(input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !strings.Contains(verr.Error(), "expected 4 options") {
		t.Errorf("unexpected validation message: %v", verr)
	}
}

func TestParseQuestions_CorrectAnswerNotAmongOptions(t *testing.T) {
	input := `{"questions":[{"question":"Q?","options":["A","B","C","D"],"correctAnswer":"E"}]}`

	_, err := ParseQuestions(input)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if !strings.Contains(verr.Error(), "not among options") {
		t.Errorf("unexpected validation message: %v", verr)
	}
}

func TestParseQuestions_EmptySet(t *testing.T) {
	if _, err := ParseQuestions(`{"questions":[]}`); err == nil {
		t.Error("expected error for empty question set")
	}
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	input := `prefix {"questions":[{"question":"Que vaut {x} ?","options":["A","B","C","D"],"correctAnswer":"A"}]} suffix`

	got := ExtractJSON(input)
	if !strings.HasPrefix(got, `{"questions"`) || !strings.HasSuffix(got, "]}") {
		t.Errorf("extraction mangled by braces inside strings: %q", got)
	}

	var env questionEnvelope
	if err := json.Unmarshal([]byte(got), &env); err != nil {
		t.Fatalf("extracted block is not valid JSON: %v", err)
	}
}

func TestExtractJSON_Unbalanced(t *testing.T) {
	if got := ExtractJSON(`{"questions": [`); got != "" {
		t.Errorf("expected empty result for unbalanced JSON, got %q", got)
	}
	if got := ExtractJSON("no json here"); got != "" {
		t.Errorf("expected empty result without JSON, got %q", got)
	}
}
