package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/quizia/backend/internal/models"
)

type questionEnvelope struct {
	Questions []models.Question `json:"questions"`
}

type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// ParseQuestions extracts and validates the question set from a raw provider
// response. Models sometimes wrap the JSON in prose or code fences, so the
// first balanced {...} block is parsed rather than the whole body.
func ParseQuestions(responseBody string) ([]models.Question, error) {
	cleaned := ExtractJSON(responseBody)
	if cleaned == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var envelope questionEnvelope
	if err := json.Unmarshal([]byte(cleaned), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if err := validateQuestions(envelope.Questions); err != nil {
		return nil, err
	}

	return envelope.Questions, nil
}

// ExtractJSON returns the first balanced top-level {...} block in s, or ""
// if none exists. Braces inside JSON strings are skipped.
func ExtractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

func validateQuestions(questions []models.Question) error {
	var errs []string

	if len(questions) == 0 {
		return &ValidationError{Errors: []string{"no questions in response"}}
	}

	for i, q := range questions {
		qNum := i + 1

		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty question text", qNum))
		}

		if len(q.Options) != 4 {
			errs = append(errs, fmt.Sprintf("question %d: expected 4 options, got %d", qNum, len(q.Options)))
			continue
		}

		if strings.TrimSpace(q.CorrectAnswer) == "" {
			errs = append(errs, fmt.Sprintf("question %d: empty correctAnswer", qNum))
			continue
		}

		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			errs = append(errs, fmt.Sprintf("question %d: correctAnswer %q not among options", qNum, q.CorrectAnswer))
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	return nil
}
