package generator

import (
	"fmt"
	"strings"

	"github.com/quizia/backend/internal/models"
)

// academicLevelDescriptions maps the UI tag to the wording injected into
// prompts.
var academicLevelDescriptions = map[string]string{
	"lycee":      "niveau secondaire (lycée/humanités)",
	"universite": "niveau universitaire (bachelier/licence)",
	"master":     "niveau master (études avancées)",
}

func AcademicLevelDescription(tag string) string {
	if desc, ok := academicLevelDescriptions[tag]; ok {
		return desc
	}
	return "niveau général"
}

// DifficultyInstruction returns the per-level difficulty wording. Questions
// must get harder at every level, with a steep ramp from level 4 on.
func DifficultyInstruction(level int) string {
	switch {
	case level <= 1:
		return "Questions fondamentales et concepts de base"
	case level == 2:
		return "Questions intermédiaires avec application des concepts, plus complexes que le niveau 1"
	case level == 3:
		return "Questions avancées nécessitant réflexion et combinaison de concepts, nettement plus difficiles"
	default:
		return fmt.Sprintf("Questions très avancées et complexes de niveau %d, augmentation significative de la difficulté", level)
	}
}

// BuildQuestionPrompt builds the strict-JSON question generation prompt.
func BuildQuestionPrompt(subject string, level int, academicLevel string, count int) string {
	academicDescription := AcademicLevelDescription(academicLevel)

	return fmt.Sprintf(`Tu es un professeur expert en %s. Génère exactement %d questions de %s pour évaluer les connaissances d'un étudiant.

Règles importantes:
- Adapte la complexité et les concepts au %s
- Niveau de difficulté du quiz : %d
- Difficulté requise : %s
- IMPORTANT : Les questions doivent être progressivement PLUS DIFFICILES à chaque niveau
- Les questions doivent correspondre aux programmes typiques de %s

Pour chaque question, fournis:
1. La question claire et précise
2. 4 options de réponse (A, B, C, D)
3. La réponse correcte

Format JSON STRICT (aucun texte avant ou après):
{
  "questions": [
    {
      "question": "Question ici?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswer": "Option correcte exacte"
    }
  ]
}`, subject, count, academicDescription, academicDescription, level, DifficultyInstruction(level), academicDescription)
}

// BuildFeedbackPrompt builds the post-attempt narrative feedback prompt with
// the itemized question/answer/correctness list.
func BuildFeedbackPrompt(subject string, level, score, correctCount int, questions []models.Question, answers []string, passed bool) string {
	var items strings.Builder
	for i, q := range questions {
		answer := ""
		if i < len(answers) {
			answer = answers[i]
		}
		mark := "✗ Incorrect"
		if q.CorrectAnswer == answer {
			mark = "✓ Correct"
		}
		fmt.Fprintf(&items, "\nQ%d: %s\nRéponse de l'étudiant: %s\nRéponse correcte: %s\n%s\n", i+1, q.Question, answer, q.CorrectAnswer, mark)
	}

	encouragement := "Motive à réessayer"
	if passed {
		encouragement = "Encourage pour le niveau suivant"
	}

	return fmt.Sprintf(`Tu es un professeur en %s. Un étudiant vient de terminer un quiz de niveau %d.

Score: %d/%d (%d%%)

Questions et réponses:
%s
Fournis un feedback personnalisé en 2-3 phrases:
1. Félicite les points forts
2. Identifie les domaines à améliorer
3. %s

Sois encourageant et constructif.`, subject, level, correctCount, len(questions), score, items.String(), encouragement)
}
