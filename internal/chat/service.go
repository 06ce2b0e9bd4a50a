package chat

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/quizia/backend/internal/generator"
	"github.com/quizia/backend/internal/models"
)

// recommendModel is pinned: recommendation blurbs are short and frequent,
// so they always go to the cheapest model.
const recommendModel = "openai/gpt-4o-mini"

type Service struct {
	store *Store
	gen   *generator.Generator
}

func NewService(store *Store, gen *generator.Generator) *Service {
	return &Service{store: store, gen: gen}
}

// TutorReply answers a tutor conversation in one non-streaming provider
// call, so token usage is exact. PDF text is appended to the last user
// message; images ride along as multimodal parts. The usage row is best
// effort and never fails the reply.
func (s *Service) TutorReply(ctx context.Context, userID string, req models.TutorChatRequest) (string, error) {
	var pdfTexts strings.Builder
	var images []string
	hasPDF := false

	for _, f := range req.Files {
		switch {
		case isPDF(f):
			hasPDF = true
			text, err := extractPDFText(f)
			if err != nil {
				log.Printf("[chat] pdf extraction failed for %s: %v", f.Name, err)
				fmt.Fprintf(&pdfTexts, "\n\nImpossible de lire \"%s\". Essaie de prendre des captures d'écran ou copie le texte manuellement.\n", f.Name)
				continue
			}
			fmt.Fprintf(&pdfTexts, "\n\nContenu de \"%s\":\n%s\n", f.Name, text)
		case isImage(f):
			images = append(images, f.Data)
		}
	}

	messages := make([]generator.Message, 0, len(req.Messages)+1)
	messages = append(messages, generator.Message{
		Role:    generator.RoleSystem,
		Content: tutorSystemPrompt(hasPDF, len(images) > 0),
	})
	for i, m := range req.Messages {
		msg := generator.Message{Role: m.Role, Content: m.Content}
		// Attachments apply to the final user turn only.
		if i == len(req.Messages)-1 && m.Role == generator.RoleUser && len(req.Files) > 0 {
			if msg.Content == "" {
				msg.Content = "Analyse le contenu ci-dessous."
			}
			msg.Content += pdfTexts.String()
			msg.Images = images
		}
		messages = append(messages, msg)
	}

	model := req.Model
	if model == "" {
		model = generator.DefaultModel
	}

	resp, err := s.gen.Client().Complete(ctx, generator.CompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.7,
		MaxTokens:   1000,
	})
	if err != nil {
		return "", fmt.Errorf("tutor completion: %w", err)
	}

	if err := s.store.RecordUsage(userID, model, resp.PromptTokens, resp.OutputTokens, models.TypeChatUsage); err != nil {
		log.Printf("[chat] failed to record tutor usage for user %s: %v", userID, err)
	}

	return resp.Content, nil
}

// Recommend answers a dashboard recommendation prompt and persists the
// request transcript as a saved conversation carrying the real usage.
func (s *Service) Recommend(ctx context.Context, userID string, req models.RecommendChatRequest) (string, error) {
	messages := make([]generator.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, generator.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := s.gen.Client().Complete(ctx, generator.CompletionRequest{
		Model:       recommendModel,
		Messages:    messages,
		Temperature: 0.8,
		MaxTokens:   100,
	})
	if err != nil {
		return "", fmt.Errorf("recommend completion: %w", err)
	}

	title := req.Title
	if title == "" {
		title = "Recommandation IA"
	}
	if err := s.store.SaveTranscript(userID, title, "gpt-4o-mini", req.Messages, resp.PromptTokens, resp.OutputTokens); err != nil {
		log.Printf("[chat] failed to save recommendation for user %s: %v", userID, err)
	}

	return resp.Content, nil
}

func tutorSystemPrompt(hasPDF, hasImages bool) string {
	if !hasPDF && !hasImages {
		return `Tu es un assistant pédagogique expert. Tu aides les étudiants avec leurs questions dans tous les domaines.

Règles importantes:
- Réponds de manière claire et pédagogique
- Utilise des exemples concrets
- Encourage l'étudiant
- Rajoute des emojis pertinents pour rendre la conversation plus engageante
- Si la question est hors sujet (pas liée aux études), redirige poliment vers les matières
- Réponds en français, sauf pour les questions sur l'anglais
- Sois concis mais complet`
	}

	var b strings.Builder
	b.WriteString("Tu es un assistant pédagogique expert avec capacité d'analyse visuelle")
	if hasPDF {
		b.WriteString(" et de documents")
	}
	b.WriteString(". Tu aides les étudiants avec leurs questions dans tous les domaines.\n\nRègles importantes:\n")
	if hasImages {
		b.WriteString("- Analyse attentivement les images fournies\n")
	}
	if hasPDF {
		b.WriteString("- Analyse le texte extrait du PDF et réponds aux questions basées sur son contenu\n")
	}
	b.WriteString("- Réponds de manière claire et pédagogique\n- Utilise des exemples concrets")
	if hasPDF {
		b.WriteString(" tirés du document")
	}
	if hasImages {
		b.WriteString(" de l'image")
	}
	b.WriteString(`
- Encourage l'étudiant
- Rajoute des emojis pertinents pour rendre la conversation plus engageante
- Si la question est hors sujet (pas liée aux études), redirige poliment
- Réponds en français, sauf pour les questions sur l'anglais
- Sois concis mais complet`)
	return b.String()
}
