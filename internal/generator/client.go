package generator

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
	"github.com/quizia/backend/internal/models"
	openai "github.com/sashabaranov/go-openai"
)

// Message is one turn of a completion conversation. Images are base64 data
// URLs attached to the turn as multimodal parts.
type Message struct {
	Role    string
	Content string
	Images  []string
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// CompletionRequest is the single call shape used against the provider.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float32
	MaxTokens   int
}

// LLMResponse holds the raw response content and token usage. Token counts
// come from the provider verbatim; they are the only source of truth for
// cost accounting.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// LLMClient is the interface all completion backends satisfy.
type LLMClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*LLMResponse, error)
}

// DefaultModel is used when a request does not name a model.
const DefaultModel = "openai/gpt-4o-mini"

// Generator wraps an LLMClient and adds quiz-specific methods.
type Generator struct {
	llm LLMClient
}

func NewGenerator() *Generator {
	var llm LLMClient

	switch {
	case os.Getenv("MOCK_GENERATOR") == "true":
		llm = NewMockClient()
		log.Println("Generator using mock data")
	case os.Getenv("LLM_PROVIDER") == "anthropic":
		llm = NewAnthropicClient()
		log.Println("Generator using Anthropic API")
	default:
		llm = NewOpenRouterClient()
		log.Println("Generator using OpenRouter API")
	}

	return &Generator{llm: llm}
}

// NewGeneratorWithClient builds a Generator around an explicit client.
func NewGeneratorWithClient(llm LLMClient) *Generator {
	return &Generator{llm: llm}
}

// Client exposes the underlying completion backend for callers that need the
// raw call shape (the tutor chat).
func (g *Generator) Client() LLMClient {
	return g.llm
}

// GenerateQuestions requests a fresh question set. A provider failure or
// unparseable response fails the whole call; no partial set is returned.
func (g *Generator) GenerateQuestions(ctx context.Context, subject string, level int, academicLevel, model string, count int) ([]models.Question, *LLMResponse, error) {
	prompt := BuildQuestionPrompt(subject, level, academicLevel, count)

	resp, err := g.llm.Complete(ctx, CompletionRequest{
		Model:       model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: 0.7,
		MaxTokens:   2000,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("generate questions: %w", err)
	}

	questions, err := ParseQuestions(resp.Content)
	if err != nil {
		return nil, resp, fmt.Errorf("parse questions: %w", err)
	}

	return questions, resp, nil
}

// GenerateFeedback requests 2-3 sentences of narrative feedback on a scored
// attempt. The returned usage feeds cost accounting.
func (g *Generator) GenerateFeedback(ctx context.Context, subject string, level, score, correctCount int, questions []models.Question, answers []string, passed bool, model string) (string, *LLMResponse, error) {
	prompt := BuildFeedbackPrompt(subject, level, score, correctCount, questions, answers, passed)

	resp, err := g.llm.Complete(ctx, CompletionRequest{
		Model:       model,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: 0.8,
		MaxTokens:   300,
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate feedback: %w", err)
	}

	return resp.Content, resp, nil
}

// ── OpenRouterClient — OpenAI-compatible API (Production) ──

type OpenRouterClient struct {
	client *openai.Client
}

func NewOpenRouterClient() *OpenRouterClient {
	config := openai.DefaultConfig(os.Getenv("OPENROUTER_API_KEY"))
	config.BaseURL = os.Getenv("OPENROUTER_BASE_URL")
	if config.BaseURL == "" {
		config.BaseURL = "https://openrouter.ai/api/v1"
	}
	return &OpenRouterClient{client: openai.NewClientWithConfig(config)}
}

func (c *OpenRouterClient) Complete(ctx context.Context, req CompletionRequest) (*LLMResponse, error) {
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    buildOpenAIMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("openrouter completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in API response")
	}

	return &LLMResponse{
		Content:      resp.Choices[0].Message.Content,
		PromptTokens: resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
	}, nil
}

func buildOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	var out []openai.ChatCompletionMessage
	for _, m := range messages {
		if len(m.Images) == 0 {
			out = append(out, openai.ChatCompletionMessage{
				Role:    m.Role,
				Content: m.Content,
			})
			continue
		}

		parts := []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: m.Content},
		}
		for _, img := range m.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: img},
			})
		}
		out = append(out, openai.ChatCompletionMessage{
			Role:         m.Role,
			MultiContent: parts,
		})
	}
	return out
}

// ── AnthropicClient — Anthropic SDK (Alternate) ────────────

type AnthropicClient struct {
	client *anthropic.Client
	model  string
}

func NewAnthropicClient() *AnthropicClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-3-5-haiku-latest"
	}
	return &AnthropicClient{client: &client, model: model}
}

func (c *AnthropicClient) Complete(ctx context.Context, req CompletionRequest) (*LLMResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(maxTokens),
		Temperature: param.NewOpt(float64(req.Temperature)),
	}

	// The Anthropic API takes the system prompt out of band. Image parts are
	// dropped; multimodal traffic goes through the OpenRouter backend.
	for _, m := range req.Messages {
		switch m.Role {
		case RoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		case RoleAssistant:
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("anthropic completion: %w", err)
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

// ── MockClient — Local Development ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, req CompletionRequest) (*LLMResponse, error) {
	return &LLMResponse{
		Content:      buildMockJSON(5),
		PromptTokens: 400,
		OutputTokens: 900,
	}, nil
}

func buildMockJSON(count int) string {
	questions := "["
	for i := 0; i < count; i++ {
		if i > 0 {
			questions += ","
		}
		questions += fmt.Sprintf(
			`{"question":"[Mock] Question %d ?","options":["Réponse A","Réponse B","Réponse C","Réponse D"],"correctAnswer":"Réponse %c"}`,
			i+1, 'A'+rune(i%4),
		)
	}
	questions += "]"
	return fmt.Sprintf(`{"questions":%s}`, questions)
}
