package generator

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"

	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/apperr"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/config"
	"github.com/Mohit-G-git/Focus-Enhancer-sub000/internal/models"
)

// LLMClient is the interface both generator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// NewLLMClient picks the configured backend: the Anthropic API with its
// fallback model chain, or the deterministic mock for local development.
func NewLLMClient(cfg *config.Config) LLMClient {
	if cfg.UseMockGenerator {
		log.Println("[generator] using mock client")
		return NewMockClient()
	}
	log.Println("[generator] using Anthropic API, models:", strings.Join(cfg.GeneratorModels, ", "))
	return NewAPIClient(cfg.GeneratorModels, NewThrottle(cfg.GeneratorMinInterval))
}

// Generator wraps an LLMClient and adds the study-plan generation methods.
type Generator struct {
	llm LLMClient
}

func NewGenerator(llm LLMClient) *Generator {
	return &Generator{llm: llm}
}

// GenerateTask produces the title, body and duration for one scheduled
// study slot.
func (g *Generator) GenerateTask(ctx context.Context, course models.Course, topic string, difficulty models.Difficulty, passNumber int) (*GeneratedTask, error) {
	resp, err := g.llm.Generate(ctx, taskSystemPrompt, BuildTaskPrompt(course, topic, difficulty, passNumber))
	if err != nil {
		return nil, fmt.Errorf("generate task: %w", err)
	}

	task, err := ParseTaskContent(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse task response: %w", err)
	}
	return task, nil
}

// GenerateQuiz produces the six-question MCQ set gating a task's completion.
func (g *Generator) GenerateQuiz(ctx context.Context, task models.Task) ([]models.QuizQuestion, error) {
	resp, err := g.llm.Generate(ctx, quizSystemPrompt, BuildQuizPrompt(task))
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	questions, err := ParseQuizBatch(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}
	return questions, nil
}

// ── APIClient, Anthropic SDK ────────────────────────────────

// APIClient calls the Anthropic API through a shared throttle. Models are
// tried in order; the next one is consulted only when the previous fails
// on quota, never on other errors.
type APIClient struct {
	client   *anthropic.Client
	models   []string
	throttle *Throttle
}

func NewAPIClient(modelChain []string, throttle *Throttle) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
	)
	return &APIClient{client: &client, models: modelChain, throttle: throttle}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if len(c.models) == 0 {
		return nil, fmt.Errorf("no generator models configured")
	}

	var lastErr error
	for _, model := range c.models {
		if err := c.throttle.Wait(ctx); err != nil {
			return nil, err
		}

		message, err := c.call(ctx, model, systemPrompt, userPrompt)
		if err == nil {
			return extractResponse(message)
		}
		lastErr = err

		if !isQuotaError(err) {
			return nil, fmt.Errorf("model %s: %w", model, err)
		}
		log.Printf("[generator] WARN: model %s out of quota, falling back: %v", model, err)
	}

	return nil, fmt.Errorf("%w: all models exhausted: %v", apperr.ErrQuota, lastErr)
}

func (c *APIClient) call(ctx context.Context, model, systemPrompt, userPrompt string) (*anthropic.Message, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   8192,
		Temperature: param.NewOpt(0.7),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			sleep := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("[generator] retrying %s in %v (attempt %d)", model, sleep, attempt+1)
			time.Sleep(sleep)
		}

		message, err := c.client.Messages.New(ctx, params)
		if err == nil {
			return message, nil
		}
		lastErr = err

		// Quota errors go straight back so the caller can switch models.
		if isQuotaError(err) {
			return nil, lastErr
		}
		log.Printf("[generator] WARN: %s attempt %d failed: %v", model, attempt+1, err)
	}
	return nil, lastErr
}

func extractResponse(message *anthropic.Message) (*LLMResponse, error) {
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

var quotaMarkers = []string{"429", "rate_limit", "rate limit", "quota", "overloaded", "insufficient credit"}

// isQuotaError sniffs provider messages for quota and rate-limit failures.
// Anything else (auth, network, bad request) must not trigger a fallback.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// ── MockClient, local development ───────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	var content string
	switch {
	case strings.Contains(systemPrompt, "quiz"):
		content = buildMockQuizJSON()
	case strings.Contains(systemPrompt, "arbiter"):
		content = buildMockVerdictJSON()
	default:
		content = buildMockTaskJSON()
	}

	return &LLMResponse{
		Content:      content,
		PromptTokens: 800,
		OutputTokens: 1200,
	}, nil
}

func buildMockTaskJSON() string {
	return `{"title":"[Mock] Guided study block","content":"[Mock] Work the topic in three passes: skim your lecture notes and mark anything unfamiliar, rework two solved examples by hand, then attempt the practice set without references. Note every step you could not reproduce.","duration_hours":2}`
}

func buildMockQuizJSON() string {
	questions := "["
	for i := 0; i < models.MCQQuestionCount; i++ {
		if i > 0 {
			questions += ","
		}

		options := "["
		for j := 0; j < models.MCQOptionCount; j++ {
			if j > 0 {
				options += ","
			}
			options += fmt.Sprintf(`"[Mock] Candidate statement %d for question %d"`, j+1, i+1)
		}
		options += "]"

		questions += fmt.Sprintf(`{"prompt":"[Mock] Question %d: which statement about the topic holds?","options":%s,"correct_index":%d}`,
			i+1, options, i%models.MCQOptionCount)
	}
	questions += "]"

	return fmt.Sprintf(`{"questions":%s}`, questions)
}

func buildMockVerdictJSON() string {
	return `{"decision":"reviewee_correct","confidence":"medium","reasoning":"[Mock] The submission addresses the stated requirements; the downvote cites issues outside the task scope."}`
}
