package problemgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"haru-byte/internal/config"
	"haru-byte/internal/domain"
	"haru-byte/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

const generationPrompt = `You are an expert interview coach. Create one technical interview question or learning problem about the topic "%s".
Difficulty level: %s.

The problem should be conceptual or a small code scenario, focused on key understanding.

Respond with ONLY a JSON object in the following format:
{
    "title": "a short, catchy title",
    "description": "the full problem statement (Markdown supported)",
    "model_answer": "a concise model answer or key points explaining the solution (Markdown supported)"
}`

// LLMProblemGenerator implements domain.ProblemGenerator on top of a
// langchaingo model.
type LLMProblemGenerator struct {
	model   llms.Model
	timeout time.Duration
}

// NewLLMProblemGenerator creates a new instance of LLMProblemGenerator.
func NewLLMProblemGenerator(model llms.Model, timeout time.Duration) domain.ProblemGenerator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &LLMProblemGenerator{model: model, timeout: timeout}
}

// NewLLMClient builds the langchaingo model selected by configuration.
func NewLLMClient(cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Source {
	case "ollama":
		httpClient := &http.Client{Timeout: cfg.Timeout}
		return ollama.New(
			ollama.WithServerURL(cfg.Ollama.ServerURL),
			ollama.WithModel(cfg.Ollama.Model),
			ollama.WithHTTPClient(httpClient),
		)
	case "openai":
		return openai.New(
			openai.WithToken(cfg.OpenAI.APIKey),
			openai.WithModel(cfg.OpenAI.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported llm source: %s", cfg.Source)
	}
}

// Generate implements domain.ProblemGenerator. The caller is expected to
// substitute fallback content when an error is returned.
func (g *LLMProblemGenerator) Generate(ctx context.Context, topic string, difficulty domain.Difficulty) (*domain.GeneratedProblem, error) {
	l := logger.Get()

	prompt := fmt.Sprintf(generationPrompt, topic, difficulty)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(0.7))
	if err != nil {
		l.Error("LLM problem generation failed",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("difficulty", string(difficulty)))
		return nil, domain.NewGenerationFailedError(err)
	}

	generated, err := parseGeneratedProblem(response)
	if err != nil {
		l.Error("Failed to parse LLM generation response",
			zap.Error(err),
			zap.String("topic", topic),
			zap.String("response", response))
		return nil, domain.NewGenerationFailedError(err)
	}

	l.Info("Generated daily problem",
		zap.String("topic", topic),
		zap.String("difficulty", string(difficulty)),
		zap.String("title", generated.Title))
	return generated, nil
}

// parseGeneratedProblem strips reasoning blocks and code fences the model
// may wrap around its JSON, then unmarshals and validates the payload.
func parseGeneratedProblem(response string) (*domain.GeneratedProblem, error) {
	responseStr := strings.TrimSpace(response)
	if thinkStart := strings.Index(responseStr, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(responseStr, "</think>"); thinkEnd != -1 {
			responseStr = responseStr[thinkEnd+len("</think>"):]
		}
	}

	responseStr = strings.TrimSpace(responseStr)
	responseStr = strings.TrimPrefix(responseStr, "```json")
	responseStr = strings.TrimPrefix(responseStr, "```")
	responseStr = strings.TrimSuffix(responseStr, "```")
	responseStr = strings.TrimSpace(responseStr)

	var generated domain.GeneratedProblem
	if err := json.Unmarshal([]byte(responseStr), &generated); err != nil {
		return nil, fmt.Errorf("failed to parse generation response: %w", err)
	}

	if generated.Title == "" || generated.Description == "" || generated.ModelAnswer == "" {
		return nil, fmt.Errorf("generation response is missing required fields")
	}
	return &generated, nil
}

// Static assertion to ensure LLMProblemGenerator implements ProblemGenerator
var _ domain.ProblemGenerator = (*LLMProblemGenerator)(nil)
