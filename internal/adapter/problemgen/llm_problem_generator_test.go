package problemgen

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"haru-byte/internal/config"
	"haru-byte/internal/domain"
	"haru-byte/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/tmc/langchaingo/llms"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// stubModel returns a canned response or error for every prompt.
type stubModel struct {
	response string
	err      error
}

func (s *stubModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: s.response}},
	}, nil
}

func (s *stubModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestGenerateParsesJSONResponse(t *testing.T) {
	model := &stubModel{response: `{"title":"Virtual DOM","description":"Explain reconciliation.","model_answer":"Diffing by type and key."}`}
	gen := NewLLMProblemGenerator(model, time.Second)

	p, err := gen.Generate(context.Background(), "React.js", domain.DifficultyMedium)
	assert.NoError(t, err)
	assert.Equal(t, "Virtual DOM", p.Title)
	assert.Equal(t, "Explain reconciliation.", p.Description)
	assert.Equal(t, "Diffing by type and key.", p.ModelAnswer)
}

func TestGenerateStripsCodeFences(t *testing.T) {
	model := &stubModel{response: "```json\n{\"title\":\"T\",\"description\":\"D\",\"model_answer\":\"A\"}\n```"}
	gen := NewLLMProblemGenerator(model, time.Second)

	p, err := gen.Generate(context.Background(), "Database", domain.DifficultyEasy)
	assert.NoError(t, err)
	assert.Equal(t, "T", p.Title)
}

func TestGenerateStripsThinkBlocks(t *testing.T) {
	model := &stubModel{response: "<think>pondering</think>{\"title\":\"T\",\"description\":\"D\",\"model_answer\":\"A\"}"}
	gen := NewLLMProblemGenerator(model, time.Second)

	p, err := gen.Generate(context.Background(), "Networking", domain.DifficultyHard)
	assert.NoError(t, err)
	assert.Equal(t, "T", p.Title)
}

func TestGenerateReturnsGenerationFailedError(t *testing.T) {
	tests := []struct {
		name  string
		model *stubModel
	}{
		{"model error", &stubModel{err: errors.New("connection refused")}},
		{"malformed json", &stubModel{response: "not json at all"}},
		{"missing fields", &stubModel{response: `{"title":"only a title"}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewLLMProblemGenerator(tt.model, time.Second)
			_, err := gen.Generate(context.Background(), "React.js", domain.DifficultyMedium)
			assert.Error(t, err)

			var domainErr *domain.DomainError
			assert.True(t, errors.As(err, &domainErr))
			assert.Equal(t, domain.CodeGenerationFailed, domainErr.Code)
		})
	}
}

func TestNewLLMClientRejectsUnknownSource(t *testing.T) {
	_, err := NewLLMClient(config.LLMConfig{Source: "carrier-pigeon"})
	assert.Error(t, err)
}
