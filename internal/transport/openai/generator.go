package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/chat"
	"github.com/kailas-cloud/campusbot/internal/metrics"
)

// Generator is one credential's chat-completion client against an
// OpenAI-compatible API (e.g. Gemini's OpenAI endpoint).
type Generator struct {
	client      *openai.Client
	model       string
	label       string
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// Config holds the generative provider settings.
type Config struct {
	APIKeys     []string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Logger      *zap.Logger
}

// NewGenerators creates one generator per API key, labeled key-0, key-1, ...
// Blank keys are skipped.
func NewGenerators(cfg *Config) []*Generator {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	out := make([]*Generator, 0, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		clientCfg := openai.DefaultConfig(key)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
		label := "key-" + strconv.Itoa(len(out))
		out = append(out, &Generator{
			client:      openai.NewClientWithConfig(clientCfg),
			model:       cfg.Model,
			label:       label,
			temperature: cfg.Temperature,
			maxTokens:   cfg.MaxTokens,
			logger:      logger.With(zap.String("key", label)),
		})
	}
	return out
}

// Label names the credential without revealing it.
func (g *Generator) Label() string { return g.label }

// Complete sends prior turns as user/assistant messages followed by prompt.
func (g *Generator) Complete(ctx context.Context, prompt string, history []chat.Turn) (string, error) {
	msgs := make([]openai.ChatCompletionMessage, 0, 2*len(history)+1)
	for _, t := range history {
		if t.Question != "" {
			msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: t.Question})
		}
		if t.Answer != "" {
			msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: t.Answer})
		}
	}
	msgs = append(msgs, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: prompt})

	req := openai.ChatCompletionRequest{
		Model:       g.model,
		Messages:    msgs,
		Temperature: g.temperature,
	}
	if g.maxTokens > 0 {
		req.MaxTokens = g.maxTokens
	}

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.RephraseAttemptsTotal.WithLabelValues(g.label, "error").Inc()
		return "", parseAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		metrics.RephraseAttemptsTotal.WithLabelValues(g.label, "error").Inc()
		return "", fmt.Errorf("empty completion response: %w", domain.ErrGenerativeProvider)
	}

	metrics.RephraseAttemptsTotal.WithLabelValues(g.label, "ok").Inc()
	metrics.RephraseDuration.WithLabelValues(g.label).Observe(duration.Seconds())
	g.logger.Debug("completion done",
		zap.Duration("took", duration),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// HealthCheck verifies API availability via ListModels.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a readable message and wraps domain.ErrGenerativeProvider.
func parseAPIError(err error) error {
	wrap := domain.ErrGenerativeProvider

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("completion aborted: %w: %w", wrap, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("completion API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractMessage(reqErr.Body); detail != "" {
			return fmt.Errorf("completion API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("completion API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}

	return fmt.Errorf("completion request failed: %w", wrap)
}

// extractMessage reads an error message from a JSON body. Gemini wraps errors in
// a one-element array, OpenAI in an object.
func extractMessage(body []byte) string {
	type errBody struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
		Detail string `json:"detail"`
	}
	var one errBody
	if json.Unmarshal(body, &one) == nil {
		if one.Error.Message != "" {
			return one.Error.Message
		}
		if one.Detail != "" {
			return one.Detail
		}
	}
	var many []errBody
	if json.Unmarshal(body, &many) == nil && len(many) > 0 {
		return many[0].Error.Message
	}
	return ""
}
