package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"voice-expense/pkg/config"

	"github.com/Role1776/gigago"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// extractionTemperature keeps the model close to deterministic.
const extractionTemperature = 0.1

var ErrEmptyCompletion = errors.New("no response from LLM")

// Extractor sends one transcript to an LLM and returns its raw text reply.
type Extractor interface {
	Extract(ctx context.Context, transcript, systemPrompt string) (string, error)
	Close() error
}

// NewExtractor builds the client for cfg.Provider.
func NewExtractor(cfg *config.LLMConfig, logger *zap.Logger) (Extractor, error) {
	switch cfg.Provider {
	case config.ProviderGigaChat:
		return NewGigaChatExtractor(cfg, logger)
	case config.ProviderDeepSeek, "":
		return NewDeepSeekExtractor(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", cfg.Provider)
	}
}

// DeepSeekExtractor talks to any OpenAI-compatible chat completions endpoint.
type DeepSeekExtractor struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func NewDeepSeekExtractor(cfg *config.LLMConfig, logger *zap.Logger) *DeepSeekExtractor {
	clientConfig := openai.DefaultConfig(cfg.DeepSeek.APIKey)
	clientConfig.BaseURL = cfg.DeepSeek.BaseURL

	logger.Info("Using OpenAI-compatible LLM",
		zap.String("base_url", cfg.DeepSeek.BaseURL),
		zap.String("model", cfg.DeepSeek.Model),
	)

	return &DeepSeekExtractor{
		client:  openai.NewClientWithConfig(clientConfig),
		model:   cfg.DeepSeek.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

func (e *DeepSeekExtractor) Extract(ctx context.Context, transcript, systemPrompt string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: transcript},
		},
		Temperature: extractionTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := resp.Choices[0].Message.Content
	e.logger.Debug("LLM response received",
		zap.String("model", resp.Model),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
		zap.Int("response_length", len(content)),
	)
	return content, nil
}

func (e *DeepSeekExtractor) Close() error { return nil }

// GigaChatExtractor uses the GigaChat SDK.
type GigaChatExtractor struct {
	client    *gigago.Client
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewGigaChatExtractor(cfg *config.LLMConfig, logger *zap.Logger) (*GigaChatExtractor, error) {
	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.GigaChat.Scope),
	}
	if cfg.GigaChat.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(context.Background(), cfg.GigaChat.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	logger.Info("Using GigaChat LLM", zap.String("model", cfg.GigaChat.Model))

	return &GigaChatExtractor{
		client:    client,
		modelName: cfg.GigaChat.Model,
		timeout:   cfg.Timeout,
		logger:    logger,
	}, nil
}

func (e *GigaChatExtractor) Extract(ctx context.Context, transcript, systemPrompt string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, e.timeout)
	defer cancel()

	// the system prompt follows the category set, so each call gets its own model
	model := e.client.GenerativeModel(e.modelName)
	model.SystemInstruction = systemPrompt
	model.Temperature = extractionTemperature

	resp, err := model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: transcript},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	e.logger.Debug("LLM response received", zap.Int("response_length", len(content)))
	return content, nil
}

func (e *GigaChatExtractor) Close() error {
	if e.client != nil {
		e.client.Close()
	}
	return nil
}

func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}
