package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"voice-expense/pkg/config"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	ErrUnsupportedAudio = errors.New("unsupported audio format")
	ErrUnknownModel     = errors.New("unknown transcription model")
)

// SupportedAudioExtensions lists the formats accepted for transcription.
var SupportedAudioExtensions = []string{".mp3", ".wav", ".m4a"}

// Transcriber turns a recorded voice note into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, model string) (string, error)
}

// ModelCatalog describes the transcription models a caller can choose from.
type ModelCatalog interface {
	Models() []string
	DefaultModel() string
}

// WhisperTranscriber calls an OpenAI-compatible /audio/transcriptions endpoint.
type WhisperTranscriber struct {
	client       *openai.Client
	defaultModel string
	models       []string
	language     string
	logger       *zap.Logger
}

func NewWhisperTranscriber(cfg *config.WhisperConfig, logger *zap.Logger) *WhisperTranscriber {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &WhisperTranscriber{
		client:       openai.NewClientWithConfig(clientConfig),
		defaultModel: cfg.Model,
		models:       cfg.Models,
		language:     cfg.Language,
		logger:       logger,
	}
}

// Models returns the transcription models a caller may pick from.
func (s *WhisperTranscriber) Models() []string {
	return append([]string(nil), s.models...)
}

func (s *WhisperTranscriber) DefaultModel() string {
	return s.defaultModel
}

// Transcribe sends the file at audioPath to the speech-to-text model.
// An empty model selects the configured default.
func (s *WhisperTranscriber) Transcribe(ctx context.Context, audioPath, model string) (string, error) {
	if err := CheckAudioExtension(audioPath); err != nil {
		return "", err
	}

	if model == "" {
		model = s.defaultModel
	}
	if len(s.models) > 0 && !slices.Contains(s.models, model) {
		return "", fmt.Errorf("%w: %s (available: %s)", ErrUnknownModel, model, strings.Join(s.models, ", "))
	}

	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    model,
		FilePath: audioPath,
		Language: s.language,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	s.logger.Info("Transcription completed",
		zap.String("file", filepath.Base(audioPath)),
		zap.String("model", model),
		zap.Int("text_length", len(text)),
	)
	return text, nil
}

// CheckAudioExtension rejects files that are not mp3, wav or m4a.
func CheckAudioExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(SupportedAudioExtensions, ext) {
		return fmt.Errorf("%w: %q (supported: mp3, wav, m4a)", ErrUnsupportedAudio, ext)
	}
	return nil
}

// SaveUpload copies an uploaded audio stream into dir under a unique name that
// keeps the original extension. The caller removes the returned file.
func SaveUpload(dir, filename string, r io.Reader) (string, error) {
	if err := CheckAudioExtension(filename); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, "voice-"+uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to copy file data: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return path, nil
}
