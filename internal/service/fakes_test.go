package service

import (
	"context"
	"errors"
	"sync"

	"voice-expense/internal/models"
	"voice-expense/pkg/amqp"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audioPath, model string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeExtractor struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeExtractor) Extract(ctx context.Context, transcript, systemPrompt string) (string, error) {
	f.calls++
	f.lastPrompt = systemPrompt
	return f.reply, f.err
}

func (f *fakeExtractor) Close() error { return nil }

// memStore is an in-memory HistoryStore that counts writes.
type memStore struct {
	mu      sync.Mutex
	history []models.Expense
	saves   int
	loadErr error
	saveErr error
}

func (m *memStore) Load(context.Context) ([]models.Expense, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]models.Expense{}, m.history...), nil
}

func (m *memStore) Save(_ context.Context, history []models.Expense) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.history = append([]models.Expense{}, history...)
	return nil
}

func (m *memStore) Close() error { return nil }

type recordingPublisher struct {
	messages []*amqp.HistoryChangedMessage
	err      error
}

func (p *recordingPublisher) PublishHistoryChanged(_ context.Context, msg *amqp.HistoryChangedMessage) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

var errUpstream = errors.New("connection refused")

func defaultCategories() models.CategorySet {
	return models.NewCategorySet([]string{"Food", "Transport", "Utilities", "Retail", "Entertainment", "Personal Care", "Other"})
}
