package main

import (
	"strings"
	"testing"
	"time"

	"voice-expense/internal/models"
	"voice-expense/internal/service"
	"voice-expense/pkg/config"

	"go.uber.org/zap"
)

func TestRenderPending(t *testing.T) {
	out := renderPending(models.PendingBatch{
		{Item: "Coffee", Amount: 5, Category: "Food"},
		{Item: "Taxi", Amount: 15.5, Category: "Transport"},
	})
	for _, want := range []string{"Pending review", "Coffee", "Taxi", "15.50", "Transport"} {
		if !strings.Contains(out, want) {
			t.Errorf("renderPending() missing %q:\n%s", want, out)
		}
	}
}

func TestRenderModels(t *testing.T) {
	catalog := service.NewWhisperTranscriber(&config.WhisperConfig{
		Model:  "small",
		Models: []string{"base", "small", "medium"},
	}, zap.NewNop())

	out := renderModels(catalog)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("renderModels() = %q", out)
	}
	if !strings.Contains(lines[1], "small") || !strings.Contains(lines[1], "default") {
		t.Errorf("default not marked: %q", lines[1])
	}
	if strings.Contains(lines[0], "default") {
		t.Errorf("non-default marked: %q", lines[0])
	}
}

func TestTimeframeHelp(t *testing.T) {
	help := timeframeHelp()
	for _, tf := range service.Timeframes {
		if !strings.Contains(help, string(tf)) {
			t.Errorf("help %q missing %s", help, tf)
		}
	}
}

func TestRunToken_RequiresSecret(t *testing.T) {
	cfg = &config.Config{JWT: config.JWTConfig{Expiration: time.Hour}}
	t.Cleanup(func() { cfg = nil })

	if err := runToken(nil, nil); err == nil {
		t.Fatal("expected error without JWT_SECRET_KEY")
	}

	cfg.JWT.SecretKey = "test-secret"
	if err := runToken(nil, nil); err != nil {
		t.Fatalf("runToken() error = %v", err)
	}
}
