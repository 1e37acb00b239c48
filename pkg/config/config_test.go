package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		LLM: LLMConfig{
			Provider: ProviderDeepSeek,
			DeepSeek: DeepSeekConfig{APIKey: "sk-test"},
		},
		Whisper: WhisperConfig{Model: "whisper-1"},
		Storage: StorageConfig{Backend: BackendFile, ExpenseFile: "expense_data.json"},
		Expense: ExpenseConfig{Categories: DefaultCategories},
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("EXPENSE_CATEGORIES", "")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.LLM.Provider != ProviderDeepSeek {
		t.Errorf("provider = %q, want %q", cfg.LLM.Provider, ProviderDeepSeek)
	}
	if cfg.LLM.DeepSeek.BaseURL != "https://api.deepseek.com" {
		t.Errorf("base url = %q", cfg.LLM.DeepSeek.BaseURL)
	}
	if cfg.Storage.Backend != BackendFile {
		t.Errorf("backend = %q, want %q", cfg.Storage.Backend, BackendFile)
	}
	if len(cfg.Expense.Categories) != len(DefaultCategories) {
		t.Errorf("categories = %v, want defaults", cfg.Expense.Categories)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_ListAndDurationParsing(t *testing.T) {
	t.Setenv("EXPENSE_CATEGORIES", " Food, Travel ,,Other")
	t.Setenv("WHISPER_MODELS", "base,small,medium")
	t.Setenv("LLM_TIMEOUT", "45s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := []string{"Food", "Travel", "Other"}
	if strings.Join(cfg.Expense.Categories, "|") != strings.Join(want, "|") {
		t.Errorf("categories = %v, want %v", cfg.Expense.Categories, want)
	}
	if len(cfg.Whisper.Models) != 3 {
		t.Errorf("whisper models = %v", cfg.Whisper.Models)
	}
	if cfg.LLM.Timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.LLM.Timeout)
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid LLM_TIMEOUT")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Config) {},
		},
		{
			name:    "missing deepseek key",
			mutate:  func(c *Config) { c.LLM.DeepSeek.APIKey = "" },
			wantErr: "DEEPSEEK_API_KEY is required",
		},
		{
			name: "missing gigachat key",
			mutate: func(c *Config) {
				c.LLM.Provider = ProviderGigaChat
			},
			wantErr: "GIGACHAT_API_KEY is required",
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.LLM.Provider = "oracle" },
			wantErr: "invalid LLM provider",
		},
		{
			name:    "bad port",
			mutate:  func(c *Config) { c.Server.Port = "http" },
			wantErr: "invalid port",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = "70000" },
			wantErr: "must be between 1 and 65535",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Storage.Backend = "redis" },
			wantErr: "invalid storage backend",
		},
		{
			name: "sqlite without path",
			mutate: func(c *Config) {
				c.Storage.Backend = BackendSQLite
				c.Storage.SQLitePath = ""
			},
			wantErr: "SQLITE_PATH cannot be empty",
		},
		{
			name:    "bad amqp scheme",
			mutate:  func(c *Config) { c.AMQP = AMQPConfig{URL: "http://localhost", Exchange: "x", Queue: "q"} },
			wantErr: "invalid AMQP URL scheme",
		},
		{
			name:    "no categories",
			mutate:  func(c *Config) { c.Expense.Categories = nil },
			wantErr: "EXPENSE_CATEGORIES cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestDatabaseConfigURL(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: "5432", User: "app", Password: "p@ss", DBName: "ledger", SSLMode: "disable"}
	got := db.URL("pgx5")
	want := "pgx5://app:p%40ss@db:5432/ledger?sslmode=disable"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}
