package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCategories seeds the category set when EXPENSE_CATEGORIES is not set.
var DefaultCategories = []string{"Food", "Transport", "Utilities", "Retail", "Entertainment", "Personal Care", "Other"}

const (
	ProviderDeepSeek = "deepseek"
	ProviderGigaChat = "gigachat"

	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Whisper  WhisperConfig
	Storage  StorageConfig
	Database DatabaseConfig
	AMQP     AMQPConfig
	JWT      JWTConfig
	Expense  ExpenseConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
	File  string
}

type ServerConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	UploadDir     string
	MaxUploadSize int
}

type LLMConfig struct {
	Provider string
	Timeout  time.Duration
	DeepSeek DeepSeekConfig
	GigaChat GigaChatConfig
}

type DeepSeekConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

type WhisperConfig struct {
	APIKey   string
	BaseURL  string
	Model    string
	Models   []string
	Language string
}

type StorageConfig struct {
	Backend     string
	ExpenseFile string
	SQLitePath  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the connection string in URL form, as expected by the migration driver.
func (c DatabaseConfig) URL(scheme string) string {
	u := url.URL{
		Scheme:   scheme,
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type AMQPConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type JWTConfig struct {
	SecretKey  string
	Expiration time.Duration
}

type ExpenseConfig struct {
	Categories []string
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work the same way
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "300"))
	maxUpload, _ := strconv.Atoi(getEnv("SERVER_MAX_UPLOAD_MB", "25"))
	jwtExp, _ := strconv.Atoi(getEnv("JWT_EXPIRATION_HOURS", "720"))

	llmTimeout, err := time.ParseDuration(getEnv("LLM_TIMEOUT", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}

	whisperModel := getEnv("WHISPER_MODEL", "whisper-1")

	return &Config{
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			ReadTimeout:   time.Duration(readTimeout) * time.Second,
			WriteTimeout:  time.Duration(writeTimeout) * time.Second,
			UploadDir:     getEnv("UPLOAD_DIR", os.TempDir()),
			MaxUploadSize: maxUpload * 1024 * 1024,
		},
		LLM: LLMConfig{
			Provider: strings.ToLower(getEnv("LLM_PROVIDER", ProviderDeepSeek)),
			Timeout:  llmTimeout,
			DeepSeek: DeepSeekConfig{
				APIKey:  getEnv("DEEPSEEK_API_KEY", ""),
				BaseURL: getEnv("DEEPSEEK_BASE_URL", "https://api.deepseek.com"),
				Model:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			},
			GigaChat: GigaChatConfig{
				APIKey:             getEnv("GIGACHAT_API_KEY", ""),
				Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
				Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
				InsecureSkipVerify: getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "false") == "true",
			},
		},
		Whisper: WhisperConfig{
			APIKey:   getEnv("WHISPER_API_KEY", ""),
			BaseURL:  getEnv("WHISPER_BASE_URL", "https://api.openai.com/v1"),
			Model:    whisperModel,
			Models:   getEnvList("WHISPER_MODELS", []string{whisperModel}),
			Language: getEnv("WHISPER_LANGUAGE", ""),
		},
		Storage: StorageConfig{
			Backend:     strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile)),
			ExpenseFile: getEnv("EXPENSE_FILE", "expense_data.json"),
			SQLitePath:  getEnv("SQLITE_PATH", "./data/expenses.db"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "voice_expense"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "voice-expense"),
			Queue:    getEnv("AMQP_QUEUE", "history_changed"),
		},
		JWT: JWTConfig{
			SecretKey:  getEnv("JWT_SECRET_KEY", ""),
			Expiration: time.Duration(jwtExp) * time.Hour,
		},
		Expense: ExpenseConfig{
			Categories: getEnvList("EXPENSE_CATEGORIES", DefaultCategories),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}, nil
}

// APIKey returns the credential of the selected LLM provider.
func (c *LLMConfig) APIKey() string {
	switch c.Provider {
	case ProviderGigaChat:
		return c.GigaChat.APIKey
	default:
		return c.DeepSeek.APIKey
	}
}

// Validate reports every configuration problem at once. A missing LLM credential
// is always an error: the service must not start without one.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Server.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Server.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.LLM.Provider {
	case ProviderDeepSeek:
		if c.LLM.DeepSeek.APIKey == "" {
			problems = append(problems, "DEEPSEEK_API_KEY is required when LLM_PROVIDER=deepseek")
		}
	case ProviderGigaChat:
		if c.LLM.GigaChat.APIKey == "" {
			problems = append(problems, "GIGACHAT_API_KEY is required when LLM_PROVIDER=gigachat")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid LLM provider '%s': must be one of [%s %s]", c.LLM.Provider, ProviderDeepSeek, ProviderGigaChat))
	}

	if c.LLM.Timeout < 0 {
		problems = append(problems, "LLM_TIMEOUT must not be negative")
	}

	if c.Whisper.Model == "" {
		problems = append(problems, "WHISPER_MODEL cannot be empty")
	}

	switch c.Storage.Backend {
	case BackendFile:
		if c.Storage.ExpenseFile == "" {
			problems = append(problems, "EXPENSE_FILE cannot be empty when using file backend")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH cannot be empty when using sqlite backend")
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "DB_HOST and DB_NAME are required when using postgres backend")
		}
	default:
		problems = append(problems, fmt.Sprintf("invalid storage backend '%s': must be one of [%s %s %s]", c.Storage.Backend, BackendFile, BackendSQLite, BackendPostgres))
	}

	if c.AMQP.URL != "" {
		if parsed, err := url.Parse(c.AMQP.URL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQP.URL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQP.Exchange == "" || c.AMQP.Queue == "" {
			problems = append(problems, "AMQP exchange and queue names cannot be empty when AMQP_URL is set")
		}
	}

	if len(c.Expense.Categories) == 0 {
		problems = append(problems, "EXPENSE_CATEGORIES cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return append([]string(nil), defaultValue...)
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
