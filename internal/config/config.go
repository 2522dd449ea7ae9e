package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	CredentialsInjected    = "injected"
	CredentialsInteractive = "interactive"

	DefaultOutputFile = "youtube_comments_analysis.pdf"
	DefaultAPIBaseURL = "https://www.googleapis.com/youtube/v3"
	MaxPageSize       = 100
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// YouTube Data API
	YouTubeAPIKey     string
	YouTubeAPIBaseURL string
	CredentialSource  string // "injected" or "interactive"
	PageSize          int

	// Report configuration
	OutputFile        string
	IncludeVideoTitle bool
	IncludeVideoLink  bool
	FontDir           string

	// Sentiment analysis
	SentimentBackend string // "vader", "lexicon" or "ollama"
	OllamaHost       string
	OllamaModel      string

	// Archive configuration
	StorageBackend   string // "none", "local" or "azure"
	LocalStorageDir  string
	StorageAccount   string
	StorageContainer string
	ArchiveRetention int // runs kept per video; 0 keeps everything

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// Watch list for the server
	WatchVideos   []string
	WatchKeyword  string
	WatchSchedule string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		YouTubeAPIKey:     getEnv("YOUTUBE_API_KEY", ""),
		YouTubeAPIBaseURL: getEnv("YOUTUBE_API_BASE_URL", DefaultAPIBaseURL),
		CredentialSource:  getEnv("CREDENTIAL_SOURCE", CredentialsInjected),
		PageSize:          getIntEnv("PAGE_SIZE", MaxPageSize),

		OutputFile:        getEnv("OUTPUT_FILE", DefaultOutputFile),
		IncludeVideoTitle: getBoolEnv("INCLUDE_VIDEO_TITLE", false),
		IncludeVideoLink:  getBoolEnv("INCLUDE_VIDEO_LINK", false),
		FontDir:           getEnv("FONT_DIR", ""),

		SentimentBackend: getEnv("SENTIMENT_BACKEND", "vader"),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "mistral"),

		StorageBackend:   getEnv("STORAGE_BACKEND", "none"),
		LocalStorageDir:  getEnv("LOCAL_STORAGE_DIR", "output"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "comment-reports"),
		ArchiveRetention: getIntEnv("ARCHIVE_RETENTION", 0),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		WatchVideos:   getSliceEnv("WATCH_VIDEOS", nil),
		WatchKeyword:  getEnv("WATCH_KEYWORD", ""),
		WatchSchedule: getEnv("WATCH_SCHEDULE", "0 0 9 * * *"),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks value ranges and cross-field requirements
func (c *Config) Validate() error {
	if c.CredentialSource != CredentialsInjected && c.CredentialSource != CredentialsInteractive {
		return fmt.Errorf("CREDENTIAL_SOURCE must be '%s' or '%s'", CredentialsInjected, CredentialsInteractive)
	}

	if c.PageSize < 1 || c.PageSize > MaxPageSize {
		return fmt.Errorf("PAGE_SIZE must be between 1 and %d", MaxPageSize)
	}

	if c.OutputFile == "" {
		return fmt.Errorf("OUTPUT_FILE must not be empty")
	}

	switch c.SentimentBackend {
	case "vader", "lexicon", "ollama":
	default:
		return fmt.Errorf("SENTIMENT_BACKEND must be 'vader', 'lexicon' or 'ollama'")
	}

	switch c.StorageBackend {
	case "none", "local":
	case "azure":
		if c.StorageAccount == "" {
			return fmt.Errorf("AZURE_STORAGE_ACCOUNT is required when STORAGE_BACKEND is 'azure'")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be 'none', 'local' or 'azure'")
	}

	if c.ArchiveRetention < 0 {
		return fmt.Errorf("ARCHIVE_RETENTION must not be negative")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return defaultValue
}
