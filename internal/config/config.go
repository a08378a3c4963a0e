package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the content engine.
type Config struct {
	// Server settings
	Port string `json:"port"`
	Host string `json:"host"`

	// Text-generation API settings
	GenAPIKey     string        `json:"-"` // Don't expose in JSON
	GenModel      string        `json:"gen_model"`
	GenTimeout    time.Duration `json:"gen_timeout"`
	GenAttempts   int           `json:"gen_attempts"`
	GenRetryDelay time.Duration `json:"gen_retry_delay"`

	// Console auth
	AuthToken string `json:"-"` // Don't expose in JSON

	// Slack settings
	SlackBotToken string `json:"-"` // Don't expose in JSON
	SlackChannel  string `json:"slack_channel"`

	// GitHub publication settings
	GitHubToken  string `json:"-"` // Don't expose in JSON
	GitHubOwner  string `json:"github_owner"`
	GitHubRepo   string `json:"github_repo"`
	GitHubBranch string `json:"github_branch"`

	// Article store settings
	StoreBackend string `json:"store_backend"` // file | gcs | postgres
	ContentDir   string `json:"content_dir"`
	GCSBucket    string `json:"gcs_bucket"`
	PostgresDSN  string `json:"-"` // Don't expose in JSON

	// Editorial configuration loaded from JSON files
	Settings Settings            `json:"settings"`
	Topics   []Topic             `json:"topics"`
	Keywords map[string][]string `json:"keywords"`
}

// Settings are the editorial knobs loaded from settings.json.
type Settings struct {
	AutoApproveThreshold   int      `json:"autoApproveThreshold"`
	MinWordCount           int      `json:"minWordCount"`
	TargetWordCount        int      `json:"targetWordCount"`
	ArchiveAfterDays       int      `json:"archiveAfterDays"`
	HighPriorityCategories []string `json:"highPriorityCategories"`
	HomepageArticleCount   int      `json:"homepageArticleCount"`
	ListingArticleCount    int      `json:"listingArticleCount"`
	DailyArticleCount      int      `json:"dailyArticleCount"`
	GenerateSchedule       string   `json:"generateSchedule"`
	PublishSweepSchedule   string   `json:"publishSweepSchedule"`
	ArchiveSweepSchedule   string   `json:"archiveSweepSchedule"`
	SiteName               string   `json:"siteName"`
	BaseURL                string   `json:"baseUrl"`
}

// Topic is one entry of the configured topic list.
type Topic struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Priority string   `json:"priority"` // high | medium | low
	Keywords []string `json:"keywords"`
}

// Load reads configuration from environment variables, an optional .env
// file, and the JSON config files in CONFIG_DIR. Missing or malformed
// config files are a fatal startup error.
func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	config := &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		Host:          getEnvOrDefault("HOST", "0.0.0.0"),
		GenAPIKey:     getEnvOrDefault("GEN_API_KEY", ""),
		GenModel:      getEnvOrDefault("GEN_MODEL", "gemini-2.0-flash"),
		GenTimeout:    time.Duration(getEnvOrDefaultInt("GEN_TIMEOUT_SECONDS", 60)) * time.Second,
		GenAttempts:   getEnvOrDefaultInt("GEN_ATTEMPTS", 3),
		GenRetryDelay: time.Duration(getEnvOrDefaultInt("GEN_RETRY_DELAY_SECONDS", 5)) * time.Second,
		AuthToken:     getEnvOrDefault("CONSOLE_AUTH_TOKEN", ""),
		SlackBotToken: getEnvOrDefault("SLACK_BOT_TOKEN", ""),
		SlackChannel:  getEnvOrDefault("SLACK_CHANNEL", "#content-review"),
		GitHubToken:   getEnvOrDefault("GITHUB_TOKEN", ""),
		GitHubOwner:   getEnvOrDefault("GITHUB_OWNER", ""),
		GitHubRepo:    getEnvOrDefault("GITHUB_REPO", ""),
		GitHubBranch:  getEnvOrDefault("GITHUB_BRANCH", "main"),
		StoreBackend:  getEnvOrDefault("STORE_BACKEND", "file"),
		ContentDir:    getEnvOrDefault("CONTENT_DIR", "content"),
		GCSBucket:     getEnvOrDefault("GCS_BUCKET", "smartfinancehub-articles"),
		PostgresDSN:   getEnvOrDefault("POSTGRES_DSN", ""),
	}

	configDir := getEnvOrDefault("CONFIG_DIR", "config")
	if err := config.loadEditorialFiles(configDir); err != nil {
		return nil, err
	}

	return config, config.validate()
}

// loadEditorialFiles reads settings.json, topics.json and keywords.json.
func (c *Config) loadEditorialFiles(dir string) error {
	if err := readJSONFile(filepath.Join(dir, "settings.json"), &c.Settings); err != nil {
		return err
	}
	if err := readJSONFile(filepath.Join(dir, "topics.json"), &c.Topics); err != nil {
		return err
	}
	if err := readJSONFile(filepath.Join(dir, "keywords.json"), &c.Keywords); err != nil {
		return err
	}
	c.applySettingsDefaults()
	return nil
}

func (c *Config) applySettingsDefaults() {
	if c.Settings.TargetWordCount == 0 {
		c.Settings.TargetWordCount = 2000
	}
	if c.Settings.MinWordCount == 0 {
		c.Settings.MinWordCount = 800
	}
	if c.Settings.AutoApproveThreshold == 0 {
		c.Settings.AutoApproveThreshold = 70
	}
	if c.Settings.ArchiveAfterDays == 0 {
		c.Settings.ArchiveAfterDays = 365
	}
	if c.Settings.HomepageArticleCount == 0 {
		c.Settings.HomepageArticleCount = 12
	}
	if c.Settings.ListingArticleCount == 0 {
		c.Settings.ListingArticleCount = 50
	}
	if c.Settings.DailyArticleCount == 0 {
		c.Settings.DailyArticleCount = 2
	}
	if c.Settings.GenerateSchedule == "" {
		c.Settings.GenerateSchedule = "0 6 * * *"
	}
	if c.Settings.PublishSweepSchedule == "" {
		c.Settings.PublishSweepSchedule = "*/15 * * * *"
	}
	if c.Settings.ArchiveSweepSchedule == "" {
		c.Settings.ArchiveSweepSchedule = "0 3 * * 0"
	}
	if c.Settings.SiteName == "" {
		c.Settings.SiteName = "Smart Finance Hub"
	}
	if c.Settings.BaseURL == "" {
		c.Settings.BaseURL = "https://smartfinancehub.com"
	}
}

func readJSONFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: path, Message: fmt.Sprintf("reading config file: %v", err)}
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return &ConfigError{Field: path, Message: fmt.Sprintf("parsing config file: %v", err)}
	}
	return nil
}

// validate checks if required configuration values are present.
func (c *Config) validate() error {
	if c.GenAPIKey == "" {
		return &ConfigError{Field: "GEN_API_KEY", Message: "text-generation API key is required"}
	}
	if len(c.Topics) == 0 {
		return &ConfigError{Field: "topics.json", Message: "at least one topic is required"}
	}
	switch c.StoreBackend {
	case "file", "gcs", "postgres":
	default:
		return &ConfigError{Field: "STORE_BACKEND", Message: "must be one of file, gcs, postgres"}
	}
	if c.StoreBackend == "postgres" && c.PostgresDSN == "" {
		return &ConfigError{Field: "POSTGRES_DSN", Message: "required when STORE_BACKEND=postgres"}
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default if not set
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
