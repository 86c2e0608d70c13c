package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the chat service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Chat      ChatConfig      `mapstructure:"chat"`
	Session   SessionConfig   `mapstructure:"session"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig selects the language-model provider and its credentials
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // gemini, openai
	APIKey          string        `mapstructure:"api_key"`
	ChatModel       string        `mapstructure:"chat_model"`
	ClassifierModel string        `mapstructure:"classifier_model"`
	Temperature     float64       `mapstructure:"temperature"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

func (c LLMConfig) Validate() error {
	if strings.TrimSpace(c.Provider) == "" {
		return errors.New("llm.provider is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required for provider %q", c.Provider)
	}
	return nil
}

// SearchConfig contains web search provider settings
type SearchConfig struct {
	Provider   string `mapstructure:"provider"` // google, brave, serper
	APIKey     string `mapstructure:"api_key"`
	EngineID   string `mapstructure:"engine_id"` // custom search engine id (google only)
	MaxResults int    `mapstructure:"max_results"`
}

func (c SearchConfig) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("search.api_key is required")
	}
	if c.Provider == "google" && strings.TrimSpace(c.EngineID) == "" {
		return errors.New("search.engine_id is required for the google provider")
	}
	if c.MaxResults <= 0 || c.MaxResults > 10 {
		return fmt.Errorf("search.max_results must be in 1..10, got %d", c.MaxResults)
	}
	return nil
}

// FetchConfig contains page scraping settings
type FetchConfig struct {
	Type     string        `mapstructure:"type"` // http, chromedp
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"` // per-page extracted text cap
	MinDelay time.Duration `mapstructure:"min_delay"` // politeness delay bounds
	MaxDelay time.Duration `mapstructure:"max_delay"`
}

func (c FetchConfig) Validate() error {
	if c.MaxChars <= 0 {
		return fmt.Errorf("fetch.max_chars must be > 0, got %d", c.MaxChars)
	}
	if c.MaxDelay < c.MinDelay {
		return errors.New("fetch.max_delay must be >= fetch.min_delay")
	}
	return nil
}

// ChatConfig tunes the question-answering flow
type ChatConfig struct {
	MinScrapes      int    `mapstructure:"min_scrapes"`       // successful scrapes to gather before answering
	MaxContextChars int    `mapstructure:"max_context_chars"` // total grounding text cap
	Apology         string `mapstructure:"apology"`
	NoSourcesNote   string `mapstructure:"no_sources_note"`
}

// SessionConfig contains chat history storage settings
type SessionConfig struct {
	Store string        `mapstructure:"store"` // inmemory, redis
	TTL   time.Duration `mapstructure:"ttl"`
	Redis RedisConfig   `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (c SessionConfig) Validate() error {
	if c.Store != "redis" {
		return nil
	}
	if strings.TrimSpace(c.Redis.Host) == "" {
		return errors.New("session.redis.host required for the redis store")
	}
	if strings.TrimSpace(c.Redis.Port) == "" {
		return errors.New("session.redis.port required for the redis store")
	}
	return nil
}

// TelemetryConfig contains monitoring settings
type TelemetryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Validate checks everything that must hold before the first turn is served.
// Credential problems are startup errors, never per-turn errors.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if err := c.Search.Validate(); err != nil {
		return err
	}
	if err := c.Fetch.Validate(); err != nil {
		return err
	}
	return c.Session.Validate()
}

// LoadConfig loads config from an optional file plus WEBCHAT_* environment
// variables. A missing config file is fine; env-only deployments are common.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.api_key", "")
	viper.SetDefault("llm.chat_model", "gemini-1.5-flash")
	viper.SetDefault("llm.classifier_model", "gemini-1.5-flash")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.max_tokens", 1024)
	viper.SetDefault("llm.timeout", 30*time.Second)
	viper.SetDefault("search.provider", "google")
	viper.SetDefault("search.api_key", "")
	viper.SetDefault("search.engine_id", "")
	viper.SetDefault("search.max_results", 7)
	viper.SetDefault("fetch.type", "http")
	viper.SetDefault("fetch.timeout", 7*time.Second)
	viper.SetDefault("fetch.max_chars", 1500)
	viper.SetDefault("fetch.min_delay", time.Second)
	viper.SetDefault("fetch.max_delay", 3*time.Second)
	viper.SetDefault("chat.min_scrapes", 3)
	viper.SetDefault("chat.max_context_chars", 5000)
	viper.SetDefault("chat.apology", "I'm sorry, I couldn't generate a response at this time.")
	viper.SetDefault("chat.no_sources_note", "I couldn't find enough relevant information online for that question, so this answer is not backed by sources.")
	viper.SetDefault("session.store", "inmemory")
	viper.SetDefault("session.ttl", time.Hour)
	viper.SetDefault("session.redis.host", "")
	viper.SetDefault("session.redis.port", "")
	viper.SetDefault("session.redis.password", "")
	viper.SetDefault("session.redis.db", 0)
	viper.SetDefault("telemetry.enabled", true)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
		exe, _ := os.Executable()
		exeDir := filepath.Dir(exe)
		viper.AddConfigPath(exeDir)
		viper.AddConfigPath(filepath.Join(exeDir, ".."))
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("WEBCHAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // WEBCHAT_LLM_API_KEY, WEBCHAT_SEARCH_ENGINE_ID, ...

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	// Legacy environment names kept for drop-in deployments.
	if config.LLM.APIKey == "" {
		config.LLM.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if config.LLM.APIKey == "" && config.LLM.Provider == "openai" {
		config.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if config.Search.APIKey == "" {
		config.Search.APIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if config.Search.EngineID == "" {
		config.Search.EngineID = os.Getenv("GOOGLE_SEARCH_CX")
	}

	return &config
}
