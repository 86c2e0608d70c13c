package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig(writeConfig(t, `{}`))

	if cfg.Search.MaxResults != 7 {
		t.Errorf("search.max_results = %d, want 7", cfg.Search.MaxResults)
	}
	if cfg.Fetch.MaxChars != 1500 {
		t.Errorf("fetch.max_chars = %d, want 1500", cfg.Fetch.MaxChars)
	}
	if cfg.Chat.MinScrapes != 3 {
		t.Errorf("chat.min_scrapes = %d, want 3", cfg.Chat.MinScrapes)
	}
	if cfg.Chat.MaxContextChars != 5000 {
		t.Errorf("chat.max_context_chars = %d, want 5000", cfg.Chat.MaxContextChars)
	}
	if cfg.Fetch.MinDelay != time.Second || cfg.Fetch.MaxDelay != 3*time.Second {
		t.Errorf("fetch delay window = %v..%v, want 1s..3s", cfg.Fetch.MinDelay, cfg.Fetch.MaxDelay)
	}
	if cfg.LLM.Provider != "gemini" {
		t.Errorf("llm.provider = %q, want gemini", cfg.LLM.Provider)
	}
	if cfg.Session.Store != "inmemory" {
		t.Errorf("session.store = %q, want inmemory", cfg.Session.Store)
	}
}

func TestLoadConfig_FileOverrides(t *testing.T) {
	cfg := LoadConfig(writeConfig(t, `{
		"llm": {"provider": "openai", "api_key": "sk-test"},
		"search": {"provider": "serper", "api_key": "sp-test", "max_results": 5},
		"chat": {"min_scrapes": 2}
	}`))

	if cfg.LLM.Provider != "openai" || cfg.LLM.APIKey != "sk-test" {
		t.Errorf("llm = %+v", cfg.LLM)
	}
	if cfg.Search.Provider != "serper" || cfg.Search.MaxResults != 5 {
		t.Errorf("search = %+v", cfg.Search)
	}
	if cfg.Chat.MinScrapes != 2 {
		t.Errorf("chat.min_scrapes = %d, want 2", cfg.Chat.MinScrapes)
	}
}

func TestValidate(t *testing.T) {
	cfg := LoadConfig(writeConfig(t, `{}`))
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation failure without credentials")
	}

	cfg.LLM.APIKey = "key"
	cfg.Search.APIKey = "key"
	if err := cfg.Validate(); err == nil {
		t.Error("google provider without engine id must fail validation")
	}

	cfg.Search.EngineID = "cx"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	cfg.Search.MaxResults = 0
	if err := cfg.Validate(); err == nil {
		t.Error("max_results of 0 must fail validation")
	}
	cfg.Search.MaxResults = 7

	cfg.Session.Store = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("redis store without host must fail validation")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
