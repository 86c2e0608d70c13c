package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mohammad-safakhou/webchat/config"
	"github.com/mohammad-safakhou/webchat/engine"
	"github.com/mohammad-safakhou/webchat/internal/server"
	"github.com/mohammad-safakhou/webchat/provider"
	"github.com/mohammad-safakhou/webchat/session"
	"github.com/mohammad-safakhou/webchat/session/inmemory"
	redis_session "github.com/mohammad-safakhou/webchat/session/redis"
	"github.com/mohammad-safakhou/webchat/telemetry"
	"github.com/mohammad-safakhou/webchat/tools/intent"
	"github.com/mohammad-safakhou/webchat/tools/synthesis"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch"
	"github.com/mohammad-safakhou/webchat/tools/web_search"
)

func serveCMD() *cobra.Command {
	var configPath string
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the webchat HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load() // .env is optional, real env wins
			cfg := config.LoadConfig(configPath)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration error: %w", err)
			}
			if addr == "" {
				addr = cfg.Server.Address
			}
			return runServe(cfg, addr)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", getenv("WEBCHAT_CONFIG", ""), "path to config file")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(cfg *config.Config, addr string) error {
	prov, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), cfg.LLM)
	if err != nil {
		return fmt.Errorf("llm provider: %w", err)
	}

	searcher, err := web_search.NewWebSearcher(web_search.Provider(cfg.Search.Provider), cfg.Search.APIKey, cfg.Search.EngineID)
	if err != nil {
		return fmt.Errorf("search provider: %w", err)
	}

	fetcher, err := web_fetch.NewWebFetcher(web_fetch.FetcherType(cfg.Fetch.Type), web_fetch.Options{
		Timeout:  cfg.Fetch.Timeout,
		MaxChars: cfg.Fetch.MaxChars,
		MinDelay: cfg.Fetch.MinDelay,
		MaxDelay: cfg.Fetch.MaxDelay,
	})
	if err != nil {
		return fmt.Errorf("fetcher: %w", err)
	}

	var store session.Store
	switch session.StoreType(cfg.Session.Store) {
	case session.RedisStore:
		store = redis_session.NewRedisSessionStore(
			cfg.Session.Redis.Host+":"+cfg.Session.Redis.Port,
			cfg.Session.Redis.Password,
			cfg.Session.Redis.DB,
		)
	case session.InMemoryStore:
		store = inmemory.NewInMemorySessionStore()
	default:
		return fmt.Errorf("unsupported session store: %s", cfg.Session.Store)
	}

	tele := telemetry.NewTelemetry(cfg.Telemetry)
	classifier := intent.NewClassifier(prov, log.New(log.Writer(), "[INTENT] ", log.LstdFlags))
	synth := synthesis.NewSynthesizer(prov, cfg.Chat.MaxContextChars, cfg.Chat.Apology, log.New(log.Writer(), "[SYNTH] ", log.LstdFlags))

	eng := engine.New(engine.Params{
		Classifier:    classifier,
		Searcher:      searcher,
		Fetcher:       fetcher,
		Synthesizer:   synth,
		Sessions:      store,
		MaxResults:    cfg.Search.MaxResults,
		MinScrapes:    cfg.Chat.MinScrapes,
		NoSourcesNote: cfg.Chat.NoSourcesNote,
		SessionTTL:    cfg.Session.TTL,
		Telemetry:     tele,
	})

	return server.Run(addr, eng)
}
