package engine

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/mohammad-safakhou/webchat/models"
	"github.com/mohammad-safakhou/webchat/session"
	"github.com/mohammad-safakhou/webchat/telemetry"
	"github.com/mohammad-safakhou/webchat/tools/intent"
	"github.com/mohammad-safakhou/webchat/tools/synthesis"
	"github.com/mohammad-safakhou/webchat/tools/web_fetch"
	fetchmodels "github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
	"github.com/mohammad-safakhou/webchat/tools/web_search"
	searchmodels "github.com/mohammad-safakhou/webchat/tools/web_search/models"
)

// Engine wires the classifier, searcher, fetcher and synthesizer into the
// end-to-end question-answering flow. One turn is processed synchronously at
// a time; scraping walks candidates sequentially so the politeness delay and
// the short-circuit on enough successes stay simple.
type Engine struct {
	classifier  *intent.Classifier
	searcher    web_search.WebSearcher
	fetcher     web_fetch.WebFetcher
	synthesizer *synthesis.Synthesizer
	sessions    session.Store

	maxResults    int
	minScrapes    int
	noSourcesNote string
	sessionTTL    time.Duration

	telemetry *telemetry.Telemetry
	logger    *log.Logger
}

// Params collects the engine's dependencies and tuning knobs.
type Params struct {
	Classifier  *intent.Classifier
	Searcher    web_search.WebSearcher
	Fetcher     web_fetch.WebFetcher
	Synthesizer *synthesis.Synthesizer
	Sessions    session.Store

	MaxResults    int    // candidates requested from the search provider
	MinScrapes    int    // successful scrapes to gather before answering
	NoSourcesNote string // prepended when a search-backed answer has no sources
	SessionTTL    time.Duration

	Telemetry *telemetry.Telemetry
	Logger    *log.Logger
}

func New(p Params) *Engine {
	if p.MaxResults <= 0 {
		p.MaxResults = 7
	}
	if p.MinScrapes <= 0 {
		p.MinScrapes = 3
	}
	if p.NoSourcesNote == "" {
		p.NoSourcesNote = "I couldn't find enough relevant information online for that question, so this answer is not backed by sources."
	}
	if p.SessionTTL <= 0 {
		p.SessionTTL = time.Hour
	}
	if p.Logger == nil {
		p.Logger = log.New(log.Writer(), "[ENGINE] ", log.LstdFlags)
	}
	return &Engine{
		classifier:    p.Classifier,
		searcher:      p.Searcher,
		fetcher:       p.Fetcher,
		synthesizer:   p.Synthesizer,
		sessions:      p.Sessions,
		maxResults:    p.MaxResults,
		minScrapes:    p.MinScrapes,
		noSourcesNote: p.NoSourcesNote,
		sessionTTL:    p.SessionTTL,
		telemetry:     p.Telemetry,
		logger:        p.Logger,
	}
}

// Ask processes one user turn: classify, optionally search and scrape, then
// synthesize. It returns the session id (fresh sessions get a new one) and
// the assistant turn that was appended to the history. An error means the
// synthesis step itself failed unrecoverably and nothing was appended.
func (e *Engine) Ask(ctx context.Context, sessionID, query string) (string, models.ConversationTurn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", models.ConversationTurn{}, errors.New("empty query")
	}

	sess, err := e.sessions.EnsureSession(sessionID, e.sessionTTL)
	if err != nil {
		return "", models.ConversationTurn{}, err
	}

	start := time.Now()
	label, err := e.classifier.Classify(ctx, query)
	if err != nil {
		return "", models.ConversationTurn{}, err
	}

	var docs []fetchmodels.Result
	if label == intent.IntentSearchRequired {
		docs = e.gatherContext(ctx, query)
	}

	answer, fallback, err := e.synthesizer.Synthesize(ctx, query, docs)
	if err != nil {
		return "", models.ConversationTurn{}, err
	}
	if fallback {
		// The apology is not grounded in anything, so the scraped pages must
		// not be attributed to it.
		docs = nil
		if e.telemetry != nil {
			e.telemetry.RecordSynthesisFallback()
		}
	} else if label == intent.IntentSearchRequired && len(docs) == 0 {
		answer = e.noSourcesNote + "\n\n" + answer
	}

	var sources []string
	for _, d := range docs {
		sources = append(sources, d.URL)
	}

	now := time.Now()
	turn := models.ConversationTurn{Role: models.RoleAssistant, Text: answer, Sources: sources, CreatedAt: now}
	if err := sess.Append(models.ConversationTurn{Role: models.RoleUser, Text: query, CreatedAt: now}); err != nil {
		return "", models.ConversationTurn{}, err
	}
	if err := sess.Append(turn); err != nil {
		return "", models.ConversationTurn{}, err
	}

	if e.telemetry != nil {
		e.telemetry.RecordTurn(label.String(), time.Since(start))
	}
	return sess.ID(), turn, nil
}

// History returns the full turn sequence for a session.
func (e *Engine) History(sessionID string) ([]models.ConversationTurn, error) {
	sess, err := e.sessions.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, models.ErrSessionNotFound
	}
	return sess.Turns(), nil
}

// gatherContext searches for candidates and scrapes them in rank order until
// minScrapes pages succeeded or the candidates run out. Failed candidates are
// skipped silently from the user's perspective; search errors degrade to zero
// results rather than failing the turn.
func (e *Engine) gatherContext(ctx context.Context, query string) []fetchmodels.Result {
	results, err := e.searcher.Discover(ctx, query, e.maxResults)
	if e.telemetry != nil {
		e.telemetry.RecordSearch(err, len(results))
	}
	if err != nil {
		e.logger.Printf("search failed, answering without sources: %v", err)
		return nil
	}
	return e.scrapeCandidates(ctx, results)
}

func (e *Engine) scrapeCandidates(ctx context.Context, results []searchmodels.Result) []fetchmodels.Result {
	var docs []fetchmodels.Result
	for _, r := range results {
		if len(docs) >= e.minScrapes {
			break
		}
		if ctx.Err() != nil {
			break
		}
		doc, err := e.fetcher.Exec(ctx, r.URL)
		if e.telemetry != nil {
			e.telemetry.RecordFetch(err)
		}
		if err != nil {
			e.logger.Printf("skipping candidate %s: %v", r.URL, err)
			continue
		}
		if strings.TrimSpace(doc.Text) == "" {
			e.logger.Printf("skipping candidate %s: no extractable text", r.URL)
			continue
		}
		docs = append(docs, doc)
	}
	return docs
}
