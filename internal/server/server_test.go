package server

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mohammad-safakhou/webchat/engine"
	"github.com/mohammad-safakhou/webchat/models"
	"github.com/mohammad-safakhou/webchat/session/inmemory"
	"github.com/mohammad-safakhou/webchat/tools/intent"
	"github.com/mohammad-safakhou/webchat/tools/synthesis"
	fetchmodels "github.com/mohammad-safakhou/webchat/tools/web_fetch/models"
	searchmodels "github.com/mohammad-safakhou/webchat/tools/web_search/models"
)

type canned struct{ reply string }

func (c canned) Complete(ctx context.Context, system, user string) (string, error) {
	return c.reply, nil
}

type noSearch struct{}

func (noSearch) Discover(ctx context.Context, q string, k int) ([]searchmodels.Result, error) {
	return nil, nil
}

type noFetch struct{}

func (noFetch) Exec(ctx context.Context, url string) (fetchmodels.Result, error) {
	return fetchmodels.Result{}, &fetchmodels.FetchError{URL: url, Status: 404}
}

func testEngine() *engine.Engine {
	quiet := log.New(io.Discard, "", 0)
	return engine.New(engine.Params{
		Classifier:  intent.NewClassifier(canned{reply: "NORMAL_CHAT"}, quiet),
		Searcher:    noSearch{},
		Fetcher:     noFetch{},
		Synthesizer: synthesis.NewSynthesizer(canned{reply: "hello back"}, 5000, "", quiet),
		Sessions:    inmemory.NewInMemorySessionStore(),
		Logger:      quiet,
	})
}

func TestChat(t *testing.T) {
	e := NewEcho(testEngine())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("expected a session id in the response")
	}
	if resp.Turn.Text != "hello back" {
		t.Errorf("turn text = %q", resp.Turn.Text)
	}
	if resp.Turn.Role != models.RoleAssistant {
		t.Errorf("turn role = %q", resp.Turn.Role)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	e := NewEcho(testEngine())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"   "}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestChat_ThenHistory(t *testing.T) {
	e := NewEcho(testEngine())

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("chat status = %d", rec.Code)
	}
	var resp ChatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history/"+resp.SessionID, nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("history status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var turns []models.ConversationTurn
	if err := json.Unmarshal(rec.Body.Bytes(), &turns); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(turns) != 2 {
		t.Errorf("got %d turns, want user + assistant", len(turns))
	}
}

func TestHistory_UnknownSession(t *testing.T) {
	e := NewEcho(testEngine())

	req := httptest.NewRequest(http.MethodGet, "/api/history/unknown", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	e := NewEcho(testEngine())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}
