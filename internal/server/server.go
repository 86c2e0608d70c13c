package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/webchat/engine"
	"github.com/mohammad-safakhou/webchat/models"
)

// Server exposes the chat engine over a small JSON API. It is the caller
// boundary: rendering and multi-user concerns live outside this process.
type Server struct {
	Engine *engine.Engine
	Logger *log.Logger
}

// NewEcho builds the echo instance with all routes registered. Split from
// Run so tests can drive the handlers through httptest.
func NewEcho(eng *engine.Engine) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	s := &Server{Engine: eng, Logger: baseLogger}
	api := e.Group("/api")
	api.POST("/chat", s.Chat)
	api.GET("/history/:session_id", s.History)
	return e
}

// Run starts serving on addr and blocks.
func Run(addr string, eng *engine.Engine) error {
	e := NewEcho(eng)
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type ChatResponse struct {
	SessionID string                  `json:"session_id"`
	Turn      models.ConversationTurn `json:"turn"`
}

func (s *Server) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}
	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	sessionID, turn, err := s.Engine.Ask(c.Request().Context(), req.SessionID, req.Message)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to process message", "details": err.Error()})
	}
	return c.JSON(http.StatusOK, ChatResponse{SessionID: sessionID, Turn: turn})
}

func (s *Server) History(c echo.Context) error {
	turns, err := s.Engine.History(c.Param("session_id"))
	if err != nil {
		if errors.Is(err, models.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load history", "details": err.Error()})
	}
	return c.JSON(http.StatusOK, turns)
}
