// Package server exposes the question-answering service over HTTP for the
// browser extension.
package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"quicktube/internal/domain"
)

// New builds the echo instance with middleware, routes, and the unified
// error handler.
func New(api API, allowOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	logger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = errorHandler(logger)

	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"message":   "QuickTube AI Analyzer API",
			"version":   "1.0.0",
			"endpoints": []string{"/api/transcript", "/api/summarize", "/api/ask"},
		})
	})
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	h := &Handler{API: api}
	h.Register(e.Group("/api"))
	return e
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Kind    string `json:"kind"`
}

// errorHandler maps the domain taxonomy to status codes and stable
// classifications. Internal detail never reaches the client.
func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		status, kind := classify(err)
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			kind = "bad_request"
			msg = http.StatusText(he.Code)
		}
		if kind == "internal" {
			msg = "internal error"
		}
		req := c.Request()
		logger.Printf("%d %s %s from %s: %v", status, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(status, errorResponse{Success: false, Error: msg, Kind: kind})
		}
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "bad_input"
	case errors.Is(err, domain.ErrTranscriptUnavailable):
		return http.StatusNotFound, "transcript_unavailable"
	case errors.Is(err, domain.ErrConfiguration):
		return http.StatusInternalServerError, "configuration"
	case errors.Is(err, domain.ErrChainNotReady):
		return http.StatusConflict, "not_ready"
	case errors.Is(err, domain.ErrIndexBuildFailed), errors.Is(err, domain.ErrGenerationFailed):
		return http.StatusBadGateway, "upstream"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
