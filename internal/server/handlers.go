package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"quicktube/internal/service"
)

// API is the service surface the transport layer depends on.
type API interface {
	GetTranscript(ctx context.Context, videoURL string) (service.TranscriptResult, error)
	Summarize(ctx context.Context, videoURL, style string) (service.SummaryResult, error)
	Ask(ctx context.Context, videoURL, question string) (service.AnswerResult, error)
}

// Handler wires the three API routes.
type Handler struct {
	API API
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/transcript", h.transcript)
	g.POST("/summarize", h.summarize)
	g.POST("/ask", h.ask)
}

type videoURLRequest struct {
	VideoURL string `json:"video_url"`
}

type summaryRequest struct {
	VideoURL string `json:"video_url"`
	Style    string `json:"style"`
}

type questionRequest struct {
	VideoURL string `json:"video_url"`
	Question string `json:"question"`
}

type transcriptResponse struct {
	VideoID    string `json:"video_id"`
	Transcript string `json:"transcript"`
	Success    bool   `json:"success"`
}

type summaryResponse struct {
	VideoID string `json:"video_id"`
	Summary string `json:"summary"`
	Style   string `json:"style"`
	Success bool   `json:"success"`
}

type answerResponse struct {
	VideoID  string `json:"video_id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Success  bool   `json:"success"`
}

func (h *Handler) transcript(c echo.Context) error {
	var req videoURLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.API.GetTranscript(c.Request().Context(), req.VideoURL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transcriptResponse{VideoID: res.ID, Transcript: res.Transcript, Success: true})
}

func (h *Handler) summarize(c echo.Context) error {
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.API.Summarize(c.Request().Context(), req.VideoURL, req.Style)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{VideoID: res.ID, Summary: res.Summary, Style: string(res.Style), Success: true})
}

func (h *Handler) ask(c echo.Context) error {
	var req questionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	res, err := h.API.Ask(c.Request().Context(), req.VideoURL, req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answerResponse{VideoID: res.ID, Question: res.Question, Answer: res.Answer, Success: true})
}
