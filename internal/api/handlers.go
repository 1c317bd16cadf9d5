package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"ytsummarizer/internal/app"
	"ytsummarizer/internal/transcript"
)

type summarizeRequest struct {
	VideoURL string `json:"videoUrl" validate:"required"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": serviceName,
	})
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		slog.Debug("Invalid summarize request body", "error", err)
		writeError(w, transcript.CodeInvalidInput)
		return
	}

	req.VideoURL = strings.TrimSpace(req.VideoURL)
	if err := s.validate.Struct(req); err != nil {
		writeError(w, transcript.CodeInvalidInput)
		return
	}

	result, err := s.summarizer.Summarize(r.Context(), req.VideoURL)
	if err != nil {
		code := app.ErrorCode(err)
		slog.Error("Summarize failed", "code", code, "video_url", req.VideoURL, "error", err)
		writeError(w, code)
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: result.Summary})
}

func statusFor(code transcript.Code) int {
	if code == transcript.CodeUnavailable {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeError(w http.ResponseWriter, code transcript.Code) {
	writeJSON(w, statusFor(code), errorResponse{Error: app.UserMessage(code)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
