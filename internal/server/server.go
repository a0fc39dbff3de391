package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"medassist/internal/app"
	"medassist/internal/util"
	"medassist/pkg/domain"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App *app.App
}

// Server exposes the assessment and chat HTTP endpoints.
type Server struct {
	app *app.App
	mux *http.ServeMux
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	s := &Server{
		app: cfg.App,
		mux: http.NewServeMux(),
	}
	s.routes()
	return s
}

// Router returns the configured handler with middleware applied.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog("medassist", s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.HandleFunc("/api/assessments", s.handleAssessments)
	s.mux.HandleFunc("/api/assessments/", s.handleAssessmentByID)
	s.mux.HandleFunc("/api/messages", s.handleMessages)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAssessments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.ListAssessments()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch assessments")
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var input domain.AssessmentInput
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		created, err := s.app.SubmitAssessment(input)
		if err != nil {
			var vErr *app.ValidationError
			if errors.As(err, &vErr) {
				writeError(w, http.StatusBadRequest, vErr.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to create assessment")
			return
		}
		writeJSON(w, http.StatusOK, created)
	default:
		methodNotAllowed(w)
	}
}

// /api/assessments/{id} or /api/assessments/{id}/diagnose
func (s *Server) handleAssessmentByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/assessments/")
	parts := strings.SplitN(path, "/", 2)
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 {
		if parts[1] != "diagnose" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleDiagnose(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	assessment, err := s.app.GetAssessment(id)
	if err != nil {
		if errors.Is(err, app.ErrAssessmentNotFound) {
			writeError(w, http.StatusNotFound, "Assessment not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to fetch assessment")
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request, id int) {
	updated, err := s.app.RequestAnalysis(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrAssessmentNotFound):
			writeError(w, http.StatusNotFound, "Assessment not found")
		case errors.Is(err, app.ErrAINotConfigured):
			writeError(w, http.StatusInternalServerError, "OpenRouter API key not configured")
		default:
			slog.Error("diagnosis failed", "assessment_id", id, "err", err, "request_id", util.RequestIDFromRequest(r))
			writeError(w, http.StatusInternalServerError, "Failed to get AI diagnosis")
		}
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.ListMessages()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to fetch messages")
			return
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var req messageRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		userMessage, assistantMessage, err := s.app.SendMessage(r.Context(), req.Content, req.Role)
		if err != nil {
			var vErr *app.ValidationError
			switch {
			case errors.As(err, &vErr):
				writeError(w, http.StatusBadRequest, vErr.Error())
			case errors.Is(err, app.ErrAINotConfigured):
				writeError(w, http.StatusInternalServerError, "OpenRouter API key not configured")
			default:
				slog.Error("chat message failed", "err", err, "request_id", util.RequestIDFromRequest(r))
				writeError(w, http.StatusInternalServerError, "Failed to process message")
			}
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{
			UserMessage:      userMessage,
			AssistantMessage: assistantMessage,
		})
	default:
		methodNotAllowed(w)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

type messageRequest struct {
	Content string `json:"content"`
	Role    string `json:"role"`
}

type messageResponse struct {
	UserMessage      domain.Message `json:"userMessage"`
	AssistantMessage domain.Message `json:"assistantMessage"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
