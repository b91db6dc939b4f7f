package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mikey/llm-triage/internal/core"
	"go.uber.org/zap"
)

// SubmitRequest is the inbound payload of POST /submit-message
type SubmitRequest struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Message string `json:"message"`
}

type submitResponse struct {
	Success       bool                      `json:"success"`
	CurrentResult core.ClassificationResult `json:"current_result"`
	History       []core.HistoryEntry       `json:"history"`
	AIResponse    string                    `json:"ai_response"`
	Timestamp     string                    `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleSubmitMessage classifies a patient message and returns the result
// together with the patient's prior history
func (s *Server) handleSubmitMessage(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSubmitRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.validator.ValidateSubmission(req.Name, req.Mobile, req.Message); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.service.Submit(r.Context(), core.SubmissionRequest{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Message: req.Message,
	})
	if err != nil {
		status := http.StatusInternalServerError
		var backendErr *core.BackendError
		if errors.Is(err, core.ErrBackendUnreachable) ||
			errors.Is(err, core.ErrMalformedReply) ||
			errors.As(err, &backendErr) {
			status = http.StatusBadGateway
		}
		s.logger.Error("Submission failed",
			zap.Error(err),
			zap.String("mobile", req.Mobile),
			zap.Int("status", status))
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, submitResponse{
		Success:       true,
		CurrentResult: result.CurrentResult,
		History:       result.History,
		AIResponse:    result.RawReply,
		Timestamp:     result.Timestamp,
	})
}

// handleAPIOverview describes the API surface
func (s *Server) handleAPIOverview(w http.ResponseWriter, r *http.Request) {
	categories := make([]string, 0, 4)
	for _, c := range core.Categories() {
		categories = append(categories, string(c))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Medical Message Classification API",
		"version":     "v1.0.0",
		"description": "AI-powered medical message triage",
		"endpoints": map[string]string{
			"submit_message": "/submit-message (POST)",
			"api_overview":   "/api (GET)",
			"health":         "/healthz (GET)",
		},
		"categories": categories,
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decodeSubmitRequest accepts either a JSON body or form-encoded fields
func decodeSubmitRequest(r *http.Request) (*SubmitRequest, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req SubmitRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &SubmitRequest{
		Name:    r.FormValue("name"),
		Mobile:  r.FormValue("mobile"),
		Message: r.FormValue("message"),
	}, nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Success: false, Error: message})
}
