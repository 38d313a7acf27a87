// Package httpapi exposes the scoring core over a small JSON HTTP surface:
// calculator evaluation for report generation, the contact form relay and
// the chat completion proxy.
package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/core/catalog"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/schema"
)

// Server handles the three API endpoints. Evaluations feed the shared
// metrics registry and, when enabled, the history store.
type Server struct {
	registry      *core.MetricsRegistry
	store         contract.HistoryStore
	chat          contract.ChatClient
	emailUpstream string
	client        *http.Client
}

// NewServer creates the API handler.
func NewServer(registry *core.MetricsRegistry, store contract.HistoryStore, chatClient contract.ChatClient, emailUpstream string) http.Handler {
	s := &Server{
		registry:      registry,
		store:         store,
		chat:          chatClient,
		emailUpstream: emailUpstream,
		client:        &http.Client{Timeout: 30 * time.Second},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/evaluateCalc", s.handleEvaluateCalc)
	mux.HandleFunc("/api/sendEmail", s.handleSendEmail)
	mux.HandleFunc("/api/chatCompletion", s.handleChatCompletion)
	return mux
}

type evaluateRequest struct {
	// Calculators maps calculator names to their raw field inputs.
	Calculators map[string]schema.RawInputs `json:"calculators"`
}

type evaluateResponse struct {
	Success bool                      `json:"success"`
	Metrics map[string]schema.Metrics `json:"metrics"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// handleEvaluateCalc validates and evaluates every submitted calculator,
// records the results in the registry and history store, and returns the
// combined metrics snapshot. Omitted fields fall back to their defaults
// before validation, matching the CLI; validation failures return 400 with
// the first violation.
func (s *Server) handleEvaluateCalc(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Calculators) == 0 {
		writeError(w, http.StatusBadRequest, "no calculators submitted")
		return
	}

	for name, inputs := range req.Calculators {
		def, ok := catalog.Calculator(name)
		if !ok {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown calculator %q", name))
			return
		}
		core.PrefillDefaults(def, inputs)
		for _, step := range def.Steps {
			if res := core.ValidateStep(step, inputs); !res.OK {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", name, res.First()))
				return
			}
		}
	}

	out := evaluateResponse{Success: true, Metrics: make(map[string]schema.Metrics, len(req.Calculators))}
	for name, inputs := range req.Calculators {
		def, _ := catalog.Calculator(name)
		m := core.Evaluate(def, inputs)
		s.registry.Record(name, m)
		out.Metrics[name] = m
		if _, err := s.store.RecordEvaluation(schema.EvaluationRecord{
			Calculator: name,
			Composite:  m.Values[catalog.MetricComposite],
			Status:     m.Labels[catalog.MetricComposite],
			Values:     m.Values,
		}); err != nil {
			// History is best-effort; the evaluation result still stands.
			contract.LogWarning(fmt.Sprintf("failed to record evaluation for %s: %v", name, err))
		}
	}
	writeResult(w, http.StatusOK, out)
}

type emailRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Thought string `json:"thought"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// handleSendEmail relays the contact form to the configured upstream. When
// no upstream is configured the form is accepted and discarded.
func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if s.emailUpstream != "" {
		body, _ := json.Marshal(req)
		resp, err := s.client.Post(s.emailUpstream, "application/json", bytes.NewReader(body))
		if err != nil {
			writeResult(w, http.StatusOK, successResponse{Success: false})
			return
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			writeResult(w, http.StatusOK, successResponse{Success: false})
			return
		}
	}
	writeResult(w, http.StatusOK, successResponse{Success: true})
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Completion string `json:"completion"`
	Success    bool   `json:"success"`
}

// handleChatCompletion proxies the chat widget message to the upstream
// completion service. Upstream failure is never an HTTP error here: the
// response carries the fixed fallback with success=false.
func (s *Server) handleChatCompletion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	completion, ok := s.chat.Complete(req.Message)
	writeResult(w, http.StatusOK, chatResponse{Completion: completion, Success: ok})
}

func writeResult(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeResult(w, status, errorResponse{Success: false, Error: msg})
}
