package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/internal/histstore"
	"github.com/huangsam/secpulse/internal/httpapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubChat satisfies contract.ChatClient without a network dependency.
type stubChat struct {
	completion string
	ok         bool
}

func (s stubChat) Complete(string) (string, bool) { return s.completion, s.ok }

func newTestServer(chat stubChat) (http.Handler, *core.MetricsRegistry) {
	registry := core.NewMetricsRegistry()
	return httpapi.NewServer(registry, &histstore.NoopStore{}, chat, ""), registry
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// TestEvaluateCalc tests the batch evaluation endpoint.
func TestEvaluateCalc(t *testing.T) {
	h, registry := newTestServer(stubChat{})

	t.Run("valid evaluation", func(t *testing.T) {
		w := postJSON(t, h, "/api/evaluateCalc", map[string]any{
			"calculators": map[string]map[string]string{
				"coverage": {
					"totalEndpoints": "100", "monitoredEndpoints": "95", "edrDeployed": "90",
					"patchCompliance": "92", "mfaCoverage": "88",
				},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Metrics map[string]struct {
				Values map[string]float64 `json:"values"`
			} `json:"metrics"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.InDelta(t, 91.7, resp.Metrics["coverage"].Values["composite"], 1e-9)

		// The registry keeps the latest snapshot per calculator.
		assert.Equal(t, []string{"coverage"}, registry.Names())
	})

	t.Run("omitted optional field falls back to its default", func(t *testing.T) {
		w := postJSON(t, h, "/api/evaluateCalc", map[string]any{
			"calculators": map[string]map[string]string{
				"alerts": {
					"totalAlerts": "100", "truePositives": "40", "falsePositives": "10",
					"escalated": "20",
				},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Metrics map[string]struct {
				Values map[string]float64 `json:"values"`
			} `json:"metrics"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		// avgTriageMinutes defaults to its 30-minute baseline.
		assert.InDelta(t, 56, resp.Metrics["alerts"].Values["composite"], 1e-9)
	})

	t.Run("validation failure returns 400 with first violation", func(t *testing.T) {
		w := postJSON(t, h, "/api/evaluateCalc", map[string]any{
			"calculators": map[string]map[string]string{
				"coverage": {
					"totalEndpoints": "100", "monitoredEndpoints": "150", "edrDeployed": "90",
					"patchCompliance": "92", "mfaCoverage": "88",
				},
			},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Contains(t, resp.Error, "Monitored endpoints cannot exceed total endpoints")
	})

	t.Run("unknown calculator", func(t *testing.T) {
		w := postJSON(t, h, "/api/evaluateCalc", map[string]any{
			"calculators": map[string]map[string]string{"bogus": {}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		w := postJSON(t, h, "/api/evaluateCalc", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects GET", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/evaluateCalc", nil)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

// TestSendEmail tests the contact form relay.
func TestSendEmail(t *testing.T) {
	h, _ := newTestServer(stubChat{})

	t.Run("accepted without upstream", func(t *testing.T) {
		w := postJSON(t, h, "/api/sendEmail", map[string]string{
			"name": "Sam", "email": "sam@example.com", "thought": "nice tool",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
	})

	t.Run("email required", func(t *testing.T) {
		w := postJSON(t, h, "/api/sendEmail", map[string]string{"name": "Sam"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("upstream failure reported as success=false", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer upstream.Close()

		registry := core.NewMetricsRegistry()
		relay := httpapi.NewServer(registry, &histstore.NoopStore{}, stubChat{}, upstream.URL)

		w := postJSON(t, relay, "/api/sendEmail", map[string]string{"email": "sam@example.com"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	})
}

// TestChatCompletion tests that upstream failure never surfaces as an HTTP error.
func TestChatCompletion(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		h, _ := newTestServer(stubChat{completion: "Here is some advice.", ok: true})
		w := postJSON(t, h, "/api/chatCompletion", map[string]string{"message": "help"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Completion string `json:"completion"`
			Success    bool   `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Here is some advice.", resp.Completion)
	})

	t.Run("fallback stays 200", func(t *testing.T) {
		h, _ := newTestServer(stubChat{completion: "fallback text", ok: false})
		w := postJSON(t, h, "/api/chatCompletion", map[string]string{"message": "help"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Completion string `json:"completion"`
			Success    bool   `json:"success"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "fallback text", resp.Completion)
	})

	t.Run("message required", func(t *testing.T) {
		h, _ := newTestServer(stubChat{})
		w := postJSON(t, h, "/api/chatCompletion", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
