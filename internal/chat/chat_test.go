package chat_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/huangsam/secpulse/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComplete tests the upstream completion call and its failure modes.
func TestComplete(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), "how do I reduce alert fatigue")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"completion": "Start by tuning your noisiest detection rules.",
				"success":    true,
			})
		}))
		defer upstream.Close()

		completion, ok := chat.NewClient(upstream.URL).Complete("how do I reduce alert fatigue")
		assert.True(t, ok)
		assert.Equal(t, "Start by tuning your noisiest detection rules.", completion)
	})

	t.Run("empty upstream falls back", func(t *testing.T) {
		completion, ok := chat.NewClient("").Complete("hello")
		assert.False(t, ok)
		assert.Equal(t, chat.FallbackMessage, completion)
	})

	t.Run("non-200 falls back", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer upstream.Close()

		completion, ok := chat.NewClient(upstream.URL).Complete("hello")
		assert.False(t, ok)
		assert.Equal(t, chat.FallbackMessage, completion)
	})

	t.Run("malformed body falls back", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer upstream.Close()

		completion, ok := chat.NewClient(upstream.URL).Complete("hello")
		assert.False(t, ok)
		assert.Equal(t, chat.FallbackMessage, completion)
	})

	t.Run("upstream success=false falls back", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"completion": "", "success": false})
		}))
		defer upstream.Close()

		completion, ok := chat.NewClient(upstream.URL).Complete("hello")
		assert.False(t, ok)
		assert.Equal(t, chat.FallbackMessage, completion)
	})

	t.Run("unreachable upstream falls back", func(t *testing.T) {
		completion, ok := chat.NewClient("http://127.0.0.1:1/chat").Complete("hello")
		assert.False(t, ok)
		assert.Equal(t, chat.FallbackMessage, completion)
	})
}
