// Package chat calls the remote completion service backing the chat widget.
// The upstream is a black box; any failure maps to a fixed apology string so
// transport errors never propagate into callers.
package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/huangsam/secpulse/internal/contract"
)

// FallbackMessage is the fixed apology substituted when the upstream call
// fails for any reason.
const FallbackMessage = "Sorry, I am having trouble responding right now. Please try again in a moment."

// Client calls an upstream completion endpoint.
type Client struct {
	upstream string
	client   *http.Client
}

var _ contract.ChatClient = &Client{} // Compile-time check

// NewClient creates a chat client for the given upstream URL. An empty
// upstream means the service is not configured and every call falls back.
func NewClient(upstream string) *Client {
	return &Client{
		upstream: upstream,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type completionRequest struct {
	Message string `json:"message"`
}

type completionResponse struct {
	Completion string `json:"completion"`
	Success    bool   `json:"success"`
}

// Complete sends the message upstream and returns the completion. On any
// transport or upstream failure it returns the fallback message and false;
// there is no retry and no error to handle.
func (c *Client) Complete(message string) (string, bool) {
	if c.upstream == "" {
		return FallbackMessage, false
	}

	body, err := json.Marshal(completionRequest{Message: message})
	if err != nil {
		return FallbackMessage, false
	}
	resp, err := c.client.Post(c.upstream, "application/json", bytes.NewReader(body))
	if err != nil {
		return FallbackMessage, false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return FallbackMessage, false
	}
	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil || !out.Success {
		return FallbackMessage, false
	}
	return out.Completion, true
}
