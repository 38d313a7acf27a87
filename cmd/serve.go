package cmd

import (
	"fmt"
	"net/http"

	"github.com/huangsam/secpulse/core"
	"github.com/huangsam/secpulse/internal/chat"
	"github.com/huangsam/secpulse/internal/contract"
	"github.com/huangsam/secpulse/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd starts the JSON HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SecPulse HTTP API",
	Long: `Launch the JSON HTTP API used by web frontends.

Endpoints:
  POST /api/evaluateCalc    - validate and evaluate calculator inputs
  POST /api/sendEmail       - relay the contact form to an upstream
  POST /api/chatCompletion  - proxy chat messages to a completion service

Evaluations are recorded in the shared metrics registry and, when a
history backend is configured, persisted for later listing and export.

Examples:
  # Listen on the default address
  secpulse serve

  # Custom address with chat proxying enabled
  secpulse serve --addr :9000 --chat-upstream https://chat.internal/complete`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		registry := core.NewMetricsRegistry()
		chatClient := chat.NewClient(cfg.ChatUpstream)
		handler := httpapi.NewServer(registry, historyStore, chatClient, cfg.EmailUpstream)

		fmt.Printf("🚀 Listening on %s\n", cfg.ServeAddr)
		if err := http.ListenAndServe(cfg.ServeAddr, handler); err != nil {
			contract.LogFatal("HTTP server stopped", err)
		}
		return nil
	},
}
