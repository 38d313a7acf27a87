// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/secpulse/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the SecPulse MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore) *server.MCPServer {
	s := server.NewMCPServer(
		"SecPulse Scoring Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: evaluate_calculator ---
	s.AddTool(mcp.NewTool("evaluate_calculator",
		mcp.WithDescription("Validate raw field inputs for a SecOps calculator and compute its derived metrics, statuses and recommendations."),
		mcp.WithString("calculator", mcp.Description("Calculator name (alerts, incidents, coverage, cost)."), mcp.Required(), mcp.Enum("alerts", "incidents", "coverage", "cost")),
		mcp.WithString("inputs", mcp.Description("JSON object mapping field keys to raw string values. Blank fields fall back to their defaults."), mcp.Required()),
	), h.handleEvaluateCalculator)

	// --- 2. Tool: score_assessment ---
	s.AddTool(mcp.NewTool("score_assessment",
		mcp.WithDescription("Score a questionnaire assessment from selected answers and classify the overall rank."),
		mcp.WithString("assessment", mcp.Description("Assessment title (e.g. 'Security Posture')."), mcp.Required()),
		mcp.WithString("answers", mcp.Description("JSON object mapping category names to arrays of answer values (yes, partial, no), one per question in order."), mcp.Required()),
	), h.handleScoreAssessment)

	// --- 3. Tool: list_catalog ---
	s.AddTool(mcp.NewTool("list_catalog",
		mcp.WithDescription("List the available calculators and assessments with their steps, fields and categories."),
	), h.handleListCatalog)

	// --- 4. Tool: classify_rank ---
	s.AddTool(mcp.NewTool("classify_rank",
		mcp.WithDescription("Classify an earned score against a maximum into a letter rank from S down to F."),
		mcp.WithNumber("earned", mcp.Description("Points earned."), mcp.Required()),
		mcp.WithNumber("max", mcp.Description("Maximum possible points."), mcp.Required()),
	), h.handleClassifyRank)

	return s
}

// StartMCPServer starts the SecPulse MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
