package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vieraprotocol/subvet/internal/adapters/outbound/clamav"
	configAdapter "github.com/vieraprotocol/subvet/internal/adapters/outbound/config"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/history"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/lint"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/statics"
	"github.com/vieraprotocol/subvet/internal/adapters/outbound/submission"
	"github.com/vieraprotocol/subvet/internal/application"
	"github.com/vieraprotocol/subvet/internal/domain"
)

// registerTools registers all subvet MCP tools on the given server.
func registerTools(s *server.MCPServer, workDir string) {
	// 1. subvet_validate
	s.AddTool(
		mcplib.NewTool("subvet_validate",
			mcplib.WithDescription("Validate a research submission: scans the given files/directories and returns the full report as JSON"),
			mcplib.WithString("paths",
				mcplib.Required(),
				mcplib.Description("Comma-separated file or directory paths relative to the working directory"),
			),
			mcplib.WithString("researcher_type",
				mcplib.Description("Researcher type: coder, researcher or data_scientist (default: coder)"),
			),
		),
		handleValidate(workDir),
	)

	// 2. subvet_code
	s.AddTool(
		mcplib.NewTool("subvet_code",
			mcplib.WithDescription("Validate a single source snippet and return confidence, scores, issues and the recommendation"),
			mcplib.WithString("source",
				mcplib.Required(),
				mcplib.Description("Source code to validate"),
			),
			mcplib.WithString("language",
				mcplib.Required(),
				mcplib.Description("Source language (python, javascript)"),
			),
			mcplib.WithString("filename",
				mcplib.Description("Filename to report issues against"),
			),
		),
		handleCode(workDir),
	)

	// 3. subvet_report
	s.AddTool(
		mcplib.NewTool("subvet_report",
			mcplib.WithDescription("Return past validation reports for the working directory, most recent last"),
			mcplib.WithString("limit",
				mcplib.Description("Maximum number of entries to return (default: all)"),
			),
		),
		handleReport(workDir),
	)
}

// newService builds the validation service from the working directory's
// configuration.
func newService(workDir string) (*application.ValidateService, error) {
	cfg, err := configAdapter.New().Load(workDir)
	if err != nil {
		return nil, err
	}

	var antivirus domain.AntivirusOracle
	if cfg.ClamdAddress != "" {
		antivirus = clamav.New(cfg.ClamdAddress)
	}

	return application.NewValidateService(
		cfg,
		antivirus,
		lint.NewOracles(cfg),
		statics.NewOriginality(cfg),
		statics.NewCompleteness(cfg),
	)
}

func handleValidate(workDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		rawPaths, err := request.RequireString("paths")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		researcher := domain.ResearcherCoder
		args := request.GetArguments()
		if rt, ok := args["researcher_type"].(string); ok && rt != "" {
			researcher = domain.ResearcherType(rt)
		}

		var paths []string
		for _, p := range splitAndTrim(rawPaths) {
			paths = append(paths, filepath.Join(workDir, p))
		}

		files, err := submission.New().Load(paths)
		if err != nil {
			return errorResult(fmt.Sprintf("loading submission: %v", err)), nil
		}

		svc, err := newService(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("building service: %v", err)), nil
		}

		report, err := svc.ValidateSubmission(ctx, filepath.Base(workDir), files, researcher)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleCode(workDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		language, err := request.RequireString("language")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		filename, _ := request.GetArguments()["filename"].(string)

		svc, err := newService(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("building service: %v", err)), nil
		}

		report, err := svc.ValidateCode(ctx, source, language, filename)
		if err != nil {
			return errorResult(fmt.Sprintf("code validation failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleReport(workDir string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		entries, err := history.New().Load(workDir)
		if err != nil {
			return errorResult(fmt.Sprintf("loading history: %v", err)), nil
		}
		if entries == nil {
			entries = []domain.ReportEntry{}
		}

		if raw, ok := request.GetArguments()["limit"].(string); ok && raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				return errorResult(fmt.Sprintf("invalid limit %q", raw)), nil
			}
			if limit < len(entries) {
				entries = entries[len(entries)-limit:]
			}
		}
		return jsonResult(entries)
	}
}

func splitAndTrim(s string) []string {
	var result []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
