package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/vieraprotocol/subvet/internal/adapters/outbound/history"
	"github.com/vieraprotocol/subvet/internal/domain"
)

const (
	languagesResourceURI = "subvet://languages"
	historyResourceURI   = "subvet://history"
)

// registerResources registers all subvet MCP resources on the given server.
func registerResources(s *server.MCPServer, workDir string) {
	s.AddResource(
		mcplib.NewResource(
			languagesResourceURI,
			"Supported languages",
			mcplib.WithResourceDescription("Languages subvet can analyze, with their file extensions and security linter support"),
			mcplib.WithMIMEType("application/json"),
		),
		handleLanguagesResource,
	)

	s.AddResource(
		mcplib.NewResource(
			historyResourceURI,
			"Validation history",
			mcplib.WithResourceDescription("Past validation reports for the working directory"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(workDir),
	)
}

type languageEntry struct {
	Name              string   `json:"name"`
	Extensions        []string `json:"extensions"`
	HasSecurityLinter bool     `json:"has_security_linter"`
}

func handleLanguagesResource(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	var entries []languageEntry
	for _, name := range domain.SupportedLanguages() {
		lang, _ := domain.LanguageByName(string(name))
		entries = append(entries, languageEntry{
			Name:              string(name),
			Extensions:        lang.Extensions,
			HasSecurityLinter: lang.HasSecurityLinter,
		})
	}
	return jsonResourceContents(languagesResourceURI, entries)
}

func handleHistoryResource(workDir string) server.ResourceHandlerFunc {
	return func(ctx context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(workDir)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.ReportEntry{}
		}
		return jsonResourceContents(historyResourceURI, entries)
	}
}

func jsonResourceContents(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
