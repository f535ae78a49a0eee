package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/civita-labs/urbanista-cli/internal/core/domain"
	"github.com/civita-labs/urbanista-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask_normative tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question about urban-planning regulation"`
	Comune   string `json:"comune,omitempty" jsonschema:"the Italian comune to scope the question to"`
	Province string `json:"provincia,omitempty" jsonschema:"the province to scope the question to"`
	Region   string `json:"regione,omitempty" jsonschema:"the region to scope the question to"`
}

// AskOutput is the output schema for the ask_normative tool.
type AskOutput struct {
	Answer  string         `json:"answer"`
	Scope   string         `json:"scope"`
	Sources []SourceOutput `json:"sources,omitempty"`
}

// SourceOutput represents one document citation.
type SourceOutput struct {
	Filename string `json:"filename"`
	Page     int    `json:"page,omitempty"`
	Level    string `json:"level,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_normative",
		Description: "Ask a question about Italian urban-planning regulation, scoped to a territory",
	}, s.handleAsk)
}

// handleAsk handles the ask_normative tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	scope, err := s.resolveScope(ctx, input)
	if err != nil {
		return nil, AskOutput{}, err
	}

	if s.ports.Broker != nil {
		if err := s.ports.Broker.Publish(scope, driving.SourceSystem); err != nil {
			return nil, AskOutput{}, fmt.Errorf("setting scope: %w", err)
		}
	}
	s.ports.Chat.AdoptScope(scope)

	if err := s.ports.Chat.Send(ctx, input.Question); err != nil {
		return nil, AskOutput{}, err
	}

	history := s.ports.Chat.History()
	if len(history) == 0 {
		return nil, AskOutput{}, fmt.Errorf("no answer received")
	}
	last := history[len(history)-1]

	output := AskOutput{
		Answer: last.Text,
		Scope:  scope.Describe(),
	}
	for _, src := range last.Sources {
		output.Sources = append(output.Sources, SourceOutput{
			Filename: src.Filename,
			Page:     src.Page,
			Level:    src.Level,
			Excerpt:  src.Excerpt,
		})
	}
	return nil, output, nil
}

// resolveScope builds a validated scope from the tool input. A bare
// comune is resolved to its full chain through the hierarchy.
func (s *Server) resolveScope(ctx context.Context, input AskInput) (domain.Scope, error) {
	if input.Comune == "" && input.Province == "" && input.Region == "" {
		return domain.NationalScope(), nil
	}

	if err := s.ports.Hierarchy.Load(ctx); err != nil {
		return domain.Scope{}, fmt.Errorf("loading territorial hierarchy: %w", err)
	}

	scope := domain.NewScope(input.Region, input.Province, input.Comune)
	if input.Comune != "" && (input.Region == "" || input.Province == "") {
		entry, ok := s.ports.Hierarchy.FindMunicipality(input.Comune)
		if !ok {
			return domain.Scope{}, fmt.Errorf("unknown comune %q: %w", input.Comune, domain.ErrScopeInconsistent)
		}
		scope = domain.NewScope(entry.Region, entry.Province, entry.Municipality)
	}

	if err := s.ports.Hierarchy.Validate(scope); err != nil {
		return domain.Scope{}, err
	}
	return scope, nil
}
