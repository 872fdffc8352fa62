package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/presentation/graph"
	"github.com/aretw0/schematic/pkg/declare"
	"github.com/aretw0/schematic/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource exposing the Mermaid diagram of all kinds.
const GraphURI = "schematic://graph"

// KindsResponse lists the kinds of the catalog.
type KindsResponse struct {
	Kinds []string `json:"kinds" jsonschema_description:"Available entity kinds"`
}

// Server wraps a catalog and exposes it as an MCP Server.
type Server struct {
	catalog   ports.Catalog
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(catalog ports.Catalog, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		catalog:   catalog,
		logger:    logger,
		mcpServer: server.NewMCPServer("schematic-mcp", strings.TrimSpace(schematic.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. to mount it on another transport.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: list_kinds
	s.mcpServer.AddTool(mcp.NewTool("list_kinds",
		mcp.WithDescription("List the entity kinds that can be validated."),
		mcp.WithOutputSchema[KindsResponse](),
	), mcp.NewStructuredToolHandler(s.handleListKinds))

	// TOOL: describe_kind
	s.mcpServer.AddTool(mcp.NewTool("describe_kind",
		mcp.WithDescription("Describe the fields of an entity kind: type, default, whether it is required and nested kinds."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Kind name, as returned by list_kinds")),
		mcp.WithOutputSchema[declare.Declaration](),
	), mcp.NewStructuredToolHandler(s.handleDescribeKind))

	// TOOL: validate_entity
	s.mcpServer.AddTool(mcp.NewTool("validate_entity",
		mcp.WithDescription("Resolve field values against a kind (defaults merged, unknown fields dropped) and report errors per field."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Kind name")),
		mcp.WithString("data", mcp.Description("JSON object of field values (optional)")),
		mcp.WithOutputSchema[schematic.Report](),
	), mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *Server) handleListKinds(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (KindsResponse, error) {
	return KindsResponse{Kinds: s.catalog.Kinds()}, nil
}

func (s *Server) handleDescribeKind(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (declare.Declaration, error) {
	kind, _ := args["kind"].(string)
	decl, err := s.catalog.Describe(kind)
	if err != nil {
		return declare.Declaration{}, err
	}
	return *decl, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (schematic.Report, error) {
	kind, _ := args["kind"].(string)

	var data map[string]any
	if raw, ok := args["data"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			s.logger.Warn("MCP Validate: data rejected", "kind", kind, "error", err)
			return schematic.Report{}, fmt.Errorf("data must be a JSON object: %w", err)
		}
	}

	report, err := s.catalog.Validate(kind, data)
	if err != nil {
		return schematic.Report{}, fmt.Errorf("validate failed: %w", err)
	}
	return report, nil
}

func (s *Server) registerResources() {
	// EXPOSE: schematic://graph
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Kind Diagram",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		decls, err := ports.Declarations(s.catalog)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "text/vnd.mermaid",
				Text:     graph.GenerateMermaid(decls),
			},
		}, nil
	})
}
