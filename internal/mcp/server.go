package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/buildinfo"
	"github.com/torch-corp/glare/internal/logger"
	"github.com/torch-corp/glare/internal/registry"
	"github.com/torch-corp/glare/internal/scanner"
)

// Server exposes the template registry to MCP clients
type Server struct {
	registry *registry.Registry
}

// NewServer creates a new MCP server over a registry
func NewServer(reg *registry.Registry) *Server {
	return &Server{registry: reg}
}

// ListAssetsInput is the input type for the list_assets tool
type ListAssetsInput struct {
	Kind string `json:"kind,omitempty" jsonschema:"asset kind to list (component, hook, util, layout, provider); all kinds when empty"`
}

// ReadAssetInput is the input type for the read_asset tool
type ReadAssetInput struct {
	Kind string `json:"kind" jsonschema:"asset kind (component, hook, util, layout, provider)"`
	Name string `json:"name" jsonschema:"asset name as shown by list_assets"`
}

// Run starts the MCP server over stdio
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer().Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) mcpServer() *mcp.Server {
	impl := &mcp.Implementation{
		Name:    "glare",
		Version: buildinfo.Version,
	}

	mcpServer := mcp.NewServer(impl, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "list_assets",
		Description: "List the design system assets that can be installed, one kind/name per line.",
	}, s.handleListAssets)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "read_asset",
		Description: "Read the source of a design system asset together with the packages and sibling assets it imports.",
	}, s.handleReadAsset)

	return mcpServer
}

func (s *Server) handleListAssets(ctx context.Context, req *mcp.CallToolRequest, input ListAssetsInput) (*mcp.CallToolResult, any, error) {
	kinds := asset.AllKinds()
	if input.Kind != "" {
		kind, err := asset.Parse(input.Kind)
		if err != nil {
			return nil, nil, err
		}
		kinds = []asset.Kind{kind}
	}

	var lines []string
	for _, kind := range kinds {
		names, err := s.registry.List(kind)
		if err != nil {
			return nil, nil, err
		}
		for _, name := range names {
			lines = append(lines, asset.Key{Kind: kind, Name: name}.String())
		}
	}

	return textResult(strings.Join(lines, "\n")), nil, nil
}

func (s *Server) handleReadAsset(ctx context.Context, req *mcp.CallToolRequest, input ReadAssetInput) (*mcp.CallToolResult, any, error) {
	if input.Name == "" {
		return nil, nil, fmt.Errorf("asset name is required")
	}
	kind, err := asset.Parse(input.Kind)
	if err != nil {
		return nil, nil, err
	}

	t, err := s.registry.Resolve(kind, input.Name)
	if err != nil {
		return nil, nil, err
	}
	files, err := s.registry.Files(t)
	if err != nil {
		return nil, nil, err
	}

	var b strings.Builder
	var refs []scanner.ImportReference
	for _, f := range files {
		data, err := s.registry.Read(f)
		if err != nil {
			return nil, nil, err
		}
		fmt.Fprintf(&b, "// %s/%s\n%s", kind.Dir, t.RelPath(f), data)
		if len(data) > 0 && data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
		refs = append(refs, scanner.ScanFrom(kind, string(data))...)
	}

	writeImports(&b, refs)

	logger.Get().Debug("asset read over mcp", "asset", t.Key().String())
	return textResult(b.String()), nil, nil
}

// writeImports appends the distinct packages and sibling assets refs point at
func writeImports(b *strings.Builder, refs []scanner.ImportReference) {
	seen := make(map[string]bool)
	var pkgs, siblings []string
	for _, ref := range refs {
		if ref.Class == scanner.External {
			if !seen["pkg:"+ref.Name] {
				seen["pkg:"+ref.Name] = true
				pkgs = append(pkgs, ref.Name)
			}
			continue
		}
		kind, _ := ref.Class.Kind()
		key := asset.Key{Kind: kind, Name: ref.Name}.String()
		if !seen[key] {
			seen[key] = true
			siblings = append(siblings, key)
		}
	}

	if len(pkgs) > 0 {
		fmt.Fprintf(b, "Packages: %s\n", strings.Join(pkgs, ", "))
	}
	if len(siblings) > 0 {
		fmt.Fprintf(b, "Assets: %s\n", strings.Join(siblings, ", "))
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}
