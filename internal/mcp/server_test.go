package mcpserver

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/torch-corp/glare/internal/registry"
)

func testRegistry() *registry.Registry {
	return registry.New(fstest.MapFS{
		"components/Badge.tsx": {Data: []byte(
			"import { cva } from \"class-variance-authority\";\n" +
				"import { cn } from \"../utils/cn\";\n")},
		"components/Picker/index.tsx":  {Data: []byte("export { Picker } from \"./Picker\";\n")},
		"components/Picker/Picker.tsx": {Data: []byte("import { format } from \"date-fns\";")},
		"utils/cn.ts":                  {Data: []byte("export const cn = () => \"\";\n")},
	}, "test")
}

func connect(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := NewServer(testRegistry())
	ctx := context.Background()
	t1, t2 := mcp.NewInMemoryTransports()

	if _, err := server.mcpServer().Connect(ctx, t1, nil); err != nil {
		t.Fatalf("Failed to connect server: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v1.0.0"}, nil)
	session, err := client.Connect(ctx, t2, nil)
	if err != nil {
		t.Fatalf("Failed to connect client: %v", err)
	}
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callText(t *testing.T, session *mcp.ClientSession, tool string, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      tool,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if len(result.Content) == 0 {
		return "", result.IsError
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("Expected TextContent, got %T", result.Content[0])
	}
	return text.Text, result.IsError
}

func TestServer_ListAssets(t *testing.T) {
	session := connect(t)

	t.Run("all kinds", func(t *testing.T) {
		text, isErr := callText(t, session, "list_assets", map[string]any{})
		if isErr {
			t.Fatalf("Tool returned error: %s", text)
		}
		want := "component/Badge\ncomponent/Picker\nutil/cn"
		if text != want {
			t.Errorf("list_assets = %q, want %q", text, want)
		}
	})

	t.Run("one kind", func(t *testing.T) {
		text, _ := callText(t, session, "list_assets", map[string]any{"kind": "utils"})
		if text != "util/cn" {
			t.Errorf("list_assets(utils) = %q", text)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, isErr := callText(t, session, "list_assets", map[string]any{"kind": "widget"})
		if !isErr {
			t.Error("Expected an error for an unknown kind")
		}
	})
}

func TestServer_ReadAsset(t *testing.T) {
	session := connect(t)

	t.Run("file asset", func(t *testing.T) {
		text, isErr := callText(t, session, "read_asset", map[string]any{"kind": "component", "name": "Badge"})
		if isErr {
			t.Fatalf("Tool returned error: %s", text)
		}
		for _, want := range []string{"// components/Badge.tsx", "Packages: class-variance-authority", "Assets: util/cn"} {
			if !strings.Contains(text, want) {
				t.Errorf("read_asset missing %q in:\n%s", want, text)
			}
		}
	})

	t.Run("directory asset", func(t *testing.T) {
		text, _ := callText(t, session, "read_asset", map[string]any{"kind": "component", "name": "Picker"})
		if !strings.Contains(text, "// components/Picker/Picker.tsx") || !strings.Contains(text, "// components/Picker/index.tsx") {
			t.Errorf("read_asset should include every file:\n%s", text)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		_, isErr := callText(t, session, "read_asset", map[string]any{"kind": "component", "name": "Nope"})
		if !isErr {
			t.Error("Expected an error for an unknown asset")
		}
	})
}
