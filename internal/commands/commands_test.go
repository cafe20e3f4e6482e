package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/registry"
)

type recordingRunner struct {
	calls [][]string
}

func (r *recordingRunner) Run(_ context.Context, _ string, name string, args ...string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	return nil
}

// newTestProject creates a project with a package.json declaring deps
func newTestProject(t *testing.T, deps map[string]string) string {
	t.Helper()
	t.Setenv("GLARE_CACHE_DIR", t.TempDir())
	t.Setenv(registry.EnvRegistry, "")

	root := t.TempDir()
	data, err := json.Marshal(map[string]any{"name": "app", "dependencies": deps})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "package.json"), data, 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

// initializedProject is a project with glare.json installing under src
func initializedProject(t *testing.T) string {
	t.Helper()
	root := newTestProject(t, map[string]string{
		"react":                    "18",
		"clsx":                     "2",
		"tailwind-merge":           "2",
		"class-variance-authority": "0.7",
	})
	if err := config.Save(root, &config.Config{Path: "src"}); err != nil {
		t.Fatal(err)
	}
	return root
}

// runGlare executes the root command in root and returns its stdout
func runGlare(t *testing.T, root string, prompter *MockPrompter, runner *recordingRunner, args ...string) (string, error) {
	t.Helper()
	if prompter == nil {
		prompter = NewMockPrompter()
	}
	if runner == nil {
		runner = &recordingRunner{}
	}

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append(args, "--cwd", root))
	cmd.SetContext(withRunner(context.Background(), runner))

	err := ExecuteWithPrompter(cmd, prompter)
	return stdout.String(), err
}

func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	return err == nil
}

func TestInit_AssumeYes(t *testing.T) {
	root := newTestProject(t, map[string]string{"react": "18", "tailwindcss": "^4.0.0"})
	runner := &recordingRunner{}

	out, err := runGlare(t, root, nil, runner, "init", "--path", "src", "--yes")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		t.Fatalf("glare.json not written: %v", err)
	}
	if cfg.Path != "src" {
		t.Errorf("Path = %q, want src", cfg.Path)
	}
	for _, f := range []string{"src/utils/cn.ts", "src/utils/types.ts"} {
		if !fileExists(t, filepath.Join(root, f)) {
			t.Errorf("%s not installed", f)
		}
	}
	if len(runner.calls) != 1 {
		t.Errorf("runner calls = %v, want one batched install", runner.calls)
	}
	for _, want := range []string{"Framework", "Tailwind: v4", "Created glare.json"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInit_Declined(t *testing.T) {
	root := newTestProject(t, map[string]string{"react": "18"})
	prompter := NewMockPrompter().
		ExpectPrompt("Install path", "").
		ExpectConfirm("Proceed with this configuration", false)
	runner := &recordingRunner{}

	out, err := runGlare(t, root, prompter, runner, "init")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if config.Exists(root) {
		t.Error("declined init wrote glare.json")
	}
	if len(runner.calls) != 0 {
		t.Errorf("declined init ran the package manager: %v", runner.calls)
	}
	if !strings.Contains(out, "not installed") {
		t.Errorf("plan should report tailwind as not installed:\n%s", out)
	}
}

func TestInit_FontLinksDeclined(t *testing.T) {
	root := newTestProject(t, map[string]string{"react": "18", "vite": "5"})
	if err := os.WriteFile(filepath.Join(root, "index.html"), []byte("<html><head></head></html>"), 0644); err != nil {
		t.Fatal(err)
	}
	prompter := NewMockPrompter().
		ExpectConfirm("Proceed with this configuration", true).
		ExpectConfirm("Add TORCH Glare font links", false)

	out, err := runGlare(t, root, prompter, &recordingRunner{}, "init", "--path", "src")
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html><head></head></html>" {
		t.Errorf("declined font links still written:\n%s", data)
	}
	if !strings.Contains(out, "remixicon") {
		t.Errorf("output should list the links to add by hand:\n%s", out)
	}
}

func TestAdd_Named(t *testing.T) {
	root := initializedProject(t)

	out, err := runGlare(t, root, nil, nil, "add", "Badge")
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !fileExists(t, filepath.Join(root, "src/components/Badge.tsx")) {
		t.Error("Badge not copied")
	}
	if !fileExists(t, filepath.Join(root, "src/utils/cn.ts")) {
		t.Error("sibling cn not copied")
	}
	if !strings.Contains(out, "Installed component/Badge") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAdd_ComponentAlias(t *testing.T) {
	root := initializedProject(t)

	if _, err := runGlare(t, root, nil, nil, "component", "Button"); err != nil {
		t.Fatalf("component failed: %v", err)
	}
	if !fileExists(t, filepath.Join(root, "src/components/Button.tsx")) {
		t.Error("Button not copied")
	}
}

func TestAdd_UninitializedFailsBeforeSelecting(t *testing.T) {
	root := newTestProject(t, map[string]string{"react": "18"})

	_, err := runGlare(t, root, NewMockPrompter(), nil, "hook")
	if !errors.Is(err, config.ErrConfigMissing) {
		t.Fatalf("err = %v, want ErrConfigMissing", err)
	}
}

func TestAdd_SelectsWhenNameOmitted(t *testing.T) {
	root := initializedProject(t)
	prompter := NewMockPrompter().ExpectSelect("Which layout", "SidebarLayout")

	if _, err := runGlare(t, root, prompter, nil, "layout"); err != nil {
		t.Fatalf("layout failed: %v", err)
	}
	if !fileExists(t, filepath.Join(root, "src/layouts/SidebarLayout.tsx")) {
		t.Error("selected layout not copied")
	}
}

func TestAdd_NameRequiredWithYes(t *testing.T) {
	root := initializedProject(t)

	_, err := runGlare(t, root, nil, nil, "hook", "--yes")
	if err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Errorf("err = %v, want name required", err)
	}
}

func TestAdd_DeclineReplace(t *testing.T) {
	root := initializedProject(t)
	if _, err := runGlare(t, root, nil, nil, "util", "cn"); err != nil {
		t.Fatalf("first install failed: %v", err)
	}
	target := filepath.Join(root, "src/utils/cn.ts")
	if err := os.WriteFile(target, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	prompter := NewMockPrompter().ExpectConfirm("already exists", false)
	out, err := runGlare(t, root, prompter, nil, "util", "cn")
	if err != nil {
		t.Fatalf("second install failed: %v", err)
	}
	if data, _ := os.ReadFile(target); string(data) != "mine" {
		t.Error("declined replace overwrote the file")
	}
	if !strings.Contains(out, "Kept existing util cn") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestAdd_Errors(t *testing.T) {
	t.Run("config missing", func(t *testing.T) {
		root := newTestProject(t, map[string]string{"react": "18"})
		_, err := runGlare(t, root, nil, nil, "add", "Badge")
		if !errors.Is(err, config.ErrConfigMissing) {
			t.Errorf("err = %v, want ErrConfigMissing", err)
		}
	})

	t.Run("unknown asset", func(t *testing.T) {
		root := initializedProject(t)
		_, err := runGlare(t, root, nil, nil, "add", "Nope")
		if !errors.Is(err, registry.ErrAssetNotFound) {
			t.Errorf("err = %v, want ErrAssetNotFound", err)
		}
	})

	t.Run("missing project dir", func(t *testing.T) {
		_, err := runGlare(t, filepath.Join(t.TempDir(), "gone"), nil, nil, "add", "Badge")
		if err == nil || !strings.Contains(err.Error(), "does not exist") {
			t.Errorf("err = %v", err)
		}
	})
}

func TestUpdate_Declined(t *testing.T) {
	root := initializedProject(t)
	if _, err := runGlare(t, root, nil, nil, "add", "Badge"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	target := filepath.Join(root, "src/components/Badge.tsx")
	if err := os.WriteFile(target, []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}

	prompter := NewMockPrompter().ExpectConfirm("overwrite every installed asset", false)
	out, err := runGlare(t, root, prompter, nil, "update")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if data, _ := os.ReadFile(target); string(data) != "edited" {
		t.Error("declined update overwrote the file")
	}
	if !strings.Contains(out, "Update cancelled") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestUpdate_Confirmed(t *testing.T) {
	root := initializedProject(t)
	if _, err := runGlare(t, root, nil, nil, "add", "Badge"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	target := filepath.Join(root, "src/components/Badge.tsx")
	if err := os.WriteFile(target, []byte("edited"), 0644); err != nil {
		t.Fatal(err)
	}

	prompter := NewMockPrompter().ExpectConfirm("Continue", true)
	out, err := runGlare(t, root, prompter, nil, "update")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	want, _ := registry.Embedded().Read("components/Badge.tsx")
	if data, _ := os.ReadFile(target); string(data) != string(want) {
		t.Error("update did not restore the template")
	}
	for _, s := range []string{"component/Badge", "util/cn", "skipped Tailwind setup"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestList(t *testing.T) {
	root := initializedProject(t)
	if _, err := runGlare(t, root, nil, nil, "hook", "useTheme"); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	out, err := runGlare(t, root, nil, nil, "list", "hooks")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "useTheme (installed)") {
		t.Errorf("installed hook not marked:\n%s", out)
	}
	if !strings.Contains(out, "useResize") || strings.Contains(out, "useResize (installed)") {
		t.Errorf("available hook missing or wrongly marked:\n%s", out)
	}
	if strings.Contains(out, "Badge") {
		t.Errorf("list hooks printed components:\n%s", out)
	}
}

func TestList_UnknownKind(t *testing.T) {
	root := initializedProject(t)
	if _, err := runGlare(t, root, nil, nil, "list", "widgets"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		err  error
		hint string
	}{
		{config.ErrConfigMissing, "glare init"},
		{registry.ErrAssetNotFound, "glare list"},
		{errors.New("boom"), ""},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		PrintError(&buf, tt.err)
		out := buf.String()
		if !strings.Contains(out, tt.err.Error()) {
			t.Errorf("PrintError(%v) = %q", tt.err, out)
		}
		if tt.hint != "" && !strings.Contains(out, tt.hint) {
			t.Errorf("PrintError(%v) missing hint %q: %q", tt.err, tt.hint, out)
		}
	}
}
