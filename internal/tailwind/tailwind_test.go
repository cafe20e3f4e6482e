package tailwind

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/torch-corp/glare/internal/packages"
)

const v3Config = `import type { Config } from "tailwindcss";

const config: Config = {
  content: ["./src/**/*.{js,ts,jsx,tsx}"],
  theme: {
    extend: {},
  },
  plugins: [],
};
export default config;
`

func TestMajorVersion(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"^3.4.1", 3, true},
		{"~4.0.0", 4, true},
		{">=3.0.0", 3, true},
		{"4", 4, true},
		{"^4.1.0 || ^3", 4, true},
		{"latest", DefaultMajor, false},
		{"", DefaultMajor, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := MajorVersion(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("MajorVersion(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestPluginPackages(t *testing.T) {
	v3 := PluginPackages(3)
	if len(v3) != len(Plugins) || v3[0] != "mapping-color-system" {
		t.Errorf("PluginPackages(3) = %v", v3)
	}
	v4 := PluginPackages(4)
	if len(v4) != len(V4Plugins) {
		t.Errorf("PluginPackages(4) = %v", v4)
	}
}

func TestContentGlobs(t *testing.T) {
	got := ContentGlobs("src")
	want := []string{"./src/**/*.{js,ts,jsx,tsx}", "./app/**/*.{js,ts,jsx,tsx}"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ContentGlobs(src) = %v, want %v", got, want)
	}

	got = ContentGlobs("./src/app/")
	if len(got) != 1 || got[0] != "./src/app/**/*.{js,ts,jsx,tsx}" {
		t.Errorf("ContentGlobs(src/app) = %v", got)
	}
}

func TestPatchConfig(t *testing.T) {
	patched, changed := PatchConfig(v3Config, ContentGlobs("src"))
	if !changed {
		t.Fatal("expected config to change")
	}

	for _, p := range Plugins {
		if !strings.Contains(patched, p.Expr+",") {
			t.Errorf("patched config missing plugin %s", p.Expr)
		}
	}
	for _, want := range []string{markerStart, markerEnd, mappingImport, mappingSpread, "addVariant", `"./app/**/*.{js,ts,jsx,tsx}"`} {
		if !strings.Contains(patched, want) {
			t.Errorf("patched config missing %q", want)
		}
	}
	if strings.Count(patched, "./src/**/*.{js,ts,jsx,tsx}") != 1 {
		t.Error("covered content glob should not be added again")
	}

	again, changed := PatchConfig(patched, ContentGlobs("src"))
	if changed {
		t.Errorf("second patch should be a no-op, got:\n%s", again)
	}
	if again != patched {
		t.Error("second patch altered the config")
	}
}

func TestPatchConfig_KeepsUserPlugins(t *testing.T) {
	config := strings.Replace(v3Config, "plugins: [],", "plugins: [\n    require('tailwindcss-animate'),\n  ],", 1)

	patched, changed := PatchConfig(config, ContentGlobs("src"))
	if !changed {
		t.Fatal("expected config to change")
	}
	if n := strings.Count(patched, "tailwindcss-animate"); n != 1 {
		t.Errorf("tailwindcss-animate appears %d times, want 1", n)
	}
	if !strings.Contains(patched, "require('glare-torch-mode')") {
		t.Error("missing plugin not added")
	}
}

func TestPatchConfig_NoPluginsArray(t *testing.T) {
	config := "module.exports = {\n  content: [],\n  theme: {}\n}\n"

	patched, changed := PatchConfig(config, ContentGlobs("src"))
	if !changed {
		t.Fatal("expected config to change")
	}
	if !strings.Contains(patched, "plugins: [") {
		t.Errorf("plugins array not added:\n%s", patched)
	}
	if !strings.Contains(patched, `"./src/**/*.{js,ts,jsx,tsx}"`) {
		t.Error("content glob not added to empty content array")
	}

	if _, changed := PatchConfig(patched, ContentGlobs("src")); changed {
		t.Error("second patch should be a no-op")
	}
}

func TestScaffold(t *testing.T) {
	out := Scaffold(ContentGlobs("src"))
	for _, want := range []string{mappingImport, mappingSpread, markerStart, `"./src/**/*.{js,ts,jsx,tsx}"`, "satisfies Config"} {
		if !strings.Contains(out, want) {
			t.Errorf("scaffold missing %q", want)
		}
	}
	if _, changed := PatchConfig(out, ContentGlobs("src")); changed {
		t.Error("scaffolded config should need no patching")
	}
}

func TestPatchCSSv4(t *testing.T) {
	css := "@import \"tailwindcss\";\n\nbody { margin: 0; }\n"

	patched, changed := PatchCSSv4(css)
	if !changed {
		t.Fatal("expected stylesheet to change")
	}
	for _, p := range V4Plugins {
		if !strings.Contains(patched, `@plugin "`+p+`";`) {
			t.Errorf("missing @plugin %s", p)
		}
	}
	if strings.Index(patched, cssMarkerStart) < strings.Index(patched, tailwindImport) {
		t.Error("plugins should follow the tailwindcss import")
	}
	if !strings.HasSuffix(patched, "body { margin: 0; }\n") {
		t.Error("existing rules were not preserved")
	}

	if _, changed := PatchCSSv4(patched); changed {
		t.Error("second patch should be a no-op")
	}
}

func TestPatchCSSv4_AddsImport(t *testing.T) {
	patched, changed := PatchCSSv4("")
	if !changed || !strings.HasPrefix(patched, tailwindImport) {
		t.Errorf("import not added:\n%s", patched)
	}
}

func TestPatchCSSv3(t *testing.T) {
	patched, changed := PatchCSSv3("@tailwind base;\nbody {}\n")
	if !changed {
		t.Fatal("expected stylesheet to change")
	}
	if strings.Count(patched, "@tailwind base") != 1 {
		t.Error("existing directive duplicated")
	}
	if !strings.Contains(patched, "@tailwind utilities;") {
		t.Error("missing directive not added")
	}
	if _, changed := PatchCSSv3(patched); changed {
		t.Error("second patch should be a no-op")
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestSetup_V3Scaffold(t *testing.T) {
	root := t.TempDir()
	m := &packages.Manifest{DevDependencies: map[string]string{"tailwindcss": "^3.4.0"}}

	res, err := Setup(root, "src", m)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !res.ConfigCreated || filepath.Base(res.ConfigPath) != ScaffoldFile {
		t.Errorf("config not scaffolded: %+v", res)
	}
	if !res.CSSCreated || res.CSSPath != filepath.Join(root, "src", "index.css") {
		t.Errorf("stylesheet not created at src/index.css: %+v", res)
	}

	css, _ := os.ReadFile(res.CSSPath)
	if !strings.Contains(string(css), "@tailwind components;") {
		t.Error("v3 directives missing")
	}

	res, err = Setup(root, "src", m)
	if err != nil {
		t.Fatalf("second Setup() error = %v", err)
	}
	if res.Changed() {
		t.Errorf("second Setup changed files: %+v", res)
	}
}

func TestSetup_V3PatchWritesBackup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "tailwind.config.ts", v3Config)
	m := &packages.Manifest{DevDependencies: map[string]string{"tailwindcss": "3.4.1"}}

	res, err := Setup(root, "src", m)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if !res.ConfigChanged {
		t.Fatal("config should be patched")
	}

	backup, err := os.ReadFile(filepath.Join(root, "tailwind.config.ts.bak"))
	if err != nil {
		t.Fatalf("backup not written: %v", err)
	}
	if string(backup) != v3Config {
		t.Error("backup does not hold the original config")
	}
}

func TestSetup_V4Next(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app/globals.css", "@import \"tailwindcss\";\n")
	m := &packages.Manifest{
		Dependencies:    map[string]string{"next": "15.0.0"},
		DevDependencies: map[string]string{"tailwindcss": "^4.0.0"},
	}

	res, err := Setup(root, "src", m)
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if res.ConfigPath != "" {
		t.Errorf("v4 project should not get a config, got %s", res.ConfigPath)
	}
	if res.CSSPath != filepath.Join(root, "src", "app", "globals.css") || !res.CSSChanged {
		t.Errorf("unexpected css result: %+v", res)
	}
	if len(res.Backups) != 1 {
		t.Errorf("Backups = %v, want one", res.Backups)
	}
}

func TestSetup_NotDeclared(t *testing.T) {
	root := t.TempDir()

	res, err := Setup(root, "src", &packages.Manifest{})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if res.Declared || res.Changed() {
		t.Errorf("undeclared tailwind should be skipped: %+v", res)
	}
	entries, _ := os.ReadDir(root)
	if len(entries) != 0 {
		t.Errorf("Setup wrote files: %v", entries)
	}
}

func TestSetupAssuming_NotDeclared(t *testing.T) {
	root := t.TempDir()
	m := &packages.Manifest{Dependencies: map[string]string{"next": "15.0.0"}}

	res, err := SetupAssuming(root, "src", m, 4)
	if err != nil {
		t.Fatalf("SetupAssuming() error = %v", err)
	}
	if res.Declared || !res.Assumed || res.Major != 4 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.CSSPath != filepath.Join(root, "app", "globals.css") || !res.CSSCreated {
		t.Fatalf("css not created: %+v", res)
	}
	data, err := os.ReadFile(res.CSSPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `@plugin "glare-torch-mode";`) {
		t.Errorf("plugins missing:\n%s", data)
	}
	if res.ConfigPath != "" {
		t.Errorf("v4 setup wrote a config: %s", res.ConfigPath)
	}
}

func TestSetupAssuming_DeclaredVersionWins(t *testing.T) {
	root := t.TempDir()
	m := &packages.Manifest{DevDependencies: map[string]string{"tailwindcss": "^3.4.0"}}

	res, err := SetupAssuming(root, "src", m, 4)
	if err != nil {
		t.Fatalf("SetupAssuming() error = %v", err)
	}
	if !res.Declared || res.Assumed || res.Major != 3 || !res.ConfigCreated {
		t.Errorf("declared v3 should be set up as v3: %+v", res)
	}
}
