package installer

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/torch-corp/glare/internal/asset"
	"github.com/torch-corp/glare/internal/config"
	"github.com/torch-corp/glare/internal/lockfile"
	"github.com/torch-corp/glare/internal/registry"
)

func TestUpdate_Declined(t *testing.T) {
	root := newProject(t, nil)
	writeProjectFile(t, root, "src/components/Badge.tsx", "local edit")
	runner := &recordingRunner{}
	in := New(Options{Root: root, Registry: testRegistry(), Runner: runner, Confirmer: &scriptedConfirmer{answers: []bool{false}}})

	before := snapshot(t, root)
	res, err := in.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !res.Declined {
		t.Error("expected Declined")
	}
	if !reflect.DeepEqual(before, snapshot(t, root)) {
		t.Error("declined update changed the project")
	}
	if len(runner.calls) != 0 {
		t.Errorf("runner called: %v", runner.calls)
	}
}

func TestUpdate_NoInstalledAssets(t *testing.T) {
	root := newProject(t, map[string]string{"tailwindcss": "^3.4.0"})
	runner := &recordingRunner{}
	confirm := &scriptedConfirmer{answers: []bool{true}}
	in := New(Options{Root: root, Registry: testRegistry(), Runner: runner, Confirmer: confirm})

	res, err := in.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(confirm.messages) != 1 || confirm.messages[0] != UpdatePrompt {
		t.Errorf("confirm messages = %v, want only the update prompt", confirm.messages)
	}
	if len(runner.calls) != 0 {
		t.Errorf("package manager invoked: %v", runner.calls)
	}
	if len(res.Updated) != 0 {
		t.Errorf("Updated = %v", res.Updated)
	}
	if res.Tailwind == nil || !res.Tailwind.ConfigCreated {
		t.Errorf("tailwind step did not run: %+v", res.Tailwind)
	}
}

func TestUpdate_OverwritesInstalledAssets(t *testing.T) {
	root := newProject(t, map[string]string{"react": "18", "class-variance-authority": "1"})
	reg := testRegistry()
	in := New(Options{Root: root, Registry: reg, Runner: &recordingRunner{}, AssumeYes: true})

	if _, err := in.Add(context.Background(), asset.KindComponent, "Badge"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	writeProjectFile(t, root, "src/components/Badge.tsx", "local edit")
	writeProjectFile(t, root, "src/components/Gone.tsx", "removed upstream")

	res, err := in.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	want, _ := reg.Read("components/Badge.tsx")
	if got := readProjectFile(t, root, "src/components/Badge.tsx"); got != string(want) {
		t.Errorf("Badge.tsx = %q, want template content", got)
	}
	if !reflect.DeepEqual(res.Modified, keys("component/Badge")) {
		t.Errorf("Modified = %v", res.Modified)
	}
	if !reflect.DeepEqual(res.Unresolved, keys("component/Gone")) {
		t.Errorf("Unresolved = %v", res.Unresolved)
	}
	if got := readProjectFile(t, root, "src/components/Gone.tsx"); got != "removed upstream" {
		t.Error("unresolved entry should be left alone")
	}
	if !slices.Contains(res.Updated, asset.Key{Kind: asset.KindUtil, Name: "cn"}) {
		t.Errorf("cn should be updated in the utils pass, Updated = %v", res.Updated)
	}
}

func TestUpdate_InstallsMissingSiblings(t *testing.T) {
	root := newProject(t, map[string]string{"react": "18", "class-variance-authority": "1"})
	writeProjectFile(t, root, "src/components/Badge.tsx", "stale")
	in := New(Options{Root: root, Registry: testRegistry(), Runner: &recordingRunner{}, AssumeYes: true})

	res, err := in.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !reflect.DeepEqual(res.Installed, keys("util/cn")) {
		t.Errorf("Installed = %v", res.Installed)
	}
	if _, err := os.Stat(filepath.Join(root, "src/utils/cn.ts")); err != nil {
		t.Error("missing sibling not installed")
	}
}

func TestPlanAndInit(t *testing.T) {
	t.Setenv("GLARE_CACHE_DIR", t.TempDir())
	root := t.TempDir()
	writeManifest(t, root, map[string]string{"react": "18", "tailwindcss": "^3.4.0", "clsx": "2"})
	runner := &recordingRunner{}
	in := New(Options{Root: root, Registry: registry.Embedded(), Runner: runner})

	plan, err := in.PlanInit("src")
	if err != nil {
		t.Fatalf("PlanInit() error = %v", err)
	}
	if plan.ConfigExists || plan.Path != "src" || plan.TailwindMajor != 3 || !plan.TailwindDeclared {
		t.Errorf("unexpected plan: %+v", plan)
	}
	if plan.InstallDirs()[asset.KindHook] != filepath.Join("src", "hooks") {
		t.Errorf("InstallDirs = %v", plan.InstallDirs())
	}

	res, err := in.Init(context.Background(), plan)
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if !res.ConfigCreated {
		t.Error("glare.json not created")
	}
	if !reflect.DeepEqual(res.Installed, keys("util/cn", "util/types")) {
		t.Errorf("Installed = %v", res.Installed)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("runner calls = %v, want one batched install", runner.calls)
	}
	call := runner.calls[0]
	for _, pkg := range []string{"tailwind-merge", "class-variance-authority", "mapping-color-system", "glare-torch-mode"} {
		if !slices.Contains(call, pkg) {
			t.Errorf("install command %v missing %s", call, pkg)
		}
	}
	if slices.Contains(call, "clsx") {
		t.Error("declared package clsx should not be installed")
	}
	if res.Tailwind == nil || !res.Tailwind.ConfigCreated {
		t.Errorf("tailwind config not scaffolded: %+v", res.Tailwind)
	}

	writeProjectFile(t, root, "src/utils/cn.ts", "custom")
	plan, err = in.PlanInit("")
	if err != nil {
		t.Fatalf("second PlanInit() error = %v", err)
	}
	if !plan.ConfigExists || plan.Path != "src" {
		t.Errorf("existing config should win: %+v", plan)
	}
	res, err = in.Init(context.Background(), plan)
	if err != nil {
		t.Fatalf("second Init() error = %v", err)
	}
	if res.ConfigCreated || len(res.Installed) != 0 {
		t.Errorf("second init should not write: %+v", res)
	}
	if got := readProjectFile(t, root, "src/utils/cn.ts"); got != "custom" {
		t.Error("existing base util overwritten")
	}
	cfg, err := config.Load(root)
	if err != nil || cfg.Path != "src" {
		t.Errorf("config = %+v, %v", cfg, err)
	}
}

func TestUpdate_PrunesRemovedAssetsFromLock(t *testing.T) {
	root := newProject(t, map[string]string{"react": "18", "class-variance-authority": "1"})
	in := New(Options{Root: root, Registry: testRegistry(), Runner: &recordingRunner{}, AssumeYes: true})

	if _, err := in.Add(context.Background(), asset.KindComponent, "Badge"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := os.Remove(filepath.Join(root, "src/components/Badge.tsx")); err != nil {
		t.Fatal(err)
	}

	if _, err := in.Update(context.Background()); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	lf, err := lockfile.ParseFile(lockfile.Path(root))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if lf.Find(asset.KindComponent, "Badge") != nil {
		t.Error("removed component still recorded")
	}
	if lf.Find(asset.KindUtil, "cn") == nil {
		t.Error("installed util lost from lock")
	}
}

func TestUpdate_AliasedKindsShareDirectory(t *testing.T) {
	root := newProject(t, map[string]string{"react": "18"})
	cfg := &config.Config{Path: "src", Aliases: map[string]string{"hooks": "src/lib", "utils": "src/lib"}}
	if err := config.Save(root, cfg); err != nil {
		t.Fatal(err)
	}
	writeProjectFile(t, root, "src/lib/cn.ts", "old cn")
	writeProjectFile(t, root, "src/lib/useB.ts", "old useB")
	in := New(Options{Root: root, Registry: testRegistry(), Runner: &recordingRunner{}, AssumeYes: true})

	res, err := in.Update(context.Background())
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(res.Unresolved) != 0 {
		t.Errorf("Unresolved = %v, want none", res.Unresolved)
	}
	for _, k := range keys("util/cn", "hook/useB") {
		if !slices.Contains(res.Updated, k) {
			t.Errorf("Updated = %v, missing %s", res.Updated, k)
		}
	}
	if got := readProjectFile(t, root, "src/lib/useB.ts"); got == "old useB" {
		t.Error("useB not refreshed")
	}
}
