package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths_RelativePaths(t *testing.T) {
	tmp := t.TempDir()
	cfg := Default()

	if err := cfg.ResolvePaths(tmp); err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}

	if want := filepath.Join(tmp, ".iqfit/profile.toml"); cfg.Paths.Profile != want {
		t.Errorf("Profile: expected %q, got %q", want, cfg.Paths.Profile)
	}
	if want := filepath.Join(tmp, ".iqfit/activity.jsonl"); cfg.Paths.Activity != want {
		t.Errorf("Activity: expected %q, got %q", want, cfg.Paths.Activity)
	}
	if want := filepath.Join(tmp, ".iqfit/debug.log"); cfg.Paths.DebugLog != want {
		t.Errorf("DebugLog: expected %q, got %q", want, cfg.Paths.DebugLog)
	}
	if want := filepath.Join(tmp, ".iqfit/catalog"); cfg.Catalog.Dirs[0] != want {
		t.Errorf("Catalog dir: expected %q, got %q", want, cfg.Catalog.Dirs[0])
	}
	if cfg.Player.CompletionMessageFile != "" {
		t.Errorf("empty message file should stay empty, got %q", cfg.Player.CompletionMessageFile)
	}
}

func TestResolvePaths_AbsolutePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.Profile = "/absolute/profile.toml"
	cfg.Catalog.Dirs = []string{"/absolute/catalog", "relative"}

	if err := cfg.ResolvePaths("/base"); err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}

	if cfg.Paths.Profile != "/absolute/profile.toml" {
		t.Errorf("Profile should remain absolute, got %q", cfg.Paths.Profile)
	}
	if cfg.Catalog.Dirs[0] != "/absolute/catalog" {
		t.Errorf("absolute dir changed to %q", cfg.Catalog.Dirs[0])
	}
	if cfg.Catalog.Dirs[1] != filepath.Join("/base", "relative") {
		t.Errorf("relative dir = %q", cfg.Catalog.Dirs[1])
	}
}

func TestResolvePaths_DoesNotShareDirs(t *testing.T) {
	dirs := []string{"catalog"}
	cfg := Default()
	cfg.Catalog.Dirs = dirs

	if err := cfg.ResolvePaths("/base"); err != nil {
		t.Fatal(err)
	}
	if dirs[0] != "catalog" {
		t.Errorf("caller slice mutated to %q", dirs[0])
	}
}

func TestFindProjectRoot(t *testing.T) {
	tmp := t.TempDir()
	root, err := filepath.EvalSymlinks(tmp)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, ProjectConfigDir), 0755); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	if got := FindProjectRoot(nested); got != root {
		t.Errorf("FindProjectRoot(nested) = %q, want %q", got, root)
	}
	if got := FindProjectRoot(root); got != root {
		t.Errorf("FindProjectRoot(root) = %q, want %q", got, root)
	}
}

func TestFindProjectRoot_NoMarker(t *testing.T) {
	tmp := t.TempDir()
	dir, err := filepath.EvalSymlinks(tmp)
	if err != nil {
		t.Fatal(err)
	}

	got := FindProjectRoot(dir)
	// A marker higher up (e.g. a checkout containing the temp dir) may win;
	// otherwise the start dir comes back.
	if got != dir && !isAncestor(got, dir) {
		t.Errorf("FindProjectRoot(%q) = %q", dir, got)
	}
}

func isAncestor(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	return err == nil && rel != "." && rel != ".." && !filepath.IsAbs(rel) && rel[0] != '.'
}
