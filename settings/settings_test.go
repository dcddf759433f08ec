package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFile(t *testing.T) {
	s, err := LoadFrom(filepath.Join(t.TempDir(), "settings.toml"))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if s.Jobs != 0 || s.Color != nil || s.Theme != "" {
		t.Errorf("expected zero settings, got %+v", s)
	}
	if !s.ColorEnabled() {
		t.Error("ColorEnabled() should default to true")
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	content := "jobs = 4\ncolor = false\ntheme = \"kanagawa\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if s.Jobs != 4 {
		t.Errorf("Jobs = %d, want 4", s.Jobs)
	}
	if s.ColorEnabled() {
		t.Error("ColorEnabled() = true, want false")
	}
	if s.Theme != "kanagawa" {
		t.Errorf("Theme = %q, want kanagawa", s.Theme)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte("jobs = [not toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestDefaultPathHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "grove-hooks", "settings.toml")
	if path != want {
		t.Errorf("DefaultPath() = %q, want %q", path, want)
	}
}
