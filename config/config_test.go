package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `
ci:
  autoupdate_schedule: quarterly
files: ^openff|(^examples/((?!deprecated).)*$)
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        files: ^openff
  - repo: https://github.com/PyCQA/isort
    rev: 5.10.1
    hooks:
      - id: isort
        args: ["--profile", "black"]
  - repo: https://github.com/nbQA-dev/nbQA
    rev: 1.3.1
    hooks:
      - id: nbqa-black
        args: ["--nbqa-mutate"]
        additional_dependencies: ["black==22.3.0"]
      - id: nbqa-isort
        args: ["--nbqa-mutate"]
        additional_dependencies: ["isort==5.10.1"]
`

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, "quarterly", cfg.CI.AutoupdateSchedule)
	require.Len(t, cfg.Repos, 3)
	assert.Equal(t, "22.3.0", cfg.Repos[0].Rev)

	// Name defaults to id
	assert.Equal(t, "nbqa-black", cfg.Repos[2].Hooks[0].Name)
	assert.Equal(t, []string{"black==22.3.0"}, cfg.Repos[2].Hooks[0].AdditionalDependencies)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".hooks.yml"))
	require.Error(t, err, "Load() of missing file should fail")
}

func TestFindConfigFileWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	configPath := filepath.Join(root, ".hooks.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(sampleDocument), 0o644))

	found, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, configPath, found)
}

func TestFindConfigFilePrefersDotfile(t *testing.T) {
	dir := t.TempDir()
	dotted := filepath.Join(dir, ".hooks.yml")
	plain := filepath.Join(dir, "hooks.yml")
	for _, p := range []string{dotted, plain} {
		require.NoError(t, os.WriteFile(p, []byte(sampleDocument), 0o644))
	}

	found, err := FindConfigFile(dir)
	require.NoError(t, err)
	assert.Equal(t, dotted, found, "the dotted variant wins")
}

func TestUnmarshalExtension(t *testing.T) {
	doc := `
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
extensions:
  logging:
    level: debug
    file:
      enabled: true
`
	cfg, err := LoadFromBytes([]byte(doc))
	require.NoError(t, err)

	type fileCfg struct {
		Enabled bool `yaml:"enabled"`
	}
	type logCfg struct {
		Level string  `yaml:"level"`
		File  fileCfg `yaml:"file"`
	}

	var lc logCfg
	require.NoError(t, cfg.UnmarshalExtension("logging", &lc))
	assert.Equal(t, "debug", lc.Level)
	assert.True(t, lc.File.Enabled)

	// Absent keys leave the target zero-valued without error
	var missing logCfg
	require.NoError(t, cfg.UnmarshalExtension("editor", &missing))
	assert.Empty(t, missing.Level)
}
