package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/hooks/errors"
)

func TestValidateMissingFields(t *testing.T) {
	tests := []struct {
		name     string
		document string
		wantCode errors.ErrorCode
	}{
		{
			name: "missing rev",
			document: `
repos:
  - repo: https://github.com/psf/black
    hooks:
      - id: black
`,
			wantCode: errors.ErrCodeSchemaValidation,
		},
		{
			name: "missing repo url",
			document: `
repos:
  - rev: 22.3.0
    hooks:
      - id: black
`,
			wantCode: errors.ErrCodeSchemaValidation,
		},
		{
			name: "missing hook id",
			document: `
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - args: ["--check"]
`,
			wantCode: errors.ErrCodeSchemaValidation,
		},
		{
			name:     "no repos at all",
			document: `files: ^openff`,
			wantCode: errors.ErrCodeSchemaValidation,
		},
		{
			name: "duplicate hook id within a source",
			document: `
repos:
  - repo: https://github.com/nbQA-dev/nbQA
    rev: 1.3.1
    hooks:
      - id: nbqa-black
      - id: nbqa-black
`,
			wantCode: errors.ErrCodeSchemaValidation,
		},
		{
			name: "invalid top-level filter",
			document: `
files: "(["
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
`,
			wantCode: errors.ErrCodeFilterCompile,
		},
		{
			name: "invalid hook filter",
			document: `
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: black
        files: "*invalid"
`,
			wantCode: errors.ErrCodeFilterCompile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.document))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err), "err: %v", err)
		})
	}
}

func TestValidateDuplicateIDsAcrossSourcesAllowed(t *testing.T) {
	doc := `
repos:
  - repo: https://github.com/psf/black
    rev: 22.3.0
    hooks:
      - id: check
  - repo: https://github.com/PyCQA/isort
    rev: 5.10.1
    hooks:
      - id: check
`
	_, err := LoadFromBytes([]byte(doc))
	require.NoError(t, err, "duplicate ids across sources should be allowed")
}
