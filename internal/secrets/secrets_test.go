// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  map[string]string
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "mindsdb-api-key", "  mk_abc123  \n")
				writeFile(t, dir, "gemini-api-key", "gk_xyz789")
				return dir
			},
			want: map[string]string{
				"mindsdb-api-key": "mk_abc123",
				"gemini-api-key":  "gk_xyz789",
			},
		},
		{
			name: "empty store for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: map[string]string{},
		},
		{
			name: "skips empty files and dotfiles",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, "mindsdb-api-key", "valid-key")
				writeFile(t, dir, "empty-key", "   \n\t  ")
				writeFile(t, dir, ".gitkeep", "ignored")
				return dir
			},
			want: map[string]string{
				"mindsdb-api-key": "valid-key",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.values)
		})
	}
}

func TestResolvePrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mindsdb-api-key", "from-file")
	s, err := Load(dir)
	require.NoError(t, err)

	// Flag wins over everything.
	t.Setenv("KBCTL_API_KEY", "from-env")
	assert.Equal(t, "from-flag", s.Resolve("from-flag", "mindsdb-api-key", "KBCTL_API_KEY"))

	// Environment wins over the file, first env var wins over the second.
	t.Setenv("MINDSDB_API_KEY", "from-alias-env")
	assert.Equal(t, "from-env", s.Resolve("", "mindsdb-api-key", "KBCTL_API_KEY", "MINDSDB_API_KEY"))

	// File is the last resort.
	t.Setenv("KBCTL_API_KEY", "")
	t.Setenv("MINDSDB_API_KEY", "")
	assert.Equal(t, "from-file", s.Resolve("", "mindsdb-api-key", "KBCTL_API_KEY", "MINDSDB_API_KEY"))

	// Nothing anywhere resolves to empty.
	assert.Equal(t, "", s.Resolve("", "gemini-api-key", "KBCTL_GEMINI_API_KEY"))
}

func TestKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mindsdb-api-key", "a")
	writeFile(t, dir, "gemini-api-key", "b")
	s, err := Load(dir)
	require.NoError(t, err)

	keys := s.Keys()
	sort.Strings(keys)
	assert.Equal(t, []string{"gemini-api-key", "mindsdb-api-key"}, keys)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
