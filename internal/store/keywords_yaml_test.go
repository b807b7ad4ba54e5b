package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeKeywordFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestYAMLKeywordsLoad(t *testing.T) {
	path := writeKeywordFile(t, "keywords:\n  스타벅스: Food\n  CGV: Entertainment\n")

	keywords, err := NewYAMLKeywordStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"스타벅스": "Food", "CGV": "Entertainment"}, keywords)
}

func TestYAMLKeywordsBareMapping(t *testing.T) {
	path := writeKeywordFile(t, "스타벅스: Food\nGS25: Convenience\n")

	keywords, err := NewYAMLKeywordStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Convenience", keywords["GS25"])
}

func TestYAMLKeywordsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	keywords, err := NewYAMLKeywordStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, keywords)
	assert.Empty(t, keywords)
}

func TestYAMLKeywordsMalformed(t *testing.T) {
	path := writeKeywordFile(t, "keywords:\n  - not\n  - a\n  - mapping\n")

	_, err := NewYAMLKeywordStore(path).Load(context.Background())
	assert.Error(t, err)
}
