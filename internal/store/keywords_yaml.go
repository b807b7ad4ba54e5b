package store

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLKeywordStore loads the keyword seed file. The file maps merchant-name
// fragments to categories:
//
//	keywords:
//	  스타벅스: Food
//	  CGV: Entertainment
type YAMLKeywordStore struct {
	Path string
}

// NewYAMLKeywordStore returns a keyword store over the given file.
func NewYAMLKeywordStore(path string) *YAMLKeywordStore {
	return &YAMLKeywordStore{Path: path}
}

type keywordFile struct {
	Keywords map[string]string `yaml:"keywords"`
}

// Load reads the keyword file. A missing file yields an empty mapping so a
// fresh installation still categorizes via history and the default.
func (s *YAMLKeywordStore) Load(_ context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading keywords file: %w", err)
	}

	var parsed keywordFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing keywords file %s: %w", s.Path, err)
	}

	// Tolerate a bare top-level mapping without the "keywords" key.
	if parsed.Keywords == nil {
		var bare map[string]string
		if err := yaml.Unmarshal(data, &bare); err == nil && len(bare) > 0 {
			return bare, nil
		}
		return map[string]string{}, nil
	}
	return parsed.Keywords, nil
}
