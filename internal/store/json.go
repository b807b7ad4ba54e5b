package store

import (
	"encoding/json"

	"lifehub/spending/internal/models"
)

// The trends and recommendations sequences live in a single JSON text column
// each. Writes are strict; reads are deliberately lossy: a column that no
// longer parses comes back as an empty sequence instead of failing the whole
// history read.

// MarshalTrends serializes trends for storage. A nil or empty slice stores
// as the empty JSON array.
func MarshalTrends(trends []models.Trend) (string, error) {
	if len(trends) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(trends)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalTrends deserializes a stored trends column. Malformed JSON yields
// an empty slice.
func UnmarshalTrends(data string) []models.Trend {
	if data == "" {
		return []models.Trend{}
	}
	var trends []models.Trend
	if err := json.Unmarshal([]byte(data), &trends); err != nil {
		return []models.Trend{}
	}
	if trends == nil {
		return []models.Trend{}
	}
	return trends
}

// MarshalRecommendations serializes recommendations for storage.
func MarshalRecommendations(recs []models.Recommendation) (string, error) {
	if len(recs) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(recs)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// UnmarshalRecommendations deserializes a stored recommendations column.
// Malformed JSON yields an empty slice.
func UnmarshalRecommendations(data string) []models.Recommendation {
	if data == "" {
		return []models.Recommendation{}
	}
	var recs []models.Recommendation
	if err := json.Unmarshal([]byte(data), &recs); err != nil {
		return []models.Recommendation{}
	}
	if recs == nil {
		return []models.Recommendation{}
	}
	return recs
}
