package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifehub/spending/internal/models"
)

func TestMarshalTrendsEmpty(t *testing.T) {
	for _, trends := range [][]models.Trend{nil, {}} {
		data, err := MarshalTrends(trends)
		require.NoError(t, err)
		assert.Equal(t, "[]", data)
	}
}

func TestTrendsRoundTrip(t *testing.T) {
	trends := []models.Trend{
		{Type: "increase", Category: "Food", Change: "+45%", Description: "배달 앱 결제가 주말마다 반복됨"},
		{Type: "stable", Category: "Transport", Change: "0%", Description: "교통비 방어 성공"},
	}

	data, err := MarshalTrends(trends)
	require.NoError(t, err)
	assert.Equal(t, trends, UnmarshalTrends(data))
}

func TestUnmarshalTrendsLossyFallback(t *testing.T) {
	// A corrupted column must read back as an empty sequence, never as an
	// error that fails the whole history read.
	for _, data := range []string{"", "not json", `{"wrong": "shape"`, "null"} {
		trends := UnmarshalTrends(data)
		assert.NotNil(t, trends)
		assert.Empty(t, trends)
	}
}

func TestRecommendationsRoundTrip(t *testing.T) {
	recs := []models.Recommendation{
		{Title: "배달 앱 삭제", Description: "앱을 지우고 밀키트를 주문하세요.", Priority: "high"},
	}

	data, err := MarshalRecommendations(recs)
	require.NoError(t, err)
	assert.Equal(t, recs, UnmarshalRecommendations(data))
}

func TestUnmarshalRecommendationsLossyFallback(t *testing.T) {
	for _, data := range []string{"", "oops", "null"} {
		recs := UnmarshalRecommendations(data)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	}
}
