package tfidf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepare_EmptyCorpus(t *testing.T) {
	e := NewEmbedder()
	require.Error(t, e.Prepare(nil))
	require.Error(t, e.Prepare([]string{"the and or", "to of in"}))
}

func TestEmbed_Unprepared(t *testing.T) {
	e := NewEmbedder()
	_, err := e.Embed("anything")
	require.Error(t, err)
}

func TestPrepare_Dimension(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"penicillin treats infection", "aspirin reduces fever"}))
	assert.Equal(t, 6, e.Dimension())
}

func TestEmbed_Normalized(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"penicillin treats infection", "aspirin reduces fever"}))

	vec, err := e.Embed("penicillin treats infection")
	require.NoError(t, err)
	require.Len(t, vec, e.Dimension())

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestEmbed_UnknownTokens(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"penicillin treats infection"}))

	vec, err := e.Embed("completely unrelated words")
	require.NoError(t, err)
	for _, v := range vec {
		assert.Zero(t, v)
	}
}

func TestEmbed_SimilarityOrdering(t *testing.T) {
	e := NewEmbedder()
	corpus := []string{
		"penicillin treats bacterial infection",
		"aspirin reduces fever and pain",
		"insulin regulates blood sugar",
	}
	require.NoError(t, e.Prepare(corpus))

	query, err := e.Embed("fever reducer medication pain")
	require.NoError(t, err)

	scores := make([]float64, len(corpus))
	for i, doc := range corpus {
		vec, err := e.Embed(doc)
		require.NoError(t, err)
		scores[i] = dot(query, vec)
	}
	assert.Greater(t, scores[1], scores[0])
	assert.Greater(t, scores[1], scores[2])
}

func TestEmbed_CaseInsensitive(t *testing.T) {
	e := NewEmbedder()
	require.NoError(t, e.Prepare([]string{"Penicillin Treats Infection"}))

	lower, err := e.Embed("penicillin")
	require.NoError(t, err)
	upper, err := e.Embed("PENICILLIN")
	require.NoError(t, err)
	assert.Equal(t, lower, upper)
}

func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
