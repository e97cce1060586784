package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medichat/internal/domain"
	"medichat/internal/embedding/tfidf"
)

func TestInit_InvalidDimension(t *testing.T) {
	s := NewStorage()
	require.Error(t, s.Init(0))
	require.Error(t, s.Init(-3))
}

func TestInit_DropsData(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{{ChunkID: "a:0", Text: "old"}},
		[][]float64{{1, 0}},
	))
	require.NoError(t, s.Init(2))

	results, err := s.Search([]float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestUpsert_LengthMismatch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	err := s.Upsert([]domain.Chunk{{ChunkID: "a:0"}}, nil)
	require.Error(t, err)
}

func TestUpsert_DimensionMismatch(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(3))
	err := s.Upsert([]domain.Chunk{{ChunkID: "a:0"}}, [][]float64{{1, 0}})
	require.Error(t, err)
}

func TestSearch_Ordering(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{
			{ChunkID: "a:0", Text: "far"},
			{ChunkID: "a:1", Text: "near"},
			{ChunkID: "a:2", Text: "middle"},
		},
		[][]float64{{0, 1}, {1, 0}, {0.7, 0.7}},
	))

	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a:1", results[0].Chunk.ChunkID)
	assert.Equal(t, "a:2", results[1].Chunk.ChunkID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_TiesKeepInsertionOrder(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{{ChunkID: "a:0"}, {ChunkID: "a:1"}},
		[][]float64{{1, 0}, {1, 0}},
	))

	results, err := s.Search([]float64{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a:0", results[0].Chunk.ChunkID)
	assert.Equal(t, "a:1", results[1].Chunk.ChunkID)
}

func TestSearch_TopKLargerThanCorpus(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{{ChunkID: "a:0"}},
		[][]float64{{1, 0}},
	))

	results, err := s.Search([]float64{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestSearch_EmptyStore(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	results, err := s.Search([]float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}

// Round-trip with the TF-IDF embedder: the chunk about fever must rank
// first for a fever query.
func TestSearch_TFIDFRoundTrip(t *testing.T) {
	chunks := []domain.Chunk{
		{DocumentID: "d1", ChunkID: "d1:0", Text: "penicillin treats bacterial infection"},
		{DocumentID: "d2", ChunkID: "d2:0", Text: "aspirin reduces fever and pain"},
	}
	corpus := make([]string, len(chunks))
	for i, c := range chunks {
		corpus[i] = c.Text
	}

	emb := tfidf.NewEmbedder()
	require.NoError(t, emb.Prepare(corpus))

	s := NewStorage()
	require.NoError(t, s.Init(emb.Dimension()))

	vectors := make([][]float64, len(chunks))
	for i, c := range chunks {
		v, err := emb.Embed(c.Text)
		require.NoError(t, err)
		vectors[i] = v
	}
	require.NoError(t, s.Upsert(chunks, vectors))

	query, err := emb.Embed("what reduces fever")
	require.NoError(t, err)
	results, err := s.Search(query, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "d2:0", results[0].Chunk.ChunkID)
	assert.Greater(t, results[0].Score, 0.0)
}

func TestClear(t *testing.T) {
	s := NewStorage()
	require.NoError(t, s.Init(2))
	require.NoError(t, s.Upsert(
		[]domain.Chunk{{ChunkID: "a:0"}},
		[][]float64{{1, 0}},
	))
	require.NoError(t, s.Clear())

	results, err := s.Search([]float64{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, results)
}
