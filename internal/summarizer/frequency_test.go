package summarizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_LimitsSentences(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Penicillin treats bacterial infections. Aspirin reduces fever. Insulin regulates blood sugar. Ibuprofen reduces inflammation. Paracetamol relieves mild pain."
	summary, err := s.Summarize(text, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(summary, "."))
}

func TestSummarize_KeepsOriginalOrder(t *testing.T) {
	s := NewFrequencySummarizer()
	text := "Fever responds to aspirin. Unrelated filler sentence here. Aspirin and fever again together."
	summary, err := s.Summarize(text, 2)
	require.NoError(t, err)

	first := strings.Index(summary, "Fever responds")
	second := strings.Index(summary, "Aspirin and fever")
	require.GreaterOrEqual(t, first, 0)
	require.GreaterOrEqual(t, second, 0)
	assert.Less(t, first, second)
}

func TestSummarize_FewerSentencesThanLimit(t *testing.T) {
	s := NewFrequencySummarizer()
	summary, err := s.Summarize("Only one sentence here.", 3)
	require.NoError(t, err)
	assert.Equal(t, "Only one sentence here.", summary)
}

func TestSummarize_NoSentencePunctuation(t *testing.T) {
	s := NewFrequencySummarizer()
	summary, err := s.Summarize("  fragment without terminator  ", 3)
	require.NoError(t, err)
	assert.Equal(t, "fragment without terminator", summary)
}

func TestSummarize_DefaultLimit(t *testing.T) {
	s := NewFrequencySummarizer()
	text := strings.Repeat("One sentence about medicine. ", 10)
	summary, err := s.Summarize(text, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(summary, "."))
}
