package chunker

import (
	"strconv"
	"strings"

	"medichat/internal/domain"
)

// CharChunker splits text into character-bounded chunks with a fixed
// overlap between consecutive chunks. A chunk prefers to end on a
// paragraph, sentence or word boundary found within the lookback window
// before the size limit; only when none exists does it cut mid-word.
type CharChunker struct {
	maxChars int
	overlap  int
}

const (
	defaultMaxChars = 1000
	defaultOverlap  = 200
)

func NewCharChunker(maxChars, overlap int) *CharChunker {
	if maxChars <= 0 {
		maxChars = defaultMaxChars
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChars {
		overlap = maxChars / 2
	}
	return &CharChunker{maxChars: maxChars, overlap: overlap}
}

func (c *CharChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	pieces := c.Split(document.Content)
	chunks := make([]domain.Chunk, 0, len(pieces))
	for i, text := range pieces {
		chunks = append(chunks, domain.Chunk{
			DocumentID: document.ID,
			ChunkID:    document.ID + ":" + strconv.Itoa(i),
			Text:       text,
			Index:      i,
		})
	}
	return chunks, nil
}

// Split materializes the full chunk sequence for a text. Text no longer
// than the limit becomes a single chunk equal to the trimmed input;
// empty input yields no chunks.
func (c *CharChunker) Split(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) <= c.maxChars {
		return []string{trimmed}
	}

	lookback := c.maxChars / 5
	var out []string
	start := 0
	for {
		end := start + c.maxChars
		if end >= len(runes) {
			out = append(out, string(runes[start:]))
			break
		}
		cut := boundaryCut(runes, start, end, lookback)
		out = append(out, string(runes[start:cut]))
		next := cut - c.overlap
		if next <= start {
			// no room for overlap without stalling
			next = cut
		}
		start = next
	}
	return out
}

// boundaryCut returns the index to cut at, at or before limit. Boundaries
// are searched from the limit backwards, at most lookback runes, never
// crossing start. Paragraph breaks win over sentence ends, sentence ends
// over spaces.
func boundaryCut(runes []rune, start, limit, lookback int) int {
	floor := limit - lookback
	if floor <= start {
		floor = start + 1
	}
	// paragraph: blank line
	for i := limit - 1; i >= floor; i-- {
		if runes[i] == '\n' && i > 0 && runes[i-1] == '\n' {
			return i + 1
		}
	}
	// sentence: terminator followed by whitespace
	for i := limit - 1; i >= floor; i-- {
		if isSentenceEnd(runes[i]) && i+1 < len(runes) && isSpace(runes[i+1]) {
			return i + 1
		}
	}
	// word
	for i := limit - 1; i >= floor; i-- {
		if isSpace(runes[i]) {
			return i + 1
		}
	}
	return limit
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}
