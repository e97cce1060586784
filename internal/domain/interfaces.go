package domain

// UploadedFile is a named file whose content has been fully buffered.
// Extraction never touches the original source again.
type UploadedFile struct {
	Name string
	Data []byte
}

// Document represents the plain text extracted from one uploaded file.
type Document struct {
	ID      string
	Name    string
	Content string
}

// Chunk is a bounded-length piece of a document used for indexing.
type Chunk struct {
	DocumentID string
	ChunkID    string
	Text       string
	Index      int
}

// SearchResult represents a matching chunk with a relevance score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is one entry in the per-session chat history.
type ConversationTurn struct {
	ID        string
	Role      Role
	Content   string
	Timestamp string
}

// Embedder converts free text into a numeric vector representation.
// Implementations may require a preparation phase over the corpus.
// Index build and query must go through the same Embedder instance.
type Embedder interface {
	Name() string
	Prepare(corpus []string) error
	Dimension() int
	Embed(text string) ([]float64, error)
}

// TextExtractor converts one uploaded file into plain text.
type TextExtractor interface {
	Extract(file UploadedFile) (string, error)
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}

// VectorStore persists vectors and supports similarity search.
type VectorStore interface {
	Init(dimension int) error
	Upsert(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
	Clear() error
}

// ChatModel generates a text completion for a fully composed prompt.
// The call is synchronous; failures are surfaced to the caller untouched.
type ChatModel interface {
	Name() string
	Generate(prompt string) (string, error)
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// Assistant defines the operations exposed by the application core.
type Assistant interface {
	ProcessPaths(paths []string) (summary string, err error)
	ProcessFiles(files []UploadedFile) (summary string, err error)
	Ask(question string) (ConversationTurn, error)
	History() []ConversationTurn
	Ready() bool
}
