// Package service implements the session orchestrator: it owns the
// per-session vector index and conversation history and sequences
// upload, ingestion, indexing and chat.
package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medichat/internal/domain"
)

// Config tunes the orchestrator. Zero values pick the defaults.
type Config struct {
	TopK                int
	SummaryMaxSentences int
}

// Assistant is the session orchestrator. A session starts empty; a
// successful ProcessFiles builds the index and makes the session ready
// for retrieval-augmented chat. It is not safe for concurrent use: one
// instance belongs to exactly one session.
type Assistant struct {
	extractor  domain.TextExtractor
	chunker    domain.Chunker
	embedder   domain.Embedder
	store      domain.VectorStore
	chat       domain.ChatModel
	summarizer domain.Summarizer
	logger     *zap.Logger

	topK                int
	summaryMaxSentences int

	ready   bool
	history []domain.ConversationTurn
}

func New(ex domain.TextExtractor, ch domain.Chunker, emb domain.Embedder, store domain.VectorStore, chat domain.ChatModel, sum domain.Summarizer, logger *zap.Logger, cfg Config) *Assistant {
	if cfg.TopK <= 0 {
		cfg.TopK = 4
	}
	if cfg.SummaryMaxSentences <= 0 {
		cfg.SummaryMaxSentences = 3
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		extractor:           ex,
		chunker:             ch,
		embedder:            emb,
		store:               store,
		chat:                chat,
		summarizer:          sum,
		logger:              logger,
		topK:                cfg.TopK,
		summaryMaxSentences: cfg.SummaryMaxSentences,
	}
}

// Ready reports whether documents have been processed for this session.
func (a *Assistant) Ready() bool { return a.ready }

// ProcessPaths expands globs, reads each file fully into memory and
// hands the buffered files to ProcessFiles. Unreadable files are logged
// and skipped.
func (a *Assistant) ProcessPaths(paths []string) (string, error) {
	var files []domain.UploadedFile
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				a.logger.Warn("skipping unreadable file", zap.String("file", m), zap.Error(err))
				continue
			}
			files = append(files, domain.UploadedFile{Name: filepath.Base(m), Data: data})
		}
	}
	return a.ProcessFiles(files)
}

// ProcessFiles runs the full ingestion pipeline: extract per file (log
// and skip failures), chunk, embed, then replace the session index. The
// swap is all-or-nothing; if no text survives extraction and chunking the
// session keeps its previous state and ErrEmptyCorpus is returned.
func (a *Assistant) ProcessFiles(files []domain.UploadedFile) (string, error) {
	var (
		docs   []domain.Document
		corpus strings.Builder
	)
	for _, f := range files {
		text, err := a.extractor.Extract(f)
		if err != nil {
			a.logger.Warn("skipping file", zap.String("file", f.Name), zap.Error(err))
			continue
		}
		docs = append(docs, domain.Document{ID: hashString(f.Name), Name: f.Name, Content: text})
		corpus.WriteString("\n")
		corpus.WriteString(text)
	}

	var (
		allChunks []domain.Chunk
		texts     []string
	)
	for _, d := range docs {
		chunks, err := a.chunker.Chunk(d)
		if err != nil {
			return "", fmt.Errorf("chunk %s: %w", d.Name, err)
		}
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			texts = append(texts, ch.Text)
		}
	}
	if len(allChunks) == 0 {
		return "", domain.ErrEmptyCorpus
	}

	// Embed everything before touching the store so a remote failure
	// cannot leave a half-replaced index.
	if err := a.embedder.Prepare(texts); err != nil {
		return "", fmt.Errorf("prepare embedder: %w", err)
	}
	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		vec, err := a.embedder.Embed(allChunks[i].Text)
		if err != nil {
			return "", fmt.Errorf("embed chunk %d: %w", i, err)
		}
		vectors[i] = vec
	}
	dimension := a.embedder.Dimension()
	if dimension == 0 {
		dimension = len(vectors[0])
	}

	a.ready = false
	if err := a.store.Init(dimension); err != nil {
		return "", fmt.Errorf("init store: %w", err)
	}
	if err := a.store.Clear(); err != nil {
		return "", fmt.Errorf("clear store: %w", err)
	}
	if err := a.store.Upsert(allChunks, vectors); err != nil {
		return "", fmt.Errorf("index chunks: %w", err)
	}
	a.ready = true
	a.logger.Info("documents processed",
		zap.Int("files", len(files)),
		zap.Int("documents", len(docs)),
		zap.Int("chunks", len(allChunks)),
		zap.Int("dimension", dimension),
	)

	summary, err := a.summarizer.Summarize(corpus.String(), a.summaryMaxSentences)
	if err != nil {
		a.logger.Warn("summarization failed", zap.Error(err))
		summary = ""
	}
	return summary, nil
}

// Ask records the question, answers it from the indexed documents and
// records the answer. Before any successful processing the fixed
// not-ready notice is returned without calling any collaborator. A
// retrieval or generation failure is recorded as the assistant turn and
// also returned so the caller can surface it.
func (a *Assistant) Ask(question string) (domain.ConversationTurn, error) {
	a.record(domain.RoleUser, question)
	if !a.ready {
		return a.record(domain.RoleAssistant, domain.NotReadyNotice), nil
	}
	answer, err := a.answer(question)
	if err != nil {
		a.logger.Error("chat turn failed", zap.Error(err))
		return a.record(domain.RoleAssistant, "I couldn't answer that: "+err.Error()), err
	}
	return a.record(domain.RoleAssistant, answer), nil
}

// History returns the conversation so far, oldest first.
func (a *Assistant) History() []domain.ConversationTurn {
	out := make([]domain.ConversationTurn, len(a.history))
	copy(out, a.history)
	return out
}

func (a *Assistant) answer(question string) (string, error) {
	vec, err := a.embedder.Embed(question)
	if err != nil {
		return "", fmt.Errorf("embed query: %w", err)
	}
	results, err := a.store.Search(vec, a.topK)
	if err != nil {
		return "", fmt.Errorf("search index: %w", err)
	}
	chunks := make([]string, 0, len(results))
	for _, r := range results {
		chunks = append(chunks, r.Chunk.Text)
	}
	answer, err := a.chat.Generate(buildPrompt(question, chunks))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}
	return answer, nil
}

func (a *Assistant) record(role domain.Role, content string) domain.ConversationTurn {
	turn := domain.ConversationTurn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format("15:04"),
	}
	a.history = append(a.history, turn)
	return turn
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
