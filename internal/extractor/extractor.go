// Package extractor converts uploaded files into plain text.
// The format is decided once per file from its name; each format maps
// to exactly one extraction strategy.
package extractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"medichat/internal/domain"
)

// Kind tags the extraction strategy chosen for a file.
type Kind string

const (
	KindPlainText     Kind = "text"
	KindPDF           Kind = "pdf"
	KindDocx          Kind = "docx"
	KindVTT           Kind = "vtt"
	KindChatRecording Kind = "recording"
	KindUnsupported   Kind = "unsupported"
)

// SupportedExtensions lists the file extensions with an extraction rule.
var SupportedExtensions = []string{".txt", ".pdf", ".docx", ".md", ".vtt"}

// Detect maps a file name to its extraction Kind. Extension rules are
// checked first (case-insensitive); files without a matching extension
// whose name contains "Recording" are treated as chat exports.
func Detect(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md":
		return KindPlainText
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDocx
	case ".vtt":
		return KindVTT
	}
	if strings.Contains(filepath.Base(name), "Recording") {
		return KindChatRecording
	}
	return KindUnsupported
}

// Extractor turns buffered file bytes into plain text. It holds no state;
// a single instance can process any number of files.
type Extractor struct{}

func New() *Extractor { return &Extractor{} }

// Extract returns the plain text content of the file, or an
// *domain.ExtractionError describing why the file contributes nothing.
func (e *Extractor) Extract(file domain.UploadedFile) (string, error) {
	kind := Detect(file.Name)

	var (
		text string
		err  error
	)
	switch kind {
	case KindPlainText:
		text = string(file.Data)
	case KindPDF:
		text, err = extractPDF(file.Data)
	case KindDocx:
		text, err = extractDocx(file.Data)
	case KindVTT:
		text = extractVTT(file.Data)
	case KindChatRecording:
		text = extractChatRecording(file.Data)
	default:
		return "", &domain.ExtractionError{Name: file.Name, Format: string(kind), Err: domain.ErrUnsupportedFormat}
	}
	if err != nil {
		return "", &domain.ExtractionError{Name: file.Name, Format: string(kind), Err: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &domain.ExtractionError{Name: file.Name, Format: string(kind), Err: domain.ErrNoText}
	}
	return text, nil
}

var vttTimestampRe = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}$`)

// extractVTT keeps only cue text lines: the WEBVTT header, timestamp
// ranges, numeric cue indices and blank lines are dropped.
func extractVTT(data []byte) string {
	var kept []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "WEBVTT") {
			continue
		}
		if vttTimestampRe.MatchString(line) || isAllDigits(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}

// extractChatRecording parses tab-separated chat exports of the form
// timestamp\tspeaker\tmessage, keeping only the message bodies.
func extractChatRecording(data []byte) string {
	var messages []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !strings.Contains(line, "\t") {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		if msg := strings.TrimSpace(parts[2]); msg != "" {
			messages = append(messages, msg)
		}
	}
	return strings.Join(messages, " ")
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
