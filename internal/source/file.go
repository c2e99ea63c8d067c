package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/phrazzld/deckforge/internal/domain"
)

// MaxFileSize bounds the size of documents read from disk.
const MaxFileSize = 32 << 20

// FileLoader reads plain text, Markdown and Word documents from disk.
type FileLoader struct {
	logger *slog.Logger
}

var _ Loader = (*FileLoader)(nil)

// NewFileLoader creates a FileLoader.
func NewFileLoader(logger *slog.Logger) *FileLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileLoader{logger: logger.With("component", "file_loader")}
}

// Load reads the document at path and returns its text. The format is chosen
// by extension: .docx, .md/.markdown, and anything else as UTF-8 text.
func (l *FileLoader) Load(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrSourceUnavailable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", domain.ErrSourceUnavailable, path)
	}
	if info.Size() > MaxFileSize {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", domain.ErrSourceUnavailable, path, MaxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text string
	switch ext {
	case ".docx":
		text, err = readDocx(path)
	case ".md", ".markdown":
		var raw []byte
		if raw, err = os.ReadFile(path); err == nil {
			text = markdownText(raw)
		}
	default:
		var raw []byte
		if raw, err = os.ReadFile(path); err == nil {
			if !utf8.Valid(raw) {
				err = fmt.Errorf("unsupported file type %q: content is not UTF-8 text", ext)
			} else {
				text = plainText(raw)
			}
		}
	}
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", domain.ErrSourceUnavailable, path, err)
	}

	l.logger.DebugContext(ctx, "document loaded",
		"path", path,
		"format", ext,
		"characters", utf8.RuneCountInString(text))
	return text, nil
}

func plainText(raw []byte) string {
	s := strings.TrimPrefix(string(raw), "\ufeff")
	return strings.ReplaceAll(s, "\r\n", "\n")
}
