package deck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phrazzld/deckforge/internal/deck/pptx"
	"github.com/phrazzld/deckforge/internal/domain"
)

// Builder turns outlines into .pptx files.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(logger *slog.Logger) (*Builder, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Builder{logger: logger.With("component", "deck_builder")}, nil
}

// Assemble builds the in-memory presentation: a title slide showing
// spec.MainTitle, then one slide per unit in order.
func Assemble(spec domain.DeckSpec, outline []domain.SlideUnit) (*pptx.Presentation, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	titleFont := pptx.Font{Size: spec.TitleFontSize}
	bodyFont := pptx.Font{Size: spec.BodyFontSize, Color: spec.BodyColor.Hex()}

	pres := pptx.New(spec.MainTitle)
	pres.AddTitleSlide(spec.MainTitle, titleFont)

	for i, unit := range outline {
		if err := unit.Validate(); err != nil {
			return nil, fmt.Errorf("slide %d: %w", i+1, err)
		}
		slide := pres.AddContentSlide(unit.Title, titleFont)
		for _, frag := range BodyFragments(unit.Body) {
			slide.Body.AddParagraph(frag, bodyFont)
		}
	}
	return pres, nil
}

// Build assembles the deck and persists it at path, replacing any existing
// file. It returns the absolute path of the written file.
func (b *Builder) Build(ctx context.Context, spec domain.DeckSpec, outline []domain.SlideUnit, path string) (string, error) {
	pres, err := Assemble(spec, outline)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%w: resolve %s: %v", domain.ErrPersistenceFailure, path, err)
	}

	if err := writeAtomic(abs, pres); err != nil {
		b.logger.ErrorContext(ctx, "failed to persist deck", "path", abs, "error", err)
		return "", err
	}

	b.logger.InfoContext(ctx, "deck written",
		"path", abs,
		"slides", len(pres.Slides))
	return abs, nil
}

// writeAtomic writes w to a temporary file next to path, syncs it and renames
// it over path. On failure the temporary file is removed.
func writeAtomic(path string, w io.WriterTo) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create directory %s: %v", domain.ErrPersistenceFailure, dir, err)
	}

	tmpName := filepath.Join(dir, "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	f, err := os.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create temporary file: %v", domain.ErrPersistenceFailure, err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = w.WriteTo(f); err != nil {
		return fmt.Errorf("%w: write deck: %w", domain.ErrPersistenceFailure, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("%w: sync deck: %v", domain.ErrPersistenceFailure, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: close deck: %v", domain.ErrPersistenceFailure, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: rename into place: %v", domain.ErrPersistenceFailure, err)
	}
	return nil
}
