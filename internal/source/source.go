package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/phrazzld/deckforge/internal/domain"
)

// Loader reads the text behind a reference such as a path or URL.
type Loader interface {
	Load(ctx context.Context, ref string) (string, error)
}

// Resolver dispatches references to the web loader for http(s) URLs and to
// the file loader for everything else.
type Resolver struct {
	Files *FileLoader
	Web   *WebLoader
}

var _ Loader = (*Resolver)(nil)

// NewResolver creates a Resolver from the two loaders.
func NewResolver(files *FileLoader, web *WebLoader) *Resolver {
	return &Resolver{Files: files, Web: web}
}

// IsURL reports whether ref names a web page.
func IsURL(ref string) bool {
	lower := strings.ToLower(strings.TrimSpace(ref))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Resolve returns the loader responsible for ref.
func (r *Resolver) Resolve(ref string) (Loader, error) {
	if IsURL(ref) {
		if r.Web == nil {
			return nil, fmt.Errorf("%w: web sources are not enabled", domain.ErrSourceUnavailable)
		}
		return r.Web, nil
	}
	if r.Files == nil {
		return nil, fmt.Errorf("%w: file sources are not enabled", domain.ErrSourceUnavailable)
	}
	return r.Files, nil
}

// Load implements Loader.
func (r *Resolver) Load(ctx context.Context, ref string) (string, error) {
	loader, err := r.Resolve(ref)
	if err != nil {
		return "", err
	}
	return loader.Load(ctx, strings.TrimSpace(ref))
}

// joinBlocks joins non-empty, whitespace-trimmed blocks with newlines.
func joinBlocks(blocks []string) string {
	kept := blocks[:0:0]
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n")
}

// collapseSpace replaces every run of whitespace with a single space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
