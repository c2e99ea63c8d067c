package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/phrazzld/deckforge/internal/domain"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Web loader defaults.
const (
	DefaultHTTPTimeout = 20 * time.Second
	DefaultUserAgent   = "deckforge/1.0"
	maxPageSize        = 10 << 20
)

// WebOptions configure a WebLoader.
type WebOptions struct {
	Timeout   time.Duration
	UserAgent string
	// CacheTTL keeps fetched pages for repeated conversions. Zero disables caching.
	CacheTTL time.Duration
	// Client overrides the HTTP client. Its Timeout is left as is.
	Client *http.Client
}

// WebLoader fetches an article and extracts its readable text.
type WebLoader struct {
	client    *http.Client
	userAgent string
	cache     *cache.Cache
	ttl       time.Duration
	logger    *slog.Logger
}

var _ Loader = (*WebLoader)(nil)

// NewWebLoader creates a WebLoader.
func NewWebLoader(opts WebOptions, logger *slog.Logger) *WebLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultHTTPTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	l := &WebLoader{
		client:    client,
		userAgent: opts.UserAgent,
		ttl:       opts.CacheTTL,
		logger:    logger.With("component", "web_loader"),
	}
	if opts.CacheTTL > 0 {
		l.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return l
}

// Load fetches url and returns the text of its paragraphs, headings and list
// items, one per line, in document order.
func (l *WebLoader) Load(ctx context.Context, url string) (string, error) {
	if l.cache != nil {
		if cached, ok := l.cache.Get(url); ok {
			l.logger.DebugContext(ctx, "web page served from cache", "url", url)
			return cached.(string), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: invalid URL %q: %v", domain.ErrSourceUnavailable, url, err)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetch %s: %v", domain.ErrSourceUnavailable, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: fetch %s: unexpected status %s", domain.ErrSourceUnavailable, url, resp.Status)
	}

	text, err := extractText(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", fmt.Errorf("%w: parse %s: %v", domain.ErrSourceUnavailable, url, err)
	}

	l.logger.InfoContext(ctx, "web page loaded",
		"url", url,
		"characters", len(text))

	if l.cache != nil {
		l.cache.Set(url, text, l.ttl)
	}
	return text, nil
}

// textElements are the elements whose text becomes article content.
var textElements = map[atom.Atom]bool{
	atom.P: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
}

// skippedElements never contribute text.
var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
}

func extractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var blocks []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skippedElements[n.DataAtom] {
				return
			}
			if textElements[n.DataAtom] {
				blocks = append(blocks, nodeText(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return joinBlocks(blocks), nil
}

func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.Br {
				b.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return collapseSpace(b.String())
}
