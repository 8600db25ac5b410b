// Package fontsrc locates FIGfont data outside the process: font files on a
// filesystem or behind an HTTP base URL, plus the list of available names.
package fontsrc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
)

// FontExt is the file extension of FIGfont files
const FontExt = ".flf"

// maxFontSize bounds how much of a response body is read
const maxFontSize = 16 << 20

// ErrNotFound is returned by a Provider that has no font of the requested name
var ErrNotFound = errors.New("font source: not found")

// Provider fetches the raw bytes of a named font.
type Provider interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// CleanPath validates and cleans a path for use with fs.FS.
// It rejects absolute paths, backslashes and any attempt to leave the root.
func CleanPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		// rejects ".", ".." segments, empty elements, etc.
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// FSProvider reads "<name>.flf" from a filesystem.
type FSProvider struct {
	fsys fs.FS
}

// NewFSProvider returns a provider reading fonts from the root of fsys.
func NewFSProvider(fsys fs.FS) *FSProvider {
	return &FSProvider{fsys: fsys}
}

// Fetch implements Provider.
func (p *FSProvider) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.fsys == nil {
		return nil, fmt.Errorf("%w: %s (no filesystem)", ErrNotFound, name)
	}

	clean, err := CleanPath(name + FontExt)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	data, err := fs.ReadFile(p.fsys, clean)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", clean, err)
	}
	return data, nil
}

// HTTPProvider fetches "<base>/<name>.flf" over HTTP.
type HTTPProvider struct {
	baseURL string
	client  *http.Client
}

// NewHTTPProvider returns a provider rooted at baseURL. A nil client means
// http.DefaultClient.
func NewHTTPProvider(baseURL string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// URL returns the address a font is fetched from.
func (p *HTTPProvider) URL(name string) string {
	return p.baseURL + "/" + url.PathEscape(name) + FontExt
}

// Fetch implements Provider. A 404 response maps to ErrNotFound.
func (p *HTTPProvider) Fetch(ctx context.Context, name string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.URL(name), nil)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching font %q: %w", name, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, req.URL)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("fetching font %q: unexpected status %s", name, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize))
	if err != nil {
		return nil, fmt.Errorf("reading font %q: %w", name, err)
	}
	return data, nil
}

// Chain tries each provider in order, moving on only when a provider reports
// ErrNotFound.
type Chain []Provider

// Fetch implements Provider.
func (c Chain) Fetch(ctx context.Context, name string) ([]byte, error) {
	for _, p := range c {
		data, err := p.Fetch(ctx, name)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		return data, err
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}
