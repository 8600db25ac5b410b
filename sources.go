package figdriver

import (
	"io/fs"
	"net/http"

	"github.com/ryanlewis/figdriver/internal/fontsrc"
)

// FontProvider fetches the raw bytes of a named font. A provider without the
// font returns an error matching ErrProviderNotFound.
type FontProvider = fontsrc.Provider

// FontLister enumerates the font names available to a Renderer.
type FontLister = fontsrc.Lister

// ErrProviderNotFound is returned by a FontProvider that has no such font
var ErrProviderNotFound = fontsrc.ErrNotFound

// NewFSProvider returns a provider reading "<name>.flf" from the root of fsys.
func NewFSProvider(fsys fs.FS) FontProvider {
	return fontsrc.NewFSProvider(fsys)
}

// NewHTTPProvider returns a provider fetching "<baseURL>/<name>.flf".
// A nil client means http.DefaultClient.
func NewHTTPProvider(baseURL string, client *http.Client) FontProvider {
	return fontsrc.NewHTTPProvider(baseURL, client)
}

// ChainProviders tries each provider in order until one has the font.
func ChainProviders(providers ...FontProvider) FontProvider {
	return fontsrc.Chain(providers)
}

// NewFSLister lists the *.flf files at the root of fsys.
func NewFSLister(fsys fs.FS) FontLister {
	return fontsrc.NewFSLister(fsys)
}
