package figdriver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/ryanlewis/figdriver/internal/fontsrc"
)

// preloadConcurrency bounds concurrent fetches in PreloadFonts
const preloadConcurrency = 4

// fetchTimeout bounds a shared font fetch, which outlives the caller that
// started it.
const fetchTimeout = 30 * time.Second

// Defaults are the settings a Renderer falls back to.
type Defaults struct {
	// Font is used when no WithFont option is given
	Font string `yaml:"font"`

	// FontPath is the directory or base URL fonts are fetched from
	// when the Renderer has no explicit provider
	FontPath string `yaml:"font_path"`

	// FetchFontIfMissing lets LoadFont and Text fetch fonts that are not loaded
	FetchFontIfMissing bool `yaml:"fetch_font_if_missing"`
}

// StandardDefaults returns the defaults of a new Renderer.
func StandardDefaults() Defaults {
	return Defaults{
		Font:               "Standard",
		FontPath:           "./fonts",
		FetchFontIfMissing: true,
	}
}

// Renderer renders text with fonts held in its registry, loading fonts on
// demand. It is safe for concurrent use.
type Renderer struct {
	registry *FontRegistry
	provider fontsrc.Provider
	lister   fontsrc.Lister
	aliases  fontsrc.Aliases
	logger   *slog.Logger
	fetches  singleflight.Group

	mu       sync.RWMutex
	defaults Defaults
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithProvider sets where missing fonts are fetched from. Without it fonts
// come from Defaults.FontPath.
func WithProvider(p FontProvider) RendererOption {
	return func(r *Renderer) {
		r.provider = p
	}
}

// WithLister sets the source of Fonts. Without it fonts are listed from
// Defaults.FontPath when that is a directory.
func WithLister(l FontLister) RendererOption {
	return func(r *Renderer) {
		r.lister = l
	}
}

// WithDefaults replaces the standard defaults.
func WithDefaults(d Defaults) RendererOption {
	return func(r *Renderer) {
		r.defaults = d
	}
}

// WithLogger sets the logger; otherwise the package Logger is used.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = l
	}
}

// WithRegistrySize bounds the number of loaded fonts. The least recently
// used font is dropped when the registry is full. Zero or less is unbounded.
func WithRegistrySize(n int) RendererOption {
	return func(r *Renderer) {
		r.registry = NewFontRegistry(n)
	}
}

// WithAliases adds font renames on top of the built-in ones. A font loaded
// under an old name is fetched under its new name.
func WithAliases(aliases map[string]string) RendererOption {
	return func(r *Renderer) {
		r.aliases = r.aliases.With(aliases)
	}
}

// NewRenderer creates a Renderer with an empty registry.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		registry: NewFontRegistry(0),
		aliases:  fontsrc.DefaultAliases(),
		defaults: StandardDefaults(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return Logger()
}

// Defaults returns the current defaults.
func (r *Renderer) Defaults() Defaults {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

// SetDefaults replaces the defaults.
func (r *Renderer) SetDefaults(d Defaults) {
	r.mu.Lock()
	r.defaults = d
	r.mu.Unlock()
}

// Registry returns the registry of loaded fonts.
func (r *Renderer) Registry() *FontRegistry {
	return r.registry
}

// ParseFont parses FIGfont text and registers it under name, replacing any
// font already registered under that name.
func (r *Renderer) ParseFont(name, data string) (FontRules, error) {
	font, err := r.parse(name, []byte(data))
	if err != nil {
		return FontRules{}, err
	}
	r.registry.Replace(name, font)
	return font.Rules, nil
}

func (r *Renderer) parse(name string, data []byte) (*Font, error) {
	font, err := ParseFontBytes(data)
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", name, err)
	}
	font.Name = name

	log := r.log()
	log.Debug("font parsed", "font", name, "height", font.Rules.Height, "glyphs", font.NumChars())
	for _, w := range font.Warnings {
		log.Warn("font warning", "font", name, "warning", w)
	}
	return font, nil
}

// LoadFont returns the rules of a loaded font, fetching and parsing it first
// when it is missing and Defaults.FetchFontIfMissing is set. Concurrent loads
// of the same font share one fetch.
func (r *Renderer) LoadFont(ctx context.Context, name string) (FontRules, error) {
	font, err := r.loadFont(ctx, name, false)
	if err != nil {
		return FontRules{}, err
	}
	return font.Rules, nil
}

// LoadFontSync returns the rules of an already loaded font. It never fetches.
func (r *Renderer) LoadFontSync(name string) (FontRules, error) {
	font, err := r.loadedFont(name)
	if err != nil {
		return FontRules{}, err
	}
	return font.Rules, nil
}

func (r *Renderer) loadedFont(name string) (*Font, error) {
	if font, ok := r.registry.Get(name); ok {
		return font, nil
	}
	return nil, fmt.Errorf("%w: %q is not loaded", ErrFontNotFound, name)
}

// loadFont serves name from the registry or fetches it. force fetches even
// when FetchFontIfMissing is off.
func (r *Renderer) loadFont(ctx context.Context, name string, force bool) (*Font, error) {
	if font, ok := r.registry.Get(name); ok {
		return font, nil
	}

	d := r.Defaults()
	if !force && !d.FetchFontIfMissing {
		return nil, fmt.Errorf("%w: %q is not loaded", ErrFontNotFound, name)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared fetch ignores the cancellation of the caller that started
	// it; each caller stops waiting when its own context is done.
	ch := r.fetches.DoChan(name, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		// another fetch may have completed while this one waited
		if font, ok := r.registry.Get(name); ok {
			return font, nil
		}
		font, err := r.fetch(fetchCtx, name, d)
		if err != nil {
			return nil, err
		}
		return r.registry.Add(name, font), nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Font), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (r *Renderer) fetch(ctx context.Context, name string, d Defaults) (*Font, error) {
	canonical := r.aliases.Resolve(name)
	log := r.log().With("font", name)

	data, err := r.providerFor(d).Fetch(ctx, canonical)
	if errors.Is(err, fontsrc.ErrNotFound) {
		log.Warn("font not found", "source", canonical)
		return nil, fmt.Errorf("%w: %q: %w", ErrFontNotFound, name, err)
	}
	if err != nil {
		log.Warn("font fetch failed", "error", err)
		return nil, fmt.Errorf("loading font %q: %w", name, err)
	}

	font, err := r.parse(name, data)
	if err != nil {
		return nil, err
	}
	log.Info("font fetched", "source", canonical, "bytes", len(data))
	return font, nil
}

func (r *Renderer) providerFor(d Defaults) fontsrc.Provider {
	if r.provider != nil {
		return r.provider
	}
	if isURL(d.FontPath) {
		return fontsrc.NewHTTPProvider(d.FontPath, nil)
	}
	return fontsrc.NewFSProvider(os.DirFS(d.FontPath))
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// PreloadFonts fetches the named fonts concurrently so that the Sync
// variants can use them. Fonts already loaded are skipped. Fetching happens
// even when FetchFontIfMissing is off. The first failure cancels the rest.
func (r *Renderer) PreloadFonts(ctx context.Context, names ...string) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(preloadConcurrency)

	for _, name := range names {
		g.Go(func() error {
			_, err := r.loadFont(gctx, name, true)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preloading fonts: %w", err)
	}
	return nil
}

// Text renders text with the font chosen by WithFont, or the default font,
// loading it first if needed.
func (r *Renderer) Text(ctx context.Context, text string, opts ...Option) (string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	font, err := r.loadFont(ctx, r.fontName(options.font), false)
	if err != nil {
		return "", err
	}
	return render(text, font, options)
}

// TextSync renders text with an already loaded font.
func (r *Renderer) TextSync(text string, opts ...Option) (string, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	font, err := r.loadedFont(r.fontName(options.font))
	if err != nil {
		return "", err
	}
	return render(text, font, options)
}

func (r *Renderer) fontName(name string) string {
	if name != "" {
		return name
	}
	return r.Defaults().Font
}

// Metadata returns the rules and comment of a font, loading it if needed.
// An empty name means the default font.
func (r *Renderer) Metadata(ctx context.Context, name string) (FontRules, string, error) {
	font, err := r.loadFont(ctx, r.fontName(name), false)
	if err != nil {
		return FontRules{}, "", err
	}
	return font.Rules, font.Comment, nil
}

// MetadataSync returns the rules and comment of an already loaded font.
func (r *Renderer) MetadataSync(name string) (FontRules, string, error) {
	font, err := r.loadedFont(r.fontName(name))
	if err != nil {
		return FontRules{}, "", err
	}
	return font.Rules, font.Comment, nil
}

// Fonts lists the fonts available to load. It is empty when there is
// nothing to list.
func (r *Renderer) Fonts(ctx context.Context) ([]string, error) {
	lister := r.lister
	if lister == nil {
		d := r.Defaults()
		if r.provider != nil || isURL(d.FontPath) {
			return []string{}, nil
		}
		lister = fontsrc.NewFSLister(os.DirFS(d.FontPath))
	}

	names, err := lister.List(ctx)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// LoadedFonts returns the names of the loaded fonts, sorted.
func (r *Renderer) LoadedFonts() []string {
	return r.registry.Names()
}

// ClearLoadedFonts drops every loaded font.
func (r *Renderer) ClearLoadedFonts() {
	r.registry.Clear()
	r.log().Info("loaded fonts cleared")
}
