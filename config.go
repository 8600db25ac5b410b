package figdriver

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figdriver/internal/fontsrc"
)

// Config is the YAML configuration of a Renderer and its render options.
//
// Example:
//
//	font: Standard
//	font_path: ./fonts
//	font_url: https://example.com/fonts
//	fetch_font_if_missing: true
//	aliases:
//	  Old Name: New Name
//	width: 80
//	horizontal_layout: fitted
//	vertical_layout: default
//	whitespace_break: true
type Config struct {
	Font               string            `yaml:"font"`
	FontPath           string            `yaml:"font_path"`
	FetchFontIfMissing *bool             `yaml:"fetch_font_if_missing"`
	FontURL            string            `yaml:"font_url"`
	Aliases            map[string]string `yaml:"aliases"`
	Width              int               `yaml:"width"`
	HorizontalLayout   string            `yaml:"horizontal_layout"`
	VerticalLayout     string            `yaml:"vertical_layout"`
	WhitespaceBreak    bool              `yaml:"whitespace_break"`
}

// LoadConfig decodes and validates a YAML configuration. Unknown fields are
// rejected.
func LoadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfigFile reads the configuration at path.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := ParseLayoutKeyword(c.HorizontalLayout); err != nil {
		return fmt.Errorf("horizontal_layout: %w", err)
	}
	if _, err := ParseLayoutKeyword(c.VerticalLayout); err != nil {
		return fmt.Errorf("vertical_layout: %w", err)
	}
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}

// Defaults returns StandardDefaults overridden by the fields that are set.
func (c *Config) Defaults() Defaults {
	d := StandardDefaults()
	if c.Font != "" {
		d.Font = c.Font
	}
	if c.FontPath != "" {
		d.FontPath = c.FontPath
	}
	if c.FetchFontIfMissing != nil {
		d.FetchFontIfMissing = *c.FetchFontIfMissing
	}
	return d
}

// RenderOptions returns the render options the configuration sets.
func (c *Config) RenderOptions() ([]Option, error) {
	h, err := ParseLayoutKeyword(c.HorizontalLayout)
	if err != nil {
		return nil, fmt.Errorf("horizontal_layout: %w", err)
	}
	v, err := ParseLayoutKeyword(c.VerticalLayout)
	if err != nil {
		return nil, fmt.Errorf("vertical_layout: %w", err)
	}

	opts := []Option{
		WithHorizontalLayout(h),
		WithVerticalLayout(v),
		WithWhitespaceBreak(c.WhitespaceBreak),
	}
	if c.Width > 0 {
		opts = append(opts, WithWidth(c.Width))
	}
	return opts, nil
}

// NewRenderer builds a Renderer from the configuration. Fonts are read from
// the font path first and, when a font URL is set, fetched from there next.
func (c *Config) NewRenderer(opts ...RendererOption) *Renderer {
	d := c.Defaults()

	base := []RendererOption{
		WithDefaults(d),
		WithAliases(c.Aliases),
	}
	if c.FontURL != "" {
		dir := os.DirFS(d.FontPath)
		base = append(base,
			WithProvider(fontsrc.Chain{
				fontsrc.NewFSProvider(dir),
				fontsrc.NewHTTPProvider(c.FontURL, nil),
			}),
			WithLister(fontsrc.NewFSLister(dir)),
		)
	}
	return NewRenderer(append(base, opts...)...)
}
