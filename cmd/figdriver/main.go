// Command figdriver renders ASCII art text using FIGlet fonts.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figdriver"
	"github.com/ryanlewis/figdriver/internal/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	font            string
	fontDir         string
	width           int
	hLayout         string
	vLayout         string
	whitespaceBreak bool
	printDirection  int
	showHardblanks  bool
	list            bool
	info            string
	configPath      string
	debugMode       bool
	debugFile       string
	debugPretty     bool
	showVersion     bool
	showHelp        bool
}

func newFlagSet(f *flags, stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("figdriver", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVarP(&f.font, "font", "f", "", "Font name or path to a FIGfont file (default \"Standard\")")
	fs.StringVarP(&f.fontDir, "font-dir", "d", "", "Directory or URL fonts are loaded from (default \"./fonts\")")
	fs.IntVarP(&f.width, "width", "w", 80, "Maximum output width in columns, 0 disables wrapping")
	fs.StringVarP(&f.hLayout, "horizontal-layout", "H", "", "Horizontal layout: default, full, fitted, \"controlled smushing\", \"universal smushing\"")
	fs.StringVarP(&f.vLayout, "vertical-layout", "V", "", "Vertical layout, same keywords as --horizontal-layout")
	fs.BoolVar(&f.whitespaceBreak, "whitespace-break", false, "Wrap at whitespace instead of between any two characters")
	fs.IntVar(&f.printDirection, "print-direction", 0, "Print direction: 0 left-to-right, 1 right-to-left (default: the font's)")
	fs.BoolVar(&f.showHardblanks, "show-hardblanks", false, "Leave hardblank characters in the output")
	fs.BoolVarP(&f.list, "list", "l", false, "List the available fonts")
	fs.StringVarP(&f.info, "info", "i", "", "Print the metadata of a font as YAML")
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML configuration file")
	fs.BoolVar(&f.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&f.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&f.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON)")
	fs.BoolVar(&f.showVersion, "version", false, "Show version information")
	fs.BoolVarP(&f.showHelp, "help", "h", false, "Show help message")
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if f.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "figdriver version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := applyFlags(cfg, &f, fs); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	r := cfg.NewRenderer()

	if f.list {
		return listFonts(ctx, r, stdout, stderr)
	}
	if f.info != "" {
		return printInfo(ctx, r, f.info, stdout, stderr)
	}

	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "Error: no text provided")
		printHelp(stderr, fs)
		return 1
	}
	text := strings.Join(fs.Args(), " ")

	opts, err := cfg.RenderOptions()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if cfg.Font != "" {
		name, err := registerFontFile(r, cfg.Font)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading font: %v\n", err)
			return 1
		}
		opts = append(opts, figdriver.WithFont(name))
	}
	if fs.Changed("print-direction") {
		opts = append(opts, figdriver.WithPrintDirection(f.printDirection))
	}
	if f.showHardblanks {
		opts = append(opts, figdriver.WithShowHardblanks(true))
	}

	session, closeDebug, err := openDebug(&f, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
		return 1
	}
	defer closeDebug()
	if session != nil {
		opts = append(opts, figdriver.WithDebug(session))
	}

	output, err := r.Text(ctx, text, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, output)
	return 0
}

func loadConfig(path string) (*figdriver.Config, error) {
	if path == "" {
		return &figdriver.Config{}, nil
	}
	return figdriver.LoadConfigFile(path)
}

// applyFlags overrides the configuration with the flags given on the command line.
func applyFlags(cfg *figdriver.Config, f *flags, fs *pflag.FlagSet) error {
	if fs.Changed("font") {
		cfg.Font = f.font
	}
	if fs.Changed("font-dir") {
		cfg.FontPath = f.fontDir
	}
	if fs.Changed("width") || cfg.Width == 0 {
		cfg.Width = f.width
	}
	if fs.Changed("horizontal-layout") {
		cfg.HorizontalLayout = f.hLayout
	}
	if fs.Changed("vertical-layout") {
		cfg.VerticalLayout = f.vLayout
	}
	if fs.Changed("whitespace-break") {
		cfg.WhitespaceBreak = f.whitespaceBreak
	}

	if cfg.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", cfg.Width)
	}
	if fs.Changed("print-direction") && f.printDirection != 0 && f.printDirection != 1 {
		return fmt.Errorf("print direction must be 0 or 1, got %d", f.printDirection)
	}
	return nil
}

// registerFontFile parses font into r when it names a FIGfont file and
// returns the name to render with. Plain font names are returned unchanged
// and loaded by the renderer.
func registerFontFile(r *figdriver.Renderer, font string) (string, error) {
	path, ok := resolveFontFile(font)
	if !ok {
		return font, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if _, err := r.ParseFont(name, string(data)); err != nil {
		return "", err
	}
	return name, nil
}

// resolveFontFile reports whether font refers to a font file rather than a
// font name, and returns its path.
func resolveFontFile(font string) (string, bool) {
	if filepath.Ext(font) == ".flf" {
		return font, true
	}
	if st, err := os.Stat(font); err == nil && !st.IsDir() {
		return font, true
	}
	return "", false
}

func openDebug(f *flags, stderr io.Writer) (*debug.Session, func(), error) {
	debug.SetEnabled(f.debugMode || f.debugFile != "")
	debug.InitFromEnv()
	if !debug.Enabled() {
		return nil, func() {}, nil
	}

	var output io.Writer = stderr
	var file *os.File
	if f.debugFile != "" {
		var err error
		file, err = os.Create(f.debugFile)
		if err != nil {
			return nil, nil, err
		}
		output = file
	}

	var sink debug.Sink
	if f.debugPretty || debug.PrettyFromEnv() {
		sink = debug.NewPrettySink(output)
	} else {
		sink = debug.NewJSONSink(output)
	}

	session := debug.NewSession(sink)
	return session, func() {
		if session != nil {
			session.Close()
		}
		if file != nil {
			file.Close()
		}
	}, nil
}

func listFonts(ctx context.Context, r *figdriver.Renderer, stdout, stderr io.Writer) int {
	fonts, err := r.Fonts(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error listing fonts: %v\n", err)
		return 1
	}
	for _, name := range fonts {
		fmt.Fprintln(stdout, name)
	}
	return 0
}

// fontInfo is the --info document.
type fontInfo struct {
	Name       string              `yaml:"name"`
	Comment    string              `yaml:"comment,omitempty"`
	Hardblank  string              `yaml:"hardblank"`
	Header     figdriver.FontRules `yaml:"header"`
	LayoutCode int                 `yaml:"layout_code"`
	Horizontal axisInfo            `yaml:"horizontal"`
	Vertical   axisInfo            `yaml:"vertical"`
}

type axisInfo struct {
	Layout string `yaml:"layout"`
	Rules  string `yaml:"rules"`
}

func newFontInfo(name, comment string, rules figdriver.FontRules) fontInfo {
	fit := rules.Fitting
	return fontInfo{
		Name:       name,
		Comment:    comment,
		Hardblank:  string(rules.Hardblank),
		Header:     rules,
		LayoutCode: figdriver.EncodeLayout(fit),
		Horizontal: axisInfo{Layout: fit.HLayout.String(), Rules: fit.HRules.String()},
		Vertical:   axisInfo{Layout: fit.VLayout.String(), Rules: fit.VRules.String()},
	}
}

func printInfo(ctx context.Context, r *figdriver.Renderer, font string, stdout, stderr io.Writer) int {
	name, err := registerFontFile(r, font)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}

	rules, comment, err := r.Metadata(ctx, name)
	if errors.Is(err, figdriver.ErrFontNotFound) {
		fmt.Fprintf(stderr, "Error: %v (see --list)\n", err)
		return 1
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	defer enc.Close()
	if err := enc.Encode(newFontInfo(name, comment, rules)); err != nil {
		fmt.Fprintf(stderr, "Error writing info: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "figdriver - FIGlet ASCII art generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  figdriver [flags] <text>")
	fmt.Fprintln(w, "  figdriver --list")
	fmt.Fprintln(w, "  figdriver --info <font>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  FIGDRIVER_DEBUG=1         same as --debug")
	fmt.Fprintln(w, "  FIGDRIVER_DEBUG_PRETTY=1  same as --debug-pretty")
}
