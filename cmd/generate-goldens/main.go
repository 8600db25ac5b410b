// Command generate-goldens writes golden snapshot files: YAML front matter
// describing a render followed by the expected art. Art comes from a figlet
// binary or from figdriver itself.
package main

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figdriver"
)

// GoldenMetadata represents the YAML front matter in golden files
// This should match the struct in golden_test.go
type GoldenMetadata struct {
	Font             string `yaml:"font"`
	Sample           string `yaml:"sample"`
	HorizontalLayout string `yaml:"horizontal_layout"`
	VerticalLayout   string `yaml:"vertical_layout"`
	Width            int    `yaml:"width"`
	WhitespaceBreak  bool   `yaml:"whitespace_break"`
	PrintDirection   int    `yaml:"print_direction"`
	FigletVersion    string `yaml:"figlet_version,omitempty"`
	FigletArgs       string `yaml:"figlet_args,omitempty"`
	Generated        string `yaml:"generated,omitempty"`
	Generator        string `yaml:"generator"`
	ChecksumSHA256   string `yaml:"checksum_sha256"`
}

var (
	outDir   = pflag.String("out", "testdata/goldens", "Output directory")
	fonts    = pflag.String("fonts", "standard slant small big", "Space-separated list of fonts")
	hLayouts = pflag.String("layouts", "default,full,fitted,universal smushing", "Comma-separated horizontal layout keywords")
	vLayout  = pflag.String("vertical-layout", "default", "Vertical layout keyword (figdriver engine only)")
	width    = pflag.Int("width", 80, "Output width")
	engine   = pflag.String("engine", "figlet", "Art source: figlet or figdriver")
	figlet   = pflag.String("figlet", "figlet", "Path to figlet binary")
	fontDir  = pflag.String("fontdir", "", "Font directory")
	strict   = pflag.Bool("strict", false, "Exit on any warning")
)

// Default samples including edge cases
var defaultSamples = []string{
	"Hello, World!",
	"figdriver 1.0",
	`|/\[]{}()<>`,
	"The quick brown fox jumps over the lazy dog",
	" ", // Single space
	"a",
	"   ", // Three spaces
	"$$$$",
	`!@#$%^&*()_+-=[]{}:;'",.<>?/\|`, // Problematic special characters
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"abcdefghijklmnopqrstuvwxyz",
	"0123456789",
	"Line one\nLine two",
}

// artSource renders one golden case.
type artSource interface {
	Render(font, sample string, h, v figdriver.LayoutKeyword) (string, error)
	Describe(meta *GoldenMetadata, h figdriver.LayoutKeyword)
}

func main() {
	pflag.Parse()

	v, err := figdriver.ParseLayoutKeyword(*vLayout)
	if err != nil {
		log.Fatal(err)
	}

	var src artSource
	switch *engine {
	case "figlet":
		if v != figdriver.LayoutDefault {
			log.Fatal("figlet has no vertical layout override; use --engine figdriver")
		}
		src = newFigletSource(*figlet, *fontDir)
	case "figdriver":
		src = newFigdriverSource(*fontDir)
	default:
		log.Fatalf("unknown engine %q", *engine)
	}

	for _, font := range strings.Fields(*fonts) {
		for _, name := range strings.Split(*hLayouts, ",") {
			h, err := figdriver.ParseLayoutKeyword(name)
			if err != nil {
				log.Fatal(err)
			}

			dir := filepath.Join(*outDir, font, layoutDir(h, v))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("Failed to create directory %s: %v", dir, err)
			}

			for _, sample := range defaultSamples {
				if err := generateGoldenFile(src, dir, font, sample, h, v); err != nil {
					if *strict {
						log.Fatalf("Failed to generate golden file: %v", err)
					}
					log.Printf("Warning: %v", err)
				}
			}
		}
	}

	log.Println("Golden file generation complete")
}

func generateGoldenFile(src artSource, dir, font, sample string, h, v figdriver.LayoutKeyword) error {
	slug := slugify(sample)
	outFile := filepath.Join(dir, slug+".md")
	log.Printf("Generating %s", outFile)

	art, err := src.Render(font, sample, h, v)
	if err != nil {
		return fmt.Errorf("failed to generate art for %s: %w", outFile, err)
	}

	meta := GoldenMetadata{
		Font:             font,
		Sample:           sample,
		HorizontalLayout: string(h),
		VerticalLayout:   string(v),
		Width:            *width,
		Generated:        time.Now().UTC().Format("2006-01-02"),
		ChecksumSHA256:   calculateChecksum(art),
	}
	src.Describe(&meta, h)

	data, err := marshalGolden(&meta, art)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write file %s: %w", outFile, err)
	}
	return nil
}

// marshalGolden lays out a golden file: front matter, blank line, text block.
func marshalGolden(meta *GoldenMetadata, art string) ([]byte, error) {
	yamlData, err := yaml.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(yamlData)
	buf.WriteString("---\n\n")
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")
	return buf.Bytes(), nil
}

// figletSource shells out to a figlet binary.
type figletSource struct {
	path    string
	fontDir string
	version string
}

func newFigletSource(path, fontDir string) *figletSource {
	s := &figletSource{path: path, fontDir: fontDir}
	s.version = s.getVersion()
	log.Printf("Using figlet version: %s", s.version)
	return s
}

func (s *figletSource) getVersion() string {
	output, err := exec.Command(s.path, "-v").CombinedOutput()
	if err != nil {
		return "unknown"
	}
	for _, line := range strings.Split(string(output), "\n") {
		if strings.Contains(line, "FIGlet") || strings.Contains(line, "flf2") {
			parts := strings.Fields(line)
			if len(parts) >= 2 {
				return parts[0] + " " + parts[1]
			}
			return strings.TrimSpace(line)
		}
	}
	return "unknown"
}

func (s *figletSource) Render(font, sample string, h, _ figdriver.LayoutKeyword) (string, error) {
	var args []string
	if s.fontDir != "" {
		args = append(args, "-d", s.fontDir)
	}
	args = append(args, "-f", font)
	args = append(args, figletArgs(h, *width)...)

	//nolint:gosec // figlet path is from trusted flag, not user input
	cmd := exec.Command(s.path, args...)
	cmd.Stdin = strings.NewReader(sample)
	output, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(output), "\n"), nil
}

func (s *figletSource) Describe(meta *GoldenMetadata, h figdriver.LayoutKeyword) {
	meta.Generator = "generate-goldens (figlet)"
	meta.FigletVersion = s.version
	meta.FigletArgs = strings.Join(figletArgs(h, meta.Width), " ")
}

// figletArgs maps a horizontal layout keyword to figlet's flags.
func figletArgs(h figdriver.LayoutKeyword, width int) []string {
	var args []string
	switch h {
	case figdriver.LayoutFull:
		args = append(args, "-W")
	case figdriver.LayoutFitted:
		args = append(args, "-k")
	case figdriver.LayoutControlledSmushing:
		// smushmode 63 enables every horizontal rule
		args = append(args, "-m", "63")
	case figdriver.LayoutUniversalSmushing:
		// smushmode 0 smushes with no rules
		args = append(args, "-m", "0")
	}
	return append(args, "-w", fmt.Sprint(width))
}

// figdriverSource renders with this module, for cases figlet cannot produce.
type figdriverSource struct {
	dir   string
	fonts map[string]*figdriver.Font
}

func newFigdriverSource(fontDir string) *figdriverSource {
	if fontDir == "" {
		fontDir = "fonts"
	}
	return &figdriverSource{dir: fontDir, fonts: map[string]*figdriver.Font{}}
}

func (s *figdriverSource) Render(font, sample string, h, v figdriver.LayoutKeyword) (string, error) {
	f, ok := s.fonts[font]
	if !ok {
		var err error
		f, err = figdriver.LoadFontFS(os.DirFS(s.dir), font+".flf")
		if err != nil {
			return "", err
		}
		s.fonts[font] = f
	}
	return figdriver.Render(sample, f,
		figdriver.WithHorizontalLayout(h),
		figdriver.WithVerticalLayout(v),
		figdriver.WithWidth(*width),
	)
}

func (s *figdriverSource) Describe(meta *GoldenMetadata, _ figdriver.LayoutKeyword) {
	meta.Generator = "generate-goldens (figdriver)"
}

// layoutDir names the directory a layout combination is written to.
func layoutDir(h, v figdriver.LayoutKeyword) string {
	name := keywordSlug(h)
	if v != figdriver.LayoutDefault {
		if h == figdriver.LayoutDefault {
			return "vertical-" + keywordSlug(v)
		}
		name += "-vertical-" + keywordSlug(v)
	}
	return name
}

func keywordSlug(k figdriver.LayoutKeyword) string {
	s, _, _ := strings.Cut(string(k), " ")
	return s
}

func calculateChecksum(data string) string {
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

func slugify(s string) string {
	switch s {
	case "":
		return "empty"
	case " ":
		return "space"
	case "  ":
		return "two_spaces"
	case "   ":
		return "three_spaces"
	}

	// For other strings, replace non-alphanumeric with underscore
	var result []rune
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = append(result, r)
		} else if len(result) == 0 || result[len(result)-1] != '_' {
			result = append(result, '_')
		}
	}

	slug := strings.Trim(string(result), "_")

	// If empty after processing, use hash
	if slug == "" {
		return calculateChecksum(s)[:8]
	}
	return slug
}
