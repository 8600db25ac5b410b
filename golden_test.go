package figdriver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const goldenDir = "testdata/goldens"

// goldenMetadata represents the YAML front matter in golden files
type goldenMetadata struct {
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

// parseGoldenFile splits a markdown golden file into its front matter and
// the art inside its ```text block.
func parseGoldenFile(path string) (*goldenMetadata, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open golden file: %w", err)
	}
	content := strings.ReplaceAll(string(data), "\r\n", "\n")

	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		return nil, "", fmt.Errorf("%s: missing front matter", path)
	}
	front, body, ok := strings.Cut(rest, "\n---\n")
	if !ok {
		return nil, "", fmt.Errorf("%s: unterminated front matter", path)
	}

	var meta goldenMetadata
	if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
		return nil, "", fmt.Errorf("%s: front matter: %w", path, err)
	}

	_, block, ok := strings.Cut(body, "```text\n")
	if !ok {
		return nil, "", fmt.Errorf("%s: missing text block", path)
	}
	art, _, ok := strings.Cut(block, "\n```")
	if !ok {
		return nil, "", fmt.Errorf("%s: unterminated text block", path)
	}
	return &meta, art, nil
}

func checksum(art string) string {
	sum := sha256.Sum256([]byte(art))
	return hex.EncodeToString(sum[:])
}

func (m *goldenMetadata) options() ([]Option, error) {
	h, err := ParseLayoutKeyword(m.HorizontalLayout)
	if err != nil {
		return nil, err
	}
	v, err := ParseLayoutKeyword(m.VerticalLayout)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithHorizontalLayout(h),
		WithVerticalLayout(v),
		WithWidth(m.Width),
		WithWhitespaceBreak(m.WhitespaceBreak),
		WithPrintDirection(m.PrintDirection),
	}, nil
}

func findGoldenFiles(t *testing.T) []string {
	t.Helper()

	var files []string
	err := filepath.WalkDir(goldenDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".md") && !strings.HasSuffix(path, "index.md") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Failed to walk golden directory: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("No golden test files found")
	}
	return files
}

func TestGoldenFiles(t *testing.T) {
	fonts := os.DirFS("testdata/fonts")
	loaded := map[string]*Font{}

	for _, goldenFile := range findGoldenFiles(t) {
		relPath, _ := filepath.Rel(goldenDir, goldenFile)
		testName := strings.TrimSuffix(filepath.ToSlash(relPath), ".md")

		t.Run(testName, func(t *testing.T) {
			meta, want, err := parseGoldenFile(goldenFile)
			if err != nil {
				t.Fatal(err)
			}
			if got := checksum(want); got != meta.ChecksumSHA256 {
				t.Fatalf("checksum = %s, front matter says %s", got, meta.ChecksumSHA256)
			}

			font, ok := loaded[meta.Font]
			if !ok {
				font, err = LoadFontFS(fonts, meta.Font+".flf")
				if err != nil {
					t.Fatalf("Failed to load font %s: %v", meta.Font, err)
				}
				loaded[meta.Font] = font
			}

			opts, err := meta.options()
			if err != nil {
				t.Fatal(err)
			}
			got, err := Render(meta.Sample, font, opts...)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}

			if got != want {
				t.Errorf("Font: %s, Layout: %s/%s, Sample: %q", meta.Font, meta.HorizontalLayout, meta.VerticalLayout, meta.Sample)
				gotLines := strings.Split(got, "\n")
				wantLines := strings.Split(want, "\n")
				for i := 0; i < len(gotLines) || i < len(wantLines); i++ {
					if i >= len(wantLines) {
						t.Errorf("Line %d: Got extra line: %q", i+1, gotLines[i])
						break
					}
					if i >= len(gotLines) {
						t.Errorf("Line %d: Missing expected line: %q", i+1, wantLines[i])
						break
					}
					if gotLines[i] != wantLines[i] {
						t.Errorf("Line %d differs:\n  Got:      %q\n  Expected: %q", i+1, gotLines[i], wantLines[i])
						break
					}
				}
			}
		})
	}
}

func TestParseGoldenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.md")
	content := "---\nfont: Mini\nsample: \"a\\nb\"\nwidth: 3\nchecksum_sha256: x\n---\n\n```text\n|a| \n|_|\n```\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	meta, art, err := parseGoldenFile(path)
	if err != nil {
		t.Fatalf("parseGoldenFile() error = %v", err)
	}
	if meta.Font != "Mini" || meta.Sample != "a\nb" || meta.Width != 3 {
		t.Errorf("metadata = %+v", meta)
	}
	if art != "|a| \n|_|" {
		t.Errorf("art = %q", art)
	}

	if err := os.WriteFile(path, []byte("no front matter"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := parseGoldenFile(path); err == nil {
		t.Error("parseGoldenFile(no front matter) error = nil")
	}
}
