package figdriver

import (
	"context"
	"testing"
)

const quickBrownFox = "The quick brown fox jumps over the lazy dog"

func BenchmarkParseFont(b *testing.B) {
	data := miniFontData(b)
	b.ReportAllocs()
	b.SetBytes(int64(len(data)))

	for i := 0; i < b.N; i++ {
		if _, err := ParseFontBytes(data); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderLayouts(b *testing.B) {
	font := loadMiniFont(b)
	layouts := []LayoutKeyword{LayoutFull, LayoutFitted, LayoutDefault, LayoutUniversalSmushing}

	for _, layout := range layouts {
		b.Run(string(layout), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Render(quickBrownFox, font, WithHorizontalLayout(layout)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkRenderWrapped(b *testing.B) {
	font := loadMiniFont(b)

	for _, ws := range []bool{false, true} {
		name := "simple"
		if ws {
			name = "whitespace"
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Render(quickBrownFox, font, WithWidth(40), WithWhitespaceBreak(ws)); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkConcurrentRendering(b *testing.B) {
	r := NewRenderer(WithDefaults(Defaults{Font: "Mini", FontPath: "testdata/fonts"}))
	if err := r.PreloadFonts(context.Background(), "Mini"); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := r.TextSync(quickBrownFox); err != nil {
				b.Error(err)
				return
			}
		}
	})
}

func BenchmarkEndToEnd(b *testing.B) {
	ctx := context.Background()

	b.Run("LoadAndRender", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			r := NewRenderer(WithDefaults(Defaults{Font: "Mini", FontPath: "testdata/fonts", FetchFontIfMissing: true}))
			if _, err := r.Text(ctx, quickBrownFox); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("RegisteredLoadAndRender", func(b *testing.B) {
		r := NewRenderer(WithDefaults(Defaults{Font: "Mini", FontPath: "testdata/fonts", FetchFontIfMissing: true}))
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			if _, err := r.Text(ctx, quickBrownFox); err != nil {
				b.Fatal(err)
			}
		}
	})
}
