package fontsrc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"simple", "standard.flf", "standard.flf", false},
		{"nested", "fonts/standard.flf", "fonts/standard.flf", false},
		{"space", "ANSI Compact.flf", "ANSI Compact.flf", false},
		{"empty", "", "", true},
		{"absolute", "/etc/passwd", "", true},
		{"backslash", "fonts\\standard.flf", "", true},
		{"parent", "../standard.flf", "", true},
		{"inner_parent", "fonts/../../x.flf", "", true},
		{"dot", ".", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CleanPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CleanPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("CleanPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestFSProvider(t *testing.T) {
	fsys := fstest.MapFS{
		"Standard.flf":     {Data: []byte("standard")},
		"ANSI Compact.flf": {Data: []byte("ansi")},
		"readme.txt":       {Data: []byte("not a font")},
	}
	p := NewFSProvider(fsys)
	ctx := context.Background()

	tests := []struct {
		name     string
		font     string
		want     string
		notFound bool
		wantErr  bool
	}{
		{name: "found", font: "Standard", want: "standard"},
		{name: "name_with_space", font: "ANSI Compact", want: "ansi"},
		{name: "missing", font: "Doom", notFound: true, wantErr: true},
		{name: "extension_is_appended", font: "readme", notFound: true, wantErr: true},
		{name: "traversal", font: "../Standard", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := p.Fetch(ctx, tt.font)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch(%q) error = %v, wantErr %v", tt.font, err, tt.wantErr)
			}
			if errors.Is(err, ErrNotFound) != tt.notFound {
				t.Errorf("Fetch(%q) errors.Is(ErrNotFound) = %v, want %v", tt.font, errors.Is(err, ErrNotFound), tt.notFound)
			}
			if string(data) != tt.want {
				t.Errorf("Fetch(%q) = %q, want %q", tt.font, data, tt.want)
			}
		})
	}
}

func TestFSProviderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewFSProvider(fstest.MapFS{"Standard.flf": {Data: []byte("x")}})
	if _, err := p.Fetch(ctx, "Standard"); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

func TestHTTPProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fonts/Standard.flf":
			_, _ = w.Write([]byte("flf2a$ 1 1 1 0 0"))
		case "/fonts/ANSI Compact.flf":
			_, _ = w.Write([]byte("ansi"))
		case "/fonts/Broken.flf":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	p := NewHTTPProvider(srv.URL+"/fonts/", srv.Client())
	ctx := context.Background()

	tests := []struct {
		name     string
		font     string
		want     string
		notFound bool
		wantErr  bool
	}{
		{name: "found", font: "Standard", want: "flf2a$ 1 1 1 0 0"},
		{name: "escaped_name", font: "ANSI Compact", want: "ansi"},
		{name: "missing", font: "Doom", notFound: true, wantErr: true},
		{name: "server_error", font: "Broken", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := p.Fetch(ctx, tt.font)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Fetch(%q) error = %v, wantErr %v", tt.font, err, tt.wantErr)
			}
			if errors.Is(err, ErrNotFound) != tt.notFound {
				t.Errorf("Fetch(%q) errors.Is(ErrNotFound) = %v, want %v", tt.font, errors.Is(err, ErrNotFound), tt.notFound)
			}
			if string(data) != tt.want {
				t.Errorf("Fetch(%q) = %q, want %q", tt.font, data, tt.want)
			}
		})
	}

	if got := p.URL("ANSI Compact"); got != srv.URL+"/fonts/ANSI%20Compact.flf" {
		t.Errorf("URL() = %q", got)
	}
}

type stubProvider struct {
	data  []byte
	err   error
	calls int
}

func (s *stubProvider) Fetch(context.Context, string) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	tests := []struct {
		name      string
		providers []*stubProvider
		want      string
		wantErr   error
		wantCalls []int
	}{
		{
			name: "first_hit_wins",
			providers: []*stubProvider{
				{data: []byte("one")},
				{data: []byte("two")},
			},
			want:      "one",
			wantCalls: []int{1, 0},
		},
		{
			name: "skips_not_found",
			providers: []*stubProvider{
				{err: ErrNotFound},
				{data: []byte("two")},
			},
			want:      "two",
			wantCalls: []int{1, 1},
		},
		{
			name: "stops_on_other_errors",
			providers: []*stubProvider{
				{err: boom},
				{data: []byte("two")},
			},
			wantErr:   boom,
			wantCalls: []int{1, 0},
		},
		{
			name: "all_missing",
			providers: []*stubProvider{
				{err: ErrNotFound},
				{err: ErrNotFound},
			},
			wantErr:   ErrNotFound,
			wantCalls: []int{1, 1},
		},
		{
			name:    "empty",
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var chain Chain
			for _, p := range tt.providers {
				chain = append(chain, p)
			}

			data, err := chain.Fetch(ctx, "Standard")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Fetch() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Fetch() = %q, want %q", data, tt.want)
			}

			calls := make([]int, len(tt.providers))
			for i, p := range tt.providers {
				calls[i] = p.calls
			}
			if len(calls) > 0 && !reflect.DeepEqual(calls, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", calls, tt.wantCalls)
			}
		})
	}
}
