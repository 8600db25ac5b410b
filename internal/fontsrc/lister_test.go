package fontsrc

import (
	"context"
	"reflect"
	"testing"
	"testing/fstest"
)

func TestFSLister(t *testing.T) {
	fsys := fstest.MapFS{
		"Standard.flf":      {Data: []byte("x")},
		"ANSI Compact.flf":  {Data: []byte("x")},
		"Big.flf":           {Data: []byte("x")},
		"notes.txt":         {Data: []byte("x")},
		"nested/Hidden.flf": {Data: []byte("x")},
		"Standard.flf.bak":  {Data: []byte("x")},
	}

	got, err := NewFSLister(fsys).List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []string{"ANSI Compact", "Big", "Standard"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestFSListerNil(t *testing.T) {
	got, err := NewFSLister(nil).List(context.Background())
	if err != nil || len(got) != 0 {
		t.Errorf("List() = %v, %v; want empty", got, err)
	}
}

func TestAliases(t *testing.T) {
	a := DefaultAliases()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"renamed", "ANSI-Compact", "ANSI Compact"},
		{"unchanged", "Standard", "Standard"},
		{"case_sensitive", "ansi-compact", "ansi-compact"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Resolve(tt.in); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	extended := a.With(map[string]string{"Old": "New", "ANSI-Compact": "Other"})
	if got := extended.Resolve("Old"); got != "New" {
		t.Errorf("extended Resolve(Old) = %q", got)
	}
	if got := extended.Resolve("ANSI-Compact"); got != "Other" {
		t.Errorf("extended Resolve(ANSI-Compact) = %q, want override", got)
	}
	if got := a.Resolve("Old"); got != "Old" {
		t.Errorf("With modified the receiver: Resolve(Old) = %q", got)
	}
}
