package catalog

import "testing"

func TestTemplateRef(t *testing.T) {
	tests := []struct {
		tmpl Template
		name string
		want string
	}{
		{"", "HBO", "https://via.placeholder.com/200x300?text=HBO"},
		{"", "HBO Max", "https://via.placeholder.com/200x300?text=HBO%20Max"},
		{"", "A&B/C", "https://via.placeholder.com/200x300?text=A%26B%2FC"},
		{"https://img.local/{name}.png?alt={name}", "Sky 1", "https://img.local/Sky%201.png?alt=Sky%201"},
		{"https://img.local/static.png", "ignored", "https://img.local/static.png"},
	}
	for _, tc := range tests {
		if got := tc.tmpl.Ref(tc.name); got != tc.want {
			t.Fatalf("Template(%q).Ref(%q): expected %q, got %q", tc.tmpl, tc.name, tc.want, got)
		}
	}
}

type fixedThumbs string

func (f fixedThumbs) Ref(name string) string { return string(f) + name }

func TestStoreUsesTrimmedNameForThumbnail(t *testing.T) {
	s := NewStore(fixedThumbs("thumb:"))
	entry, err := s.Create("  Sky News  ", "http://a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if entry.ThumbnailRef != "thumb:Sky News" {
		t.Fatalf("expected thumbnail from trimmed name, got %q", entry.ThumbnailRef)
	}
}
