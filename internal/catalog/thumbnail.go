package catalog

import (
	"net/url"
	"strings"
)

// DefaultThumbnailTemplate points at the placeholder image service.
const DefaultThumbnailTemplate = "https://via.placeholder.com/200x300?text={name}"

// NamePlaceholder is substituted with the percent-encoded channel name.
const NamePlaceholder = "{name}"

// Thumbnailer derives a displayable image reference from a channel name.
type Thumbnailer interface {
	Ref(name string) string
}

// Template is a Thumbnailer backed by a URL template containing {name}.
type Template string

// Ref substitutes every {name} placeholder with the encoded name. Templates
// without a placeholder are returned verbatim.
func (t Template) Ref(name string) string {
	tmpl := string(t)
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultThumbnailTemplate
	}
	return strings.ReplaceAll(tmpl, NamePlaceholder, EncodeComponent(name))
}

// EncodeComponent percent-encodes s for use inside a URL query value, using
// %20 rather than + for spaces.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
