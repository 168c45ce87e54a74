package assets

import (
	"os"
	"strings"
)

// BaseURL is where the booking backend serves stored images from.
// Overridable for tests; main reads ASSET_BASE_URL at startup.
var BaseURL = "https://assets.tourdesk.local"

func Init() {
	if v := os.Getenv("ASSET_BASE_URL"); v != "" {
		BaseURL = strings.TrimRight(v, "/")
	}
}

// Resolve turns a stored image reference into a displayable URL. Already
// absolute references (http(s), data:, blob:, protocol-relative) pass
// through unchanged, so resolving twice is safe. Bare relative paths get
// the asset base prefixed.
func Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	switch {
	case strings.HasPrefix(ref, "http://"),
		strings.HasPrefix(ref, "https://"),
		strings.HasPrefix(ref, "data:"),
		strings.HasPrefix(ref, "blob:"),
		strings.HasPrefix(ref, "//"):
		return ref
	}
	return BaseURL + "/" + strings.TrimLeft(ref, "/")
}

// RefString extracts the raw reference out of whatever shape the backend
// used for an image entry: a bare string, or an object carrying the path
// under image/preview/url/path. Unknown shapes yield "".
func RefString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any:
		for _, key := range []string{"image", "preview", "url", "path"} {
			if s, ok := x[key].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
