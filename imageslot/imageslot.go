package imageslot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"tourdesk/assets"
	"tourdesk/wire"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// MaxFileSize is the per-file ceiling for single-image forms.
const MaxFileSize = 5 << 20 // 5MB

const previewMaxDim = 320

// Declared MIME types we accept from the admin's file picker.
var allowedMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
}

// Slot is one picked-or-existing image. A pending slot carries the raw file
// and a locally rendered data-URI preview; a persisted slot carries only the
// reference the backend stored. File == nil means persisted (or empty).
type Slot struct {
	ID           string               `json:"id,omitempty"`
	File         *wire.FileAttachment `json:"-"`
	LocalPreview string               `json:"-"`
	Remote       string               `json:"preview,omitempty"`
	Description  string               `json:"description,omitempty"`
}

func (s Slot) IsPending() bool { return s.File != nil }

func (s Slot) IsEmpty() bool { return s.File == nil && s.Remote == "" }

// PreviewURI always resolves to something displayable: the local data URI
// for pending slots, the resolved asset URL otherwise.
func (s Slot) PreviewURI() string {
	if s.File != nil {
		return s.LocalPreview
	}
	return assets.Resolve(s.Remote)
}

// Empty returns a blank slot, used to re-seed lists and pad icon rows.
func Empty() Slot { return Slot{} }

// FromFile validates a freshly picked file and builds a pending slot with a
// downscaled data-URI preview. Validation runs before anything is decoded,
// so a rejected file leaves no partial state behind.
func FromFile(filename, contentType string, data []byte) (Slot, error) {
	return FromFileLimit(filename, contentType, data, MaxFileSize)
}

// FromFileLimit is FromFile with an explicit size ceiling; maxSize 0 skips
// the size check (gallery forms cap the image count instead).
func FromFileLimit(filename, contentType string, data []byte, maxSize int) (Slot, error) {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if !allowedMIMEs[ct] {
		return Slot{}, fmt.Errorf("unsupported image type %q (use jpeg, png or gif)", contentType)
	}
	if maxSize > 0 && len(data) > maxSize {
		return Slot{}, fmt.Errorf("image %q exceeds the %dMB limit", filename, maxSize>>20)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return Slot{}, fmt.Errorf("cannot decode image %q: %w", filename, err)
	}
	thumb := imaging.Fit(img, previewMaxDim, previewMaxDim, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return Slot{}, fmt.Errorf("encode preview for %q: %w", filename, err)
	}

	return Slot{
		ID: uuid.New().String(),
		File: &wire.FileAttachment{
			Filename:    filename,
			ContentType: ct,
			Data:        data,
		},
		LocalPreview: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// FromRemote wraps an already-persisted reference. No file is present.
func FromRemote(ref string) Slot {
	return Slot{Remote: ref}
}

// FromAny normalizes one server-side image entry, which may be a bare path
// string or an object with an inner image/preview field.
func FromAny(v any) Slot {
	return FromRemote(assets.RefString(v))
}
