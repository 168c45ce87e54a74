package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	"tourdesk/wire"
)

// --- Multipart helpers ---

// ReadFormFiles drains every uploaded file under a multipart field into
// attachments the editors can batch-process. The 32MB cap matches what the
// gateway is willing to hold in memory per request.
const MaxFormMemory = 32 << 20

func ReadFormFiles(r *http.Request, field string) ([]wire.FileAttachment, error) {
	if r.MultipartForm == nil {
		if err := r.ParseMultipartForm(MaxFormMemory); err != nil {
			return nil, fmt.Errorf("invalid form data: %w", err)
		}
	}
	headers := r.MultipartForm.File[field]
	files := make([]wire.FileAttachment, 0, len(headers))
	for _, h := range headers {
		// Reject on the declared type before any bytes are read; the slot
		// builders re-check on decode.
		if !ValidateImageFileHeader(h) {
			return nil, fmt.Errorf("%s is not an image (got %s)",
				h.Filename, h.Header.Get("Content-Type"))
		}
		f, err := h.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", h.Filename, err)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", h.Filename, err)
		}
		files = append(files, wire.FileAttachment{
			Filename:    SanitizeFilename(h.Filename),
			ContentType: h.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	return files, nil
}

func ReadFormFile(r *http.Request, field string) (*wire.FileAttachment, error) {
	files, err := ReadFormFiles(r, field)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[0], nil
}

// ValidateImageFileHeader checks a multipart header's declared type before
// anything is read.
func ValidateImageFileHeader(header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif":
		return true
	}
	return false
}

// SanitizeFilename strips anything that is not a word character, dot or
// dash from a client-supplied filename.
func SanitizeFilename(name string) string {
	re := regexp.MustCompile(`[^\w.\-]`)
	clean := re.ReplaceAllString(filepath.Base(name), "_")
	if clean == "" || clean == "." || clean == ".." {
		return "file"
	}
	return clean
}
