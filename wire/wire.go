package wire

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
)

// FileAttachment holds the raw bytes of a file picked by the admin but not
// yet uploaded to the booking backend.
type FileAttachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Field is one entry of an outgoing multipart payload. Either Value or File
// is set, never both.
type Field struct {
	Name  string
	Value string
	File  *FileAttachment
}

func (f Field) IsFile() bool { return f.File != nil }

// FieldSet is an ordered multipart field collection. Order matters: the
// booking backend parses positional field names structurally, and keeping
// emission order stable keeps payloads diffable in logs.
type FieldSet struct {
	fields []Field
}

func (fs *FieldSet) AddValue(name, value string) {
	fs.fields = append(fs.fields, Field{Name: name, Value: value})
}

func (fs *FieldSet) AddBool(name string, v bool) {
	fs.fields = append(fs.fields, Field{Name: name, Value: strconv.FormatBool(v)})
}

func (fs *FieldSet) AddInt(name string, v int) {
	fs.fields = append(fs.fields, Field{Name: name, Value: strconv.Itoa(v)})
}

func (fs *FieldSet) AddFile(name string, att *FileAttachment) {
	if att == nil {
		return
	}
	fs.fields = append(fs.fields, Field{Name: name, File: att})
}

func (fs *FieldSet) Fields() []Field { return fs.fields }

// Value returns the first plain value stored under name, for tests and
// logging. Empty string when absent.
func (fs *FieldSet) Value(name string) (string, bool) {
	for _, f := range fs.fields {
		if f.Name == name && f.File == nil {
			return f.Value, true
		}
	}
	return "", false
}

// FileNames returns the names of all file fields in emission order.
func (fs *FieldSet) FileNames() []string {
	var names []string
	for _, f := range fs.fields {
		if f.File != nil {
			names = append(names, f.Name)
		}
	}
	return names
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Encode writes the field set as a multipart/form-data body and returns the
// body plus its Content-Type (which carries the boundary).
func (fs *FieldSet) Encode() (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	for _, f := range fs.fields {
		if f.File == nil {
			if err := mw.WriteField(f.Name, f.Value); err != nil {
				return nil, "", fmt.Errorf("write field %s: %w", f.Name, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Name), quoteEscaper.Replace(f.File.Filename)))
		ct := f.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %s: %w", f.Name, err)
		}
		if _, err := part.Write(f.File.Data); err != nil {
			return nil, "", fmt.Errorf("write file %s: %w", f.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return body, mw.FormDataContentType(), nil
}
