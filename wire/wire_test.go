package wire

import (
	"io"
	"mime"
	"mime/multipart"
	"testing"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2024-3-5", "2024-03-05"},
		{"2024-03-05", "2024-03-05"},
		{"2024/1/9", "2024-01-09"},
		{"not-a-date", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := FormatDate(c.in); got != c.want {
			t.Errorf("FormatDate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFieldSetOrderAndLookup(t *testing.T) {
	fs := &FieldSet{}
	fs.AddValue("title", "Goa")
	fs.AddValue("description", "")
	fs.AddBool("published", true)
	fs.AddFile("image_0", &FileAttachment{Filename: "a.png", ContentType: "image/png", Data: []byte{1}})

	fields := fs.Fields()
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
	if fields[0].Name != "title" || fields[3].Name != "image_0" {
		t.Fatalf("field order not preserved: %+v", fields)
	}
	if v, ok := fs.Value("description"); !ok || v != "" {
		t.Errorf("empty scalar must still be present, got %q ok=%v", v, ok)
	}
	if names := fs.FileNames(); len(names) != 1 || names[0] != "image_0" {
		t.Errorf("unexpected file names %v", names)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	fs := &FieldSet{}
	fs.AddValue("sight[title]", "Goa Trip")
	fs.AddValue("season[icon3_description]", "")
	fs.AddFile("season[icon1]", &FileAttachment{
		Filename:    "sun.png",
		ContentType: "image/png",
		Data:        []byte("png-bytes"),
	})

	body, contentType, err := fs.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("bad content type %q: %v", contentType, err)
	}
	mr := multipart.NewReader(body, params["boundary"])
	form, err := mr.ReadForm(1 << 20)
	if err != nil {
		t.Fatalf("ReadForm: %v", err)
	}

	if got := form.Value["sight[title]"]; len(got) != 1 || got[0] != "Goa Trip" {
		t.Errorf("sight[title] = %v", got)
	}
	if got, ok := form.Value["season[icon3_description]"]; !ok || got[0] != "" {
		t.Errorf("empty caption must be emitted, got %v ok=%v", got, ok)
	}

	files := form.File["season[icon1]"]
	if len(files) != 1 {
		t.Fatalf("expected 1 file under season[icon1], got %d", len(files))
	}
	f, err := files[0].Open()
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	data, _ := io.ReadAll(f)
	if string(data) != "png-bytes" {
		t.Errorf("file bytes = %q", data)
	}
}
