package explore

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"tourdesk/imageslot"
)

func pendingSlot(t *testing.T, name string) imageslot.Slot {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	slot, err := imageslot.FromFile(name, "image/png", buf.Bytes())
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	return slot
}

func TestSerializeRequiresTitle(t *testing.T) {
	if _, err := Serialize(Item{Title: "   "}); err == nil {
		t.Fatal("blank title must fail before any field is built")
	}
}

func TestSerializeSeasonAndIcons(t *testing.T) {
	item := EmptyItem()
	item.Title = "Goa Trip"
	item.Seasons[0].FromDate = "2024-01-01"
	item.Seasons[0].ToDate = "2024-01-31"
	item.Seasons[0].Header = "Peak"
	item.Seasons[0].Icons[0] = pendingSlot(t, "icon-a.png")
	item.Seasons[0].Icons[0].Description = "Sunny"
	item.Seasons[0].Icons[1] = pendingSlot(t, "icon-b.png")
	item.Seasons[0].Icons[1].Description = "Dry"

	fs, err := Serialize(item)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	for name, want := range map[string]string{
		"sight[title]":              "Goa Trip",
		"season[from_date]":         "2024-01-01",
		"season[to_date]":           "2024-01-31",
		"season[header]":            "Peak",
		"season[icon1_description]": "Sunny",
		"season[icon2_description]": "Dry",
		"season[icon3_description]": "",
	} {
		got, ok := fs.Value(name)
		if !ok {
			t.Errorf("field %q missing", name)
			continue
		}
		if got != want {
			t.Errorf("field %q = %q, want %q", name, got, want)
		}
	}

	files := fs.FileNames()
	if len(files) != 2 {
		t.Fatalf("expected exactly 2 file fields, got %v", files)
	}
	if files[0] != "season[icon1]" || files[1] != "season[icon2]" {
		t.Errorf("icon file fields wrong: %v", files)
	}
}

func TestSerializeMainImagesOneBased(t *testing.T) {
	item := EmptyItem()
	item.Title = "T"
	item.Images = []imageslot.Slot{
		imageslot.FromRemote("kept.png"),
		pendingSlot(t, "new.png"),
	}

	fs, err := Serialize(item)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	files := fs.FileNames()
	if len(files) != 1 || files[0] != "sight_image_2" {
		t.Errorf("main image naming is 1-based by position, got %v", files)
	}
	if _, ok := fs.Value("sight_image_1"); ok {
		t.Error("persisted slot must contribute no field at all")
	}
}

func TestSerializeExperiences(t *testing.T) {
	item := EmptyItem()
	item.Title = "T"
	item.Experiences = []Experience{
		{ID: "e1", Title: "Fort", Description: "Old fort", Images: []imageslot.Slot{
			imageslot.FromRemote("kept.png"),
			pendingSlot(t, "fresh.png"),
		}},
		{Title: "Beach"},
	}

	fs, err := Serialize(item)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	if got, _ := fs.Value("experiences[0][id]"); got != "e1" {
		t.Errorf("experiences[0][id] = %q", got)
	}
	if got, _ := fs.Value("experiences[1][title]"); got != "Beach" {
		t.Errorf("experiences[1][title] = %q", got)
	}
	if _, ok := fs.Value("experiences[1][id]"); ok {
		t.Error("unsaved experience must not emit an id field")
	}

	files := fs.FileNames()
	if len(files) != 1 || files[0] != "experiences[0][images][1]" {
		t.Errorf("experience image naming is 0-based by position, got %v", files)
	}
}

func TestSerializeNormalizesDates(t *testing.T) {
	item := EmptyItem()
	item.Title = "T"
	item.Seasons[0].FromDate = "2024-3-5"
	item.Seasons[0].ToDate = "garbage"

	fs, err := Serialize(item)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got, _ := fs.Value("season[from_date]"); got != "2024-03-05" {
		t.Errorf("from_date = %q", got)
	}
	if got, _ := fs.Value("season[to_date]"); got != "" {
		t.Errorf("unparseable date must serialize as empty, got %q", got)
	}
}
