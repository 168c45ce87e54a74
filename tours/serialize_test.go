package tours

import (
	"bytes"
	"encoding/json"
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
	if _, err := Serialize(Day{}); err == nil {
		t.Fatal("blank title must fail")
	}
}

func TestSerializeFileFieldPosition(t *testing.T) {
	day := EmptyDay()
	day.Title = "Day 1"
	day.Places[0].Name = "Fort"
	day.Places[0].Images = []imageslot.Slot{
		imageslot.FromRemote("old-1.png"),
		imageslot.FromRemote("old-2.png"),
		pendingSlot(t, "new.png"),
	}

	fs, err := Serialize(day)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	files := fs.FileNames()
	if len(files) != 1 || files[0] != "place_image_0_2" {
		t.Fatalf("file index must be the slot's position in the full array, got %v", files)
	}

	// persisted refs ride inside the JSON blob, pending ones do not
	blob, _ := fs.Value("places")
	var places []map[string]any
	if err := json.Unmarshal([]byte(blob), &places); err != nil {
		t.Fatalf("places blob: %v", err)
	}
	imgs, _ := places[0]["images"].([]any)
	if len(imgs) != 2 || imgs[0] != "old-1.png" || imgs[1] != "old-2.png" {
		t.Errorf("persisted refs: %v", imgs)
	}
}

func TestSerializeBlobContents(t *testing.T) {
	day := EmptyDay()
	day.Title = "Day 2"
	day.Number = 2
	day.PackageID = "p1"
	day.Stays[0] = Stay{
		Name:     "Taj",
		Location: "Mumbai",
		RoomTypes: []RoomType{
			{Type: RoomDeluxe, BreakfastIncluded: true},
		},
	}
	day.Meals[0] = Meal{Type: "dinner", RestaurantName: "Spice", Included: true}

	fs, err := Serialize(day)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	if got, _ := fs.Value("day_number"); got != "2" {
		t.Errorf("day_number = %q", got)
	}
	if got, _ := fs.Value("package_id"); got != "p1" {
		t.Errorf("package_id = %q", got)
	}

	blob, _ := fs.Value("stays")
	var stays []map[string]any
	if err := json.Unmarshal([]byte(blob), &stays); err != nil {
		t.Fatalf("stays blob: %v", err)
	}
	if stays[0]["name"] != "Taj" || stays[0]["location"] != "Mumbai" {
		t.Errorf("stay fields: %v", stays[0])
	}
	rooms, _ := stays[0]["room_types"].([]any)
	if len(rooms) != 1 {
		t.Fatalf("room_types: %v", rooms)
	}
	room := rooms[0].(map[string]any)
	if room["type"] != "Deluxe" || room["breakfast_included"] != true {
		t.Errorf("room blob: %v", room)
	}

	blob, _ = fs.Value("meals")
	var meals []map[string]any
	if err := json.Unmarshal([]byte(blob), &meals); err != nil {
		t.Fatalf("meals blob: %v", err)
	}
	if meals[0]["type"] != "dinner" || meals[0]["included"] != true {
		t.Errorf("meal blob: %v", meals[0])
	}
}

func TestSerializeBlobOrder(t *testing.T) {
	day := EmptyDay()
	day.Title = "Day 3"

	fs, err := Serialize(day)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	var got []string
	for _, f := range fs.Fields() {
		switch f.Name {
		case "places", "stays", "meals", "activities":
			got = append(got, f.Name)
		}
	}
	want := []string{"places", "stays", "meals", "activities"}
	for i := range want {
		if i >= len(got) || got[i] != want[i] {
			t.Fatalf("blob order = %v, want %v", got, want)
		}
	}
}

func TestSerializeMultipleFamilies(t *testing.T) {
	day := EmptyDay()
	day.Title = "Day 4"
	day.Stays[0].Images = []imageslot.Slot{pendingSlot(t, "s.png")}
	day.Activities[0].Images = []imageslot.Slot{
		imageslot.FromRemote("kept.png"),
		pendingSlot(t, "a.png"),
	}

	fs, err := Serialize(day)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	files := fs.FileNames()
	if len(files) != 2 {
		t.Fatalf("expected 2 file fields, got %v", files)
	}
	if files[0] != "stay_image_0_0" || files[1] != "activity_image_0_1" {
		t.Errorf("family naming: %v", files)
	}
}
