package tours

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, raw string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("bad fixture: %v", err)
	}
	return m
}

func TestNormalizeNilSeedsEverything(t *testing.T) {
	day := Normalize(nil)
	if len(day.Places) != 1 || len(day.Stays) != 1 || len(day.Meals) != 1 || len(day.Activities) != 1 {
		t.Fatalf("every list must come back with one row: %+v", day)
	}
	if day.Number != 1 {
		t.Errorf("missing day number defaults to 1, got %d", day.Number)
	}
	if len(day.Stays[0].RoomTypes) != 1 || day.Stays[0].RoomTypes[0].Type != RoomAC {
		t.Errorf("empty stay must seed one AC room: %+v", day.Stays[0].RoomTypes)
	}
}

func TestNormalizeScalars(t *testing.T) {
	day := Normalize(decode(t, `{
		"id": "d1", "packageId": "p9", "dayNumber": "3",
		"name": "Arrival", "description": "Land and rest"
	}`))
	if day.ID != "d1" || day.PackageID != "p9" {
		t.Errorf("ids: %+v", day)
	}
	if day.Number != 3 {
		t.Errorf("string day number must coerce, got %d", day.Number)
	}
	if day.Title != "Arrival" {
		t.Errorf("name alias: %q", day.Title)
	}
}

func TestNormalizeHotelsAlias(t *testing.T) {
	day := Normalize(decode(t, `{"title":"x","hotels":[{"name":"Taj","location":"Mumbai"}]}`))
	if len(day.Stays) != 1 || day.Stays[0].Name != "Taj" || day.Stays[0].Location != "Mumbai" {
		t.Errorf("hotels alias: %+v", day.Stays)
	}
}

func TestNormalizeRoomKinds(t *testing.T) {
	cases := map[string]RoomKind{
		"AC":      RoomAC,
		"Non AC":  RoomNonAC,
		"non-ac":  RoomNonAC,
		"DELUXE":  RoomDeluxe,
		"suite":   RoomSuite,
		"pent":    RoomAC,
		"":        RoomAC,
	}
	for in, want := range cases {
		if got := normalizeRoomKind(in); got != want {
			t.Errorf("normalizeRoomKind(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeMealLooseBool(t *testing.T) {
	day := Normalize(decode(t, `{"title":"x","meals":[
		{"type":"breakfast","included":true},
		{"type":"lunch","included":"true"},
		{"type":"dinner","is_included":1},
		{"type":"snack","included":"no"}
	]}`))
	if len(day.Meals) != 4 {
		t.Fatalf("expected 4 meals, got %d", len(day.Meals))
	}
	wants := []bool{true, true, true, false}
	for i, want := range wants {
		if day.Meals[i].Included != want {
			t.Errorf("meal %d included = %v, want %v", i, day.Meals[i].Included, want)
		}
	}
}

func TestNormalizeMixedImageShapes(t *testing.T) {
	day := Normalize(decode(t, `{"title":"x","places":[
		{"name":"Fort","images":["a.png",{"image":"b.png"}]}
	]}`))
	imgs := day.Places[0].Images
	if len(imgs) != 2 || imgs[0].Remote != "a.png" || imgs[1].Remote != "b.png" {
		t.Errorf("mixed image shapes: %+v", imgs)
	}
}
