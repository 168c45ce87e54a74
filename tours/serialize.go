package tours

import (
	"encoding/json"
	"fmt"
	"strings"

	"tourdesk/imageslot"
	"tourdesk/wire"
)

// Serialize produces the day-plan endpoint's multipart field set. This
// endpoint uses the JSON-blob convention: each sub-record list is one
// JSON-encoded array under a single field key, with persisted image
// references inlined so the backend keeps them. New files ride alongside
// as doubly-indexed file fields:
//
//	place_image_{placeIndex}_{imgIndex}
//	stay_image_{stayIndex}_{imgIndex}
//	meal_image_{mealIndex}_{imgIndex}
//	activity_image_{activityIndex}_{imgIndex}
//
// Both indexes are 0-based; imgIndex is the slot's position in the full
// image array, so a file appended after two persisted images lands at _2.
// The explore endpoint uses the other convention (indexed key families);
// the two are not interchangeable.
func Serialize(day Day) (*wire.FieldSet, error) {
	if strings.TrimSpace(day.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	fs := &wire.FieldSet{}
	fs.AddValue("title", day.Title)
	fs.AddValue("description", day.Description)
	fs.AddInt("day_number", day.Number)
	if day.PackageID != "" {
		fs.AddValue("package_id", day.PackageID)
	}

	places := make([]map[string]any, len(day.Places))
	for i, p := range day.Places {
		places[i] = map[string]any{
			"id":          p.ID,
			"name":        p.Name,
			"description": p.Description,
			"images":      persistedRefs(p.Images),
		}
		addSlotFiles(fs, "place_image", i, p.Images)
	}

	stays := make([]map[string]any, len(day.Stays))
	for i, s := range day.Stays {
		rooms := make([]map[string]any, len(s.RoomTypes))
		for j, rt := range s.RoomTypes {
			rooms[j] = map[string]any{
				"type":               string(rt.Type),
				"breakfast_included": rt.BreakfastIncluded,
			}
		}
		stays[i] = map[string]any{
			"id":          s.ID,
			"name":        s.Name,
			"description": s.Description,
			"location":    s.Location,
			"room_types":  rooms,
			"images":      persistedRefs(s.Images),
		}
		addSlotFiles(fs, "stay_image", i, s.Images)
	}

	meals := make([]map[string]any, len(day.Meals))
	for i, m := range day.Meals {
		meals[i] = map[string]any{
			"id":              m.ID,
			"type":            m.Type,
			"description":     m.Description,
			"restaurant_name": m.RestaurantName,
			"time":            m.Time,
			"location":        m.Location,
			"included":        m.Included,
			"images":          persistedRefs(m.Images),
		}
		addSlotFiles(fs, "meal_image", i, m.Images)
	}

	acts := make([]map[string]any, len(day.Activities))
	for i, a := range day.Activities {
		acts[i] = map[string]any{
			"id":          a.ID,
			"title":       a.Title,
			"description": a.Description,
			"images":      persistedRefs(a.Images),
		}
		addSlotFiles(fs, "activity_image", i, a.Images)
	}

	for _, blob := range []struct {
		name string
		v    any
	}{
		{"places", places},
		{"stays", stays},
		{"meals", meals},
		{"activities", acts},
	} {
		data, err := json.Marshal(blob.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", blob.name, err)
		}
		fs.AddValue(blob.name, string(data))
	}

	return fs, nil
}

// addSlotFiles emits one file field per pending slot, keyed by the slot's
// position in the full array. Persisted slots contribute nothing.
func addSlotFiles(fs *wire.FieldSet, family string, recIndex int, slots []imageslot.Slot) {
	for j, slot := range slots {
		if slot.IsPending() {
			fs.AddFile(fmt.Sprintf("%s_%d_%d", family, recIndex, j), slot.File)
		}
	}
}

func persistedRefs(slots []imageslot.Slot) []string {
	refs := []string{}
	for _, s := range slots {
		if !s.IsPending() && s.Remote != "" {
			refs = append(refs, s.Remote)
		}
	}
	return refs
}
