package tours

import (
	"strings"

	"tourdesk/imageslot"
	"tourdesk/utils"
)

// Normalize converts a day-plan payload from the backend into the canonical
// Day. Like the explore normalizer it never fails on a missing or oddly
// shaped field: defaults are substituted, and every list comes back with
// at least one row so the editor has something to show.
func Normalize(raw map[string]any) Day {
	if raw == nil {
		return EmptyDay()
	}

	day := Day{
		ID:          utils.Str(raw["id"]),
		PackageID:   utils.FirstString(raw, "package_id", "packageId"),
		Number:      utils.LooseInt(firstPresent(raw, "day_number", "dayNumber", "number")),
		Title:       utils.FirstString(raw, "title", "name"),
		Description: utils.FirstString(raw, "description"),
		Places:      normalizePlaces(raw),
		Stays:       normalizeStays(raw),
		Meals:       normalizeMeals(raw),
		Activities:  normalizeActivities(raw),
	}
	if day.Number == 0 {
		day.Number = 1
	}
	return day
}

func normalizePlaces(raw map[string]any) []Place {
	arr := arrayAt(raw, "places")
	places := make([]Place, 0, len(arr))
	for _, m := range arr {
		places = append(places, Place{
			ID:          utils.Str(m["id"]),
			Name:        utils.FirstString(m, "name", "title"),
			Description: utils.FirstString(m, "description"),
			Images:      normalizeSlotList(m["images"]),
		})
	}
	if len(places) == 0 {
		return []Place{EmptyPlace()}
	}
	return places
}

// normalizeStays accepts both the stays key and the older hotels key.
func normalizeStays(raw map[string]any) []Stay {
	arr := arrayAt(raw, "stays")
	if len(arr) == 0 {
		arr = arrayAt(raw, "hotels")
	}
	stays := make([]Stay, 0, len(arr))
	for _, m := range arr {
		stays = append(stays, Stay{
			ID:          utils.Str(m["id"]),
			Name:        utils.FirstString(m, "name", "title"),
			Description: utils.FirstString(m, "description"),
			Location:    utils.FirstString(m, "location"),
			RoomTypes:   normalizeRoomTypes(m),
			Images:      normalizeSlotList(m["images"]),
		})
	}
	if len(stays) == 0 {
		return []Stay{EmptyStay()}
	}
	return stays
}

func normalizeRoomTypes(m map[string]any) []RoomType {
	arr := arrayAt(m, "room_types")
	if len(arr) == 0 {
		arr = arrayAt(m, "roomTypes")
	}
	rooms := make([]RoomType, 0, len(arr))
	for _, rm := range arr {
		rooms = append(rooms, RoomType{
			Type:              normalizeRoomKind(utils.FirstString(rm, "type", "room_type", "roomType")),
			BreakfastIncluded: utils.LooseBool(firstPresent(rm, "breakfast_included", "breakfastIncluded")),
		})
	}
	if len(rooms) == 0 {
		return []RoomType{{Type: RoomAC}}
	}
	return rooms
}

// normalizeRoomKind maps the spellings the backend has stored over time
// onto the canonical enum. Unknown kinds fall back to AC.
func normalizeRoomKind(s string) RoomKind {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-")) {
	case "non-ac", "nonac":
		return RoomNonAC
	case "deluxe":
		return RoomDeluxe
	case "suite":
		return RoomSuite
	default:
		return RoomAC
	}
}

func normalizeMeals(raw map[string]any) []Meal {
	arr := arrayAt(raw, "meals")
	meals := make([]Meal, 0, len(arr))
	for _, m := range arr {
		meals = append(meals, Meal{
			ID:             utils.Str(m["id"]),
			Type:           utils.FirstString(m, "type", "meal_type", "mealType"),
			Description:    utils.FirstString(m, "description"),
			RestaurantName: utils.FirstString(m, "restaurant_name", "restaurantName"),
			Time:           utils.FirstString(m, "time"),
			Location:       utils.FirstString(m, "location"),
			Included:       utils.LooseBool(firstPresent(m, "included", "is_included", "isIncluded")),
			Images:         normalizeSlotList(m["images"]),
		})
	}
	if len(meals) == 0 {
		return []Meal{EmptyMeal()}
	}
	return meals
}

func normalizeActivities(raw map[string]any) []Activity {
	arr := arrayAt(raw, "activities")
	acts := make([]Activity, 0, len(arr))
	for _, m := range arr {
		acts = append(acts, Activity{
			ID:          utils.Str(m["id"]),
			Title:       utils.FirstString(m, "title", "name"),
			Description: utils.FirstString(m, "description"),
			Images:      normalizeSlotList(m["images"]),
		})
	}
	if len(acts) == 0 {
		return []Activity{EmptyActivity()}
	}
	return acts
}

// normalizeSlotList handles both image list shapes: bare path strings and
// {image: ...} objects, mixed freely.
func normalizeSlotList(v any) []imageslot.Slot {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	slots := make([]imageslot.Slot, 0, len(arr))
	for _, e := range arr {
		slots = append(slots, imageslot.FromAny(e))
	}
	return slots
}

func arrayAt(m map[string]any, key string) []map[string]any {
	arr, ok := m[key].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(arr))
	for _, v := range arr {
		if e, ok := v.(map[string]any); ok {
			out = append(out, e)
		}
	}
	return out
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}
