package explore

import (
	"fmt"

	"tourdesk/assets"
	"tourdesk/imageslot"
	"tourdesk/utils"
)

// Normalize converts whatever shape the backend returned for an explore
// entity into the one canonical Item the editor works on. The backend has
// gone through several formats (singular season vs seasons array, flat
// icon1..icon3 fields vs an icons array, bare-string vs object images,
// snake_case vs camelCase), so every branch here substitutes defaults
// rather than failing on a missing or odd field.
func Normalize(raw map[string]any) Item {
	if raw == nil {
		return EmptyItem()
	}

	item := Item{
		ID:                str(raw["id"]),
		Title:             firstString(raw, "title", "name"),
		SubHeader:         firstString(raw, "sub_header", "subHeader"),
		Description:       firstString(raw, "description"),
		SeasonDescription: firstString(raw, "season_description", "seasonDescription"),
		Images:            normalizeImages(raw),
		Seasons:           normalizeSeasons(raw),
		Experiences:       normalizeExperiences(raw),
	}
	return item
}

// normalizeImages prefers the images array, falls back to the legacy single
// image field, else yields an empty list.
func normalizeImages(raw map[string]any) []imageslot.Slot {
	if arr, ok := raw["images"].([]any); ok {
		slots := make([]imageslot.Slot, 0, len(arr))
		for _, v := range arr {
			slots = append(slots, imageslot.FromAny(v))
		}
		return slots
	}
	if ref := assets.RefString(raw["image"]); ref != "" {
		return []imageslot.Slot{imageslot.FromRemote(ref)}
	}
	return nil
}

// normalizeSeasons handles the two season formats: a seasons array, or the
// legacy singular season object wrapped into a one-element list. Absent
// both, the editor still gets one empty season to type into.
func normalizeSeasons(raw map[string]any) []Season {
	if arr, ok := raw["seasons"].([]any); ok && len(arr) > 0 {
		seasons := make([]Season, 0, len(arr))
		for _, v := range arr {
			if m, ok := v.(map[string]any); ok {
				seasons = append(seasons, normalizeSeason(m))
			}
		}
		if len(seasons) > 0 {
			return seasons
		}
	}
	if m, ok := raw["season"].(map[string]any); ok {
		return []Season{normalizeSeason(m)}
	}
	return []Season{EmptySeason()}
}

func normalizeSeason(m map[string]any) Season {
	return Season{
		ID:       str(m["id"]),
		FromDate: firstString(m, "from_date", "fromDate"),
		ToDate:   firstString(m, "to_date", "toDate"),
		Header:   firstString(m, "header"),
		Icons:    normalizeIcons(m),
	}
}

// normalizeIcons builds the icon row from either the icons array or the
// flat icon1..icon3 (+ *_description) fields, then clamps the row to
// exactly MinIcons entries: pad with blanks, truncate beyond.
func normalizeIcons(m map[string]any) []imageslot.Slot {
	var icons []imageslot.Slot

	if arr, ok := m["icons"].([]any); ok {
		for _, v := range arr {
			im, _ := v.(map[string]any)
			icons = append(icons, imageslot.Slot{
				Remote:      firstString(im, "image", "preview"),
				Description: firstString(im, "description"),
			})
		}
	} else {
		for n := 1; n <= MinIcons; n++ {
			ref := firstString(m, fmt.Sprintf("icon%d", n))
			desc := firstString(m, fmt.Sprintf("icon%d_description", n))
			if ref == "" && desc == "" {
				continue
			}
			icons = append(icons, imageslot.Slot{Remote: ref, Description: desc})
		}
	}

	for len(icons) < MinIcons {
		icons = append(icons, imageslot.Empty())
	}
	return icons[:MinIcons]
}

// normalizeExperiences accepts both the experiences key and the older
// sights key; entries missing both yield one empty experience so the list
// is never empty in the editor.
func normalizeExperiences(raw map[string]any) []Experience {
	arr, ok := raw["experiences"].([]any)
	if !ok {
		arr, ok = raw["sights"].([]any)
	}
	if !ok || len(arr) == 0 {
		return []Experience{EmptyExperience()}
	}

	exps := make([]Experience, 0, len(arr))
	for _, v := range arr {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		exp := Experience{
			ID:          str(m["id"]),
			Title:       firstString(m, "title", "name"),
			Description: firstString(m, "description"),
		}
		if imgs, ok := m["images"].([]any); ok {
			for _, iv := range imgs {
				exp.Images = append(exp.Images, imageslot.FromAny(iv))
			}
		}
		exps = append(exps, exp)
	}
	if len(exps) == 0 {
		return []Experience{EmptyExperience()}
	}
	return exps
}

func firstString(m map[string]any, keys ...string) string {
	return utils.FirstString(m, keys...)
}

func str(v any) string { return utils.Str(v) }
