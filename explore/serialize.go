package explore

import (
	"fmt"
	"strings"

	"tourdesk/wire"
)

// Serialize walks the canonical item and produces the multipart field set
// the explore endpoint expects. Conventions, reproduced verbatim because
// the backend parses field names structurally:
//
//   - entity scalars under sight[...], emitted even when empty so the
//     backend can clear a field
//   - main images as sight_image_N, N 1-based by slot position
//   - the season under singular season[...] keys; only the first season is
//     sent; the backend has no multi-season persistence yet, so the rest
//     of the list deliberately stays client-side (see DESIGN.md)
//   - icon captions always (season[iconN_description]), icon files only for
//     pending slots (season[iconN]); persisted icons contribute no field
//     and the backend keeps what it has
//   - experiences as indexed key families, images at
//     experiences[i][images][j], j 0-based by slot position
//
// Only pending images ever attach bytes.
func Serialize(item Item) (*wire.FieldSet, error) {
	if strings.TrimSpace(item.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}

	fs := &wire.FieldSet{}
	fs.AddValue("sight[title]", item.Title)
	fs.AddValue("sight[sub_header]", item.SubHeader)
	fs.AddValue("sight[description]", item.Description)
	fs.AddValue("sight[season_description]", item.SeasonDescription)

	for i, slot := range item.Images {
		if slot.IsPending() {
			fs.AddFile(fmt.Sprintf("sight_image_%d", i+1), slot.File)
		}
	}

	if len(item.Seasons) > 0 {
		season := item.Seasons[0]
		fs.AddValue("season[from_date]", wire.FormatDate(season.FromDate))
		fs.AddValue("season[to_date]", wire.FormatDate(season.ToDate))
		fs.AddValue("season[header]", season.Header)
		if season.ID != "" {
			fs.AddValue("season[id]", season.ID)
		}
		for i, icon := range season.Icons {
			fs.AddValue(fmt.Sprintf("season[icon%d_description]", i+1), icon.Description)
			if icon.IsPending() {
				fs.AddFile(fmt.Sprintf("season[icon%d]", i+1), icon.File)
			}
		}
	}

	for i, exp := range item.Experiences {
		if exp.ID != "" {
			fs.AddValue(fmt.Sprintf("experiences[%d][id]", i), exp.ID)
		}
		fs.AddValue(fmt.Sprintf("experiences[%d][title]", i), exp.Title)
		fs.AddValue(fmt.Sprintf("experiences[%d][description]", i), exp.Description)
		for j, slot := range exp.Images {
			if slot.IsPending() {
				fs.AddFile(fmt.Sprintf("experiences[%d][images][%d]", i, j), slot.File)
			}
		}
	}

	return fs, nil
}
