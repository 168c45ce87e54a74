package explore

import (
	"fmt"

	"tourdesk/imageslot"
	"tourdesk/sublist"
	"tourdesk/wire"
)

// Edit operations. Every operation returns a new Item; the session holds
// the only live reference, but copy-on-write keeps a failed operation from
// half-mutating the entity.

func (it Item) SetField(name, value string) (Item, error) {
	switch name {
	case "title":
		it.Title = value
	case "sub_header":
		it.SubHeader = value
	case "description":
		it.Description = value
	case "season_description":
		it.SeasonDescription = value
	default:
		return it, fmt.Errorf("unknown field %q", name)
	}
	return it, nil
}

// AddImages appends a batch of picked files to the main image list in one
// atomic merge.
func (it Item) AddImages(files []wire.FileAttachment) (Item, error) {
	wrapped := []imageHolder{{it.Images}}
	next, err := sublist.AppendImagesAt(wrapped, 0, files, 0)
	if err != nil {
		return it, err
	}
	it.Images = next[0].imgs
	return it, nil
}

func (it Item) RemoveImage(i int) Item {
	wrapped := []imageHolder{{it.Images}}
	it.Images = sublist.RemoveImageAt(wrapped, 0, i)[0].imgs
	return it
}

// AddSeason is refused while the backend persists only a single season;
// letting admins build seasons that silently never save is worse than the
// cap. See DESIGN.md.
func (it Item) AddSeason() (Item, error) {
	if len(it.Seasons) >= 1 {
		return it, fmt.Errorf("the backend stores a single season per destination")
	}
	it.Seasons = sublist.Append(it.Seasons, EmptySeason)
	return it, nil
}

func (it Item) RemoveSeason(i int) Item {
	it.Seasons = sublist.RemoveAt(it.Seasons, i, EmptySeason)
	return it
}

func (it Item) UpdateSeasonField(i int, name, value string) (Item, error) {
	var ferr error
	it.Seasons = sublist.UpdateAt(it.Seasons, i, func(s Season) Season {
		switch name {
		case "from_date":
			s.FromDate = value
		case "to_date":
			s.ToDate = value
		case "header":
			s.Header = value
		default:
			ferr = fmt.Errorf("unknown season field %q", name)
		}
		return s
	})
	return it, ferr
}

// AddIcon grows a season's icon row, capped at MaxIcons.
func (it Item) AddIcon(seasonIdx int) (Item, error) {
	if seasonIdx < 0 || seasonIdx >= len(it.Seasons) {
		return it, fmt.Errorf("no season at position %d", seasonIdx)
	}
	if len(it.Seasons[seasonIdx].Icons) >= MaxIcons {
		return it, fmt.Errorf("a season holds at most %d icons", MaxIcons)
	}
	it.Seasons = sublist.UpdateAt(it.Seasons, seasonIdx, func(s Season) Season {
		s.Icons = append(append([]imageslot.Slot{}, s.Icons...), imageslot.Empty())
		return s
	})
	return it, nil
}

// RemoveIcon shrinks a season's icon row, never below MinIcons.
func (it Item) RemoveIcon(seasonIdx, iconIdx int) (Item, error) {
	if seasonIdx < 0 || seasonIdx >= len(it.Seasons) {
		return it, fmt.Errorf("no season at position %d", seasonIdx)
	}
	icons := it.Seasons[seasonIdx].Icons
	if len(icons) <= MinIcons {
		return it, fmt.Errorf("a season keeps at least %d icons; clear the slot instead", MinIcons)
	}
	if iconIdx < 0 || iconIdx >= len(icons) {
		return it, fmt.Errorf("no icon at position %d", iconIdx)
	}
	it.Seasons = sublist.UpdateAt(it.Seasons, seasonIdx, func(s Season) Season {
		next := append([]imageslot.Slot{}, s.Icons[:iconIdx]...)
		s.Icons = append(next, s.Icons[iconIdx+1:]...)
		return s
	})
	return it, nil
}

// SetIcon replaces one icon slot's image with a freshly picked file,
// keeping its caption.
func (it Item) SetIcon(seasonIdx, iconIdx int, file wire.FileAttachment) (Item, error) {
	if seasonIdx < 0 || seasonIdx >= len(it.Seasons) {
		return it, fmt.Errorf("no season at position %d", seasonIdx)
	}
	if iconIdx < 0 || iconIdx >= len(it.Seasons[seasonIdx].Icons) {
		return it, fmt.Errorf("no icon at position %d", iconIdx)
	}
	slot, err := imageslot.FromFile(file.Filename, file.ContentType, file.Data)
	if err != nil {
		return it, err
	}
	it.Seasons = sublist.UpdateAt(it.Seasons, seasonIdx, func(s Season) Season {
		icons := append([]imageslot.Slot{}, s.Icons...)
		slot.Description = icons[iconIdx].Description
		icons[iconIdx] = slot
		s.Icons = icons
		return s
	})
	return it, nil
}

func (it Item) SetIconDescription(seasonIdx, iconIdx int, desc string) (Item, error) {
	if seasonIdx < 0 || seasonIdx >= len(it.Seasons) {
		return it, fmt.Errorf("no season at position %d", seasonIdx)
	}
	if iconIdx < 0 || iconIdx >= len(it.Seasons[seasonIdx].Icons) {
		return it, fmt.Errorf("no icon at position %d", iconIdx)
	}
	it.Seasons = sublist.UpdateAt(it.Seasons, seasonIdx, func(s Season) Season {
		icons := append([]imageslot.Slot{}, s.Icons...)
		icons[iconIdx].Description = desc
		s.Icons = icons
		return s
	})
	return it, nil
}

func (it Item) AddExperience() Item {
	it.Experiences = sublist.Append(it.Experiences, EmptyExperience)
	return it
}

func (it Item) RemoveExperience(i int) Item {
	it.Experiences = sublist.RemoveAt(it.Experiences, i, EmptyExperience)
	return it
}

func (it Item) UpdateExperienceField(i int, name, value string) (Item, error) {
	var ferr error
	it.Experiences = sublist.UpdateAt(it.Experiences, i, func(e Experience) Experience {
		switch name {
		case "title":
			e.Title = value
		case "description":
			e.Description = value
		default:
			ferr = fmt.Errorf("unknown experience field %q", name)
		}
		return e
	})
	return it, ferr
}

func (it Item) AddExperienceImages(i int, files []wire.FileAttachment) (Item, error) {
	next, err := sublist.AppendImagesAt(it.Experiences, i, files, 0)
	if err != nil {
		return it, err
	}
	it.Experiences = next
	return it, nil
}

func (it Item) RemoveExperienceImage(i, imgIdx int) Item {
	it.Experiences = sublist.RemoveImageAt(it.Experiences, i, imgIdx)
	return it
}

// imageHolder adapts the entity-level main image list to the sublist
// helpers, which operate on records.
type imageHolder struct{ imgs []imageslot.Slot }

func (h imageHolder) GetImages() []imageslot.Slot { return h.imgs }

func (h imageHolder) WithImages(imgs []imageslot.Slot) imageHolder {
	return imageHolder{imgs}
}
