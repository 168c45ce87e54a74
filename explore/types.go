// Package explore implements the destination ("sight") content editor:
// one entity with main images, seasonal info with icon rows, and a list of
// experiences, each with its own image gallery.
package explore

import (
	"tourdesk/imageslot"
)

const (
	// Icon row bounds. The normalizer always hands the editor exactly
	// MinIcons entries; editing may grow a row up to MaxIcons and removal
	// below MinIcons is refused.
	MinIcons = 3
	MaxIcons = 6
)

// Item is the canonical editable explore entity. Scalar fields are plain
// strings; empty string means unset.
type Item struct {
	ID                string
	Title             string
	SubHeader         string
	Description       string
	SeasonDescription string

	Images      []imageslot.Slot
	Seasons     []Season
	Experiences []Experience
}

// Season carries a date range, a header and a fixed icon row. Icons reuse
// Slot with Description as the caption.
type Season struct {
	ID       string
	FromDate string
	ToDate   string
	Header   string
	Icons    []imageslot.Slot
}

// Experience is one sight within the destination, with a variable gallery.
type Experience struct {
	ID          string
	Title       string
	Description string
	Images      []imageslot.Slot
}

func (e Experience) GetImages() []imageslot.Slot { return e.Images }

func (e Experience) WithImages(imgs []imageslot.Slot) Experience {
	e.Images = imgs
	return e
}

// EmptySeason seeds a fresh season with MinIcons blank icon slots.
func EmptySeason() Season {
	s := Season{}
	for i := 0; i < MinIcons; i++ {
		s.Icons = append(s.Icons, imageslot.Empty())
	}
	return s
}

func EmptyExperience() Experience { return Experience{} }

// EmptyItem is the starting point of a create session: one empty season,
// one empty experience, no images.
func EmptyItem() Item {
	return Item{
		Seasons:     []Season{EmptySeason()},
		Experiences: []Experience{EmptyExperience()},
	}
}
