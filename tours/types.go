// Package tours implements the multi-day tour package side of the admin:
// the day plan editor (places, stays, meals, activities per day) and its
// normalization and wire contracts.
package tours

import (
	"tourdesk/imageslot"
)

// MaxDayImages caps each sub-record's gallery. Day-plan forms use a count
// ceiling instead of the per-file size check the single-image forms use.
const MaxDayImages = 7

// RoomKind is the room-type enum the backend stores verbatim.
type RoomKind string

const (
	RoomAC     RoomKind = "AC"
	RoomNonAC  RoomKind = "Non-AC"
	RoomDeluxe RoomKind = "Deluxe"
	RoomSuite  RoomKind = "Suite"
)

// Day is the canonical editable day plan of a tour package.
type Day struct {
	ID          string
	PackageID   string
	Number      int
	Title       string
	Description string

	Places     []Place
	Stays      []Stay
	Meals      []Meal
	Activities []Activity
}

type Place struct {
	ID          string
	Name        string
	Description string
	Images      []imageslot.Slot
}

type Stay struct {
	ID          string
	Name        string
	Description string
	Location    string
	RoomTypes   []RoomType
	Images      []imageslot.Slot
}

// RoomType is a second-level repeatable record nested under a stay.
type RoomType struct {
	Type              RoomKind
	BreakfastIncluded bool
}

type Meal struct {
	ID             string
	Type           string
	Description    string
	RestaurantName string
	Time           string
	Location       string
	Included       bool
	Images         []imageslot.Slot
}

type Activity struct {
	ID          string
	Title       string
	Description string
	Images      []imageslot.Slot
}

func (p Place) GetImages() []imageslot.Slot { return p.Images }
func (p Place) WithImages(imgs []imageslot.Slot) Place {
	p.Images = imgs
	return p
}

func (s Stay) GetImages() []imageslot.Slot { return s.Images }
func (s Stay) WithImages(imgs []imageslot.Slot) Stay {
	s.Images = imgs
	return s
}

func (m Meal) GetImages() []imageslot.Slot { return m.Images }
func (m Meal) WithImages(imgs []imageslot.Slot) Meal {
	m.Images = imgs
	return m
}

func (a Activity) GetImages() []imageslot.Slot { return a.Images }
func (a Activity) WithImages(imgs []imageslot.Slot) Activity {
	a.Images = imgs
	return a
}

func EmptyPlace() Place       { return Place{} }
func EmptyStay() Stay         { return Stay{RoomTypes: []RoomType{{Type: RoomAC}}} }
func EmptyMeal() Meal         { return Meal{} }
func EmptyActivity() Activity { return Activity{} }

// EmptyDay seeds a create session: every list starts with one blank row.
func EmptyDay() Day {
	return Day{
		Number:     1,
		Places:     []Place{EmptyPlace()},
		Stays:      []Stay{EmptyStay()},
		Meals:      []Meal{EmptyMeal()},
		Activities: []Activity{EmptyActivity()},
	}
}
