package tours

import (
	"fmt"
	"slices"

	"tourdesk/sublist"
	"tourdesk/wire"
)

// Edit operations over the canonical Day. Copy-on-write throughout, same
// contract as the explore editor.

func (d Day) SetField(name, value string) (Day, error) {
	switch name {
	case "title":
		d.Title = value
	case "description":
		d.Description = value
	default:
		return d, fmt.Errorf("unknown field %q", name)
	}
	return d, nil
}

// --- places ---

func (d Day) AddPlace() Day {
	d.Places = sublist.Append(d.Places, EmptyPlace)
	return d
}

func (d Day) RemovePlace(i int) Day {
	d.Places = sublist.RemoveAt(d.Places, i, EmptyPlace)
	return d
}

func (d Day) UpdatePlaceField(i int, name, value string) (Day, error) {
	var ferr error
	d.Places = sublist.UpdateAt(d.Places, i, func(p Place) Place {
		switch name {
		case "name":
			p.Name = value
		case "description":
			p.Description = value
		default:
			ferr = fmt.Errorf("unknown place field %q", name)
		}
		return p
	})
	return d, ferr
}

func (d Day) AddPlaceImages(i int, files []wire.FileAttachment) (Day, error) {
	next, err := sublist.AppendImagesAt(d.Places, i, files, MaxDayImages)
	if err != nil {
		return d, err
	}
	d.Places = next
	return d, nil
}

func (d Day) RemovePlaceImage(i, imgIdx int) Day {
	d.Places = sublist.RemoveImageAt(d.Places, i, imgIdx)
	return d
}

// --- stays ---

func (d Day) AddStay() Day {
	d.Stays = sublist.Append(d.Stays, EmptyStay)
	return d
}

func (d Day) RemoveStay(i int) Day {
	d.Stays = sublist.RemoveAt(d.Stays, i, EmptyStay)
	return d
}

func (d Day) UpdateStayField(i int, name, value string) (Day, error) {
	var ferr error
	d.Stays = sublist.UpdateAt(d.Stays, i, func(s Stay) Stay {
		switch name {
		case "name":
			s.Name = value
		case "description":
			s.Description = value
		case "location":
			s.Location = value
		default:
			ferr = fmt.Errorf("unknown stay field %q", name)
		}
		return s
	})
	return d, ferr
}

func (d Day) AddStayImages(i int, files []wire.FileAttachment) (Day, error) {
	next, err := sublist.AppendImagesAt(d.Stays, i, files, MaxDayImages)
	if err != nil {
		return d, err
	}
	d.Stays = next
	return d, nil
}

func (d Day) RemoveStayImage(i, imgIdx int) Day {
	d.Stays = sublist.RemoveImageAt(d.Stays, i, imgIdx)
	return d
}

// AddRoomType appends a room row to one stay. Room types are the second
// nesting level, so they get their own operations instead of going through
// the generic list helpers.
func (d Day) AddRoomType(stayIdx int) (Day, error) {
	if stayIdx < 0 || stayIdx >= len(d.Stays) {
		return d, fmt.Errorf("no stay at position %d", stayIdx)
	}
	d.Stays = sublist.UpdateAt(d.Stays, stayIdx, func(s Stay) Stay {
		s.RoomTypes = append(slices.Clone(s.RoomTypes), RoomType{Type: RoomAC})
		return s
	})
	return d, nil
}

func (d Day) RemoveRoomType(stayIdx, roomIdx int) (Day, error) {
	if stayIdx < 0 || stayIdx >= len(d.Stays) {
		return d, fmt.Errorf("no stay at position %d", stayIdx)
	}
	rooms := d.Stays[stayIdx].RoomTypes
	if roomIdx < 0 || roomIdx >= len(rooms) {
		return d, fmt.Errorf("no room type at position %d", roomIdx)
	}
	d.Stays = sublist.UpdateAt(d.Stays, stayIdx, func(s Stay) Stay {
		next := slices.Clone(s.RoomTypes)
		next = append(next[:roomIdx], next[roomIdx+1:]...)
		if len(next) == 0 {
			next = append(next, RoomType{Type: RoomAC})
		}
		s.RoomTypes = next
		return s
	})
	return d, nil
}

func (d Day) UpdateRoomType(stayIdx, roomIdx int, kind RoomKind, breakfast bool) (Day, error) {
	if stayIdx < 0 || stayIdx >= len(d.Stays) {
		return d, fmt.Errorf("no stay at position %d", stayIdx)
	}
	if roomIdx < 0 || roomIdx >= len(d.Stays[stayIdx].RoomTypes) {
		return d, fmt.Errorf("no room type at position %d", roomIdx)
	}
	switch kind {
	case RoomAC, RoomNonAC, RoomDeluxe, RoomSuite:
	default:
		return d, fmt.Errorf("unknown room type %q", kind)
	}
	d.Stays = sublist.UpdateAt(d.Stays, stayIdx, func(s Stay) Stay {
		next := slices.Clone(s.RoomTypes)
		next[roomIdx] = RoomType{Type: kind, BreakfastIncluded: breakfast}
		s.RoomTypes = next
		return s
	})
	return d, nil
}

// --- meals ---

func (d Day) AddMeal() Day {
	d.Meals = sublist.Append(d.Meals, EmptyMeal)
	return d
}

func (d Day) RemoveMeal(i int) Day {
	d.Meals = sublist.RemoveAt(d.Meals, i, EmptyMeal)
	return d
}

func (d Day) UpdateMealField(i int, name, value string) (Day, error) {
	var ferr error
	d.Meals = sublist.UpdateAt(d.Meals, i, func(m Meal) Meal {
		switch name {
		case "type":
			m.Type = value
		case "description":
			m.Description = value
		case "restaurant_name":
			m.RestaurantName = value
		case "time":
			m.Time = value
		case "location":
			m.Location = value
		case "included":
			m.Included = value == "true" || value == "1"
		default:
			ferr = fmt.Errorf("unknown meal field %q", name)
		}
		return m
	})
	return d, ferr
}

func (d Day) AddMealImages(i int, files []wire.FileAttachment) (Day, error) {
	next, err := sublist.AppendImagesAt(d.Meals, i, files, MaxDayImages)
	if err != nil {
		return d, err
	}
	d.Meals = next
	return d, nil
}

func (d Day) RemoveMealImage(i, imgIdx int) Day {
	d.Meals = sublist.RemoveImageAt(d.Meals, i, imgIdx)
	return d
}

// --- activities ---

func (d Day) AddActivity() Day {
	d.Activities = sublist.Append(d.Activities, EmptyActivity)
	return d
}

func (d Day) RemoveActivity(i int) Day {
	d.Activities = sublist.RemoveAt(d.Activities, i, EmptyActivity)
	return d
}

func (d Day) UpdateActivityField(i int, name, value string) (Day, error) {
	var ferr error
	d.Activities = sublist.UpdateAt(d.Activities, i, func(a Activity) Activity {
		switch name {
		case "title":
			a.Title = value
		case "description":
			a.Description = value
		default:
			ferr = fmt.Errorf("unknown activity field %q", name)
		}
		return a
	})
	return d, ferr
}

func (d Day) AddActivityImages(i int, files []wire.FileAttachment) (Day, error) {
	next, err := sublist.AppendImagesAt(d.Activities, i, files, MaxDayImages)
	if err != nil {
		return d, err
	}
	d.Activities = next
	return d, nil
}

func (d Day) RemoveActivityImage(i, imgIdx int) Day {
	d.Activities = sublist.RemoveImageAt(d.Activities, i, imgIdx)
	return d
}
