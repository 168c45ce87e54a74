// Package sublist holds the generic machinery behind every repeatable
// sub-record list in the editors (seasons, sights, places, stays, meals,
// activities). All operations copy-on-write: callers may hold the old slice.
package sublist

import (
	"fmt"
	"slices"

	"tourdesk/imageslot"
	"tourdesk/wire"

	"github.com/sourcegraph/conc/iter"
)

// ImageHolder is implemented by sub-record types that own an image array.
// WithImages returns a copy of the record with the images replaced.
type ImageHolder[T any] interface {
	GetImages() []imageslot.Slot
	WithImages(imgs []imageslot.Slot) T
}

// Append pushes one empty record at the end.
func Append[T any](list []T, empty func() T) []T {
	out := slices.Clone(list)
	return append(out, empty())
}

// RemoveAt deletes the record at index i. A list is never left empty:
// removing the last record re-seeds one empty placeholder instead, so the
// form always has a row to type into.
func RemoveAt[T any](list []T, i int, empty func() T) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := slices.Clone(list)
	out = append(out[:i], out[i+1:]...)
	if len(out) == 0 {
		out = append(out, empty())
	}
	return out
}

// UpdateAt replaces the record at index i with mutate(record). Other
// elements are untouched; out-of-range indices are a no-op.
func UpdateAt[T any](list []T, i int, mutate func(T) T) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	out := slices.Clone(list)
	out[i] = mutate(out[i])
	return out
}

// AppendImagesAt reads a batch of freshly picked files and appends the
// resulting pending slots to the record at index i. The reads run
// concurrently but join before anything is committed: either every file in
// the batch lands, in order, in one update, or the list comes back
// unchanged with the batch error. No partial merges.
func AppendImagesAt[T ImageHolder[T]](list []T, i int, files []wire.FileAttachment, maxImages int) ([]T, error) {
	if i < 0 || i >= len(list) {
		return list, fmt.Errorf("no record at position %d", i)
	}
	if len(files) == 0 {
		return list, nil
	}
	existing := list[i].GetImages()
	if maxImages > 0 && len(existing)+len(files) > maxImages {
		return list, fmt.Errorf("at most %d images allowed, already have %d", maxImages, len(existing))
	}

	// Count-capped galleries skip the per-file size ceiling; uncapped
	// lists keep it. The two checks are alternatives, never combined.
	sizeLimit := imageslot.MaxFileSize
	if maxImages > 0 {
		sizeLimit = 0
	}
	slots, err := iter.MapErr(files, func(f *wire.FileAttachment) (imageslot.Slot, error) {
		return imageslot.FromFileLimit(f.Filename, f.ContentType, f.Data, sizeLimit)
	})
	if err != nil {
		return list, err
	}

	imgs := slices.Clone(existing)
	imgs = append(imgs, slots...)
	return UpdateAt(list, i, func(rec T) T { return rec.WithImages(imgs) }), nil
}

// RemoveImageAt deletes one image from the record at index i by position.
func RemoveImageAt[T ImageHolder[T]](list []T, i, imgIndex int) []T {
	if i < 0 || i >= len(list) {
		return list
	}
	imgs := list[i].GetImages()
	if imgIndex < 0 || imgIndex >= len(imgs) {
		return list
	}
	next := slices.Clone(imgs)
	next = append(next[:imgIndex], next[imgIndex+1:]...)
	return UpdateAt(list, i, func(rec T) T { return rec.WithImages(next) })
}
