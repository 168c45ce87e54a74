package wire

import (
	"log"
	"regexp"
	"time"
)

var isoDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Layouts the booking backend has been seen sending back for date fields.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"02-01-2006",
	"2/1/2006",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// FormatDate normalizes a user- or server-supplied date to YYYY-MM-DD.
// Already-normalized input passes through untouched. Anything unparseable
// becomes an empty string; the backend treats empty as "clear the field",
// which beats aborting a whole submit over one bad date.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	if isoDate.MatchString(s) {
		return s
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	log.Printf("FormatDate: unparseable date %q, sending empty", s)
	return ""
}
