package admin

import (
	"fmt"
	"strings"
	"time"

	"docmanagement/internal/domain"
)

// LocalDateTimeLayout is the editable form of a timestamp
const LocalDateTimeLayout = "2006-01-02T15:04"

// ToLocalInput renders a wire timestamp for editing in loc. Nil renders empty.
func ToLocalInput(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format(LocalDateTimeLayout)
}

// FromLocalInput parses an edited timestamp in loc. Empty input means no
// timestamp.
func FromLocalInput(field, s string, loc *time.Location) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(LocalDateTimeLayout, s, loc)
	if err != nil {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("%s: expected %s, got %q", field, LocalDateTimeLayout, s),
		}
	}
	t = t.UTC()
	return &t, nil
}

// StartOfDay renders local midnight of now's day, the default for new records.
func StartOfDay(now time.Time, loc *time.Location) string {
	local := now.In(loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return midnight.Format(LocalDateTimeLayout)
}

// FormatTimestamp renders a timestamp for list and detail views
func FormatTimestamp(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("2006-01-02 15:04")
}
