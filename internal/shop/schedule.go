package shop

import (
	"errors"
	"time"

	"github.com/allin1appd-sys/zenchair/internal/availability"
)

var (
	ErrShopNotFound = errors.New("shop not found")
	ErrShopExists   = errors.New("owner already has a shop")
	ErrNotShopOwner = errors.New("not the shop owner")

	// ErrInvalidShopConfig means the stored weekly template is broken:
	// a weekday row is missing or an open day has open >= close. This
	// is a data integrity fault, not a caller error.
	ErrInvalidShopConfig = errors.New("invalid shop configuration")

	ErrInvalidWorkingHours = errors.New("invalid working hours")
)

const minutesPerDay = 24 * 60

// OpenWindow resolves the shop's open interval for a date from its
// weekly template and closure dates. The second return is false when
// the shop is closed that day.
func OpenWindow(hours []WorkingHours, closures []string, date time.Time) (availability.Window, bool, error) {
	dateStr := date.Format(DateLayout)
	for _, c := range closures {
		if c == dateStr {
			return availability.Window{}, false, nil
		}
	}

	weekday := int(date.Weekday())
	var entry *WorkingHours
	for i := range hours {
		if hours[i].Weekday == weekday {
			entry = &hours[i]
			break
		}
	}
	if entry == nil || len(hours) != 7 {
		return availability.Window{}, false, ErrInvalidShopConfig
	}

	if entry.IsClosed {
		return availability.Window{}, false, nil
	}

	if entry.OpenMinute < 0 || entry.CloseMinute > minutesPerDay || entry.OpenMinute >= entry.CloseMinute {
		return availability.Window{}, false, ErrInvalidShopConfig
	}

	return availability.Window{Open: entry.OpenMinute, Close: entry.CloseMinute}, true, nil
}

// ParseClockTime converts a "15:04" string to minutes of day.
func ParseClockTime(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClockTime renders minutes of day as "15:04".
func FormatClockTime(minute int) string {
	return time.Date(0, 1, 1, minute/60, minute%60, 0, 0, time.UTC).Format("15:04")
}

// validateHours checks a full weekly template: exactly one entry per
// weekday 0-6 and open < close on every open day.
func validateHours(entries []WorkingHoursEntry) ([]WorkingHours, error) {
	if len(entries) != 7 {
		return nil, ErrInvalidWorkingHours
	}

	seen := make(map[int]bool, 7)
	hours := make([]WorkingHours, 0, 7)
	for _, e := range entries {
		if e.Weekday < 0 || e.Weekday > 6 || seen[e.Weekday] {
			return nil, ErrInvalidWorkingHours
		}
		seen[e.Weekday] = true

		wh := WorkingHours{Weekday: e.Weekday, IsClosed: e.IsClosed}
		if !e.IsClosed {
			open, err := ParseClockTime(e.OpenTime)
			if err != nil {
				return nil, ErrInvalidWorkingHours
			}
			closeMin, err := ParseClockTime(e.CloseTime)
			if err != nil {
				return nil, ErrInvalidWorkingHours
			}
			if open >= closeMin {
				return nil, ErrInvalidWorkingHours
			}
			wh.OpenMinute = open
			wh.CloseMinute = closeMin
		}
		hours = append(hours, wh)
	}
	return hours, nil
}

// defaultHours seeds a new shop: open 09:00-18:00 every day. Owners
// adjust the template afterwards.
func defaultHours() []WorkingHours {
	hours := make([]WorkingHours, 7)
	for d := 0; d < 7; d++ {
		hours[d] = WorkingHours{Weekday: d, OpenMinute: 9 * 60, CloseMinute: 18 * 60}
	}
	return hours
}
