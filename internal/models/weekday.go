package models

import (
	"fmt"
	"strings"
	"time"
)

// WeekdayOrder lists weekdays Monday first, the order plans are displayed in.
var WeekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

// ParseWeekday accepts full or three-letter English names, case-insensitive.
// "monday" -> time.Monday, "Tue" -> time.Tuesday
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, wd := range WeekdayOrder {
		full := strings.ToLower(wd.String())
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
