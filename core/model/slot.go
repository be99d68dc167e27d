package model

import (
	"fmt"
	"strings"
	"time"
)

// SlotDuration is the resolution of the scheduling grid.
const SlotDuration = 30 * time.Minute

// SlotsPerDay is the number of half-hour slots in one calendar day.
const SlotsPerDay = 48

// Day returns the canonical 48-slot grid for the given date, starting at
// local midnight. The supplied time's clock component is ignored.
func Day(date time.Time) []time.Time {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	slots := make([]time.Time, SlotsPerDay)
	for i := range slots {
		slots[i] = start.Add(time.Duration(i) * SlotDuration)
	}
	return slots
}

// ValidateGrid checks that a caller-supplied slot grid is usable: non-empty,
// strictly increasing and spaced exactly one slot apart. Shorter-than-a-day
// grids are accepted; the planner processes what it is given.
func ValidateGrid(slots []time.Time) error {
	if len(slots) == 0 {
		return fmt.Errorf("slot grid is empty")
	}
	for i := 1; i < len(slots); i++ {
		if d := slots[i].Sub(slots[i-1]); d != SlotDuration {
			return fmt.Errorf("slot grid not contiguous at index %d: gap %v", i, d)
		}
	}
	return nil
}

// ClockTime is a time of day expressed as minutes since midnight.
type ClockTime int

// Clock builds a ClockTime from hours and minutes.
func Clock(hour, minute int) ClockTime { return ClockTime(hour*60 + minute) }

// ParseClock parses "HH:MM" into a ClockTime.
func ParseClock(s string) (ClockTime, error) {
	s = strings.TrimSpace(s)
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return Clock(h, m), nil
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalJSON encodes the clock time as "HH:MM".
func (c ClockTime) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", c.String())), nil
}

// UnmarshalJSON accepts an "HH:MM" string.
func (c *ClockTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ClockOf returns the ClockTime of a timestamp.
func ClockOf(t time.Time) ClockTime { return Clock(t.Hour(), t.Minute()) }

// ClockWindow is a [Start, End) range of wall-clock time within a day.
// Start == End denotes an empty window; Start > End wraps across midnight.
type ClockWindow struct {
	Start ClockTime `json:"start"`
	End   ClockTime `json:"end"`
}

// Contains reports whether the clock time falls inside the window.
func (w ClockWindow) Contains(c ClockTime) bool {
	if w.Start == w.End {
		return false
	}
	if w.Start < w.End {
		return c >= w.Start && c < w.End
	}
	return c >= w.Start || c < w.End
}
