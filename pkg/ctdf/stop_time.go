package ctdf

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type StopTime struct {
	StopID string `json:"stopId"`

	// DepartureTime is HH:MM:SS relative to the service day, hours can go past 23
	DepartureTime string `json:"departureTime"`
}

type StopTimes []StopTime

// DepartureOn resolves the departure time as wall clock time on the given service
// day in its location. Times past midnight roll over into the following day.
func (s StopTime) DepartureOn(day time.Time) (time.Time, error) {
	parts := strings.Split(s.DepartureTime, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return time.Time{}, fmt.Errorf("invalid departure time %q", s.DepartureTime)
	}

	values := [3]int{}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid departure time %q: %w", s.DepartureTime, err)
		}
		values[i] = n
	}

	// time.Date carries hours past 23 into the next day and keeps the wall
	// clock on days the offset changes
	return time.Date(day.Year(), day.Month(), day.Day(), values[0], values[1], values[2], 0, day.Location()), nil
}
