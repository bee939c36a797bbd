package utils

import (
	"fmt"
	"time"
)

// ParseEventDate converts a provider event timestamp such as
// "2019-06-28T18:03:50+01:00" to a unix timestamp.
func ParseEventDate(eventDate string) (int64, error) {
	t, err := time.Parse(time.RFC3339, eventDate)
	if err != nil {
		return 0, fmt.Errorf("error parsing event date: %w", err)
	}

	return t.Unix(), nil
}
