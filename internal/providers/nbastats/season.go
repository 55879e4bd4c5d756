package nbastats

import (
	"fmt"
	"time"
)

// CurrentSeason returns the season label for t, e.g. "2024-25".
// Seasons roll over in October.
func CurrentSeason(t time.Time) string {
	start := t.Year()
	if t.Month() < time.October {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}
