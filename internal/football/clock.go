package football

import "fmt"

const (
	// QuarterSeconds is the length of one quarter.
	QuarterSeconds = 15 * 60
	// Quarters is the number of regulation quarters.
	Quarters = 4
)

// Advance runs the game clock down by elapsed seconds. When the clock goes
// negative the quarter rolls over and the overflow is taken from the next
// quarter. The returned clock is never negative.
func Advance(clock, quarter, elapsed int) (int, int) {
	remaining := clock - elapsed
	if remaining < 0 {
		quarter++
		remaining += QuarterSeconds
	}
	return max(0, remaining), quarter
}

// FormatClock renders seconds as m:ss.
func FormatClock(seconds int) string {
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
