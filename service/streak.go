package service

import "time"

const dateLayout = "2006-01-02"

// ComputeStreaks derives the current and longest consecutive-day writing
// streaks from distinct entry dates (YYYY-MM-DD) sorted descending.
//
// The longest streak is the maximum run of exactly-one-day gaps anywhere in
// the history. The current streak counts only when the most recent date is
// today or yesterday and stops at the first broken gap. Malformed dates are
// skipped, never fatal.
func ComputeStreaks(datesDesc []string, today time.Time) (current, longest int) {
	parsed := make([]time.Time, 0, len(datesDesc))
	for _, raw := range datesDesc {
		d, err := time.Parse(dateLayout, raw)
		if err != nil {
			continue
		}
		parsed = append(parsed, d)
	}
	if len(parsed) == 0 {
		return 0, 0
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	counting := false
	if gap := daysBetween(parsed[0], todayDate); gap == 0 || gap == 1 {
		counting = true
	}

	temp := 0
	for i, d := range parsed {
		if i == 0 {
			temp = 1
			if counting {
				current = 1
			}
		} else {
			gap := daysBetween(d, parsed[i-1])
			if gap == 1 {
				temp++
				if counting {
					current++
				}
			} else {
				temp = 1
				counting = false
			}
		}
		if temp > longest {
			longest = temp
		}
	}
	return current, longest
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
