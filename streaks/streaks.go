// Package streaks derives daily-streak and neglect aggregates from prayer
// logs and manual check-ins. Everything here is pure: callers pass the
// current time so the math is reproducible in tests.
package streaks

import (
	"fmt"
	"sort"
	"time"

	"github.com/PrayerJournal/models"
)

const DateLayout = "2006-01-02"

// NeglectThresholdDays is how many days without a log entry makes an
// active prayer count as neglected.
const NeglectThresholdDays = 3

// DateOf truncates a timestamp to its local calendar day. Local, not UTC:
// a user praying at 23:30 should see that day, not tomorrow's.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local calendar-day string.
func Today(now time.Time) string {
	return DateOf(now)
}

// Summary is everything the home screen derives from the prayer collection.
type Summary struct {
	CurrentStreak   int
	LongestStreak   int
	TotalDaysPrayed int
	TotalPrayers    int
	HasPrayedToday  bool
	MostPrayed      *models.Prayer
	Neglected       []models.Prayer
}

// Summarize flattens every prayer-log timestamp to a calendar day, unions
// in the manual check-in dates, and computes all streak stats over the
// distinct date set.
func Summarize(prayers []models.Prayer, checkins []string, now time.Time) Summary {
	dates := MergedDates(prayers, checkins)

	s := Summary{
		TotalDaysPrayed: len(dates),
		HasPrayedToday:  containsDate(dates, Today(now)),
		Neglected:       Neglected(prayers, now),
	}
	s.CurrentStreak, s.LongestStreak = Streaks(dates, now)

	maxLog := 0
	for i := range prayers {
		p := prayers[i]
		s.TotalPrayers += len(p.Prayer_Log)
		if !p.Answered && len(p.Prayer_Log) > maxLog {
			maxLog = len(p.Prayer_Log)
			s.MostPrayed = &prayers[i]
		}
	}

	return s
}

// MergedDates returns the sorted distinct calendar days covered by any
// prayer-log entry or manual check-in.
func MergedDates(prayers []models.Prayer, checkins []string) []string {
	seen := make(map[string]bool)
	for _, p := range prayers {
		for _, ts := range p.Prayer_Log {
			seen[DateOf(ts)] = true
		}
	}
	for _, d := range checkins {
		seen[d] = true
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Streaks computes the current and longest run of consecutive calendar
// days in dates. The current streak is zero unless the most recent date is
// today or yesterday; a gap of more than one day breaks it.
func Streaks(dates []string, now time.Time) (current, longest int) {
	distinct := dedupeSorted(dates)
	if len(distinct) == 0 {
		return 0, 0
	}

	today := Today(now)
	yesterday := DateOf(now.AddDate(0, 0, -1))

	newest := distinct[len(distinct)-1]
	if newest == today || newest == yesterday {
		current = 1
		for i := len(distinct) - 1; i > 0; i-- {
			if dayDiff(distinct[i-1], distinct[i]) == 1 {
				current++
			} else {
				break
			}
		}
	}

	longest = 1
	run := 1
	for i := 1; i < len(distinct); i++ {
		if dayDiff(distinct[i-1], distinct[i]) == 1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return current, longest
}

// Neglected returns the active prayers with no log at all, or whose last
// log entry is NeglectThresholdDays or more in the past.
func Neglected(prayers []models.Prayer, now time.Time) []models.Prayer {
	var out []models.Prayer
	for _, p := range prayers {
		if p.Answered {
			continue
		}
		if len(p.Prayer_Log) == 0 {
			out = append(out, p)
			continue
		}
		last := p.Prayer_Log[len(p.Prayer_Log)-1]
		if now.Sub(last) >= NeglectThresholdDays*24*time.Hour {
			out = append(out, p)
		}
	}
	return out
}

// FormatRelative renders a timestamp the way the journal lists do:
// "Today", "Yesterday", "4 days ago", "2 weeks ago", then absolute.
func FormatRelative(t, now time.Time) string {
	days := int(now.Sub(t).Hours() / 24)
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		weeks := days / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// dayDiff is the calendar-day distance between two date strings. Unparsable
// dates are treated as an infinite gap so garbage never extends a streak.
func dayDiff(earlier, later string) int {
	a, err1 := time.Parse(DateLayout, earlier)
	b, err2 := time.Parse(DateLayout, later)
	if err1 != nil || err2 != nil {
		return -1
	}
	return int(b.Sub(a).Hours() / 24)
}

func dedupeSorted(dates []string) []string {
	if len(dates) == 0 {
		return nil
	}
	sorted := append([]string(nil), dates...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, d := range sorted[1:] {
		if d != out[len(out)-1] {
			out = append(out, d)
		}
	}
	return out
}

func containsDate(sorted []string, date string) bool {
	i := sort.SearchStrings(sorted, date)
	return i < len(sorted) && sorted[i] == date
}
