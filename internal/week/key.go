// Package week derives and manipulates week keys of the form
// YYYY-MM-weekN, where N is the 1-based week-of-month index. The keys
// partition the record store, so exactly one numbering scheme is used
// everywhere: weeks run Monday through Sunday, anchored on the weekday
// of the month's first day.
package week

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

var keyPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-week(\d+)$`)

// Key is a parsed week key.
type Key struct {
	Year  int
	Month time.Month
	Week  int
}

// String renders the key in storage form.
func (k Key) String() string {
	return fmt.Sprintf("%04d-%02d-week%d", k.Year, int(k.Month), k.Week)
}

// Parse splits a week key into its parts, reporting false for anything
// that does not match the storage form.
func Parse(key string) (Key, bool) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return Key{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	wk, _ := strconv.Atoi(m[3])
	if month < 1 || month > 12 || wk < 1 {
		return Key{}, false
	}
	return Key{Year: year, Month: time.Month(month), Week: wk}, true
}

// OfMonth returns the 1-based week-of-month index for a date: the
// ceiling of (day + offset) / 7, where offset is the weekday of the
// month's first day with Sunday counted as 7 and Monday as 1.
func OfMonth(t time.Time) int {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	weekday := int(first.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return (t.Day() + weekday + 5) / 7
}

// ForDate returns the storage key for the week containing t.
func ForDate(t time.Time) string {
	return Key{Year: t.Year(), Month: t.Month(), Week: OfMonth(t)}.String()
}

// MaxWeeks returns the number of week slots in a month, under the same
// numbering OfMonth uses.
func MaxWeeks(year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return OfMonth(last)
}

// Next returns the key for the week after key, rolling into week 1 of
// the following month when the month's weeks are exhausted and bumping
// the year past December. An unparseable key falls back to the week
// containing now.
func Next(key string, now time.Time) string {
	k, ok := Parse(key)
	if !ok {
		return ForDate(now)
	}
	if k.Week < MaxWeeks(k.Year, k.Month) {
		k.Week++
		return k.String()
	}
	k.Week = 1
	if k.Month == time.December {
		k.Year++
		k.Month = time.January
	} else {
		k.Month++
	}
	return k.String()
}

// Label renders a key as the Korean display string "M월 N주차".
// Unparseable keys render empty.
func Label(key string) string {
	k, ok := Parse(key)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d월 %d주차", int(k.Month), k.Week)
}

// SortAsc returns the keys sorted by year, month, and week index.
// Unparseable keys sort before parseable ones, by plain string order.
// The input slice is not modified.
func SortAsc(keys []string) []string {
	out := append([]string(nil), keys...)
	sort.SliceStable(out, func(i, j int) bool {
		a, aok := Parse(out[i])
		b, bok := Parse(out[j])
		if !aok || !bok {
			if aok != bok {
				return !aok
			}
			return out[i] < out[j]
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		if a.Month != b.Month {
			return a.Month < b.Month
		}
		return a.Week < b.Week
	})
	return out
}

// GroupByMonth buckets parseable keys by their "YYYY-MM" prefix.
func GroupByMonth(keys []string) map[string][]string {
	out := make(map[string][]string)
	for _, key := range keys {
		k, ok := Parse(key)
		if !ok {
			continue
		}
		group := fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
		out[group] = append(out[group], key)
	}
	return out
}

// DateString formats t as "YYYY.MM.DD", the display form used next to
// week labels.
func DateString(t time.Time) string {
	return t.Format("2006.01.02")
}
