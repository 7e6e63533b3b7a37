package record

import (
	"math"
	"sort"
	"strings"
)

// Scope restricts an aggregation to one (day-group, period) slot. The
// zero value covers the whole week.
type Scope struct {
	dayGroup DayGroup
	period   Period
	scoped   bool
}

// WeekScope covers all six slots of the week.
func WeekScope() Scope { return Scope{} }

// PeriodScope covers exactly one slot.
func PeriodScope(dg DayGroup, p Period) Scope {
	return Scope{dayGroup: dg, period: p, scoped: true}
}

// slots returns the period records in scope, in the fixed deterministic
// order: monWedFri before tueThuSat, periods 1 through 3.
func (s Scope) slots(rec *WeekRecord) []*PeriodRecord {
	if s.scoped {
		return []*PeriodRecord{rec.Schedule.Group(s.dayGroup).Slot(s.period)}
	}
	out := make([]*PeriodRecord, 0, 6)
	for _, dg := range DayGroups {
		group := rec.Schedule.Group(dg)
		for _, p := range Periods {
			out = append(out, group.Slot(p))
		}
	}
	return out
}

// matchesStudent reports whether an entry belongs to the student.
// Matching is trim-insensitive but case-sensitive.
func matchesStudent(e HomeworkEntry, trimmedName string) bool {
	return strings.TrimSpace(e.Name) == trimmedName
}

// StudentAverage returns the student's mean homework score within
// scope, rounded half up, or nil when the student has no numeric
// scores there. Nil is distinct from a true average of zero.
func StudentAverage(rec WeekRecord, student string, scope Scope) *int {
	want := strings.TrimSpace(student)
	var sum, count int
	for _, slot := range scope.slots(&rec) {
		for _, e := range slot.Homework {
			if !matchesStudent(e, want) || e.HomeworkScore == nil {
				continue
			}
			sum += *e.HomeworkScore
			count++
		}
	}
	if count == 0 {
		return nil
	}
	avg := int(math.Round(float64(sum) / float64(count)))
	return &avg
}

// Notes is the collected free-text view of one student's records within
// a scope.
type Notes struct {
	ReasonBelow100 string   `json:"reasonBelow100"`
	WeeklyIssue    string   `json:"weeklyIssue"`
	MissedHomework []string `json:"missedHomework"`
}

// StudentNotes collects the student's below-100 reasons, period issues,
// and outstanding checklist items within scope. Strings are trimmed and
// empties dropped; output order follows the fixed slot order and then
// entry order, so exports are reproducible.
func StudentNotes(rec WeekRecord, student string, scope Scope) Notes {
	want := strings.TrimSpace(student)
	var reasons, issues []string
	missed := []string{}

	for _, slot := range scope.slots(&rec) {
		for _, e := range slot.Homework {
			if !matchesStudent(e, want) {
				continue
			}
			if r := strings.TrimSpace(e.Reason); r != "" {
				reasons = append(reasons, r)
			}
			if iss := strings.TrimSpace(e.Issue); iss != "" {
				issues = append(issues, iss)
			}
			for _, todo := range e.MissedTodos {
				if todo.Done {
					continue
				}
				if text := strings.TrimSpace(todo.Text); text != "" {
					missed = append(missed, text)
				}
			}
		}
	}

	return Notes{
		ReasonBelow100: strings.Join(reasons, "\n"),
		WeeklyIssue:    strings.Join(issues, "\n"),
		MissedHomework: missed,
	}
}

// StudentNames returns every distinct student name appearing in the
// week's homework entries, trimmed and sorted ascending.
func StudentNames(rec WeekRecord) []string {
	return StudentNamesIn(rec, WeekScope())
}

// StudentNamesIn is StudentNames restricted to a scope. It drives both
// the summary table and export row generation.
func StudentNamesIn(rec WeekRecord, scope Scope) []string {
	seen := make(map[string]struct{})
	names := []string{}
	for _, slot := range scope.slots(&rec) {
		for _, e := range slot.Homework {
			name := strings.TrimSpace(e.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
