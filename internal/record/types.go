// Package record defines the canonical shape of a week's class record
// and the pure normalization and aggregation functions over it. Every
// historical storage shape is converted into the canonical one on
// decode; everything downstream of this package may assume the
// canonical shape without nil checks.
package record

// DayGroup identifies one of the two fixed three-day class schedules.
type DayGroup string

const (
	MonWedFri DayGroup = "monWedFri"
	TueThuSat DayGroup = "tueThuSat"
)

// DayGroups is the canonical iteration order for day groups. Aggregation
// output depends on this order, so it is fixed.
var DayGroups = []DayGroup{MonWedFri, TueThuSat}

// ParseDayGroup validates a day-group string from an external caller.
func ParseDayGroup(s string) (DayGroup, bool) {
	switch DayGroup(s) {
	case MonWedFri, TueThuSat:
		return DayGroup(s), true
	}
	return "", false
}

// Period identifies one of the three class slots within a day group.
type Period string

const (
	Period1 Period = "period1"
	Period2 Period = "period2"
	Period3 Period = "period3"
)

// Periods is the canonical iteration order for periods.
var Periods = []Period{Period1, Period2, Period3}

// ParsePeriod validates a period string from an external caller.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case Period1, Period2, Period3:
		return Period(s), true
	}
	return "", false
}

// TodoItem is one entry in a student's checklist of unfinished homework.
// Done marks the item resolved, so only undone items are outstanding.
type TodoItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// HomeworkEntry is one student's record within one period. Name is the
// identity key for all cross-period aggregation. A nil HomeworkScore
// means "not entered" and is excluded from averages, never treated as
// zero. WordScore is display-only free text and takes no part in
// aggregation.
type HomeworkEntry struct {
	Name          string     `json:"name"`
	WordScore     *string    `json:"wordScore"`
	HomeworkScore *int       `json:"homeworkScore"`
	Reason        string     `json:"reason"`
	Issue         string     `json:"issue"`
	MissedTodos   []TodoItem `json:"missedTodos"`
}

// HomeworkList is an ordered sequence of homework entries. Order is
// user-controlled display order. Its JSON decoding also accepts the
// oldest storage shape, a plain object mapping student name to a
// nullable score, and converts it in key encounter order.
type HomeworkList []HomeworkEntry

// Progress holds free-text progress descriptions for the recognized
// subjects.
type Progress struct {
	Reading   string `json:"reading,omitempty"`
	Listening string `json:"listening,omitempty"`
	Grammar   string `json:"grammar,omitempty"`
}

// PeriodRecord is one class period's content within one day group.
type PeriodRecord struct {
	Note     string       `json:"note,omitempty"`
	Progress Progress     `json:"progress"`
	Homework HomeworkList `json:"homework"`
}

// DayGroupSchedule holds the three period records of one day group. All
// three always exist; an untouched period is simply empty.
type DayGroupSchedule struct {
	Period1 PeriodRecord `json:"period1"`
	Period2 PeriodRecord `json:"period2"`
	Period3 PeriodRecord `json:"period3"`
}

// Slot returns the period record for p. Unknown values resolve to
// period 1, which keeps callers total.
func (g *DayGroupSchedule) Slot(p Period) *PeriodRecord {
	switch p {
	case Period2:
		return &g.Period2
	case Period3:
		return &g.Period3
	}
	return &g.Period1
}

// Schedule is the full six-slot grid of one week.
type Schedule struct {
	MonWedFri DayGroupSchedule `json:"monWedFri"`
	TueThuSat DayGroupSchedule `json:"tueThuSat"`
}

// Group returns the day-group schedule for dg. Unknown values resolve
// to the Mon/Wed/Fri group.
func (s *Schedule) Group(dg DayGroup) *DayGroupSchedule {
	if dg == TueThuSat {
		return &s.TueThuSat
	}
	return &s.MonWedFri
}

// SummaryEntry is the manually curated weekly overlay for one student,
// distinct from the values derived from homework entries.
type SummaryEntry struct {
	ReasonBelow100 string `json:"reasonBelow100"`
	WeeklyIssue    string `json:"weeklyIssue"`
}

// WeekRecord is the root entity for one calendar week.
type WeekRecord struct {
	Schedule       Schedule                `json:"schedule"`
	StudentSummary map[string]SummaryEntry `json:"studentSummary"`
}

// Empty returns the canonical empty week record: all six slots present
// and empty, student summary present and empty.
func Empty() WeekRecord {
	return Normalize(WeekRecord{})
}

// ClampScore clamps an entered homework score to the valid 0..100
// range. Out-of-range input is corrected at the point of entry rather
// than rejected.
func ClampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
