package record_test

import (
	"reflect"
	"testing"

	"github.com/daeun-lee/hakwonlog/internal/record"
)

// buildWeek places homework entries into the given slots of a fresh
// canonical record.
func buildWeek(slots map[record.DayGroup]map[record.Period]record.HomeworkList) record.WeekRecord {
	rec := record.Empty()
	for dg, periods := range slots {
		for p, homework := range periods {
			rec.Schedule.Group(dg).Slot(p).Homework = homework
		}
	}
	return record.Normalize(rec)
}

func TestStudentAverage_ExcludesNilScores(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {
				{Name: "A", HomeworkScore: intPtr(80)},
				{Name: "A", HomeworkScore: nil},
				{Name: "A", HomeworkScore: intPtr(100)},
			},
		},
	})

	got := record.StudentAverage(rec, "A", record.WeekScope())
	if got == nil {
		t.Fatal("average = nil, want 90")
	}
	if *got != 90 {
		t.Errorf("average = %d, want 90 (mean of 80 and 100 only)", *got)
	}
}

func TestStudentAverage_NoDataSentinel(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {{Name: "A", HomeworkScore: nil}},
		},
	})

	if got := record.StudentAverage(rec, "A", record.WeekScope()); got != nil {
		t.Errorf("average = %d, want nil for a student with no numeric scores", *got)
	}
	if got := record.StudentAverage(rec, "Nobody", record.WeekScope()); got != nil {
		t.Errorf("average = %d, want nil for an unknown student", *got)
	}
}

func TestStudentAverage_RoundsHalfUp(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {
				{Name: "A", HomeworkScore: intPtr(85)},
				{Name: "A", HomeworkScore: intPtr(90)},
			},
		},
	})

	got := record.StudentAverage(rec, "A", record.WeekScope())
	if got == nil || *got != 88 {
		t.Errorf("average = %v, want 88 (87.5 rounded half up)", got)
	}
}

func TestStudentAverage_NameMatching(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {
				{Name: " Alice ", HomeworkScore: intPtr(80)},
				{Name: "Alice", HomeworkScore: intPtr(100)},
				{Name: "alice", HomeworkScore: intPtr(0)},
			},
		},
	})

	got := record.StudentAverage(rec, "Alice", record.WeekScope())
	if got == nil || *got != 90 {
		t.Errorf("average = %v, want 90: trim-insensitive, case-sensitive matching", got)
	}

	lower := record.StudentAverage(rec, "alice", record.WeekScope())
	if lower == nil || *lower != 0 {
		t.Errorf("average for 'alice' = %v, want 0: lowercase is a different student", lower)
	}
}

func TestStudentAverage_PeriodScope(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {{Name: "Kim", HomeworkScore: intPtr(60)}},
		},
		record.TueThuSat: {
			record.Period2: {{Name: "Kim", HomeworkScore: intPtr(100)}},
		},
	})

	whole := record.StudentAverage(rec, "Kim", record.WeekScope())
	if whole == nil || *whole != 80 {
		t.Errorf("week average = %v, want 80", whole)
	}

	scoped := record.StudentAverage(rec, "Kim", record.PeriodScope(record.TueThuSat, record.Period2))
	if scoped == nil || *scoped != 100 {
		t.Errorf("scoped average = %v, want 100", scoped)
	}

	other := record.StudentAverage(rec, "Kim", record.PeriodScope(record.MonWedFri, record.Period3))
	if other != nil {
		t.Errorf("empty-slot average = %d, want nil", *other)
	}
}

func TestStudentNotes_CollectsInSlotOrder(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.TueThuSat: {
			record.Period1: {{Name: "Kim", Reason: "sick"}},
		},
		record.MonWedFri: {
			record.Period2: {{Name: "Kim", Reason: "  late  ", Issue: " noisy "}},
			record.Period3: {{Name: "Kim", Issue: "tired"}},
		},
	})

	notes := record.StudentNotes(rec, "Kim", record.WeekScope())

	// monWedFri slots come before tueThuSat, periods in numeric order.
	if notes.ReasonBelow100 != "late\nsick" {
		t.Errorf("reasonBelow100 = %q, want %q", notes.ReasonBelow100, "late\nsick")
	}
	if notes.WeeklyIssue != "noisy\ntired" {
		t.Errorf("weeklyIssue = %q, want %q", notes.WeeklyIssue, "noisy\ntired")
	}
}

func TestStudentNotes_MissedHomeworkFilter(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {{
				Name: "Kim",
				MissedTodos: []record.TodoItem{
					{Text: "X", Done: true},
					{Text: "Y", Done: false},
					{Text: "   ", Done: false},
					{Text: " Z ", Done: false},
				},
			}},
		},
	})

	notes := record.StudentNotes(rec, "Kim", record.WeekScope())
	want := []string{"Y", "Z"}
	if !reflect.DeepEqual(notes.MissedHomework, want) {
		t.Errorf("missedHomework = %v, want %v", notes.MissedHomework, want)
	}
}

func TestStudentNotes_EmptyIsWellFormed(t *testing.T) {
	notes := record.StudentNotes(record.Empty(), "Kim", record.WeekScope())
	if notes.ReasonBelow100 != "" || notes.WeeklyIssue != "" {
		t.Errorf("notes = %+v, want empty strings", notes)
	}
	if notes.MissedHomework == nil || len(notes.MissedHomework) != 0 {
		t.Errorf("missedHomework = %v, want empty non-nil slice", notes.MissedHomework)
	}
}

func TestStudentNames_DedupeAndSort(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {{Name: "Zoe"}, {Name: "Amy"}},
			record.Period2: {{Name: " Zoe "}, {Name: "   "}},
		},
	})

	got := record.StudentNames(rec)
	want := []string{"Amy", "Zoe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("StudentNames = %v, want %v", got, want)
	}
}

func TestStudentNamesIn_Scoped(t *testing.T) {
	rec := buildWeek(map[record.DayGroup]map[record.Period]record.HomeworkList{
		record.MonWedFri: {
			record.Period1: {{Name: "Kim"}},
		},
		record.TueThuSat: {
			record.Period1: {{Name: "Lee"}},
		},
	})

	got := record.StudentNamesIn(rec, record.PeriodScope(record.TueThuSat, record.Period1))
	want := []string{"Lee"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("scoped names = %v, want %v", got, want)
	}
}

func TestParseDayGroupAndPeriod(t *testing.T) {
	if _, ok := record.ParseDayGroup("monWedFri"); !ok {
		t.Error("ParseDayGroup rejected monWedFri")
	}
	if _, ok := record.ParseDayGroup("weekend"); ok {
		t.Error("ParseDayGroup accepted weekend")
	}
	if _, ok := record.ParsePeriod("period3"); !ok {
		t.Error("ParsePeriod rejected period3")
	}
	if _, ok := record.ParsePeriod("period4"); ok {
		t.Error("ParsePeriod accepted period4")
	}
}
