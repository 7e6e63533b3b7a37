package record

import (
	"bytes"
	"encoding/json"
	"math"
)

// Decode parses raw JSON in any historical storage shape into a
// canonical WeekRecord. Malformed or missing substructure is treated as
// absent, never as an error, so Decode is total: the worst input yields
// the empty record.
func Decode(raw []byte) WeekRecord {
	var rec WeekRecord
	_ = json.Unmarshal(raw, &rec)
	return Normalize(rec)
}

// Normalize returns a canonical copy of rec: every optional field is
// present in its empty form ("", [], {}), so readers never need nil
// checks beyond length tests. Idempotent under structural equality and
// total; the input is not modified.
func Normalize(rec WeekRecord) WeekRecord {
	out := rec
	for _, dg := range DayGroups {
		group := out.Schedule.Group(dg)
		for _, p := range Periods {
			slot := group.Slot(p)
			slot.Homework = normalizeHomework(slot.Homework)
		}
	}

	summary := make(map[string]SummaryEntry, len(rec.StudentSummary))
	for name, entry := range rec.StudentSummary {
		summary[name] = entry
	}
	out.StudentSummary = summary
	return out
}

// normalizeHomework rebuilds the entry slice so it and every checklist
// are non-nil. Entries are copied, keeping Normalize pure.
func normalizeHomework(list HomeworkList) HomeworkList {
	out := make(HomeworkList, len(list))
	for i, e := range list {
		if e.MissedTodos == nil {
			e.MissedTodos = []TodoItem{}
		} else {
			e.MissedTodos = append([]TodoItem(nil), e.MissedTodos...)
		}
		out[i] = e
	}
	return out
}

// quiet unmarshals raw into v and discards any error, leaving v
// untouched on malformed input. len==0 covers both absent fields and
// empty RawMessages.
func quiet(raw json.RawMessage, v any) {
	if len(raw) == 0 {
		return
	}
	_ = json.Unmarshal(raw, v)
}

// scoreFromRaw reads a stored homework score. Scores were written as
// JSON numbers or null across every schema revision; anything else is
// treated as not entered.
func scoreFromRaw(raw json.RawMessage) *int {
	if len(raw) == 0 {
		return nil
	}
	var v *float64
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}

// UnmarshalJSON decodes a week record leniently: each substructure that
// fails to decode is left at its zero value.
func (r *WeekRecord) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Schedule       json.RawMessage `json:"schedule"`
		StudentSummary json.RawMessage `json:"studentSummary"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil
	}
	quiet(shadow.Schedule, &r.Schedule)
	quiet(shadow.StudentSummary, &r.StudentSummary)
	return nil
}

// UnmarshalJSON decodes a summary entry leniently. A malformed entry
// becomes the empty entry, keeping both fields present as strings.
func (e *SummaryEntry) UnmarshalJSON(data []byte) error {
	var shadow struct {
		ReasonBelow100 json.RawMessage `json:"reasonBelow100"`
		WeeklyIssue    json.RawMessage `json:"weeklyIssue"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil
	}
	quiet(shadow.ReasonBelow100, &e.ReasonBelow100)
	quiet(shadow.WeeklyIssue, &e.WeeklyIssue)
	return nil
}

// UnmarshalJSON decodes one day group's periods leniently.
func (g *DayGroupSchedule) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Period1 json.RawMessage `json:"period1"`
		Period2 json.RawMessage `json:"period2"`
		Period3 json.RawMessage `json:"period3"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil
	}
	quiet(shadow.Period1, &g.Period1)
	quiet(shadow.Period2, &g.Period2)
	quiet(shadow.Period3, &g.Period3)
	return nil
}

// UnmarshalJSON decodes a period record leniently.
func (p *PeriodRecord) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Note     json.RawMessage `json:"note"`
		Progress json.RawMessage `json:"progress"`
		Homework json.RawMessage `json:"homework"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil
	}
	quiet(shadow.Note, &p.Note)
	quiet(shadow.Progress, &p.Progress)
	quiet(shadow.Homework, &p.Homework)
	return nil
}

// UnmarshalJSON decodes a homework entry leniently, completing missing
// fields with their empty defaults. The in-progress checklist draft
// field that one schema revision persisted is deliberately not mapped,
// so it is dropped on decode and never round-trips through storage.
func (e *HomeworkEntry) UnmarshalJSON(data []byte) error {
	var shadow struct {
		Name          json.RawMessage `json:"name"`
		WordScore     json.RawMessage `json:"wordScore"`
		HomeworkScore json.RawMessage `json:"homeworkScore"`
		Reason        json.RawMessage `json:"reason"`
		Issue         json.RawMessage `json:"issue"`
		MissedTodos   json.RawMessage `json:"missedTodos"`
	}
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil
	}
	quiet(shadow.Name, &e.Name)
	quiet(shadow.WordScore, &e.WordScore)
	e.HomeworkScore = scoreFromRaw(shadow.HomeworkScore)
	quiet(shadow.Reason, &e.Reason)
	quiet(shadow.Issue, &e.Issue)
	quiet(shadow.MissedTodos, &e.MissedTodos)
	if e.MissedTodos == nil {
		e.MissedTodos = []TodoItem{}
	}
	return nil
}

// UnmarshalJSON decodes a homework list from either storage shape. The
// current shape is a JSON array of entries. The legacy shape is a JSON
// object mapping student name directly to a nullable score; it is
// converted one entry per key, preserving key encounter order, which a
// Go map cannot do — hence the token-level walk.
func (h *HomeworkList) UnmarshalJSON(data []byte) error {
	*h = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return nil // scalar or null: no homework
	}

	switch delim {
	case '[':
		var entries []HomeworkEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil
		}
		*h = entries
	case '{':
		entries := HomeworkList{}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil
			}
			name, ok := keyTok.(string)
			if !ok {
				return nil
			}
			var score json.RawMessage
			if err := dec.Decode(&score); err != nil {
				return nil
			}
			entries = append(entries, HomeworkEntry{
				Name:          name,
				HomeworkScore: scoreFromRaw(score),
				MissedTodos:   []TodoItem{},
			})
		}
		*h = entries
	}
	return nil
}
