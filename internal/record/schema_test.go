package record_test

import (
	"testing"

	"github.com/daeun-lee/hakwonlog/internal/record"
)

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantProblems bool
	}{
		{
			name: "canonical record",
			raw: `{"schedule":{"monWedFri":{"period1":{
				"note":"quiz",
				"progress":{"reading":"ch. 2"},
				"homework":[{"name":"Kim","wordScore":null,"homeworkScore":95,"reason":"","issue":"","missedTodos":[]}]
			}}},"studentSummary":{"Kim":{"reasonBelow100":"","weeklyIssue":""}}}`,
			wantProblems: false,
		},
		{
			name:         "empty object",
			raw:          `{}`,
			wantProblems: false,
		},
		{
			name:         "legacy homework map",
			raw:          `{"schedule":{"monWedFri":{"period1":{"homework":{"Alice":90,"Bob":null}}}}}`,
			wantProblems: false,
		},
		{
			name:         "name is a number",
			raw:          `{"schedule":{"monWedFri":{"period1":{"homework":[{"name":42}]}}}}`,
			wantProblems: true,
		},
		{
			name:         "entry without a name",
			raw:          `{"schedule":{"monWedFri":{"period1":{"homework":[{"homeworkScore":50}]}}}}`,
			wantProblems: true,
		},
		{
			name:         "score out of range",
			raw:          `{"schedule":{"monWedFri":{"period1":{"homework":[{"name":"Kim","homeworkScore":150}]}}}}`,
			wantProblems: true,
		},
		{
			name:         "unknown day group",
			raw:          `{"schedule":{"satSun":{}}}`,
			wantProblems: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems, err := record.ValidateJSON([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ValidateJSON() error = %v", err)
			}
			if (len(problems) > 0) != tt.wantProblems {
				t.Errorf("problems = %v, wantProblems = %v", problems, tt.wantProblems)
			}
		})
	}
}

func TestValidateJSON_NotJSON(t *testing.T) {
	if _, err := record.ValidateJSON([]byte("{{{")); err == nil {
		t.Error("ValidateJSON() should error for a non-JSON document")
	}
}
