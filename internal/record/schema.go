package record

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// weekRecordSchema describes the shapes the API accepts on save: the
// canonical record, plus the legacy homework object shape so older
// exports can be re-imported. Stored data is never checked against it;
// Decode accepts anything.
const weekRecordSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "schedule": {
      "type": "object",
      "properties": {
        "monWedFri": {"$ref": "#/definitions/dayGroup"},
        "tueThuSat": {"$ref": "#/definitions/dayGroup"}
      },
      "additionalProperties": false
    },
    "studentSummary": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "reasonBelow100": {"type": "string"},
          "weeklyIssue": {"type": "string"}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false,
  "definitions": {
    "dayGroup": {
      "type": "object",
      "properties": {
        "period1": {"$ref": "#/definitions/period"},
        "period2": {"$ref": "#/definitions/period"},
        "period3": {"$ref": "#/definitions/period"}
      },
      "additionalProperties": false
    },
    "period": {
      "type": "object",
      "properties": {
        "note": {"type": "string"},
        "progress": {
          "type": "object",
          "properties": {
            "reading": {"type": "string"},
            "listening": {"type": "string"},
            "grammar": {"type": "string"}
          },
          "additionalProperties": false
        },
        "homework": {
          "oneOf": [
            {"type": "array", "items": {"$ref": "#/definitions/entry"}},
            {"type": "object", "additionalProperties": {"type": ["number", "null"]}}
          ]
        }
      },
      "additionalProperties": false
    },
    "entry": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "wordScore": {"type": ["string", "null"]},
        "homeworkScore": {"type": ["integer", "null"], "minimum": 0, "maximum": 100},
        "reason": {"type": "string"},
        "issue": {"type": "string"},
        "missedTodos": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "text": {"type": "string"},
              "done": {"type": "boolean"}
            },
            "required": ["text", "done"],
            "additionalProperties": false
          }
        }
      },
      "required": ["name"],
      "additionalProperties": false
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(weekRecordSchema)

// ValidateJSON checks a submitted record document against the accepted
// schema and returns one human-readable description per violation. A
// nil slice means the document is valid. The error return covers
// documents that are not JSON at all.
func ValidateJSON(raw []byte) ([]string, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validating week record: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		problems = append(problems, desc.String())
	}
	return problems, nil
}
