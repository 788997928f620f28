package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	FieldJobID          = "job_id"
	FieldTitle          = "title"
	FieldCompany        = "company"
	FieldLocation       = "location"
	FieldDescription    = "description"
	FieldPostedDate     = "posted_date"
	FieldURL            = "url"
	FieldSource         = "source"
	FieldSkills         = "skills"
	FieldRawDescription = "raw_description"
	FieldExperience     = "experience"
	FieldJobType        = "job_type"
	FieldEducation      = "education"
	FieldSalary         = "salary"
)

// NotSpecified is the sentinel written when a value could not be derived.
const NotSpecified = "Not specified"

// Record is one job posting as a flat string-keyed mapping. Values are
// whatever the JSON source held; cleaning and annotation write strings.
type Record map[string]any

// Clone returns a shallow copy. Values are scalars so this is enough to keep
// records independent.
func (r Record) Clone() Record {
	out := make(Record, len(r)+6)
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Text returns the value at key when it is a string.
func (r Record) Text(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// String renders the value at key, "" when absent or null.
func (r Record) String(key string) string {
	return Stringify(r[key])
}

// HasValue reports whether key holds a non-empty, non-zero value.
func (r Record) HasValue(key string) bool {
	switch v := r[key].(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || f != 0
	case float64:
		return v != 0
	case int:
		return v != 0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}

// ID returns the job id for log lines, or "unknown".
func (r Record) ID() string {
	if !r.HasValue(FieldJobID) {
		return "unknown"
	}
	return r.String(FieldJobID)
}

// Stringify renders a decoded JSON value as text. Scalars use Go formatting,
// so a JSON true becomes "true"; arrays and objects are re-encoded as JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case []any, map[string]any:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	default:
		return fmt.Sprint(t)
	}
}

// DecodeRecords parses a JSON array of objects. Numbers are kept as
// json.Number so ids like 1001 round-trip unchanged.
func DecodeRecords(data []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeRecord parses a single JSON object.
func DecodeRecord(data []byte) (Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var record Record
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("record is null")
	}
	return record, nil
}

// RecordBatch is a list of records that can be stored in the cache.
type RecordBatch []Record

func (b RecordBatch) MarshalBinary() ([]byte, error) {
	return json.Marshal([]Record(b))
}

func (b *RecordBatch) UnmarshalBinary(data []byte) error {
	records, err := DecodeRecords(data)
	if err != nil {
		return err
	}
	*b = records
	return nil
}
