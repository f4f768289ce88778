package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Remark is a single timestamped duty-status interval inside a LogEntry's
// remarks list. Only hour_start and hour_finish are interpreted; any other
// keys supplied by the client (status, location, title, ...) are carried in
// Extra and round-trip through storage and responses untouched.
type Remark struct {
	HourStart  string
	HourFinish string
	Extra      map[string]json.RawMessage
}

// MarshalJSON flattens the remark back into a single JSON object,
// re-emitting the preserved extra keys alongside the two interval bounds.
func (r Remark) MarshalJSON() ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(r.Extra)+2)
	for k, v := range r.Extra {
		obj[k] = v
	}
	hs, err := json.Marshal(r.HourStart)
	if err != nil {
		return nil, err
	}
	hf, err := json.Marshal(r.HourFinish)
	if err != nil {
		return nil, err
	}
	obj["hour_start"] = hs
	obj["hour_finish"] = hf
	return json.Marshal(obj)
}

// UnmarshalJSON splits a remark object into the two interval bounds and the
// preserved extra keys. It does not validate — that is ValidateRemarks' job.
func (r *Remark) UnmarshalJSON(data []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	if raw, ok := obj["hour_start"]; ok {
		_ = json.Unmarshal(raw, &r.HourStart)
		delete(obj, "hour_start")
	}
	if raw, ok := obj["hour_finish"]; ok {
		_ = json.Unmarshal(raw, &r.HourFinish)
		delete(obj, "hour_finish")
	}
	if len(obj) > 0 {
		r.Extra = obj
	}
	return nil
}

// RemarkKind identifies which rule a remarks payload violated.
// The values double as the machine-readable error codes on the wire.
type RemarkKind string

const (
	InvalidShape        RemarkKind = "invalid_shape"
	MissingField        RemarkKind = "missing_field"
	MalformedTimestamp  RemarkKind = "malformed_timestamp"
	NonPositiveInterval RemarkKind = "non_positive_interval"
)

// RemarkError reports the first rule violated by a remarks payload.
// Index is the zero-based position of the offending remark (-1 for
// shape errors that concern the payload as a whole), Field the offending
// key when one can be named.
type RemarkError struct {
	Kind  RemarkKind
	Index int
	Field string
}

func (e *RemarkError) Error() string {
	switch e.Kind {
	case InvalidShape:
		if e.Index >= 0 {
			return fmt.Sprintf("remarks[%d]: must be an object", e.Index)
		}
		return "remarks must be a list"
	case MissingField:
		return fmt.Sprintf("remarks[%d]: missing %s", e.Index, e.Field)
	case MalformedTimestamp:
		return fmt.Sprintf("remarks[%d]: %s is not a valid ISO-8601 datetime", e.Index, e.Field)
	case NonPositiveInterval:
		return fmt.Sprintf("remarks[%d]: hour_finish must be after hour_start", e.Index)
	}
	return fmt.Sprintf("remarks[%d]: invalid", e.Index)
}

// Is makes every RemarkError match ErrValidation, so callers that only care
// about "client input was bad" can use errors.Is without knowing the kind.
func (e *RemarkError) Is(target error) bool { return target == ErrValidation }

// remarkLayouts are the accepted ISO-8601 datetime forms, tried in order.
// The zone-less form matches what the reference clients submit
// (e.g. "2024-01-01T08:00:00"); such timestamps are read as UTC.
var remarkLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseRemarkTime parses s against the accepted ISO-8601 layouts.
func parseRemarkTime(s string) (time.Time, bool) {
	for _, layout := range remarkLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ValidateRemarks validates a raw remarks payload and derives the total
// on-duty hours it represents. It is a pure function: the write path calls
// it before touching storage and rejects the whole write on error.
//
// On success it returns the remarks in submission order together with the
// summed interval hours, rounded half-up to two decimal places. A nil raw
// value (field absent from the request) is treated as an empty list.
//
// Validation is fail-fast: the returned error is a *RemarkError describing
// the first violation encountered, in list order.
func ValidateRemarks(raw json.RawMessage) ([]Remark, float64, error) {
	if raw == nil {
		return []Remark{}, 0, nil
	}

	// encoding/json decodes the literal null into a nil slice without error,
	// so check the payload actually is an array before decoding it.
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, 0, &RemarkError{Kind: InvalidShape, Index: -1}
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(trimmed, &elems); err != nil {
		return nil, 0, &RemarkError{Kind: InvalidShape, Index: -1}
	}

	remarks := make([]Remark, 0, len(elems))
	var total time.Duration
	for i, elem := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(elem, &obj); err != nil {
			return nil, 0, &RemarkError{Kind: InvalidShape, Index: i}
		}

		start, err := remarkTimestamp(obj, "hour_start", i)
		if err != nil {
			return nil, 0, err
		}
		finish, err := remarkTimestamp(obj, "hour_finish", i)
		if err != nil {
			return nil, 0, err
		}
		if !finish.After(start) {
			return nil, 0, &RemarkError{Kind: NonPositiveInterval, Index: i}
		}
		total += finish.Sub(start)

		var r Remark
		if err := r.UnmarshalJSON(elem); err != nil {
			return nil, 0, &RemarkError{Kind: InvalidShape, Index: i}
		}
		remarks = append(remarks, r)
	}

	return remarks, roundHours(total), nil
}

// remarkTimestamp extracts and parses one of the two interval bounds from a
// decoded remark object.
func remarkTimestamp(obj map[string]json.RawMessage, field string, index int) (time.Time, error) {
	raw, ok := obj[field]
	if !ok {
		return time.Time{}, &RemarkError{Kind: MissingField, Index: index, Field: field}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, &RemarkError{Kind: MalformedTimestamp, Index: index, Field: field}
	}
	t, ok := parseRemarkTime(s)
	if !ok {
		return time.Time{}, &RemarkError{Kind: MalformedTimestamp, Index: index, Field: field}
	}
	return t, nil
}

// roundHours converts a duration to decimal hours rounded half-up to two
// decimal places. Integer arithmetic over milliseconds keeps the x.xx5
// boundary exact; one hundredth of an hour is 36000ms.
func roundHours(d time.Duration) float64 {
	hundredths := (d.Milliseconds() + 18000) / 36000
	return float64(hundredths) / 100
}
