package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Subject is a user identifier that the server emits either as a JSON
// string (email) or a number (row id).
type Subject string

// UnmarshalJSON accepts strings, numbers and null.
func (s *Subject) UnmarshalJSON(data []byte) error {
	value, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode subject: %w", err)
	}
	*s = Subject(value)
	return nil
}

// SubjectSet is the set of subjects a task is assigned to. Order follows the
// server payload; duplicates and blanks are dropped on decode.
type SubjectSet []string

// UnmarshalJSON accepts an array of strings and/or numbers, or null.
func (s *SubjectSet) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = SubjectSet{}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode subject set: %w", err)
	}
	set := make(SubjectSet, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		value, err := scalarString(item)
		if err != nil {
			return fmt.Errorf("decode subject set: %w", err)
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		set = append(set, value)
	}
	*s = set
	return nil
}

// Contains reports whether subject is in the set. Comparison ignores case
// because subjects are usually email addresses.
func (s SubjectSet) Contains(subject string) bool {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return false
	}
	for _, value := range s {
		if strings.EqualFold(value, subject) {
			return true
		}
	}
	return false
}

func scalarString(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return "", nil
	}
	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return "", err
		}
		return strings.TrimSpace(value), nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", data)
	}
	return number.String(), nil
}

// timestampLayouts are tried in order when decoding server dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp is a server date that may be sent as RFC 3339, a naive
// date-time or a bare date. It always encodes as RFC 3339 UTC.
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses value with the accepted layouts and returns it in UTC.
func ParseTimestamp(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, fmt.Errorf("timestamp is empty")
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return Timestamp{Time: parsed.UTC()}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", value)
}

// String renders the canonical wire format, or "" for the zero value.
func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// MarshalJSON encodes the canonical format, or null for the zero value.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts any accepted layout, null or an empty string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	value, err := scalarString(data)
	if err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	if value == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
