package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// StringList is a list of strings kept in a single comma separated cell,
// both in CSV files and in SQL columns.
type StringList []string

// ParseStringList splits a comma separated cell, dropping blank entries.
func ParseStringList(s string) StringList {
	list := StringList{}
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	return list
}

func (l StringList) String() string {
	return strings.Join(l, ",")
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (l StringList) MarshalCSV() (string, error) {
	return l.String(), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (l *StringList) UnmarshalCSV(s string) error {
	*l = ParseStringList(s)
	return nil
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return l.String(), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = StringList{}
	case string:
		*l = ParseStringList(v)
	case []byte:
		*l = ParseStringList(string(v))
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return nil
}

// Timestamp is a UTC time written as RFC 3339 in CSV cells.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to seconds so it survives a CSV round trip.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t Timestamp) MarshalCSV() (string, error) {
	if t.IsZero() {
		return "", nil
	}
	return t.UTC().Format(time.RFC3339), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (t *Timestamp) UnmarshalCSV(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed.UTC()
	return nil
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.UTC(), nil
}

// Scan implements sql.Scanner.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
	case time.Time:
		t.Time = v.UTC()
	case string:
		return t.UnmarshalCSV(v)
	case []byte:
		return t.UnmarshalCSV(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
	return nil
}
