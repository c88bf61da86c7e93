package models

import (
	"slices"
	"testing"
	"time"
)

func TestParseStringList(t *testing.T) {
	tests := []struct {
		in   string
		want StringList
	}{
		{in: "", want: StringList{}},
		{in: "PC", want: StringList{"PC"}},
		{in: " PC , Nintendo Switch,,PS5 ", want: StringList{"PC", "Nintendo Switch", "PS5"}},
		{in: " , ", want: StringList{}},
	}
	for _, tt := range tests {
		got := ParseStringList(tt.in)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseStringList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStringListScan(t *testing.T) {
	var l StringList
	if err := l.Scan([]byte("Xbox,PC")); err != nil || !slices.Equal(l, StringList{"Xbox", "PC"}) {
		t.Errorf("Unexpected scan result %v (%v)", l, err)
	}
	if err := l.Scan(nil); err != nil || len(l) != 0 {
		t.Errorf("Expected empty list from NULL, got %v (%v)", l, err)
	}
	if err := l.Scan(42); err == nil {
		t.Error("Expected an error scanning an int")
	}
}

func TestTimestampCSV(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*60*60)
	ts := NewTimestamp(time.Date(2024, 3, 9, 14, 30, 15, 999, local))

	cell, err := ts.MarshalCSV()
	if err != nil {
		t.Fatalf("MarshalCSV failed: %v", err)
	}
	if cell != "2024-03-09T12:30:15Z" {
		t.Errorf("Expected UTC RFC 3339 cell, got %q", cell)
	}

	var back Timestamp
	if err := back.UnmarshalCSV(cell); err != nil {
		t.Fatalf("UnmarshalCSV failed: %v", err)
	}
	if !back.Equal(ts.Time) {
		t.Errorf("Expected %v, got %v", ts, back)
	}

	var empty Timestamp
	if cell, _ := empty.MarshalCSV(); cell != "" {
		t.Errorf("Expected zero time to be an empty cell, got %q", cell)
	}
	if err := empty.UnmarshalCSV("yesterday"); err == nil {
		t.Error("Expected an error for a malformed time")
	}
}
