package models

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		input    string
		expected Coord
		wantErr  bool
	}{
		{"R2C1", Coord{Row: 2, Col: 1}, false},
		{"R120C14", Coord{Row: 120, Col: 14}, false},
		{" r3c2 ", Coord{Row: 3, Col: 2}, false},
		{"", Coord{}, true},
		{"R2", Coord{}, true},
		{"C1", Coord{}, true},
		{"RC", Coord{}, true},
		{"RxC1", Coord{}, true},
		{"R1C1C1", Coord{}, true},
		{"R0C1", Coord{}, true},
		{"R1C0", Coord{}, true},
		{"R-1C3", Coord{}, true},
		{"R1048577C1", Coord{}, true},
		{"R1C16385", Coord{}, true},
	}

	for _, tt := range tests {
		result, err := ParseCoord(tt.input)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidCoord) {
				t.Errorf("ParseCoord(%q) error = %v, expected ErrInvalidCoord", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCoord(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ParseCoord(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestCoordStringRoundTrip(t *testing.T) {
	c := Coord{Row: 17, Col: 4}
	if c.String() != "R17C4" {
		t.Fatalf("String() = %q, expected R17C4", c.String())
	}
	back, err := ParseCoord(c.String())
	if err != nil {
		t.Fatalf("ParseCoord failed: %v", err)
	}
	if back != c {
		t.Errorf("round trip = %v, expected %v", back, c)
	}
}

func TestCoordJSON(t *testing.T) {
	data, err := json.Marshal(Item{Coord: Coord{Row: 2, Col: 1}, Raw: "joão", Text: "João"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `{"coord":"R2C1","raw":"joão","text":"João"}`
	if string(data) != expected {
		t.Errorf("Marshal = %s, expected %s", data, expected)
	}

	var it Item
	if err := json.Unmarshal([]byte(`{"coord":"R9C3"}`), &it); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if it.Coord != (Coord{Row: 9, Col: 3}) {
		t.Errorf("Unmarshal coord = %v", it.Coord)
	}
	if err := json.Unmarshal([]byte(`{"coord":"nope"}`), &it); err == nil {
		t.Error("expected error for malformed coord")
	}
}

func TestCoordLess(t *testing.T) {
	tests := []struct {
		a, b     Coord
		expected bool
	}{
		{Coord{1, 5}, Coord{2, 1}, true},
		{Coord{2, 1}, Coord{1, 5}, false},
		{Coord{3, 1}, Coord{3, 2}, true},
		{Coord{3, 2}, Coord{3, 2}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.expected {
			t.Errorf("%v.Less(%v) = %v, expected %v", tt.a, tt.b, got, tt.expected)
		}
	}
}
