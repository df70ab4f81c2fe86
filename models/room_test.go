package models

import (
	"strings"
	"testing"
)

func validRoom() Room {
	return Room{
		Name: "living_room",
		Size: "5x7m",
		Walls: Walls{
			N: "A long, uninterrupted wall.",
			S: "Contains a large, centered picture window.",
			E: "Features a fireplace in the center.",
			W: "Has a double doorway leading to the dining room.",
		},
		Entry: "W",
		Features: []Feature{
			{ID: "W1", Type: FeatureWindow, Description: "Large picture window centered on the S wall."},
			{ID: "D1", Type: FeatureDoor, Description: "Double doorway centered on the W wall."},
			{ID: "E1", Type: FeatureEquipment, Name: "fireplace", Description: "Brick fireplace centered on the E wall."},
		},
	}
}

func TestRoomValidate(t *testing.T) {
	room := validRoom()
	if err := room.Validate(); err != nil {
		t.Fatalf("valid room failed validation: %v", err)
	}
}

func TestRoomValidateRejectsBadEntry(t *testing.T) {
	room := validRoom()
	room.Entry = "NW"
	if err := room.Validate(); err == nil {
		t.Fatal("expected error for entry not in {N,S,E,W}")
	}
}

func TestRoomValidateRejectsPrefixMismatch(t *testing.T) {
	room := validRoom()
	// A window carrying a door ID must be rejected.
	room.Features[0].ID = "D9"
	err := room.Validate()
	if err == nil {
		t.Fatal("expected error for id prefix not matching type")
	}
	if !strings.Contains(err.Error(), "does not match type") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRoomValidateRejectsDuplicateIDs(t *testing.T) {
	room := validRoom()
	room.Features = append(room.Features, Feature{ID: "W1", Type: FeatureWindow, Description: "Second window on the N wall."})
	if err := room.Validate(); err == nil {
		t.Fatal("expected error for duplicate feature id")
	}
}

func TestRoomValidateRejectsNonNumericSuffix(t *testing.T) {
	room := validRoom()
	room.Features[0].ID = "Wx"
	if err := room.Validate(); err == nil {
		t.Fatal("expected error for non-numeric id suffix")
	}
}

func TestNextFeatureIDContinuesSequence(t *testing.T) {
	room := validRoom()
	if got := room.NextFeatureID(FeatureWindow); got != "W2" {
		t.Errorf("NextFeatureID(window) = %q, want W2", got)
	}
	if got := room.NextFeatureID(FeatureDoor); got != "D2" {
		t.Errorf("NextFeatureID(door) = %q, want D2", got)
	}
}

func TestNextFeatureIDNeverReusesRetiredIDs(t *testing.T) {
	room := validRoom()
	room.Features = append(room.Features, Feature{ID: "W3", Type: FeatureWindow, Description: "Skylight window in the ceiling near the N wall."})
	// W2 was retired by an earlier correction; the sequence continues past the
	// highest suffix ever seen.
	if got := room.NextFeatureID(FeatureWindow); got != "W4" {
		t.Errorf("NextFeatureID(window) = %q, want W4", got)
	}
}

func TestFeatureIDSet(t *testing.T) {
	room := validRoom()
	set := room.FeatureIDSet()
	for _, id := range []string{"W1", "D1", "E1"} {
		if !set[id] {
			t.Errorf("missing id %s in set", id)
		}
	}
	if len(set) != 3 {
		t.Errorf("set size = %d, want 3", len(set))
	}
}

func TestFeatureLegend(t *testing.T) {
	room := validRoom()
	legend := room.FeatureLegend()
	if !strings.HasPrefix(legend, "W1: ") || !strings.Contains(legend, "; D1: ") {
		t.Errorf("unexpected legend: %q", legend)
	}
}

func TestAnalysisValidateRequiresRooms(t *testing.T) {
	a := FloorplanAnalysis{}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for empty analysis")
	}
}

func TestAnalysisValidateReportsRoomName(t *testing.T) {
	bad := validRoom()
	bad.Features[0].ID = "Q1"
	a := FloorplanAnalysis{Rooms: []Room{validRoom(), bad}}
	err := a.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "living_room") {
		t.Errorf("error should name the offending room: %v", err)
	}
}
