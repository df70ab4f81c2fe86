package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FeatureType classifies an architectural feature within a room.
type FeatureType string

const (
	FeatureWindow    FeatureType = "window"
	FeatureDoor      FeatureType = "door"
	FeatureEquipment FeatureType = "equipment"
)

// featurePrefixes maps a feature type to its ID prefix. IDs look like "W1",
// "D2", "E1" and are assigned sequentially per type when a room is analyzed.
var featurePrefixes = map[FeatureType]string{
	FeatureWindow:    "W",
	FeatureDoor:      "D",
	FeatureEquipment: "E",
}

// Feature is a located architectural element (window, door, or fixed
// equipment). IDs are stable for the lifetime of the room: corrections may
// rewrite Name and Description but must never reuse or renumber an ID, because
// chat history and prior designs reference features by ID.
type Feature struct {
	ID          string      `json:"id" validate:"required"`
	Type        FeatureType `json:"type" validate:"required,oneof=window door equipment"`
	Name        string      `json:"name,omitempty"`
	Description string      `json:"description" validate:"required"`
}

// Walls holds a free-text description per cardinal wall. Every room carries
// all four entries even when a wall is uninformative.
type Walls struct {
	N string `json:"N" validate:"required"`
	S string `json:"S" validate:"required"`
	E string `json:"E" validate:"required"`
	W string `json:"W" validate:"required"`
}

// Room is the structured ground truth for one enclosed space. It is produced
// by the floorplan analyzer and mutated only through architecture corrections,
// which replace the whole object after validation.
type Room struct {
	Name     string    `json:"name" validate:"required"`
	Size     string    `json:"size" validate:"required"`
	Walls    Walls     `json:"walls" validate:"required"`
	Entry    string    `json:"entry" validate:"required,oneof=N S E W"`
	Features []Feature `json:"features" validate:"dive"`
}

// FloorplanAnalysis is the result of analyzing one floorplan image.
type FloorplanAnalysis struct {
	Rooms []Room `json:"rooms" validate:"required,min=1,dive"`
}

// validate caches struct metadata across calls.
var validate = validator.New()

// Validate checks struct tags plus the invariants the tags cannot express:
// each feature ID must carry the prefix of its type, and IDs must be unique
// within the room.
func (r *Room) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	seen := make(map[string]bool, len(r.Features))
	for _, f := range r.Features {
		prefix, ok := featurePrefixes[f.Type]
		if !ok {
			return fmt.Errorf("feature %s: unknown type %q", f.ID, f.Type)
		}
		rest, found := strings.CutPrefix(f.ID, prefix)
		if !found || rest == "" {
			return fmt.Errorf("feature %s: id does not match type %q (want prefix %q)", f.ID, f.Type, prefix)
		}
		if _, err := strconv.Atoi(rest); err != nil {
			return fmt.Errorf("feature %s: id suffix is not numeric", f.ID)
		}
		if seen[f.ID] {
			return fmt.Errorf("duplicate feature id %s", f.ID)
		}
		seen[f.ID] = true
	}
	return nil
}

// Validate checks the whole analysis, room by room.
func (a *FloorplanAnalysis) Validate() error {
	if err := validate.Struct(a); err != nil {
		return err
	}
	for i := range a.Rooms {
		if err := a.Rooms[i].Validate(); err != nil {
			return fmt.Errorf("room %q: %w", a.Rooms[i].Name, err)
		}
	}
	return nil
}

// FeatureIDs returns the room's feature IDs in their listed order.
func (r *Room) FeatureIDs() []string {
	ids := make([]string, len(r.Features))
	for i, f := range r.Features {
		ids[i] = f.ID
	}
	return ids
}

// FeatureIDSet returns the feature IDs as a membership set.
func (r *Room) FeatureIDSet() map[string]bool {
	set := make(map[string]bool, len(r.Features))
	for _, f := range r.Features {
		set[f.ID] = true
	}
	return set
}

// NextFeatureID returns the next sequential ID for the given type, continuing
// the existing sequence. Retired IDs are never reissued: the counter is the
// highest suffix ever observed, not the feature count.
func (r *Room) NextFeatureID(t FeatureType) string {
	prefix := featurePrefixes[t]
	max := 0
	for _, f := range r.Features {
		rest, found := strings.CutPrefix(f.ID, prefix)
		if !found {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}

// FeatureLegend renders "W1: desc; D1: desc" for display alongside the chat
// input, so users know which IDs they can reference.
func (r *Room) FeatureLegend() string {
	parts := make([]string, len(r.Features))
	for i, f := range r.Features {
		parts[i] = fmt.Sprintf("%s: %s", f.ID, f.Description)
	}
	return strings.Join(parts, "; ")
}

// SortedFeatureIDs returns feature IDs sorted for stable comparison in tests
// and diffs.
func (r *Room) SortedFeatureIDs() []string {
	ids := r.FeatureIDs()
	sort.Strings(ids)
	return ids
}
