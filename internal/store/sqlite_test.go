package store

import (
	"os"
	"strings"
	"testing"

	"github.com/auradecor/studio/models"
)

func testPayload() models.ProjectPayload {
	return models.ProjectPayload{
		Name:           "Apartment 4B",
		FloorplanImage: []byte("floorplan-bytes"),
		AnalysisResult: models.FloorplanAnalysis{
			Rooms: []models.Room{
				{
					Name:  "living_room",
					Size:  "5x7m",
					Walls: models.Walls{N: "Plain wall.", S: "Window wall.", E: "Plain wall.", W: "Entry wall."},
					Entry: "W",
					Features: []models.Feature{
						{ID: "W1", Type: models.FeatureWindow, Description: "Window centered on the S wall."},
					},
				},
			},
		},
		Designs: []models.DesignPayload{
			{
				Title:     "Scandinavian Calm",
				ImageData: []byte("png-1"),
				Materials: []models.MaterialBreakdownItem{{Name: "oak flooring", Description: "35 sqm"}},
				Prompt:    "A bright room",
			},
			{
				Title:     "Version 2",
				ImageData: []byte("png-2"),
			},
		},
	}
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndGetProject(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.SaveProject(testPayload())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if stored.ID == "" || len(stored.Designs) != 2 {
		t.Fatalf("stored = %+v", stored)
	}
	if !strings.HasPrefix(stored.FloorplanURL, "/images/") {
		t.Errorf("floorplan URL = %s", stored.FloorplanURL)
	}

	// Image bytes must be on disk where ImagePath says they are.
	data, err := os.ReadFile(s.ImagePath(stored.ID + ".png"))
	if err != nil {
		t.Fatalf("read floorplan image: %v", err)
	}
	if string(data) != "floorplan-bytes" {
		t.Errorf("floorplan content = %q", data)
	}

	got, err := s.GetProject(stored.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Apartment 4B" || len(got.Designs) != 2 {
		t.Fatalf("got = %+v", got)
	}
	if got.Designs[0].Title != "Scandinavian Calm" || got.Designs[1].Title != "Version 2" {
		t.Errorf("album order lost: %+v", got.Designs)
	}
	if len(got.AnalysisResult.Rooms) != 1 || got.AnalysisResult.Rooms[0].Features[0].ID != "W1" {
		t.Errorf("analysis round trip lost data: %+v", got.AnalysisResult)
	}
}

func TestSaveProjectRejectsInvalidPayload(t *testing.T) {
	s := newTestStore(t)

	payload := testPayload()
	payload.Name = ""
	if _, err := s.SaveProject(payload); err == nil {
		t.Fatal("expected validation error for missing name")
	}

	payload = testPayload()
	payload.AnalysisResult.Rooms[0].Entry = "NE"
	if _, err := s.SaveProject(payload); err == nil {
		t.Fatal("expected validation error for bad entry wall")
	}
}

func TestListProjects(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SaveProject(testPayload()); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := testPayload()
	second.Name = "Loft"
	if _, err := s.SaveProject(second); err != nil {
		t.Fatalf("save: %v", err)
	}

	projects, err := s.ListProjects()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("listed %d projects, want 2", len(projects))
	}
	for _, p := range projects {
		if len(p.Designs) != 0 {
			t.Error("list must not hydrate designs")
		}
	}
}

func TestDeleteProject(t *testing.T) {
	s := newTestStore(t)

	stored, err := s.SaveProject(testPayload())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.DeleteProject(stored.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetProject(stored.ID); err == nil {
		t.Fatal("expected not-found after delete")
	}
	if _, err := os.Stat(s.ImagePath(stored.ID + ".png")); !os.IsNotExist(err) {
		t.Error("floorplan image must be removed with the project")
	}
	for _, d := range stored.Designs {
		if _, err := os.Stat(s.ImagePath(d.ID + ".png")); !os.IsNotExist(err) {
			t.Errorf("design image %s must be removed with the project", d.ID)
		}
	}
}

func TestGetProjectNotFound(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetProject("nope"); err == nil {
		t.Fatal("expected error for unknown project")
	}
}
