package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"github.com/auradecor/studio/internal/export"
	"github.com/auradecor/studio/internal/store"
	"github.com/auradecor/studio/models"
)

// fakeOracle serves scripted replies for handler tests.
type fakeOracle struct {
	analyzeErr error
	renderErr  error
}

func (f *fakeOracle) AnalyzeFloorplan(ctx context.Context, image []byte, mimeType string) (models.FloorplanAnalysis, error) {
	if f.analyzeErr != nil {
		return models.FloorplanAnalysis{}, f.analyzeErr
	}
	return models.FloorplanAnalysis{Rooms: []models.Room{apiRoom()}}, nil
}

func (f *fakeOracle) CorrectArchitecture(ctx context.Context, room models.Room, correction string) (models.Room, error) {
	room.Walls.N = "Window wall."
	return room, nil
}

func (f *fakeOracle) GenerateDesignAids(ctx context.Context, room models.Room, style, refinement string) (models.DesignAids, error) {
	return models.DesignAids{
		ImagePrompt:       "A bright room",
		MaterialBreakdown: []models.MaterialBreakdownItem{{Name: "oak flooring", Description: "35 sqm"}},
		AlbumTitle:        style + " Calm",
	}, nil
}

func (f *fakeOracle) Render(ctx context.Context, prompt string) ([]byte, error) {
	if f.renderErr != nil {
		return nil, f.renderErr
	}
	return []byte("png-render"), nil
}

func (f *fakeOracle) Refine(ctx context.Context, prompt string, priorImage []byte) ([]byte, error) {
	return []byte("png-refine"), nil
}

func (f *fakeOracle) SupplierPackage(ctx context.Context, roomName string, materials []models.MaterialBreakdownItem) (models.SupplierRequest, error) {
	return models.SupplierRequest{Room: roomName, Materials: []map[string]string{{"oak flooring": "35 sqm"}}}, nil
}

func (f *fakeOracle) Advise(ctx context.Context, transcript []models.ChatMessage) (string, error) {
	return "Try lighter curtains.", nil
}

func apiRoom() models.Room {
	return models.Room{
		Name:  "living_room",
		Size:  "5x7m",
		Walls: models.Walls{N: "Plain wall.", S: "Window wall.", E: "Plain wall.", W: "Entry wall."},
		Entry: "W",
		Features: []models.Feature{
			{ID: "W1", Type: models.FeatureWindow, Description: "Window centered on the S wall."},
		},
	}
}

func newTestServer(t *testing.T, authToken string) (*Server, *httptest.Server) {
	t.Helper()
	projectStore, err := store.NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = projectStore.Close() })

	srv := New(Config{
		Port:      0,
		AuthToken: authToken,
		Oracle:    &fakeOracle{},
		Store:     projectStore,
		Exporter:  export.NewExporter(afero.NewMemMapFs(), "/out"),
	})
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)
	return srv, ts
}

func postJSON(t *testing.T, url string, body any, out any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	if out != nil && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return resp
}

func TestStylesEndpoint(t *testing.T) {
	_, ts := newTestServer(t, "")

	resp, err := http.Get(ts.URL + "/api/styles")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var styles []string
	if err := json.NewDecoder(resp.Body).Decode(&styles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(styles) == 0 {
		t.Fatal("no styles returned")
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	_, ts := newTestServer(t, "")

	var out AnalyzeResponse
	resp := postJSON(t, ts.URL+"/api/analyze", AnalyzeRequest{ImageData: []byte("plan")}, &out)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if len(out.Rooms) != 1 || out.Rooms[0].Name != "living_room" {
		t.Errorf("rooms = %+v", out.Rooms)
	}
}

func TestAnalyzeRequiresImage(t *testing.T) {
	_, ts := newTestServer(t, "")
	resp := postJSON(t, ts.URL+"/api/analyze", AnalyzeRequest{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionFlow(t *testing.T) {
	_, ts := newTestServer(t, "")

	var sess SessionResponse
	resp := postJSON(t, ts.URL+"/api/sessions", StartSessionRequest{Room: apiRoom()}, &sess)
	if resp.StatusCode != http.StatusOK || sess.ID == "" {
		t.Fatalf("start session: status %d, %+v", resp.StatusCode, sess)
	}
	base := ts.URL + "/api/sessions/" + sess.ID

	var design DesignDTO
	resp = postJSON(t, base+"/generate", GenerateRequest{Style: "Scandinavian"}, &design)
	if resp.StatusCode != http.StatusOK || design.ID != "v1" {
		t.Fatalf("generate: status %d, %+v", resp.StatusCode, design)
	}
	if design.Title != "Scandinavian Calm" || string(design.ImageData) != "png-render" {
		t.Errorf("design = %+v", design)
	}

	// Architectural chat updates the room and appends v2.
	var chat ChatResponse
	resp = postJSON(t, base+"/chat", ChatRequest{Message: "Move W1 to the N wall"}, &chat)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chat: status %d", resp.StatusCode)
	}
	if chat.Intent != "architectural" || chat.Design == nil || chat.Design.ID != "v2" {
		t.Fatalf("chat = %+v", chat)
	}
	if chat.Room == nil || chat.Room.Walls.N != "Window wall." {
		t.Errorf("room not returned with correction: %+v", chat.Room)
	}

	var sel SelectResponse
	postJSON(t, base+"/select", SelectRequest{DesignID: "v1"}, &sel)
	resp = postJSON(t, base+"/select", SelectRequest{DesignID: "v2"}, &sel)
	if resp.StatusCode != http.StatusOK || !sel.Selected || sel.Count != 2 {
		t.Fatalf("select = %+v (status %d)", sel, resp.StatusCode)
	}

	var exported ExportResponse
	resp = postJSON(t, base+"/export", struct{}{}, &exported)
	if resp.StatusCode != http.StatusOK || len(exported.Paths) != 2 {
		t.Fatalf("export: status %d, %+v", resp.StatusCode, exported)
	}

	var pkg models.SupplierRequest
	resp = postJSON(t, base+"/quotes", struct{}{}, &pkg)
	if resp.StatusCode != http.StatusOK || pkg.Room != "living_room" {
		t.Fatalf("quotes: status %d, %+v", resp.StatusCode, pkg)
	}
}

func TestGenerateRequiresStyle(t *testing.T) {
	_, ts := newTestServer(t, "")
	var sess SessionResponse
	postJSON(t, ts.URL+"/api/sessions", StartSessionRequest{Room: apiRoom()}, &sess)

	resp := postJSON(t, ts.URL+"/api/sessions/"+sess.ID+"/generate", GenerateRequest{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportWithoutSelection(t *testing.T) {
	_, ts := newTestServer(t, "")
	var sess SessionResponse
	postJSON(t, ts.URL+"/api/sessions", StartSessionRequest{Room: apiRoom()}, &sess)

	resp := postJSON(t, ts.URL+"/api/sessions/"+sess.ID+"/export", struct{}{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSessionNotFound(t *testing.T) {
	_, ts := newTestServer(t, "")
	resp, err := http.Get(ts.URL + "/api/sessions/nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func projectPayload() models.ProjectPayload {
	return models.ProjectPayload{
		Name:           "Apartment 4B",
		FloorplanImage: []byte("plan"),
		AnalysisResult: models.FloorplanAnalysis{Rooms: []models.Room{apiRoom()}},
		Designs: []models.DesignPayload{
			{Title: "Scandinavian Calm", ImageData: []byte("png-1")},
		},
	}
}

func TestSaveProjectRequiresToken(t *testing.T) {
	_, ts := newTestServer(t, "secret")

	resp := postJSON(t, ts.URL+"/api/projects", projectPayload(), nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestSaveProjectWithToken(t *testing.T) {
	_, ts := newTestServer(t, "secret")

	data, _ := json.Marshal(projectPayload())
	req, _ := http.NewRequest("POST", ts.URL+"/api/projects", bytes.NewReader(data))
	req.Header.Set("Authorization", "Bearer secret")
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var stored models.StoredProject
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stored.ID == "" || len(stored.Designs) != 1 {
		t.Errorf("stored = %+v", stored)
	}

	// The stored floorplan is retrievable through the image route.
	imgResp, err := http.Get(ts.URL + stored.FloorplanURL)
	if err != nil {
		t.Fatalf("get image: %v", err)
	}
	defer func() { _ = imgResp.Body.Close() }()
	if imgResp.StatusCode != http.StatusOK {
		t.Errorf("image status = %d", imgResp.StatusCode)
	}
}

func TestPersistenceDisabledWithoutToken(t *testing.T) {
	_, ts := newTestServer(t, "")
	resp := postJSON(t, ts.URL+"/api/projects", projectPayload(), nil)
	if resp.StatusCode != http.StatusNotImplemented {
		t.Fatalf("status = %d, want 501", resp.StatusCode)
	}
}

func TestAnalyzeOracleFailureIsBadGateway(t *testing.T) {
	projectStore, err := store.NewSQLiteStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = projectStore.Close() })

	srv := New(Config{
		Oracle:   &fakeOracle{analyzeErr: fmt.Errorf("boom")},
		Store:    projectStore,
		Exporter: export.NewExporter(afero.NewMemMapFs(), "/out"),
	})
	ts := httptest.NewServer(srv.server.Handler)
	t.Cleanup(ts.Close)

	resp := postJSON(t, ts.URL+"/api/analyze", AnalyzeRequest{ImageData: []byte("plan")}, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for untyped failure", resp.StatusCode)
	}
}
