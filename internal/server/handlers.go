package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/auradecor/studio/internal/studio"
	"github.com/auradecor/studio/internal/telemetry"
	"github.com/auradecor/studio/models"
	"github.com/auradecor/studio/types"
)

func writeAPIJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// writeEngineError maps engine and oracle failures onto HTTP statuses. Busy
// sessions are a conflict, oracle transport and parse failures are upstream
// errors, everything else about the request itself is a bad request.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, studio.ErrSessionBusy):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case errors.Is(err, studio.ErrNoDesign), errors.Is(err, studio.ErrNoStyle):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		unavailable *types.OracleUnavailableError
		analysis    *types.AnalysisParseError
		correction  *types.CorrectionParseError
		designAid   *types.DesignAidParseError
		noImage     *types.NoImageProducedError
	)
	if errors.As(err, &unavailable) || errors.As(err, &analysis) ||
		errors.As(err, &correction) || errors.As(err, &designAid) || errors.As(err, &noImage) {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, studio.DesignStyles)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.ImageData) == 0 {
		http.Error(w, "image_data is required", http.StatusBadRequest)
		return
	}

	analysis, err := s.oracle.AnalyzeFloorplan(r.Context(), req.ImageData, req.MimeType)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.telemetry.Track(telemetry.EventFloorplanAnalyzed, telemetry.Properties{
		"rooms": len(analysis.Rooms),
	})
	writeAPIJSON(w, AnalyzeResponse{Rooms: analysis.Rooms})
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Room.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess := studio.NewSession(s.oracle, req.Room)
	s.addSession(sess)
	writeAPIJSON(w, s.sessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	writeAPIJSON(w, s.sessionResponse(sess))
}

func (s *Server) sessionResponse(sess *studio.Session) SessionResponse {
	designs := sess.Designs()
	dtos := make([]DesignDTO, 0, len(designs))
	for _, d := range designs {
		dtos = append(dtos, designDTO(d))
	}
	return SessionResponse{
		ID:           sess.ID,
		Room:         sess.Room(),
		Style:        sess.Style(),
		Designs:      dtos,
		CurrentIndex: sess.CurrentIndex(),
		Transcript:   sess.Transcript(),
	}
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	design, err := sess.Generate(r.Context(), req.Style)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.telemetry.Track(telemetry.EventDesignGenerated, telemetry.Properties{
		"style":   req.Style,
		"version": design.ID,
	})
	writeAPIJSON(w, designDTO(*design))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := sess.HandleChat(r.Context(), req.Message)
	if err != nil && result.Design == nil && result.Reply == "" {
		writeEngineError(w, err)
		return
	}

	s.telemetry.Track(telemetry.EventChatClassified, telemetry.Properties{
		"intent": string(result.Intent),
	})

	resp := ChatResponse{Intent: string(result.Intent), Reply: result.Reply}
	if result.Design != nil {
		dto := designDTO(*result.Design)
		resp.Design = &dto
	}
	if result.Intent == studio.IntentArchitectural {
		room := sess.Room()
		resp.Room = &room
	}
	writeAPIJSON(w, resp)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	selected := sess.ToggleSelect(req.DesignID)
	writeAPIJSON(w, SelectResponse{Selected: selected, Count: len(sess.SelectedDesigns())})
}

func (s *Server) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	var req CurrentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := sess.SetCurrent(req.Index); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeAPIJSON(w, s.sessionResponse(sess))
}

func (s *Server) handleNewConcept(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	sess.NewConcept()
	writeAPIJSON(w, s.sessionResponse(sess))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}
	designs := sess.SelectedDesigns()
	if len(designs) == 0 {
		http.Error(w, "no designs selected", http.StatusBadRequest)
		return
	}

	paths, err := s.exporter.Designs(designs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.telemetry.Track(telemetry.EventExportCompleted, telemetry.Properties{
		"count": len(paths),
	})
	writeAPIJSON(w, ExportResponse{Paths: paths})
}

func (s *Server) handleQuotes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(r.PathValue("id"))
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	pkg, err := sess.RequestQuotes(r.Context())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	s.telemetry.Track(telemetry.EventQuotesRequested, telemetry.Properties{
		"materials": len(pkg.Materials),
	})
	writeAPIJSON(w, pkg)
}

func (s *Server) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "project store not configured", http.StatusNotImplemented)
		return
	}
	var payload models.ProjectPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	stored, err := s.store.SaveProject(payload)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.telemetry.Track(telemetry.EventProjectSaved, telemetry.Properties{
		"designs": len(stored.Designs),
	})
	w.WriteHeader(http.StatusCreated)
	writeAPIJSON(w, stored)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "project store not configured", http.StatusNotImplemented)
		return
	}
	projects, err := s.store.ListProjects()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeAPIJSON(w, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "project store not configured", http.StatusNotImplemented)
		return
	}
	project, err := s.store.GetProject(r.PathValue("id"))
	if err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	writeAPIJSON(w, project)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "project store not configured", http.StatusNotImplemented)
		return
	}
	if err := s.store.DeleteProject(r.PathValue("id")); err != nil {
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "project store not configured", http.StatusNotImplemented)
		return
	}
	http.ServeFile(w, r, s.store.ImagePath(r.PathValue("name")))
}
