package models

import "time"

// The types below form the persistence boundary: a finalized studio session is
// handed to the project store as a payload and comes back with server-assigned
// IDs and public image URLs.

// DesignPayload is a design as submitted for storage.
type DesignPayload struct {
	Title     string                  `json:"title" validate:"required"`
	ImageData []byte                  `json:"image_data" validate:"required"`
	Materials []MaterialBreakdownItem `json:"materials"`
	Prompt    string                  `json:"prompt"`
}

// ProjectPayload is a finalized project as submitted for storage.
type ProjectPayload struct {
	Name           string            `json:"name" validate:"required"`
	FloorplanImage []byte            `json:"floorplan_image" validate:"required"`
	AnalysisResult FloorplanAnalysis `json:"analysis_result" validate:"required"`
	Designs        []DesignPayload   `json:"designs" validate:"dive"`
}

// Validate checks a payload before it reaches the store.
func (p *ProjectPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return p.AnalysisResult.Validate()
}

// StoredDesign is a persisted design with its public image URL.
type StoredDesign struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	ImageURL  string                  `json:"image_url"`
	Materials []MaterialBreakdownItem `json:"materials"`
	Prompt    string                  `json:"prompt"`
}

// StoredProject is a persisted project with server-assigned identifiers.
type StoredProject struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	FloorplanURL   string            `json:"floorplan_url"`
	AnalysisResult FloorplanAnalysis `json:"analysis_result"`
	Designs        []StoredDesign    `json:"designs"`
	CreatedAt      time.Time         `json:"created_at"`
}
