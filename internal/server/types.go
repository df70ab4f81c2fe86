package server

import "github.com/auradecor/studio/models"

// Request and response bodies for the studio API. Image bytes travel as
// base64 strings via encoding/json's []byte handling.

type AnalyzeRequest struct {
	ImageData []byte `json:"image_data"`
	MimeType  string `json:"mime_type,omitempty"`
}

type AnalyzeResponse struct {
	Rooms []models.Room `json:"rooms"`
}

type StartSessionRequest struct {
	Room models.Room `json:"room"`
}

type GenerateRequest struct {
	Style string `json:"style"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type SelectRequest struct {
	DesignID string `json:"design_id"`
}

type CurrentRequest struct {
	Index int `json:"index"`
}

// DesignDTO is a design as it crosses the wire.
type DesignDTO struct {
	ID        string                         `json:"id"`
	Title     string                         `json:"title"`
	ImageData []byte                         `json:"image_data"`
	Materials []models.MaterialBreakdownItem `json:"materials"`
	Prompt    string                         `json:"prompt"`
}

func designDTO(d models.Design) DesignDTO {
	return DesignDTO{
		ID:        d.ID,
		Title:     d.Title,
		ImageData: d.Image,
		Materials: d.Materials,
		Prompt:    d.Prompt,
	}
}

type ChatResponse struct {
	Intent string       `json:"intent"`
	Reply  string       `json:"reply"`
	Design *DesignDTO   `json:"design,omitempty"`
	Room   *models.Room `json:"room,omitempty"`
}

type SessionResponse struct {
	ID           string               `json:"id"`
	Room         models.Room          `json:"room"`
	Style        string               `json:"style,omitempty"`
	Designs      []DesignDTO          `json:"designs"`
	CurrentIndex int                  `json:"current_index"`
	Transcript   []models.ChatMessage `json:"transcript"`
}

type SelectResponse struct {
	Selected bool `json:"selected"`
	Count    int  `json:"count"`
}

type ExportResponse struct {
	Paths []string `json:"paths"`
}
