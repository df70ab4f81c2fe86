package models

import "fmt"

// MaterialBreakdownItem is one line of a design's bill of materials, with
// metric quantities folded into the description.
type MaterialBreakdownItem struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Design is one immutable versioned render for a room: the image, the exact
// prompt that produced it, and the material breakdown. Designs are only ever
// appended to a session's history; a refinement appends a new version rather
// than editing one in place, which is what makes compare-versions work.
type Design struct {
	ID        string                  `json:"id"` // "v1", "v2", ...
	Title     string                  `json:"title"`
	Image     []byte                  `json:"-"` // rendered PNG bytes
	Materials []MaterialBreakdownItem `json:"materials"`
	Prompt    string                  `json:"prompt"`
}

// DesignAids is the structured output of the design aid generator. The image
// prompt respects the room's architecture and the fixed camera framing; the
// album title names the concept (and, on refinements, the requested change).
type DesignAids struct {
	ImagePrompt       string                  `json:"imagePrompt" validate:"required"`
	MaterialBreakdown []MaterialBreakdownItem `json:"materialBreakdown" validate:"required,min=1,dive"`
	AlbumTitle        string                  `json:"albumTitle"`
}

// Validate checks the design aid payload after parsing.
func (d *DesignAids) Validate() error {
	return validate.Struct(d)
}

// ChatSender identifies who wrote a chat message.
type ChatSender string

const (
	SenderUser ChatSender = "user"
	SenderAI   ChatSender = "ai"
)

// ChatMessage is one entry of the per-room chat transcript. The transcript is
// append-only and discarded when the user leaves the room session.
type ChatMessage struct {
	Sender ChatSender `json:"sender"`
	Text   string     `json:"text"`
}

// SupplierRequest is the room-scoped procurement document derived from a
// design's materials. It is disposable: never stored in history, re-derivable
// from any design at any time.
type SupplierRequest struct {
	Room      string              `json:"room" yaml:"room"`
	Materials []map[string]string `json:"materials" yaml:"materials"`
}

// Validate rejects empty supplier packages.
func (s *SupplierRequest) Validate() error {
	if s.Room == "" {
		return fmt.Errorf("supplier request has no room name")
	}
	if len(s.Materials) == 0 {
		return fmt.Errorf("supplier request has no materials")
	}
	return nil
}
