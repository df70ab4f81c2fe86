package studio

import (
	"fmt"

	"github.com/auradecor/studio/models"
)

// MaxSelectedDesigns caps how many designs can be selected for export at once.
const MaxSelectedDesigns = 3

// History is the append-only design album for one room session. Version
// tokens are assigned at append time and never reassigned; designs are never
// edited or pruned in-session, which is what makes undo and compare-versions
// possible. History is not safe for concurrent use on its own; Session
// serializes access.
type History struct {
	designs  []models.Design
	selected map[string]bool
	current  int // index into designs, -1 when no design is current
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{selected: make(map[string]bool), current: -1}
}

// Append assigns the next version token, appends the design, makes it current,
// and returns its index. An empty title falls back to "Version N".
func (h *History) Append(d models.Design) int {
	d.ID = fmt.Sprintf("v%d", len(h.designs)+1)
	if d.Title == "" {
		d.Title = fmt.Sprintf("Version %d", len(h.designs)+1)
	}
	h.designs = append(h.designs, d)
	h.current = len(h.designs) - 1
	return h.current
}

// Len returns the number of designs.
func (h *History) Len() int { return len(h.designs) }

// Designs returns a copy of the design slice.
func (h *History) Designs() []models.Design {
	out := make([]models.Design, len(h.designs))
	copy(out, h.designs)
	return out
}

// Current returns a copy of the current design, or nil when none is current.
func (h *History) Current() *models.Design {
	if h.current < 0 || h.current >= len(h.designs) {
		return nil
	}
	d := h.designs[h.current]
	return &d
}

// CurrentIndex returns the current index, or -1.
func (h *History) CurrentIndex() int { return h.current }

// SetCurrent switches the current design.
func (h *History) SetCurrent(i int) error {
	if i < 0 || i >= len(h.designs) {
		return fmt.Errorf("design index %d out of range [0,%d)", i, len(h.designs))
	}
	h.current = i
	return nil
}

// ClearCurrent drops the current pointer without touching the album, for
// starting a fresh design concept.
func (h *History) ClearCurrent() { h.current = -1 }

// ToggleSelect toggles selection of the design with the given version token
// and reports whether it is now selected. Selecting beyond the cap is a
// no-op, not an error. Unknown tokens are ignored.
func (h *History) ToggleSelect(id string) bool {
	if h.selected[id] {
		delete(h.selected, id)
		return false
	}
	known := false
	for _, d := range h.designs {
		if d.ID == id {
			known = true
			break
		}
	}
	if !known || len(h.selected) >= MaxSelectedDesigns {
		return false
	}
	h.selected[id] = true
	return true
}

// SelectedCount returns how many designs are selected.
func (h *History) SelectedCount() int { return len(h.selected) }

// Selected returns the selected designs in album order.
func (h *History) Selected() []models.Design {
	var out []models.Design
	for _, d := range h.designs {
		if h.selected[d.ID] {
			out = append(out, d)
		}
	}
	return out
}
