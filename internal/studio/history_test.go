package studio

import (
	"fmt"
	"testing"

	"github.com/auradecor/studio/models"
)

func TestHistoryAppendAssignsVersionTokens(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 3; i++ {
		h.Append(models.Design{Title: fmt.Sprintf("Concept %d", i+1)})
	}

	designs := h.Designs()
	if len(designs) != 3 {
		t.Fatalf("expected 3 designs, got %d", len(designs))
	}
	for i, d := range designs {
		want := fmt.Sprintf("v%d", i+1)
		if d.ID != want {
			t.Errorf("design %d ID = %q, want %q", i, d.ID, want)
		}
	}
	if cur := h.Current(); cur == nil || cur.ID != "v3" {
		t.Errorf("current = %+v, want v3", cur)
	}
}

func TestHistoryTitleFallback(t *testing.T) {
	h := NewHistory()
	h.Append(models.Design{})
	if got := h.Designs()[0].Title; got != "Version 1" {
		t.Errorf("title = %q, want fallback", got)
	}
}

func TestHistorySetCurrent(t *testing.T) {
	h := NewHistory()
	h.Append(models.Design{})
	h.Append(models.Design{})

	if err := h.SetCurrent(0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur := h.Current(); cur.ID != "v1" {
		t.Errorf("current = %s, want v1", cur.ID)
	}
	if err := h.SetCurrent(5); err == nil {
		t.Error("expected out-of-range error")
	}

	// Appending after stepping back still extends the album, never rewrites it.
	h.Append(models.Design{})
	if h.Len() != 3 {
		t.Errorf("len = %d, want 3", h.Len())
	}
	if cur := h.Current(); cur.ID != "v3" {
		t.Errorf("current after append = %s, want v3", cur.ID)
	}
}

func TestHistoryClearCurrent(t *testing.T) {
	h := NewHistory()
	h.Append(models.Design{})
	h.ClearCurrent()
	if h.Current() != nil {
		t.Error("expected no current design")
	}
	if h.Len() != 1 {
		t.Error("album must survive clearing the current pointer")
	}
}

func TestHistorySelectionCap(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 5; i++ {
		h.Append(models.Design{})
	}

	for _, id := range []string{"v1", "v2", "v3"} {
		if !h.ToggleSelect(id) {
			t.Fatalf("selecting %s failed under the cap", id)
		}
	}
	// The fourth selection is a silent no-op.
	if h.ToggleSelect("v4") {
		t.Error("selection beyond the cap must not stick")
	}
	if h.SelectedCount() != MaxSelectedDesigns {
		t.Errorf("selected = %d, want %d", h.SelectedCount(), MaxSelectedDesigns)
	}

	// Deselecting frees a slot.
	if h.ToggleSelect("v2") {
		t.Error("toggle of a selected design must deselect")
	}
	if !h.ToggleSelect("v4") {
		t.Error("selection after freeing a slot must succeed")
	}

	got := h.Selected()
	want := []string{"v1", "v3", "v4"}
	if len(got) != len(want) {
		t.Fatalf("selected %d designs, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("selected[%d] = %s, want %s (album order)", i, got[i].ID, want[i])
		}
	}
}

func TestHistorySelectUnknownToken(t *testing.T) {
	h := NewHistory()
	h.Append(models.Design{})
	if h.ToggleSelect("v9") {
		t.Error("unknown version token must not select")
	}
	if h.SelectedCount() != 0 {
		t.Errorf("selected = %d, want 0", h.SelectedCount())
	}
}
