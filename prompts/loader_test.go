package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGetPromptDefaults(t *testing.T) {
	keys := []PromptKey{
		KeyFloorplanAnalysis,
		KeyArchitectureCorrection,
		KeyDesignAids,
		KeySupplierPackage,
		KeyDesignAdvisor,
	}
	for _, key := range keys {
		content, err := GetPrompt(key, "")
		if err != nil {
			t.Fatalf("GetPrompt(%s): %v", key, err)
		}
		if strings.TrimSpace(content) == "" {
			t.Errorf("GetPrompt(%s) returned empty content", key)
		}
	}
}

func TestGetPromptUnknownKey(t *testing.T) {
	if _, err := GetPrompt(PromptKey("Nope"), ""); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestGetPromptOverride(t *testing.T) {
	dir := t.TempDir()
	override := "You are a test surveyor."
	path := filepath.Join(dir, "floorplan_analysis_prompt.txt")
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	content, err := GetPrompt(KeyFloorplanAnalysis, dir)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if content != override {
		t.Errorf("override not used, got %q", content)
	}

	// Other keys keep their defaults.
	content, err = GetPrompt(KeyDesignAids, dir)
	if err != nil {
		t.Fatalf("GetPrompt: %v", err)
	}
	if content != DesignAidsPrompt {
		t.Error("unrelated key should keep default content")
	}
}

func TestKeyForFilename(t *testing.T) {
	key, ok := KeyForFilename("/some/dir/design_aids_prompt.txt")
	if !ok || key != KeyDesignAids {
		t.Errorf("got %q, %v", key, ok)
	}
	if _, ok := KeyForFilename("notes.txt"); ok {
		t.Error("unknown filename should not map to a key")
	}
}

func TestCorrectionPromptPinsFeatureIDs(t *testing.T) {
	// The correction prompt is the only thing standing between the oracle and
	// renumbered feature IDs; make sure the instruction survives edits.
	if !strings.Contains(ArchitectureCorrectionPrompt, "Never renumber or reuse IDs") {
		t.Error("correction prompt lost the feature ID stability instruction")
	}
	if !strings.Contains(DesignAidsPrompt, "45-degree angle") {
		t.Error("design aids prompt lost the fixed camera instruction")
	}
}
