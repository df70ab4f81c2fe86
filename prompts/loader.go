package prompts

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PromptKey identifies one oracle prompt.
type PromptKey string

const (
	// KeyFloorplanAnalysis is the floorplan-to-room-model surveyor prompt.
	KeyFloorplanAnalysis PromptKey = "FloorplanAnalysis"
	// KeyArchitectureCorrection is the room correction prompt.
	KeyArchitectureCorrection PromptKey = "ArchitectureCorrection"
	// KeyDesignAids is the design concept prompt.
	KeyDesignAids PromptKey = "DesignAids"
	// KeySupplierPackage is the procurement reshape prompt.
	KeySupplierPackage PromptKey = "SupplierPackage"
	// KeyDesignAdvisor is the conversational advisor persona.
	KeyDesignAdvisor PromptKey = "DesignAdvisor"
)

// promptConfig defines the default content and override filename for a prompt.
type promptConfig struct {
	defaultContent string
	filename       string
}

var promptRegistry = map[PromptKey]promptConfig{
	KeyFloorplanAnalysis: {
		defaultContent: FloorplanAnalysisPrompt,
		filename:       "floorplan_analysis_prompt.txt",
	},
	KeyArchitectureCorrection: {
		defaultContent: ArchitectureCorrectionPrompt,
		filename:       "architecture_correction_prompt.txt",
	},
	KeyDesignAids: {
		defaultContent: DesignAidsPrompt,
		filename:       "design_aids_prompt.txt",
	},
	KeySupplierPackage: {
		defaultContent: SupplierPackagePrompt,
		filename:       "supplier_package_prompt.txt",
	},
	KeyDesignAdvisor: {
		defaultContent: DesignAdvisorPrompt,
		filename:       "design_advisor_prompt.txt",
	},
}

// GetPrompt returns the prompt content for key. If templatesDir contains an
// override file for the key, its content wins; otherwise the built-in default
// is returned.
func GetPrompt(key PromptKey, templatesDir string) (string, error) {
	config, ok := promptRegistry[key]
	if !ok {
		return "", fmt.Errorf("unrecognized prompt key: %s", key)
	}

	if strings.TrimSpace(templatesDir) == "" {
		return config.defaultContent, nil
	}

	customPromptPath := filepath.Join(templatesDir, config.filename)
	if _, err := os.Stat(customPromptPath); err == nil {
		content, readErr := os.ReadFile(customPromptPath)
		if readErr != nil {
			return "", fmt.Errorf("failed to read custom prompt file at %s: %w", customPromptPath, readErr)
		}
		return string(content), nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("error checking for custom prompt file at %s: %w", customPromptPath, err)
	}

	return config.defaultContent, nil
}

// KeyForFilename maps an override filename back to its prompt key. Used by the
// template watcher to report which prompt changed.
func KeyForFilename(name string) (PromptKey, bool) {
	base := filepath.Base(name)
	for key, cfg := range promptRegistry {
		if cfg.filename == base {
			return key, true
		}
	}
	return "", false
}
