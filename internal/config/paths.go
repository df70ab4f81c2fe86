package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory
// (~/.auradecor). It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".auradecor"), nil
}

// GetDataBasePath returns the directory holding the project database and
// saved design images. Resolution order (first match wins):
// 1. Explicit config via "project.dataDir" (Viper/env/flag)
// 2. Local project directory: .auradecor (if exists)
// 3. XDG_DATA_HOME/auradecor (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.auradecor
func GetDataBasePath() string {
	if path := viper.GetString("project.dataDir"); path != "" {
		return path
	}

	if info, err := os.Stat(".auradecor"); err == nil && info.IsDir() {
		return ".auradecor"
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "auradecor")
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return ".auradecor"
	}
	return dir
}

// GetTemplatesPath returns the directory holding prompt template overrides,
// or "" when none is configured and no local directory exists.
func GetTemplatesPath() string {
	if path := viper.GetString("project.templatesDir"); path != "" {
		return path
	}
	local := filepath.Join(".auradecor", "templates")
	if info, err := os.Stat(local); err == nil && info.IsDir() {
		return local
	}
	return ""
}

// GetExportPath returns the directory design artifacts are written to.
func GetExportPath() string {
	if path := viper.GetString("project.exportDir"); path != "" {
		return path
	}
	return filepath.Join(GetDataBasePath(), "exports")
}
