// Package export writes selected designs and supplier packages to disk.
package export

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"

	"github.com/auradecor/studio/models"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Exporter writes design artifacts into a target directory.
// It uses an afero.Fs interface for filesystem operations, enabling
// easy testing with in-memory filesystems.
type Exporter struct {
	fs  afero.Fs
	dir string
}

// NewExporter creates an exporter on the provided filesystem.
// Use afero.NewOsFs() for real filesystem operations,
// or afero.NewMemMapFs() for testing.
func NewExporter(fs afero.Fs, dir string) *Exporter {
	return &Exporter{fs: fs, dir: dir}
}

// NewOsExporter creates an Exporter using the real operating system filesystem.
func NewOsExporter(dir string) *Exporter {
	return NewExporter(afero.NewOsFs(), dir)
}

// DesignFilename is the deterministic artifact name for one design:
// AURADECOR-Design-<title with whitespace underscored>-<version>.png.
// The same title and version always produce the same name, and distinct
// versions never collide because the version token is part of the name.
func DesignFilename(title, version string) string {
	title = whitespaceRun.ReplaceAllString(strings.TrimSpace(title), "_")
	title = sanitize(title)
	return fmt.Sprintf("AURADECOR-Design-%s-%s.png", title, version)
}

// QuotesFilename is the artifact name for a supplier package.
func QuotesFilename(roomName string) string {
	room := whitespaceRun.ReplaceAllString(strings.TrimSpace(roomName), "_")
	return fmt.Sprintf("AURADECOR-Quotes-%s.yaml", sanitize(room))
}

// sanitize strips path separators so a title can never escape the target dir.
func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, `\`, "_")
	return s
}

// Designs writes every given design's image and returns the written paths in
// input order. The target directory is created if needed. Writing stops at
// the first failure; already written artifacts are left in place.
func (e *Exporter) Designs(designs []models.Design) ([]string, error) {
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	paths := make([]string, 0, len(designs))
	for _, d := range designs {
		if len(d.Image) == 0 {
			return paths, fmt.Errorf("design %s has no image data", d.ID)
		}
		path := filepath.Join(e.dir, DesignFilename(d.Title, d.ID))
		if err := afero.WriteFile(e.fs, path, d.Image, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// SupplierPackage writes the quotes request as a YAML document and returns
// its path.
func (e *Exporter) SupplierPackage(req models.SupplierRequest) (string, error) {
	if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	data, err := yaml.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal supplier package: %w", err)
	}
	path := filepath.Join(e.dir, QuotesFilename(req.Room))
	if err := afero.WriteFile(e.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
