// Package store persists finalized design projects.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/auradecor/studio/models"
)

// imagesDirName holds saved floorplan and design images next to the database.
const imagesDirName = "images"

// SQLiteStore implements ProjectStore using SQLite for metadata and plain
// files for image bytes. Stored image URLs are served by the HTTP layer under
// /images/.
type SQLiteStore struct {
	db       *sql.DB
	basePath string
}

// NewSQLiteStore opens (or creates) the project database under basePath.
// Pass ":memory:" for an ephemeral store; images then land in a temp dir.
func NewSQLiteStore(basePath string) (*SQLiteStore, error) {
	var dbPath string
	if basePath == ":memory:" {
		dbPath = ":memory:"
		tmp, err := os.MkdirTemp("", "auradecor-images-")
		if err != nil {
			return nil, fmt.Errorf("create temp image dir: %w", err)
		}
		basePath = tmp
	} else {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		dbPath = filepath.Join(basePath, "projects.db")
	}
	if err := os.MkdirAll(filepath.Join(basePath, imagesDirName), 0o755); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db, basePath: basePath}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		floorplan_path TEXT NOT NULL,
		analysis TEXT NOT NULL,            -- room models as JSON
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS designs (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		position INTEGER NOT NULL,         -- album order within the project
		title TEXT NOT NULL,
		image_path TEXT NOT NULL,
		materials TEXT,                    -- material breakdown as JSON
		prompt TEXT,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_designs_project ON designs(project_id, position);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// ImagePath resolves a stored image filename to its on-disk path.
func (s *SQLiteStore) ImagePath(name string) string {
	return filepath.Join(s.basePath, imagesDirName, filepath.Base(name))
}

func (s *SQLiteStore) writeImage(id string, data []byte) (string, error) {
	name := id + ".png"
	if err := os.WriteFile(s.ImagePath(name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image %s: %w", name, err)
	}
	return name, nil
}

func imageURL(name string) string { return "/images/" + name }

// SaveProject validates and persists a finalized project, assigning UUIDs to
// the project and every design. The write is transactional: a failure rolls
// back the metadata, and any orphaned image files are best-effort removed.
func (s *SQLiteStore) SaveProject(payload models.ProjectPayload) (models.StoredProject, error) {
	if err := payload.Validate(); err != nil {
		return models.StoredProject{}, fmt.Errorf("invalid project payload: %w", err)
	}

	projectID := uuid.New().String()
	createdAt := time.Now().UTC()

	analysisJSON, err := json.Marshal(payload.AnalysisResult)
	if err != nil {
		return models.StoredProject{}, fmt.Errorf("marshal analysis: %w", err)
	}

	var written []string
	cleanup := func() {
		for _, name := range written {
			_ = os.Remove(s.ImagePath(name))
		}
	}

	floorplanName, err := s.writeImage(projectID, payload.FloorplanImage)
	if err != nil {
		return models.StoredProject{}, err
	}
	written = append(written, floorplanName)

	tx, err := s.db.Begin()
	if err != nil {
		cleanup()
		return models.StoredProject{}, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(
		`INSERT INTO projects (id, name, floorplan_path, analysis, created_at) VALUES (?, ?, ?, ?, ?)`,
		projectID, payload.Name, floorplanName, string(analysisJSON), createdAt.Format(time.RFC3339),
	)
	if err != nil {
		cleanup()
		return models.StoredProject{}, fmt.Errorf("insert project: %w", err)
	}

	stored := models.StoredProject{
		ID:             projectID,
		Name:           payload.Name,
		FloorplanURL:   imageURL(floorplanName),
		AnalysisResult: payload.AnalysisResult,
		CreatedAt:      createdAt,
	}

	for i, d := range payload.Designs {
		designID := uuid.New().String()
		imageName, err := s.writeImage(designID, d.ImageData)
		if err != nil {
			cleanup()
			return models.StoredProject{}, err
		}
		written = append(written, imageName)

		materialsJSON, err := json.Marshal(d.Materials)
		if err != nil {
			cleanup()
			return models.StoredProject{}, fmt.Errorf("marshal materials: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO designs (id, project_id, position, title, image_path, materials, prompt) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			designID, projectID, i, d.Title, imageName, string(materialsJSON), d.Prompt,
		)
		if err != nil {
			cleanup()
			return models.StoredProject{}, fmt.Errorf("insert design: %w", err)
		}

		stored.Designs = append(stored.Designs, models.StoredDesign{
			ID:        designID,
			Title:     d.Title,
			ImageURL:  imageURL(imageName),
			Materials: d.Materials,
			Prompt:    d.Prompt,
		})
	}

	if err := tx.Commit(); err != nil {
		cleanup()
		return models.StoredProject{}, fmt.Errorf("commit: %w", err)
	}
	return stored, nil
}

// GetProject loads a stored project with its designs in album order.
func (s *SQLiteStore) GetProject(id string) (models.StoredProject, error) {
	var (
		p             models.StoredProject
		floorplanName string
		analysisJSON  string
		createdAt     string
	)
	err := s.db.QueryRow(
		`SELECT id, name, floorplan_path, analysis, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &floorplanName, &analysisJSON, &createdAt)
	if err == sql.ErrNoRows {
		return models.StoredProject{}, fmt.Errorf("project %s not found", id)
	}
	if err != nil {
		return models.StoredProject{}, fmt.Errorf("query project: %w", err)
	}

	p.FloorplanURL = imageURL(floorplanName)
	if err := json.Unmarshal([]byte(analysisJSON), &p.AnalysisResult); err != nil {
		return models.StoredProject{}, fmt.Errorf("parse stored analysis: %w", err)
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.StoredProject{}, fmt.Errorf("parse created_at: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, title, image_path, materials, prompt FROM designs WHERE project_id = ? ORDER BY position`, id,
	)
	if err != nil {
		return models.StoredProject{}, fmt.Errorf("query designs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			d             models.StoredDesign
			imageName     string
			materialsJSON sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.Title, &imageName, &materialsJSON, &d.Prompt); err != nil {
			return models.StoredProject{}, fmt.Errorf("scan design: %w", err)
		}
		d.ImageURL = imageURL(imageName)
		if materialsJSON.Valid && materialsJSON.String != "" {
			if err := json.Unmarshal([]byte(materialsJSON.String), &d.Materials); err != nil {
				return models.StoredProject{}, fmt.Errorf("parse stored materials: %w", err)
			}
		}
		p.Designs = append(p.Designs, d)
	}
	return p, rows.Err()
}

// ListProjects returns all stored projects, newest first, without designs.
func (s *SQLiteStore) ListProjects() ([]models.StoredProject, error) {
	rows, err := s.db.Query(
		`SELECT id, name, floorplan_path, analysis, created_at FROM projects ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.StoredProject
	for rows.Next() {
		var (
			p             models.StoredProject
			floorplanName string
			analysisJSON  string
			createdAt     string
		)
		if err := rows.Scan(&p.ID, &p.Name, &floorplanName, &analysisJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.FloorplanURL = imageURL(floorplanName)
		if err := json.Unmarshal([]byte(analysisJSON), &p.AnalysisResult); err != nil {
			return nil, fmt.Errorf("parse stored analysis: %w", err)
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteProject removes a project, its designs, and their image files.
func (s *SQLiteStore) DeleteProject(id string) error {
	p, err := s.GetProject(id)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	_ = os.Remove(s.ImagePath(id + ".png"))
	for _, d := range p.Designs {
		_ = os.Remove(s.ImagePath(d.ID + ".png"))
	}
	return nil
}
