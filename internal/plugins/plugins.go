// Package plugins stores the metadata of installable pipeline plugins:
// transformations, plugin destinations, and site apps.
package plugins

import (
	"database/sql"
	"fmt"
	"time"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
	"pipeline-console/internal/stages"
)

// Plugin is one installable plugin offered in a stage's catalog.
type Plugin struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Stage       stages.Stage `json:"stage"`
	IconURL     string       `json:"icon_url,omitempty"`
	URL         string       `json:"url,omitempty"`
	Enabled     bool         `json:"enabled"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Store provides access to plugin metadata.
type Store struct {
	db *database.DB
}

// NewStore creates a plugin store over db.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a plugin and returns it with its assigned identifier.
func (s *Store) Create(p Plugin) (Plugin, error) {
	if p.Name == "" {
		return Plugin{}, errors.ValidationError("plugin name must not be empty")
	}
	if !p.Stage.Valid() {
		return Plugin{}, errors.ValidationError(fmt.Sprintf("unknown stage %q", p.Stage))
	}

	result, err := s.db.Exec(
		`INSERT INTO plugins (name, description, stage, icon_url, url, enabled) VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, string(p.Stage), p.IconURL, p.URL, p.Enabled,
	)
	if err != nil {
		return Plugin{}, errors.InternalError("failed to create plugin", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Plugin{}, errors.InternalError("failed to read plugin id", err)
	}
	return s.Get(int(id))
}

// Get returns the plugin with the given identifier.
func (s *Store) Get(id int) (Plugin, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, stage, icon_url, url, enabled, created_at, updated_at
		 FROM plugins WHERE id = ?`, id,
	)
	p, err := scanPlugin(row)
	if err == sql.ErrNoRows {
		return Plugin{}, errors.NotFoundError(fmt.Sprintf("plugin %d", id))
	}
	if err != nil {
		return Plugin{}, errors.InternalError("failed to get plugin", err)
	}
	return p, nil
}

// ByStage returns all enabled plugins for a stage, keyed by identifier.
func (s *Store) ByStage(stage stages.Stage) (map[int]Plugin, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, stage, icon_url, url, enabled, created_at, updated_at
		 FROM plugins WHERE stage = ? AND enabled = 1 ORDER BY id`, string(stage),
	)
	if err != nil {
		return nil, errors.InternalError("failed to list plugins", err)
	}
	defer rows.Close()

	result := make(map[int]Plugin)
	for rows.Next() {
		p, err := scanPlugin(rows)
		if err != nil {
			return nil, errors.InternalError("failed to scan plugin", err)
		}
		result[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, errors.InternalError("failed to iterate plugins", err)
	}
	return result, nil
}

// Delete removes a plugin.
func (s *Store) Delete(id int) error {
	result, err := s.db.Exec(`DELETE FROM plugins WHERE id = ?`, id)
	if err != nil {
		return errors.InternalError("failed to delete plugin", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.InternalError("failed to check delete result", err)
	}
	if affected == 0 {
		return errors.NotFoundError(fmt.Sprintf("plugin %d", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlugin(row rowScanner) (Plugin, error) {
	var p Plugin
	var stage string
	err := row.Scan(&p.ID, &p.Name, &p.Description, &stage, &p.IconURL, &p.URL,
		&p.Enabled, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Plugin{}, err
	}
	p.Stage = stages.Stage(stage)
	return p, nil
}
