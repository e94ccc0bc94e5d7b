package batchexports

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
)

// Store persists batch-export configurations.
type Store struct {
	db *database.DB
}

// NewStore creates a batch-export store over db.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Create inserts a configuration and returns it with its assigned id.
func (s *Store) Create(cfg Config) (Config, error) {
	serviceConfig, err := json.Marshal(cfg.ServiceConfig)
	if err != nil {
		return Config{}, errors.InternalError("failed to encode service config", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO batch_exports (name, description, service, enabled, config) VALUES (?, ?, ?, ?, ?)`,
		cfg.Name, cfg.Description, cfg.Service, cfg.Enabled, string(serviceConfig),
	)
	if err != nil {
		return Config{}, errors.InternalError("failed to create batch export", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return Config{}, errors.InternalError("failed to read batch export id", err)
	}
	return s.Get(int(id))
}

// Get returns the configuration with the given id.
func (s *Store) Get(id int) (Config, error) {
	row := s.db.QueryRow(
		`SELECT id, name, description, service, enabled, config, created_at, updated_at
		 FROM batch_exports WHERE id = ?`, id,
	)
	cfg, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return Config{}, errors.NotFoundError(fmt.Sprintf("batch export %d", id))
	}
	if err != nil {
		return Config{}, errors.InternalError("failed to get batch export", err)
	}
	return cfg, nil
}

// List returns all saved configurations ordered by id.
func (s *Store) List() ([]Config, error) {
	rows, err := s.db.Query(
		`SELECT id, name, description, service, enabled, config, created_at, updated_at
		 FROM batch_exports ORDER BY id`,
	)
	if err != nil {
		return nil, errors.InternalError("failed to list batch exports", err)
	}
	defer rows.Close()

	var configs []Config
	for rows.Next() {
		cfg, err := scanConfig(rows)
		if err != nil {
			return nil, errors.InternalError("failed to scan batch export", err)
		}
		configs = append(configs, cfg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.InternalError("failed to iterate batch exports", err)
	}
	return configs, nil
}

// Update replaces a saved configuration.
func (s *Store) Update(id int, cfg Config) (Config, error) {
	serviceConfig, err := json.Marshal(cfg.ServiceConfig)
	if err != nil {
		return Config{}, errors.InternalError("failed to encode service config", err)
	}

	result, err := s.db.Exec(
		`UPDATE batch_exports
		 SET name = ?, description = ?, service = ?, enabled = ?, config = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		cfg.Name, cfg.Description, cfg.Service, cfg.Enabled, string(serviceConfig), id,
	)
	if err != nil {
		return Config{}, errors.InternalError("failed to update batch export", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return Config{}, errors.InternalError("failed to check update result", err)
	}
	if affected == 0 {
		return Config{}, errors.NotFoundError(fmt.Sprintf("batch export %d", id))
	}
	return s.Get(id)
}

// Delete removes a saved configuration.
func (s *Store) Delete(id int) error {
	result, err := s.db.Exec(`DELETE FROM batch_exports WHERE id = ?`, id)
	if err != nil {
		return errors.InternalError("failed to delete batch export", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.InternalError("failed to check delete result", err)
	}
	if affected == 0 {
		return errors.NotFoundError(fmt.Sprintf("batch export %d", id))
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConfig(row rowScanner) (Config, error) {
	var cfg Config
	var serviceConfig string
	err := row.Scan(&cfg.ID, &cfg.Name, &cfg.Description, &cfg.Service, &cfg.Enabled,
		&serviceConfig, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal([]byte(serviceConfig), &cfg.ServiceConfig); err != nil {
		return Config{}, fmt.Errorf("corrupt service config for batch export %d: %w", cfg.ID, err)
	}
	if cfg.ServiceConfig == nil {
		cfg.ServiceConfig = map[string]string{}
	}
	return cfg, nil
}
