package batchexports

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
	"pipeline-console/internal/stages"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func validSnowflakeDraft() Config {
	return Config{
		Name:    "Nightly export",
		Service: "Snowflake",
		Enabled: true,
		ServiceConfig: map[string]string{
			"account":    "acme",
			"database":   "ANALYTICS",
			"warehouse":  "COMPUTE_WH",
			"user":       "loader",
			"schema":     "PUBLIC",
			"table_name": "events",
		},
	}
}

func TestNewConfiguratorDefaults(t *testing.T) {
	store := newTestStore(t)
	registry := DefaultRegistry()

	c, err := NewConfigurator(store, registry, stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)

	assert.Equal(t, StateNew, c.State())
	assert.True(t, c.IsNew())

	draft := c.Draft()
	assert.Equal(t, "Snowflake", draft.Service)
	assert.Equal(t, "PUBLIC", draft.ServiceConfig["schema"])
	assert.Equal(t, "events", draft.ServiceConfig["table_name"])
	assert.Empty(t, draft.Name)
}

func TestNewConfiguratorRejectsWrongStage(t *testing.T) {
	store := newTestStore(t)

	// The routing layer should never send a service target to another
	// stage, but the boundary re-validates instead of trusting it.
	_, err := NewConfigurator(store, DefaultRegistry(), stages.StageTransformation,
		stages.ClassifyTarget("Snowflake"), 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestNewConfiguratorRejectsNonServiceTarget(t *testing.T) {
	store := newTestStore(t)

	_, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("42"), 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))

	_, err = NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("NotAService"), 0)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestSubmitPersistsAndBecomesBaseline(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)

	saved, err := c.Submit(validSnowflakeDraft())
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)
	assert.Equal(t, StateEditing, c.State())
	assert.False(t, c.IsNew())

	// The draft now mirrors the saved baseline.
	assert.Equal(t, saved.Name, c.Draft().Name)

	stored, err := store.Get(saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", stored.ServiceConfig["account"])
}

func TestSubmitValidationFailureRetainsDraft(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)

	bad := validSnowflakeDraft()
	bad.Name = ""
	bad.ServiceConfig["account"] = ""

	_, err = c.Submit(bad)
	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrTypeValidation, appErr.Type)
	assert.Contains(t, appErr.Fields, "name")
	assert.Contains(t, appErr.Fields, "account")
	assert.NotContains(t, appErr.Fields, "database")

	// Nothing was committed, and the draft keeps the user's edits for
	// correction.
	configs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, configs)
	assert.Equal(t, "ANALYTICS", c.Draft().ServiceConfig["database"])
	assert.Equal(t, StateNew, c.State())
}

func TestSubmitRejectsUndeclaredFields(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("S3"), 0)
	require.NoError(t, err)

	draft := Config{
		Name:    "Bucket export",
		Service: "S3",
		ServiceConfig: map[string]string{
			"bucket_name":           "exports",
			"region":                "us-east-1",
			"aws_access_key_id":     "AKIA",
			"aws_secret_access_key": "secret",
			"warehouse":             "COMPUTE_WH",
		},
	}
	_, err = c.Submit(draft)
	require.Error(t, err)
	appErr := err.(*errors.AppError)
	assert.Contains(t, appErr.Fields, "warehouse")
}

func TestEditingFlow(t *testing.T) {
	store := newTestStore(t)
	registry := DefaultRegistry()

	creator, err := NewConfigurator(store, registry, stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)
	saved, err := creator.Submit(validSnowflakeDraft())
	require.NoError(t, err)

	editor, err := NewConfigurator(store, registry, stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, StateEditing, editor.State())
	assert.False(t, editor.IsNew())

	draft := editor.Draft()
	draft.Name = "Hourly export"
	updated, err := editor.Submit(draft)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, "Hourly export", updated.Name)
}

func TestEditingWrongServiceIsNotFound(t *testing.T) {
	store := newTestStore(t)
	registry := DefaultRegistry()

	creator, err := NewConfigurator(store, registry, stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)
	saved, err := creator.Submit(validSnowflakeDraft())
	require.NoError(t, err)

	// Opening a Snowflake config under the S3 form is a not-found, not a
	// silent service swap.
	_, err = NewConfigurator(store, registry, stages.StageDestination,
		stages.ClassifyTarget("S3"), saved.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestResetRestoresBaseline(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)

	bad := validSnowflakeDraft()
	bad.Name = ""
	_, err = c.Submit(bad)
	require.Error(t, err)

	reset := c.Reset()
	assert.Empty(t, reset.Name)
	assert.Equal(t, "PUBLIC", reset.ServiceConfig["schema"])
}

func TestResetIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("Postgres"), 0)
	require.NoError(t, err)

	once := c.Reset()
	twice := c.Reset()
	assert.Equal(t, once, twice, "reset twice must equal reset once")
}

func TestResetAfterSaveRestoresSavedValues(t *testing.T) {
	store := newTestStore(t)
	c, err := NewConfigurator(store, DefaultRegistry(), stages.StageDestination,
		stages.ClassifyTarget("Snowflake"), 0)
	require.NoError(t, err)

	saved, err := c.Submit(validSnowflakeDraft())
	require.NoError(t, err)

	// A failed edit after saving resets to the saved values, not to the
	// service defaults.
	bad := saved.clone()
	bad.Name = ""
	_, err = c.Submit(bad)
	require.Error(t, err)

	reset := c.Reset()
	assert.Equal(t, "Nightly export", reset.Name)
	assert.Equal(t, saved.ID, reset.ID)
}
