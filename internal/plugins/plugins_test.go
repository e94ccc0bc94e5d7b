package plugins

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

func TestCreateAndGet(t *testing.T) {
	store := newTestStore(t)

	created, err := store.Create(Plugin{
		Name:        "GeoIP",
		Description: "Enrich events with location",
		Stage:       stages.StageTransformation,
		Enabled:     true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "GeoIP", got.Name)
	assert.Equal(t, stages.StageTransformation, got.Stage)
}

func TestCreateValidation(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Create(Plugin{Stage: stages.StageTransformation})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))

	_, err = store.Create(Plugin{Name: "GeoIP", Stage: stages.Stage("widgets")})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestByStageFiltersDisabledAndOtherStages(t *testing.T) {
	store := newTestStore(t)

	geoIP, err := store.Create(Plugin{Name: "GeoIP", Stage: stages.StageTransformation, Enabled: true})
	require.NoError(t, err)
	_, err = store.Create(Plugin{Name: "Legacy filter", Stage: stages.StageTransformation, Enabled: false})
	require.NoError(t, err)
	_, err = store.Create(Plugin{Name: "Intercom", Stage: stages.StageDestination, Enabled: true})
	require.NoError(t, err)

	byStage, err := store.ByStage(stages.StageTransformation)
	require.NoError(t, err)
	require.Len(t, byStage, 1)
	assert.Equal(t, "GeoIP", byStage[geoIP.ID].Name)
}

func TestGetMissing(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Get(999)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)
	created, err := store.Create(Plugin{Name: "GeoIP", Stage: stages.StageTransformation, Enabled: true})
	require.NoError(t, err)

	require.NoError(t, store.Delete(created.ID))
	err = store.Delete(created.ID)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))
}
