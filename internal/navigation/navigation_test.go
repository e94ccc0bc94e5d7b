package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/stages"
)

func TestBreadcrumbsBrowse(t *testing.T) {
	trail := Breadcrumbs(stages.StageDestination, 0, "")
	require.Len(t, trail, 3)
	assert.Equal(t, Breadcrumb{Name: "Data pipeline", Path: "/pipeline"}, trail[0])
	assert.Equal(t, Breadcrumb{Name: "Destinations", Path: "/pipeline/destinations"}, trail[1])
	assert.Equal(t, Breadcrumb{Name: "Options"}, trail[2])
}

func TestBreadcrumbsPluginTarget(t *testing.T) {
	trail := Breadcrumbs(stages.StageTransformation, 42, "")
	require.Len(t, trail, 3)
	assert.Equal(t, "Transformations", trail[1].Name)
	assert.Equal(t, "New", trail[2].Name)
}

func TestBreadcrumbsServiceTarget(t *testing.T) {
	trail := Breadcrumbs(stages.StageDestination, 0, "Snowflake")
	require.Len(t, trail, 3)
	assert.Equal(t, "New Snowflake destination", trail[2].Name)
}

func TestBreadcrumbsPluginWinsOverService(t *testing.T) {
	trail := Breadcrumbs(stages.StageDestination, 7, "Snowflake")
	require.Len(t, trail, 3)
	assert.Equal(t, "New", trail[2].Name)
}

func TestBreadcrumbsUnknownStage(t *testing.T) {
	trail := Breadcrumbs(stages.Stage("exports"), 0, "")
	require.Len(t, trail, 3)
	assert.Equal(t, Breadcrumb{Name: "Unknown"}, trail[1])
	assert.Equal(t, "Options", trail[2].Name)
}

// Every combination of stage validity, plugin id, and service must produce
// exactly three entries; a bad route segment never shortens the trail.
func TestBreadcrumbsAlwaysThreeEntries(t *testing.T) {
	candidateStages := append(stages.All(), stages.Stage(""), stages.Stage("bogus"))
	for _, stage := range candidateStages {
		for _, pluginID := range []int{0, 42} {
			for _, service := range []string{"", "S3"} {
				trail := Breadcrumbs(stage, pluginID, service)
				assert.Len(t, trail, 3, "stage=%q pluginID=%d service=%q", stage, pluginID, service)
			}
		}
	}
}

func TestCreationPath(t *testing.T) {
	path, err := CreationPath(stages.StageSiteApp, "13")
	require.NoError(t, err)
	assert.Equal(t, "/pipeline/site-apps/new/13", path)

	path, err = CreationPath(stages.StageDestination, "Snowflake")
	require.NoError(t, err)
	assert.Equal(t, "/pipeline/destinations/new/Snowflake", path)
}

func TestCreationPathFailures(t *testing.T) {
	_, err := CreationPath(stages.Stage("exports"), "13")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeNotFound))

	_, err = CreationPath(stages.StageDestination, "")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
}

func TestRouteNavigatorDelegates(t *testing.T) {
	path, err := RouteNavigator{}.Navigate(stages.StageTransformation, "3")
	require.NoError(t, err)
	assert.Equal(t, "/pipeline/transformations/new/3", path)
}
