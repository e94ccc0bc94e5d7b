// Package app wires the console's components together and owns the
// process lifecycle.
package app

import (
	"pipeline-console/internal/auth"
	"pipeline-console/internal/batchexports"
	"pipeline-console/internal/catalog"
	"pipeline-console/internal/common/logging"
	"pipeline-console/internal/config"
	"pipeline-console/internal/database"
	"pipeline-console/internal/navigation"
	"pipeline-console/internal/plugins"
	"pipeline-console/internal/stages"
	"pipeline-console/internal/timeline"
)

// App holds all the application dependencies.
type App struct {
	Config    *config.Config
	DB        *database.DB
	Plugins   *plugins.Store
	Services  *batchexports.Registry
	Exports   *batchexports.Store
	Timeline  *timeline.Store
	Selector  *catalog.Selector
	Cache     *catalog.Cache
	Auth      *auth.Auth
	Navigator navigation.Navigator
	Logger    logging.Logger
}

// New creates an application instance with all dependencies initialized.
func New(cfg *config.Config) (*App, error) {
	app := &App{
		Config:    cfg,
		Services:  batchexports.DefaultRegistry(),
		Navigator: navigation.RouteNavigator{},
		Logger:    logging.WithFields(logging.Field{Key: "component", Value: "app"}),
	}

	db, err := database.Init(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	app.DB = db
	app.Plugins = plugins.NewStore(db)
	app.Exports = batchexports.NewStore(db)
	app.Timeline = timeline.NewStore(db)
	app.Auth = auth.New(db, cfg.JWTSecret)

	app.initializeCatalog()
	return app, nil
}

// initializeCatalog builds one provider per stage, cached through Redis
// when an address is configured. The cache is optional: a connection
// failure logs a warning and the catalog serves store reads directly.
func (app *App) initializeCatalog() {
	if app.Config.RedisAddress != "" {
		cache, err := catalog.NewCache(catalog.CacheConfig{
			Address:  app.Config.RedisAddress,
			Password: app.Config.RedisPassword,
			DB:       app.Config.RedisDB,
		}, app.Config.CatalogCacheTTL)
		if err != nil {
			app.Logger.Warn("catalog cache unavailable, serving direct reads",
				logging.Err(err))
		} else {
			app.Cache = cache
		}
	}

	providers := make(map[stages.Stage]catalog.Provider, len(stages.All()))
	for _, stage := range stages.All() {
		var provider catalog.Provider = catalog.NewStoreProvider(app.Plugins, stage)
		if app.Cache != nil {
			provider = catalog.NewCachedProvider(provider, app.Cache, stage)
		}
		providers[stage] = provider
	}
	app.Selector = catalog.NewSelector(providers, app.Services)
}

// Cleanup releases all resources.
func (app *App) Cleanup() {
	if app.Cache != nil {
		if err := app.Cache.Close(); err != nil {
			app.Logger.Warn("error closing catalog cache", logging.Err(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Warn("error closing database", logging.Err(err))
		}
	}
}
