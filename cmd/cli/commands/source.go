package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/internal/config"
	"github.com/jakechorley/furnace-rank/pkg/clients/sheetsclient"
	"github.com/jakechorley/furnace-rank/pkg/core/loader"
	"github.com/jakechorley/furnace-rank/pkg/postgres"
)

// OpenSource builds the trial source selected by --file or the source config.
// The returned close function releases any connection the source holds.
func OpenSource(app *AppContext) (loader.Source, func(), error) {
	noop := func() {}

	if app.FilePath != "" {
		src, err := loader.FileSource(app.FilePath, app.Sheet)
		return src, noop, err
	}

	srcCfg := app.Cfg.Source
	app.Logger.Debug("Opening trial source", zap.String("kind", srcCfg.Kind))

	switch srcCfg.Kind {
	case config.SourceCSV:
		return &loader.CSVSource{Path: srcCfg.Path}, noop, nil

	case config.SourceXLSX:
		return &loader.XLSXSource{Path: srcCfg.Path, Sheet: srcCfg.Sheet}, noop, nil

	case config.SourceSheets:
		oauthCfg, err := config.LoadOAuthClientWithEnv(app.Env)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load OAuth client config: %w", err)
		}
		client, err := sheetsclient.NewClient(app.Ctx, oauthCfg, app.Env)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sheets client: %w", err)
		}
		return &sheetsclient.TrialSource{
			Getter:        client,
			SpreadsheetID: srcCfg.SpreadsheetID,
			Range:         srcCfg.Range,
		}, noop, nil

	case config.SourcePostgres:
		database, err := openDatabase(app)
		if err != nil {
			return nil, nil, err
		}
		return &postgres.TrialSource{
			DB:      database,
			Table:   srcCfg.Table,
			Columns: app.Cfg.Columns,
		}, database.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported source kind %q", srcCfg.Kind)
}

// openDatabase connects to the configured database and applies pending migrations
func openDatabase(app *AppContext) (*postgres.DB, error) {
	if app.Cfg.Source.DatabaseURL == "" {
		return nil, fmt.Errorf("no database configured: set source.databaseURL or FURNACE_RANK_DATABASE_URL")
	}

	database, err := postgres.NewDB(app.Ctx, app.Cfg.Source.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	applied, err := database.RunMigrations(app.Ctx)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if len(applied) > 0 {
		app.Logger.Info("Applied migrations", zap.Strings("files", applied))
	}

	return database, nil
}
