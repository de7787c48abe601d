package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/furnace-rank/internal/config"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg    *config.Config
	Logger *zap.Logger
	Ctx    context.Context
	Env    string

	// FilePath and Sheet override the configured source with a local workbook
	FilePath string
	Sheet    string
}
