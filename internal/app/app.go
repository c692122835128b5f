package app

import (
	"io"
	"log/slog"

	"github.com/vk/fpgaflow/internal/catalog"
	"github.com/vk/fpgaflow/internal/project"
)

// App encapsulates the application's dependencies and lifecycle.
type App struct {
	outW    io.Writer
	logger  *slog.Logger
	catalog *catalog.Catalog
	codec   project.Codec
}

// NewApp is the constructor for the main application. Pipeline listings go
// to outW; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	return &App{
		outW:    outW,
		logger:  newLogger(cfg, logW),
		catalog: catalog.Default(),
		codec:   project.JSONCodec{},
	}
}

// Logger returns the application's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
