package webserver

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/shaharia-lab/themify/internal/config"
	"github.com/shaharia-lab/themify/internal/logger"
	"github.com/shaharia-lab/themify/internal/permission"
	"github.com/shaharia-lab/themify/internal/settings"
	"github.com/shaharia-lab/themify/internal/themes"
)

// BuildWebserver initializes the web server with the provided configuration
// and dependencies. The returned io.Closer releases the settings database.
func BuildWebserver(ctx context.Context, cfg config.Config, themesDirectory, settingsDBPath string, log logger.Logger) (*WebServer, io.Closer, error) {
	evaluator, err := permission.NewKeyEvaluator(cfg.Auth)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid auth configuration: %w", err)
	}

	store := themes.NewStore(themesDirectory)
	if err := store.Ensure(); err != nil {
		return nil, nil, err
	}

	settingsStore, err := settings.Open(ctx, settingsDBPath)
	if err != nil {
		return nil, nil, err
	}

	ws := NewWebServer(Options{
		Address:            cfg.Server.Address(),
		ThemeHandler:       themes.NewHandler(store, cfg.Themes.MaxSizeBytes, log),
		SettingsHandler:    settings.NewHandler(settingsStore, log),
		StaticDirectory:    store.Root(),
		Evaluator:          evaluator,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		ShutdownTimeout:    time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second,
		Clock:              clockwork.NewRealClock(),
		Logger:             log,
	})

	return ws, settingsStore, nil
}
