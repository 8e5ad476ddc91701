package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/adapter/store/postgres"
	http_server "github.com/dayanaadylkhanova/barnum/internal/adapter/transport/http"
	"github.com/dayanaadylkhanova/barnum/internal/relabel"
	"github.com/dayanaadylkhanova/barnum/internal/service"
	"github.com/dayanaadylkhanova/barnum/internal/transform"
	"github.com/dayanaadylkhanova/barnum/pkg/config"
)

const startupTimeout = 10 * time.Second

type AppInfo struct {
	Name      string
	BuildTime string
	Commit    string
	Release   string
}

type App struct {
	cfg  config.Config
	info *AppInfo
	log  *zap.Logger

	store  *postgres.Store
	server *http_server.Server
}

func New(cfg config.Config, info *AppInfo, log *zap.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	// 1) Store (Postgres warehouse, read only)
	st, err := postgres.New(ctx, cfg.DatabaseURL, cfg.DBSearchPath, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAppStartup, err)
	}
	if err := st.Ping(ctx); err != nil {
		// the warehouse may come up later, the breaker guards reads meanwhile
		log.Warn("warehouse ping failed", zap.Error(err))
	}

	// 2) Catalogue, dispatcher, transforms
	labels := relabel.Default()
	cat := service.NewCatalogue(labels)
	disp := service.NewDispatcher(st, dispatcherOptions(cfg)...)
	transforms := transform.NewRegistry(labels)

	// 3) HTTP server
	srv := http_server.NewServer(log, http_server.Options{
		Addr:            cfg.ListenAddr,
		Username:        cfg.AppUsername,
		Password:        cfg.AppPassword,
		Offline:         cfg.Offline,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CORSOrigins:     cfg.CORSOrigins,
	}, cat, disp, transforms)

	log.Info("app built",
		zap.String("name", info.Name),
		zap.String("release", info.Release),
		zap.Int("endpoints", len(cat.Endpoints())),
		zap.Bool("offline", cfg.Offline),
	)

	return &App{
		cfg:    cfg,
		info:   info,
		log:    log,
		store:  st,
		server: srv,
	}, nil
}

func dispatcherOptions(cfg config.Config) []service.Option {
	switch {
	case cfg.LiveReference:
		return []service.Option{service.WithLiveReference()}
	case !cfg.ReferenceTime.IsZero():
		return []service.Option{service.WithReferenceTime(cfg.ReferenceTime)}
	default:
		return nil
	}
}

func (a *App) Run(ctx context.Context) error {
	// Start HTTP
	httpErrCh := make(chan error, 1)
	go func() { httpErrCh <- a.server.Start() }()

	var runErr error
	select {
	case <-ctx.Done():
		// graceful
		runErr = ErrAppShutdownNormal
	case err := <-httpErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("%w: %w", ErrAppStartup, err)
		} else {
			runErr = ErrAppShutdownNormal
		}
	}

	// Graceful shutdown
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.cfg.ShutdownWait)
	defer cancelShutdown()
	if err := a.server.Shutdown(shutdownCtx); err != nil && errors.Is(runErr, ErrAppShutdownNormal) {
		runErr = fmt.Errorf("%w: %w", ErrAppShutdownWithError, err)
	}
	a.store.Close()

	return runErr
}
