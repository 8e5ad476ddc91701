package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/dayanaadylkhanova/barnum/internal/app"
	"github.com/dayanaadylkhanova/barnum/pkg/config"
	"github.com/dayanaadylkhanova/barnum/pkg/logger"
)

var (
	AppName      = "barnum-api"
	AppBuildTime = "dev"
	AppCommit    = "dev"
	AppRelease   = "dev"
)

func main() {
	// 1) Config, an optional .env first
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("can't read .env: %v", err)
	}
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("can't parse app config: %v", err)
	}
	if cfg.MaxCPU > 0 {
		runtime.GOMAXPROCS(cfg.MaxCPU)
	}

	// 2) App info
	info := &app.AppInfo{
		Name:      AppName,
		BuildTime: AppBuildTime,
		Commit:    AppCommit,
		Release:   AppRelease,
	}

	// 3) Logger (zap)
	zl := logger.New(cfg.LogLevel, cfg.LogFormat,
		zap.String("app", AppName),
		zap.String("release", AppRelease),
	)
	defer func() {
		if r := recover(); r != nil {
			zl.Error("panic error", zap.Error(fmt.Errorf("%v", r)))
		}
		_ = zl.Sync()
	}()
	zap.ReplaceGlobals(zl)
	zl.Info(fmt.Sprintf("Application `%s` %s started.", AppName, AppRelease))

	// 4) Context and signals
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// 5) Run
	application, err := app.New(*cfg, info, zl)
	if err != nil {
		zl.Fatal("can't build app", zap.Error(err))
	}
	if err := application.Run(ctx); err != nil {
		switch {
		case errors.Is(err, app.ErrAppStartup):
			zl.Error("can't run application", zap.Error(err))
		case errors.Is(err, app.ErrAppShutdownWithError):
			zl.Error("application is shutdown with error", zap.Error(err))
		case errors.Is(err, app.ErrAppShutdownNormal):
			fallthrough
		default:
			zl.Warn("application is shutdown")
		}
	}

	// 6) Some time for Sync
	time.Sleep(100 * time.Millisecond)
}
