package main

import (
	"CycleKeeper/internal/advisor"
	"CycleKeeper/internal/cache"
	"CycleKeeper/internal/config"
	"CycleKeeper/internal/handlers"
	"CycleKeeper/internal/logger"
	"CycleKeeper/internal/middleware"
	"CycleKeeper/internal/repo"
	"CycleKeeper/internal/service"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.NewConfig()

	sugar, err := logger.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = sugar.Sync()
	}()

	// Советник собирается на старте. При ошибке сервис живёт дальше
	// и отвечает "loading", как исходное приложение.
	adv, err := advisor.New()
	if err != nil {
		sugar.Errorw("failed to load advisor, serving in loading state", "error", err)
		adv = &advisor.Advisor{}
	} else {
		sugar.Infow("advisor loaded",
			"nodes", adv.Graph().NodeCount(),
			"edges", adv.Graph().EdgeCount(),
		)
	}

	gormDB, err := repo.InitDB(cfg.DatabaseDSN, cfg.SQLitePath)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	analysisRepo := repo.NewAnalysisRepository(gormDB)

	cacheProvider := cache.NewProvider(cfg, sugar)

	userService := service.NewUserService(userRepo)
	analysisService := service.NewAnalysisService(adv, analysisRepo, sugar)
	statsService := service.NewStatsService(analysisRepo, cacheProvider, sugar)

	h, err := handlers.NewHandler(userService, analysisService, statsService, sugar, cfg)
	if err != nil {
		sugar.Fatalw("failed to build handlers", "error", err)
	}

	sugar.Infow("Config",
		"RunAddress", cfg.RunAddress,
		"EnableHTTPS", cfg.EnableHTTPS,
		"Cache", cfg.Cache,
		"LogLevel", cfg.LogLevel,
	)

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: h.Router,
	}

	go func() {
		sugar.Infow("Starting server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Infow("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server forced to shutdown", "error", err)
	}
	sugar.Infow("Server stopped")
}
