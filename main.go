package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/cache"
	intconfig "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/config"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/db"
	router "github.com/tebarek94/ethiotourandtravelagency-sub000/internal/http"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/logger"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/metrics"
	"github.com/tebarek94/ethiotourandtravelagency-sub000/internal/storage"
)

func main() {
	envFile := ""
	if _, err := os.Stat(".env"); err == nil {
		envFile = ".env"
	}
	env, err := intconfig.LoadEnv(envFile)
	if err != nil {
		panic(err)
	}

	if _, err := logger.Setup(env.IsProduction(), env.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	} else if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	conn, err := intconfig.ConnectDB(env)
	if err != nil {
		logger.Fatal(err, "stage", "connect database")
	}
	defer intconfig.CloseDB()

	if env.DBAutoMigrate {
		if err := db.Migrate(conn); err != nil {
			logger.Fatal(err, "stage", "migrate")
		}
	}

	store, err := storage.NewLocalStore(env.UploadDir)
	if err != nil {
		logger.Fatal(err, "stage", "upload storage")
	}

	var redisCache *cache.RedisCache
	if env.RedisAddr != "" {
		redisCache, err = cache.NewRedisCache(context.Background(), cache.Options{
			Addr:     env.RedisAddr,
			Password: env.RedisPassword,
			DB:       env.RedisDB,
			Prefix:   "travel:",
		})
		if err != nil {
			// The dashboard works uncached.
			logger.Warn("redis unavailable, caching disabled", "error", err)
			redisCache = nil
		} else {
			defer redisCache.Close()
		}
	}

	m, err := metrics.New("travel_agency")
	if err != nil {
		logger.Fatal(err, "stage", "metrics")
	}

	r := router.NewRouter(router.Deps{
		Env:     env,
		DB:      conn,
		Store:   store,
		Cache:   redisCache,
		Metrics: m,
	})

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", env.AppAddr, "env", env.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(err, "stage", "listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		return
	}

	logger.Info("server stopped")
}
