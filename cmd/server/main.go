package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/Bota-ApexV2/n-updater/admin"
	"github.com/Bota-ApexV2/n-updater/blog/application"
	"github.com/Bota-ApexV2/n-updater/internal/config"
	"github.com/Bota-ApexV2/n-updater/internal/middleware"
	"github.com/Bota-ApexV2/n-updater/internal/rest"
	"github.com/Bota-ApexV2/n-updater/shared/hashnode"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	if cfg.Upstream.Host == "" {
		log.Fatal().Msg("upstream.host must be configured")
	}

	source := hashnode.NewClient(cfg.Upstream.Endpoint, cfg.Upstream.Host, cfg.Upstream.Timeout.Std())

	var storeOptions []application.StoreOption
	if cfg.MergeOnRefresh {
		storeOptions = append(storeOptions, application.WithMergeOnRefresh())
	}
	store := application.NewStore(source, storeOptions...)

	var queryOptions []application.QueryOption
	if cfg.PinnedFirst {
		queryOptions = append(queryOptions, application.WithPinnedFirst())
	}
	toggles := application.NewToggles()
	query := application.NewQuery(store, toggles, queryOptions...)

	// Initial fill; a failure is non-fatal and self-heals on the next tick.
	if err := store.Refresh(context.Background()); err != nil {
		log.Error().Err(err).Msg("Initial cache refresh failed")
	} else {
		log.Info().Int("posts", store.Len()).Msg("Post cache primed")
	}

	scheduler := application.NewScheduler(store, cfg.RefreshInterval.Std())
	scheduler.Start()
	defer func() {
		if err := scheduler.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to gracefully close scheduler")
		}
	}()

	moderators := cfg.Moderators
	dispatcher := admin.NewDispatcher(scheduler, store, toggles, func(caller string) bool {
		return slices.Contains(moderators, caller)
	})

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	r.Use(middleware.CORS())
	rest.NewApi(r, query, store, dispatcher, cfg.AdminToken)

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		err := config.Watch(watchCtx, *configPath, func(next *config.Config) {
			scheduler.Reconfigure(next.RefreshInterval.Std())
		})
		if err != nil {
			log.Error().Err(err).Msg("Config watcher stopped")
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}
