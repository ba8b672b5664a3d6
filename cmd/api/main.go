package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/VelvetStudioBR/studio-booking/internal/cache"
	"github.com/VelvetStudioBR/studio-booking/internal/calendar"
	"github.com/VelvetStudioBR/studio-booking/internal/config"
	dbpkg "github.com/VelvetStudioBR/studio-booking/internal/db"
	infraRepo "github.com/VelvetStudioBR/studio-booking/internal/infra/repository"
	"github.com/VelvetStudioBR/studio-booking/internal/logger"
	"github.com/VelvetStudioBR/studio-booking/internal/middleware"
	"github.com/VelvetStudioBR/studio-booking/internal/mirror"
	"github.com/VelvetStudioBR/studio-booking/internal/routes"
	"github.com/VelvetStudioBR/studio-booking/internal/timezone"
)

func main() {

	cfg := config.Load()

	zlog, err := logger.New(cfg.LogPath, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer zlog.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := cache.NewClient(cfg)

	// Calendar reconciliation runs only when a feed is configured.
	var syncer *mirror.Syncer
	if cfg.CalendarFeedURL != "" {
		feed := calendar.NewFeedClient(cfg.CalendarFeedURL, cfg.CalendarFeedToken)
		syncer = mirror.NewSyncer(
			feed,
			infraRepo.NewBookingGormRepository(db),
			cache.NewMirrorStore(rdb),
			zlog,
			timezone.Location(""),
		)

		go syncer.Run(
			context.Background(),
			time.Duration(cfg.SyncIntervalMin)*time.Minute,
		)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, syncer, cfg, zlog)

	zlog.Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
