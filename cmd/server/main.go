package main

import (
	"log"
	"os"

	"github.com/arnavshah/duty-roster-go/pkg/auth"
	"github.com/arnavshah/duty-roster-go/pkg/config"
	"github.com/arnavshah/duty-roster-go/pkg/database"
	"github.com/arnavshah/duty-roster-go/pkg/handlers"
	"github.com/arnavshah/duty-roster-go/pkg/logging"
	"github.com/arnavshah/duty-roster-go/pkg/metrics"
	"github.com/arnavshah/duty-roster-go/pkg/roster"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}

	svc := auth.NewService(cfg.JWTSecret, cfg.MasterSecret)
	if created, err := svc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("could not create admin user: %v", err)
	} else if created {
		log.Printf("Default admin user created: %s", cfg.AdminUsername)
	}

	prom, err := metrics.NewPrometheus(prometheus.DefaultRegisterer, "roster")
	if err != nil {
		log.Fatalf("could not register metrics: %v", err)
	}

	h := &handlers.Handler{
		DB:   db,
		Auth: svc,
		Generator: roster.NewGenerator(
			roster.WithLogger(logging.New(os.Stderr, cfg.LogLevel)),
			roster.WithMetrics(prom),
			roster.WithLeaveShiftName(cfg.LeaveShiftName),
			roster.WithMaxDays(cfg.MaxRangeDays),
		),
		Config: cfg,
	}
	r := handlers.NewRouter(h, prometheus.DefaultGatherer)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
