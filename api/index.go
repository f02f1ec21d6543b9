package handler

import (
	"log"
	"net/http"
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

var r http.Handler

func init() {
	cfg := config.Load()
	gin.SetMode(gin.ReleaseMode)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("could not open database: %v", err)
	}
	svc := auth.NewService(cfg.JWTSecret, cfg.MasterSecret)
	if _, err := svc.EnsureAdminExists(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Printf("could not create admin user: %v", err)
	}

	// Serverless instances are short-lived; keep metrics on a private registry
	reg := prometheus.NewRegistry()
	prom, err := metrics.NewPrometheus(reg, "roster")
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
	r = handlers.NewRouter(h, reg)
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
