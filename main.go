package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/order-dashboard/config"
	"github.com/yeremiapane/order-dashboard/database"
	"github.com/yeremiapane/order-dashboard/hub"
	"github.com/yeremiapane/order-dashboard/router"
	"github.com/yeremiapane/order-dashboard/services"
	"github.com/yeremiapane/order-dashboard/utils"
)

type app struct {
	Engine    *gin.Engine
	Dashboard *services.Dashboard
	Auth      *services.AuthService
	Hub       *hub.Hub
}

// newApp wires the dashboard over an already migrated database.
func newApp(cfg *config.Config, db *gorm.DB) *app {
	store := database.NewLocalStore(database.NewGormKVStore(db))
	directory := database.NewDirectory(db)
	session := services.NewSession(store)
	backend := services.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout)

	auth := services.NewAuthService(cfg.AuthMode, backend, directory, store, session)
	stats := services.NewStatsCalculator()
	h := hub.NewHub(stats.Location)

	dashboard := services.NewDashboard(auth, services.DashboardOptions{
		Remote:       services.RemoteOrderSource{Backend: backend},
		Local:        services.LocalOrderSource{Store: store},
		Stats:        stats,
		PollInterval: cfg.PollInterval,
		Notifier:     h,
	})

	return &app{
		Engine:    router.SetupRouter(cfg, dashboard, auth, h),
		Dashboard: dashboard,
		Auth:      auth,
		Hub:       h,
	}
}

func main() {
	cfg := config.LoadConfig()

	utils.InitLogger()
	utils.SetLogLevel(cfg.LogLevel)

	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a := newApp(cfg, db)
	a.Dashboard.Start(ctx)
	defer a.Dashboard.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: a.Engine,
	}

	go func() {
		utils.InfoLogger.Printf("Listening on port %s (backend=%s, auth=%s)", cfg.Port, cfg.BackendURL, cfg.AuthMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Error during shutdown: %v", err)
	}
}
