package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/restobook/app/api/routes"
	_ "github.com/restobook/docs"
	"github.com/restobook/pkg/config"
	"github.com/restobook/pkg/domains/auth"
	"github.com/restobook/pkg/domains/availability"
	"github.com/restobook/pkg/domains/reservation"
	"github.com/restobook/pkg/domains/settings"
	"github.com/restobook/pkg/entities"
	"github.com/restobook/pkg/middleware"
	"github.com/restobook/pkg/utils"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"
)

// Dependencies are the long-lived collaborators built once at startup.
type Dependencies struct {
	DB          *gorm.DB
	Notifier    reservation.Notifier
	Auth        config.Auth
	Reservation config.Reservation
	Location    *time.Location
}

// NewEngine builds the gin engine with the common middleware stack.
func NewEngine(appc config.App, allows config.Allows) *gin.Engine {
	switch appc.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(appc.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	utils.RegisterGinValidators()

	app := gin.New()
	app.ContextWithFallback = true
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(gin.Recovery())
	app.Use(otelgin.Middleware(appc.Name))
	app.Use(middleware.ClaimIp())
	app.Use(cors.New(corsConfig(allows)))

	app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": appc.Name})
	})
	return app
}

func corsConfig(allows config.Allows) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Origin", "Accept", middleware.RequestIDHeader},
		AllowOrigins:     []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(allows.Methods) > 0 {
		cfg.AllowMethods = allows.Methods
	}
	if len(allows.Headers) > 0 {
		cfg.AllowHeaders = allows.Headers
	}
	if len(allows.Origins) > 0 {
		cfg.AllowOrigins = allows.Origins
	}
	return cfg
}

// RegisterRoutes wires repositories and services and mounts every endpoint.
func RegisterRoutes(app *gin.Engine, deps Dependencies) {
	loc := deps.Location
	if loc == nil {
		loc = time.UTC
	}
	db := deps.DB

	// Repositories
	auth_repo := auth.NewRepo(db)
	settings_repo := settings.NewRepo(db)
	reservation_repo := reservation.NewRepo(db)

	// Services
	auth_service := auth.NewService(auth_repo, deps.Auth)
	availability_service := availability.NewService(settings_repo, reservation_repo, loc)
	reservation_service := reservation.NewService(reservation_repo, auth_repo, settings_repo, deps.Notifier, reservation.Options{
		Location:        loc,
		EnforceCapacity: deps.Reservation.EnforceCapacity,
	})

	public := app.Group("/")
	routes.AuthRoutes(public, auth_service)
	routes.AvailabilityRoutes(public, availability_service, loc)

	authed := app.Group("/", middleware.CheckAuth(deps.Auth.Secret))
	routes.ReservationRoutes(authed, reservation_service)

	dashboard := app.Group("/dashboard",
		middleware.CheckAuth(deps.Auth.Secret),
		middleware.RequireRole(entities.RoleStaff, entities.RoleManager),
	)
	routes.DashboardRoutes(dashboard, reservation_service, loc)
}

// LaunchHttpServer serves until ctx is cancelled, then shuts down gracefully.
func LaunchHttpServer(ctx context.Context, cfg *config.Config, deps Dependencies) error {
	log.Info().Msg("Starting HTTP Server...")

	app := NewEngine(cfg.App, cfg.Allows)
	app.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	p := ginprom.New(
		ginprom.Engine(app),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/docs/*any"),
	)
	app.Use(p.Instrument())

	RegisterRoutes(app, deps)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler:           app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server is running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
