package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/restobook/pkg/config"
	"github.com/restobook/pkg/database"
	"github.com/restobook/pkg/domains/notification"
	"github.com/restobook/pkg/logger"
	"github.com/restobook/pkg/server"
	"github.com/restobook/pkg/utils"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return StartApp(cmd.Context())
	},
}

func loadConfig() (*config.Config, error) {
	utils.LoadEnv()
	cfg, err := config.InitConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Log.Level, cfg.App.Mode != gin.ReleaseMode)
	return cfg, nil
}

func StartApp(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}

	database.InitDB(cfg.Database)
	db := database.DBClient()

	channels, closeChannels, err := notification.BuildChannels(ctx, cfg.Notification)
	if err != nil {
		return err
	}
	defer closeChannels()

	dispatcher := notification.NewDispatcher(notification.NewTemplateRepo(db), channels, notification.Options{
		Template:  cfg.Notification.Template,
		Workers:   cfg.Notification.Workers,
		QueueSize: cfg.Notification.QueueSize,
		Location:  loc,
	})
	defer dispatcher.Close()

	err = server.LaunchHttpServer(ctx, cfg, server.Dependencies{
		DB:          db,
		Notifier:    dispatcher,
		Auth:        cfg.Auth,
		Reservation: cfg.Reservation,
		Location:    loc,
	})
	if err != nil {
		return err
	}

	log.Info().Msg("draining notification queue")
	return nil
}
