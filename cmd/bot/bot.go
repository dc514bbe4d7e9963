package main

import (
	"os"
	"os/signal"
	"syscall"

	"absence-tracker/internal/handler"
	"absence-tracker/internal/repository"
	"absence-tracker/pkg/telegram"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, args []string) error {
	logrus.Info("Initializing config...")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireToken(); err != nil {
		return err
	}
	logrus.Info("Config initialized...")

	db, svc, err := openService(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := repository.Close(db); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}()

	if cfg.SeedOnStart && len(svc.Employees()) == 0 {
		if err := svc.GenerateSampleData(cfg.SampleEmployees); err != nil {
			return err
		}
	}

	client, err := telegram.NewClient(cfg.TelegramToken, cfg.BotDebug)
	if err != nil {
		return err
	}
	logrus.Infof("Authorized on account %s", client.Bot.Self.UserName)

	botHandler := handler.NewHandler(client.Bot, svc, cfg)
	updates := client.Updates()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		botHandler.HandleUpdates(updates)
		close(done)
	}()

	logrus.Info("Bot started. Press Ctrl+C to stop.")
	<-stop

	logrus.Info("Shutting down...")
	client.Stop()
	<-done
	return nil
}
