package main

import (
	"fmt"
	"math/rand/v2"
	"os"

	"absence-tracker/internal/config"
	"absence-tracker/internal/repository"
	"absence-tracker/internal/sample"
	"absence-tracker/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	envFile    string
	seedRandom uint64
)

var rootCmd = &cobra.Command{
	Use:   "absence-bot",
	Short: "Employee absence tracker",
	Long: `absence-bot keeps employee absences in SQLite and lets you create,
edit and delete them through a Telegram chat dialog.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "Path to an .env file (default .env)")
	rootCmd.PersistentFlags().Uint64Var(&seedRandom, "random-seed", 0, "Random seed for sample data (0 = time based)")

	rootCmd.AddCommand(botCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(listCmd)
}

func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, err
	}
	logrus.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func newGenerator() *sample.Generator {
	if seedRandom == 0 {
		return sample.NewGenerator(nil, 0)
	}
	return sample.NewGenerator(rand.New(rand.NewPCG(seedRandom, seedRandom)), 0)
}

// openService opens the database and builds the persistent service.
func openService(cfg *config.Config) (*gorm.DB, *service.AbsenceService, error) {
	logrus.Infof("Opening database %s", cfg.DatabaseURL)
	db, err := repository.OpenSQLite(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	employeeRepo, err := repository.NewGormEmployeeRepository(db)
	if err != nil {
		_ = repository.Close(db)
		return nil, nil, fmt.Errorf("failed to create employee repository: %w", err)
	}
	absenceRepo, err := repository.NewGormAbsenceRepository(db)
	if err != nil {
		_ = repository.Close(db)
		return nil, nil, fmt.Errorf("failed to create absence repository: %w", err)
	}

	logger := logrus.New()
	logger.SetLevel(cfg.LogLevel)

	svc := service.NewPersistentAbsenceService(employeeRepo, absenceRepo, newGenerator(), logger)
	count, err := svc.LoadFromDatabase()
	if err != nil {
		_ = repository.Close(db)
		return nil, nil, err
	}
	logrus.Infof("Loaded %d employees", count)
	return db, svc, nil
}
