package main

import (
	"fmt"

	"absence-tracker/internal/repository"

	"github.com/spf13/cobra"
)

var seedEmployees int

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the database contents with random sample data",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().IntVarP(&seedEmployees, "employees", "n", 0, "Number of employees (default SAMPLE_EMPLOYEES)")
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := cfg.SampleEmployees
	if seedEmployees > 0 {
		n = seedEmployees
	}

	db, svc, err := openService(cfg)
	if err != nil {
		return err
	}
	defer repository.Close(db)

	if err := svc.GenerateSampleData(n); err != nil {
		return err
	}

	total := 0
	for _, e := range svc.Employees() {
		total += len(svc.Absences(e.ID))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d employees and %d absences in %s\n", n, total, cfg.DatabaseURL)
	return nil
}
