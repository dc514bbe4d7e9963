package main

import (
	"fmt"
	"text/tabwriter"

	"absence-tracker/internal/repository"
	"absence-tracker/pkg/calendar"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [employee]",
	Short: "Print stored absences",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, svc, err := openService(cfg)
	if err != nil {
		return err
	}
	defer repository.Close(db)

	employees := svc.Employees()
	if len(args) == 1 {
		e, ok := svc.Employee(args[0])
		if !ok {
			return fmt.Errorf("employee %q not found", args[0])
		}
		employees = employees[:0]
		employees = append(employees, e)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE\tNAME\tSTART\tEND\tDAYS\tTYPE\tREASON")
	for _, e := range employees {
		for _, a := range svc.Absences(e.ID) {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
				e.PersonnelNumber, e.FullName(), a.StartDate, a.EndDate,
				calendar.DaysInclusive(a.StartDate, a.EndDate), a.Type, a.Reason)
		}
	}
	return w.Flush()
}
