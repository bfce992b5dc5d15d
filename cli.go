package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/alarm-clock/pkg/calendar"
	"github.com/borgmon/alarm-clock/pkg/logger"
	"github.com/borgmon/alarm-clock/pkg/models"
	"github.com/borgmon/alarm-clock/pkg/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// cliEnv is what the commands reach outside the process for
type cliEnv struct {
	prefs func() fyne.Preferences
	now   func() time.Time
	run   func() error
}

func defaultEnv() cliEnv {
	return cliEnv{
		prefs: func() fyne.Preferences { return app.NewWithID(appID).Preferences() },
		now:   time.Now,
		run:   runApp,
	}
}

func newRootCommand() *cobra.Command {
	return newRootCommandWith(defaultEnv())
}

func newRootCommandWith(env cliEnv) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "alarm-clock",
		Short:         "Desktop alarm clock",
		Long:          "Alarm Clock rings at the times you set. Run without a command to open the app.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(listCmd(env))
	root.AddCommand(exportCmd(env))

	return root
}

func listCmd(env cliEnv) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved alarms",
		RunE: func(cmd *cobra.Command, args []string) error {
			alarms, err := loadAlarms(env.prefs())
			if err != nil {
				return err
			}
			return writeAlarms(cmd.OutOrStdout(), alarms, format, env.now())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json or yaml")
	return cmd
}

func exportCmd(env cliEnv) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export active alarms as an iCal calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			alarms, err := loadAlarms(env.prefs())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			if err := calendar.Export(w, alarms, env.now()); err != nil {
				return fmt.Errorf("export calendar: %w", err)
			}
			if output != "" && output != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d alarms to %s\n", countActive(alarms), output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

// loadAlarms reads the saved alarms without going through an AlarmStore,
// so nothing is written back
func loadAlarms(prefs fyne.Preferences) ([]models.Alarm, error) {
	alarms, err := store.NewPrefsPersister(prefs).Load()
	if err != nil {
		return nil, fmt.Errorf("load alarms: %w", err)
	}
	return alarms, nil
}

type alarmRow struct {
	ID     string `json:"id" yaml:"id"`
	Time   string `json:"time" yaml:"time"`
	Active bool   `json:"active" yaml:"active"`
	Label  string `json:"label,omitempty" yaml:"label,omitempty"`
	Next   string `json:"next,omitempty" yaml:"next,omitempty"`
}

func alarmRows(alarms []models.Alarm, now time.Time) []alarmRow {
	rows := make([]alarmRow, 0, len(alarms))
	for _, alarm := range alarms {
		row := alarmRow{
			ID:     alarm.ID,
			Time:   alarm.Clock(),
			Active: alarm.Active,
			Label:  alarm.Label,
		}
		if alarm.Active {
			row.Next = alarm.Next(now).Format(time.RFC3339)
		}
		rows = append(rows, row)
	}
	return rows
}

func writeAlarms(w io.Writer, alarms []models.Alarm, format string, now time.Time) error {
	rows := alarmRows(alarms, now)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "table", "":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "TIME\tACTIVE\tLABEL\tID")
		for _, row := range rows {
			active := "no"
			if row.Active {
				active = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Time, active, row.Label, row.ID)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func countActive(alarms []models.Alarm) int {
	n := 0
	for _, alarm := range alarms {
		if alarm.Active {
			n++
		}
	}
	return n
}
