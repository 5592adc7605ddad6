package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/sefazwatch/internal/history"
)

// historyCmd lists recorded changes.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent contingency changes",
	Long: `List the most recent changes recorded in the history database,
newest first. Requires history_db to be set in the config.

Example:
  sefazwatch history -c config.yaml
  sefazwatch history -c config.yaml --region SP --limit 50`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringP("config", "c", "", "path to config file (default: read from environment)")
	historyCmd.Flags().String("region", "", "only show this region code (e.g. SP)")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.HistoryDB == "" {
		return errors.New("history_db is not configured")
	}

	region, _ := cmd.Flags().GetString("region")
	limit, _ := cmd.Flags().GetInt("limit")

	rec, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer func() { _ = rec.Close() }()

	entries, err := rec.Recent(cmd.Context(), history.Filter{
		Region: strings.ToUpper(region),
		Limit:  limit,
	})
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No changes recorded.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tREGION\tSTATUS\tDELIVERED\tDETAILS")
	for _, e := range entries {
		status := "DESATIVADA"
		if e.Active {
			status = "ATIVADA"
		}
		delivered := "no"
		if e.Delivered {
			delivered = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			e.ObservedAt.Local().Format(time.DateTime), e.RegionName, status, delivered, e.Details)
	}
	return w.Flush()
}
