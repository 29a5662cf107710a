package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/validation"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validation ledger commands",
	}

	cmd.AddCommand(newValidateRecordCmd())
	cmd.AddCommand(newValidateListCmd())
	cmd.AddCommand(newValidateSummaryCmd())
	cmd.AddCommand(newValidateTimelineCmd())
	return cmd
}

func newValidateRecordCmd() *cobra.Command {
	var (
		configPath   string
		sessionID    uint
		phase        int
		itemID       uint
		phase2ItemID uint
		status       string
		actual       string
		notes        string
		validator    string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a validation against an item",
		Long:  "Appends a validation to the ledger. Phase 1 takes --item; phase 2 takes --item or --phase2-item. Status is one of pass, fail, skip, blocked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			val, err := validation.Record(gormDB, validation.RecordOpts{
				SessionID:     sessionID,
				Phase:         phase,
				ItemID:        itemID,
				Phase2ItemID:  phase2ItemID,
				Status:        status,
				ActualResult:  actual,
				Notes:         notes,
				ValidatorName: validator,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded validation %d: %s\n", val.ID, val.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&sessionID, "session", 0, "session ID (required)")
	cmd.Flags().IntVar(&phase, "phase", 1, "phase (1 or 2)")
	cmd.Flags().UintVar(&itemID, "item", 0, "checklist item ID (phase 1)")
	cmd.Flags().UintVar(&phase2ItemID, "phase2-item", 0, "phase 2 item ID (phase 2)")
	cmd.Flags().StringVar(&status, "status", "", "pass, fail, skip, or blocked (required)")
	cmd.Flags().StringVar(&actual, "actual", "", "actual result observed")
	cmd.Flags().StringVar(&notes, "notes", "", "extra notes")
	cmd.Flags().StringVar(&validator, "by", "", "validator name")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("status")
	return cmd
}

func newValidateListCmd() *cobra.Command {
	var (
		configPath string
		sessionID  uint
		phase      int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a session's validations, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			vals, err := validation.BySession(gormDB, sessionID, phase)
			if err != nil {
				return err
			}
			details, err := validation.Details(gormDB, vals)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(details) == 0 {
				fmt.Fprintln(out, "No validations recorded.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPHASE\tSTATUS\tITEM\tBY\tAT")
			for _, d := range details {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
					d.ID, d.Phase, d.Status, truncate(d.ItemDescription, descWidth(50)),
					orDash(d.ValidatorName), formatTime(d.ValidatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&sessionID, "session", 0, "session ID (required)")
	cmd.Flags().IntVar(&phase, "phase", 0, "filter by phase (0 = both)")
	cmd.MarkFlagRequired("session")
	return cmd
}

func newValidateSummaryCmd() *cobra.Command {
	var (
		configPath  string
		sessionID   uint
		checklistID uint
		phase       int
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show per-status validation counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			sum, err := validation.Summarize(gormDB, validation.SummaryFilter{
				SessionID:   sessionID,
				ChecklistID: checklistID,
				Phase:       phase,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total:   %d\n", sum.Total)
			fmt.Fprintf(out, "Passed:  %d\n", sum.Passed)
			fmt.Fprintf(out, "Failed:  %d\n", sum.Failed)
			fmt.Fprintf(out, "Skipped: %d\n", sum.Skipped)
			fmt.Fprintf(out, "Blocked: %d\n", sum.Blocked)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&sessionID, "session", 0, "filter by session ID")
	cmd.Flags().UintVar(&checklistID, "checklist", 0, "filter by checklist ID")
	cmd.Flags().IntVar(&phase, "phase", 0, "filter by phase (0 = both)")
	return cmd
}

func newValidateTimelineCmd() *cobra.Command {
	var (
		configPath  string
		checklistID uint
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show a checklist's validation history grouped by session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			timeline, err := validation.ChecklistHistory(gormDB, checklistID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(timeline) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}
			for _, entry := range timeline {
				fmt.Fprintf(out, "Session %d: %s (started %s, %d validations)\n",
					entry.Session.ID, entry.Session.Name,
					formatTime(entry.Session.StartedAt), len(entry.Validations))
				for _, v := range entry.Validations {
					fmt.Fprintf(out, "  %s  phase %d  %s\n", formatTime(v.ValidatedAt), v.Phase, v.Status)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&checklistID, "checklist", 0, "checklist ID (required)")
	cmd.MarkFlagRequired("checklist")
	return cmd
}
