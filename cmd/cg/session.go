package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session lifecycle commands",
	}

	cmd.AddCommand(newSessionCreateCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionItemsCmd())
	cmd.AddCommand(newSessionCompletePhase1Cmd())
	cmd.AddCommand(newSessionStartPhase2Cmd())
	cmd.AddCommand(newSessionCompletePhase2Cmd())
	cmd.AddCommand(newSessionDeleteCmd())
	return cmd
}

func newSessionCreateCmd() *cobra.Command {
	var (
		configPath  string
		checklistID uint
		name        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start a new session against a published checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			s, err := session.Create(gormDB, session.CreateOpts{
				ChecklistID: checklistID,
				Name:        name,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Started session %d: %s (phase 1)\n", s.ID, s.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&checklistID, "checklist", 0, "checklist ID (required)")
	cmd.Flags().StringVar(&name, "name", "", "session name (required)")
	cmd.MarkFlagRequired("checklist")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newSessionListCmd() *cobra.Command {
	var (
		configPath  string
		openOnly    bool
		checklistID uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			var sessions []models.Session
			if checklistID != 0 {
				sessions, err = session.GetByChecklist(gormDB, checklistID)
			} else {
				sessions, err = session.List(gormDB, openOnly)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCHECKLIST\tPHASE\tSTARTED\tCOMPLETED")
			for _, s := range sessions {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%s\n",
					s.ID, truncate(s.Name, descWidth(60)), s.ChecklistID, s.CurrentPhase,
					formatTime(s.StartedAt), formatTimePtr(s.CompletedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVar(&openOnly, "open", false, "only sessions that have not completed phase 2")
	cmd.Flags().UintVar(&checklistID, "checklist", 0, "filter by checklist ID")
	return cmd
}

func newSessionShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a session's phase state and coverage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			s, err := session.Get(gormDB, id)
			if err != nil {
				return err
			}
			cov, err := session.Phase1Coverage(gormDB, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session %d: %s\n", s.ID, s.Name)
			fmt.Fprintf(out, "Checklist: %d\n", s.ChecklistID)
			fmt.Fprintf(out, "Current phase: %d\n", s.CurrentPhase)
			fmt.Fprintf(out, "Phase 1: started %s, completed %s",
				formatTimePtr(s.Phase1StartedAt), formatTimePtr(s.Phase1CompletedAt))
			if s.Phase1CompletedBy != "" {
				fmt.Fprintf(out, " by %s", s.Phase1CompletedBy)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Phase 2: started %s, completed %s",
				formatTimePtr(s.Phase2StartedAt), formatTimePtr(s.Phase2CompletedAt))
			if s.Phase2CompletedBy != "" {
				fmt.Fprintf(out, " by %s", s.Phase2CompletedBy)
			}
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Phase 1 coverage: %d/%d items validated\n", cov.Validated, cov.Total)
			fmt.Fprintf(out, "Phase 2 items: %d\n", len(s.Phase2Items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newSessionItemsCmd() *cobra.Command {
	var (
		configPath string
		phase      int
	)

	cmd := &cobra.Command{
		Use:   "items <id>",
		Short: "List the items a session covers in a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			items, err := session.ItemsForPhase(gormDB, id, phase)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No items.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tID\tSOURCE\tCATEGORY\tDESCRIPTION")
			for _, item := range items {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
					item.Position, item.ID, item.Source, orDash(item.Category),
					truncate(item.Description, descWidth(50)))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().IntVar(&phase, "phase", 1, "phase to list (1 or 2)")
	return cmd
}

func newSessionCompletePhase1Cmd() *cobra.Command {
	var (
		configPath string
		by         string
	)

	cmd := &cobra.Command{
		Use:   "complete-phase1 <id>",
		Short: "Complete phase 1 once every checklist item is validated",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			s, err := session.CompletePhase1(gormDB, id, by)
			if err != nil {
				var cov *session.IncompleteCoverageError
				if errors.As(err, &cov) {
					return fmt.Errorf("phase 1 incomplete: %d of %d items validated", cov.Validated, cov.Total)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase 1 complete for session %d. Run start-phase2 to open phase 2.\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&by, "by", "", "who completed the phase")
	return cmd
}

func newSessionStartPhase2Cmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "start-phase2 <id>",
		Short: "Open phase 2 for ad-hoc items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			s, err := session.StartPhase2(gormDB, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %d is now in phase 2.\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newSessionCompletePhase2Cmd() *cobra.Command {
	var (
		configPath string
		by         string
	)

	cmd := &cobra.Command{
		Use:   "complete-phase2 <id>",
		Short: "Complete phase 2 and close the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			s, err := session.CompletePhase2(gormDB, id, by)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %d closed.\n", s.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&by, "by", "", "who completed the phase")
	return cmd
}

func newSessionDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session and its recorded validations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("deleting a session removes its validations; re-run with --yes to confirm")
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := session.Delete(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}
