package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/phase2"
)

func newPhase2Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase2",
		Short: "Phase 2 item registry commands",
	}

	cmd.AddCommand(newPhase2AddCmd())
	cmd.AddCommand(newPhase2ImportCmd())
	cmd.AddCommand(newPhase2ListCmd())
	cmd.AddCommand(newPhase2DeleteCmd())
	return cmd
}

func newPhase2AddCmd() *cobra.Command {
	var (
		configPath  string
		sessionID   uint
		category    string
		description string
		expected    string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an ad-hoc item to a session's phase 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			item, err := phase2.AddManual(gormDB, sessionID, phase2.AddOpts{
				Category:       category,
				Description:    description,
				ExpectedResult: expected,
				Notes:          notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added phase 2 item %d at position %d.\n", item.ID, item.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&sessionID, "session", 0, "session ID (required)")
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&description, "description", "", "what to check (required)")
	cmd.Flags().StringVar(&expected, "expected", "", "expected result")
	cmd.Flags().StringVar(&notes, "notes", "", "extra notes")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("description")
	return cmd
}

func newPhase2ImportCmd() *cobra.Command {
	var (
		configPath string
		sessionID  uint
		templateID uint
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a template's items into a session's phase 2",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			count, err := phase2.ImportFromTemplate(gormDB, sessionID, templateID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d items from template %d.\n", count, templateID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().UintVar(&sessionID, "session", 0, "session ID (required)")
	cmd.Flags().UintVar(&templateID, "template", 0, "template ID (required)")
	cmd.MarkFlagRequired("session")
	cmd.MarkFlagRequired("template")
	return cmd
}

func newPhase2ListCmd() *cobra.Command {
	var (
		configPath string
		sessionID  uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a session's phase 2 items",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			items, err := phase2.ListBySession(gormDB, sessionID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No phase 2 items.")
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
	cmd.Flags().UintVar(&sessionID, "session", 0, "session ID (required)")
	cmd.MarkFlagRequired("session")
	return cmd
}

func newPhase2DeleteCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete a phase 2 item and its validations",
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
			if err := phase2.Delete(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Phase 2 item %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}
