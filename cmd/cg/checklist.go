package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/checklist"
)

func newChecklistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checklist",
		Short: "Checklist management commands",
	}

	cmd.AddCommand(newChecklistCreateCmd())
	cmd.AddCommand(newChecklistListCmd())
	cmd.AddCommand(newChecklistShowCmd())
	cmd.AddCommand(newChecklistPublishCmd())
	cmd.AddCommand(newChecklistUnpublishCmd())
	cmd.AddCommand(newChecklistDeleteCmd())
	cmd.AddCommand(newChecklistAddItemCmd())
	cmd.AddCommand(newChecklistUpdateItemCmd())
	cmd.AddCommand(newChecklistDeleteItemCmd())
	return cmd
}

// parseID converts a positional ID argument.
func parseID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return uint(id), nil
}

func newChecklistCreateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			cl, err := checklist.Create(gormDB, checklist.CreateOpts{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created checklist %d: %s\n", cl.ID, cl.Name)
			fmt.Fprintln(cmd.OutOrStdout(), "Add items, then publish it to start sessions.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&name, "name", "", "checklist name (required)")
	cmd.Flags().StringVar(&description, "description", "", "detailed description")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newChecklistListCmd() *cobra.Command {
	var (
		configPath string
		published  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List checklists",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			checklists, err := checklist.List(gormDB, published)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(checklists) == 0 {
				fmt.Fprintln(out, "No checklists found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tPUBLISHED\tUPDATED")
			for _, cl := range checklists {
				fmt.Fprintf(w, "%d\t%s\t%t\t%s\n",
					cl.ID, truncate(cl.Name, descWidth(40)), cl.Published, formatTime(cl.UpdatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVar(&published, "published", false, "only published checklists")
	return cmd
}

func newChecklistShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a checklist and its items",
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
			cl, err := checklist.Get(gormDB, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Checklist %d: %s\n", cl.ID, cl.Name)
			if cl.Description != "" {
				fmt.Fprintf(out, "Description: %s\n", cl.Description)
			}
			fmt.Fprintf(out, "Published: %t\n\n", cl.Published)

			if len(cl.Items) == 0 {
				fmt.Fprintln(out, "No items.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tID\tCATEGORY\tDESCRIPTION\tEXPECTED")
			for _, item := range cl.Items {
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
					item.Position, item.ID, orDash(item.Category),
					truncate(item.Description, descWidth(60)), orDash(item.ExpectedResult))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newChecklistPublishCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Publish a checklist so sessions can run against it",
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
			if err := checklist.Publish(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist %d published.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newChecklistUnpublishCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "unpublish <id>",
		Short: "Unpublish a checklist",
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
			if err := checklist.Unpublish(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist %d unpublished.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newChecklistDeleteCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a checklist and all of its sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				return fmt.Errorf("deleting a checklist removes its sessions and validations; re-run with --yes to confirm")
			}
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := checklist.Delete(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checklist %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation")
	return cmd
}

func newChecklistAddItemCmd() *cobra.Command {
	var (
		configPath  string
		category    string
		description string
		expected    string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add-item <checklist-id>",
		Short: "Append an item to a checklist",
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
			item, err := checklist.AddItem(gormDB, id, checklist.AddItemOpts{
				Category:       category,
				Description:    description,
				ExpectedResult: expected,
				Notes:          notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %d at position %d.\n", item.ID, item.Position)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&description, "description", "", "what to check (required)")
	cmd.Flags().StringVar(&expected, "expected", "", "expected result")
	cmd.Flags().StringVar(&notes, "notes", "", "extra notes")
	cmd.MarkFlagRequired("description")
	return cmd
}

func newChecklistUpdateItemCmd() *cobra.Command {
	var (
		configPath  string
		category    string
		description string
		expected    string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "update-item <item-id>",
		Short: "Update fields of a checklist item",
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

			// Only flags the caller set become part of the patch.
			var patch checklist.ItemPatch
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("expected") {
				patch.ExpectedResult = &expected
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}

			if err := checklist.UpdateItem(gormDB, id, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %d updated.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&description, "description", "", "what to check")
	cmd.Flags().StringVar(&expected, "expected", "", "expected result")
	cmd.Flags().StringVar(&notes, "notes", "", "extra notes")
	return cmd
}

func newChecklistDeleteItemCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "delete-item <item-id>",
		Short: "Delete a checklist item and its validations",
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
			if err := checklist.DeleteItem(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %d deleted.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}
