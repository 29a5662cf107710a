package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/template"
)

func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Template management commands",
	}

	cmd.AddCommand(newTemplateCreateCmd())
	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateShowCmd())
	cmd.AddCommand(newTemplateAddItemCmd())
	cmd.AddCommand(newTemplateDeactivateCmd())
	cmd.AddCommand(newTemplateActivateCmd())
	return cmd
}

func newTemplateCreateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
		category    string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new template",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			tpl, err := template.Create(gormDB, template.CreateOpts{
				Name:        name,
				Description: description,
				Category:    category,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created template %d: %s\n", tpl.ID, tpl.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().StringVar(&name, "name", "", "template name (required)")
	cmd.Flags().StringVar(&description, "description", "", "detailed description")
	cmd.Flags().StringVar(&category, "category", "", "template category")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newTemplateListCmd() *cobra.Command {
	var (
		configPath string
		activeOnly bool
		category   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			templates, err := template.List(gormDB, template.ListFilters{
				ActiveOnly: activeOnly,
				Category:   category,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(templates) == 0 {
				fmt.Fprintln(out, "No templates found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tACTIVE\tUPDATED")
			for _, tpl := range templates {
				fmt.Fprintf(w, "%d\t%s\t%s\t%t\t%s\n",
					tpl.ID, truncate(tpl.Name, descWidth(50)), orDash(tpl.Category),
					tpl.Active, formatTime(tpl.UpdatedAt))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVar(&activeOnly, "active", false, "only active templates")
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	return cmd
}

func newTemplateShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a template and its items",
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
			tpl, err := template.Get(gormDB, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Template %d: %s\n", tpl.ID, tpl.Name)
			if tpl.Category != "" {
				fmt.Fprintf(out, "Category: %s\n", tpl.Category)
			}
			fmt.Fprintf(out, "Active: %t\n\n", tpl.Active)

			if len(tpl.Items) == 0 {
				fmt.Fprintln(out, "No items.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "POS\tCATEGORY\tDESCRIPTION\tEXPECTED")
			for _, item := range tpl.Items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
					item.Position, orDash(item.Category),
					truncate(item.Description, descWidth(50)), orDash(item.ExpectedResult))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newTemplateAddItemCmd() *cobra.Command {
	var (
		configPath  string
		category    string
		description string
		expected    string
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add-item <template-id>",
		Short: "Append an item to a template",
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
			item, err := template.AddItem(gormDB, id, template.AddItemOpts{
				Category:       category,
				Description:    description,
				ExpectedResult: expected,
				Notes:          notes,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added template item at position %d.\n", item.Position)
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

func newTemplateDeactivateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Mark a template inactive",
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
			if err := template.Deactivate(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %d deactivated.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}

func newTemplateActivateCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "activate <id>",
		Short: "Mark a template active",
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
			if err := template.Activate(gormDB, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template %d activated.\n", id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}
