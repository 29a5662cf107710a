package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zulandar/checkgate/internal/db"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBSeedCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var (
		configPath string
		seed       bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the Checkgate database",
		Long:  "Opens the configured database and migrates all tables. With --seed, loads the sample checklist and template.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath, seed)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	cmd.Flags().BoolVar(&seed, "seed", false, "load sample data after migrating")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string, seed bool) error {
	out := cmd.OutOrStdout()

	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Connected to %s database\n", cfg.Database.Driver)

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	if seed {
		if err := db.Seed(gormDB); err != nil {
			return err
		}
		fmt.Fprintln(out, "Sample data loaded")
	}

	fmt.Fprintln(out, "\nCheckgate database initialized successfully.")
	return nil
}

func newDBSeedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample data",
		Long:  "Loads a sample checklist and template. Does nothing if checklists already exist.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.Seed(gormDB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Sample data loaded.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "checkgate.yaml", "path to Checkgate config file")
	return cmd
}
