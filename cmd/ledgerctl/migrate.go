package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/finance-tracker/ledger/internal/integration/persistence/migrations"
)

func migrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the Postgres schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(v)
			if err != nil {
				return err
			}
			if err := migrations.Up(url); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			return reportVersion(cmd, url)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			steps, _ := cmd.Flags().GetInt("steps")
			url, err := databaseURL(v)
			if err != nil {
				return err
			}
			if err := migrations.Down(url, steps); err != nil {
				return fmt.Errorf("rollback failed: %w", err)
			}
			return reportVersion(cmd, url)
		},
	}
	down.Flags().Int("steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := databaseURL(v)
			if err != nil {
				return err
			}
			return reportVersion(cmd, url)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func databaseURL(v *viper.Viper) (string, error) {
	url := v.GetString("database.url")
	if url == "" {
		return "", errors.New("database URL is required (--database-url, LEDGER_DATABASE_URL or database.url)")
	}
	return url, nil
}

func reportVersion(cmd *cobra.Command, url string) error {
	version, dirty, err := migrations.Version(url)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	slog.Info("Schema version", "version", version, "dirty", dirty)
	fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
	return nil
}
