package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"addressable-resources/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	fixFlag  bool
	jsonFlag bool
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the key table against storage",
	Long:  `Checks that the bucket holds a marker folder, that every key's reference exists, and that the persisted key table schema is complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, true, true)
	},
}

// structureCmd represents the integrity structure command
var structureCmd = &cobra.Command{
	Use:   "structure",
	Short: "Check and fix the marker folder",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), true, false, false)
	},
}

// referencesCmd represents the integrity references command
var referencesCmd = &cobra.Command{
	Use:   "references",
	Short: "Check that every key's reference exists",
	Long:  `Stats every reference in the key table. Use --json to save the missing keys to a file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, true, false)
	},
}

// schemaCmd represents the integrity schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the persisted key table schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIntegrityChecks(cmd.Context(), false, false, true)
	},
}

func init() {
	RootCmd.AddCommand(integrityCmd)
	integrityCmd.AddCommand(structureCmd, referencesCmd, schemaCmd)
	structureCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the marker folder if missing")
	referencesCmd.Flags().BoolVar(&jsonFlag, "json", false, "Save missing references to a JSON file")
}

func runIntegrityChecks(ctx context.Context, runStructure, runReferences, runSchema bool) error {
	svc, err := newServices(false)
	if err != nil {
		return err
	}
	logg := svc.logger
	res := svc.cfg.Resources

	var tables integrity.TableProvider
	if runReferences {
		table, err := svc.loadTable(ctx)
		if err != nil {
			return fmt.Errorf("failed to build key table: %w", err)
		}
		tables = integrity.StaticTable(table)
	}
	checker := integrity.NewService(svc.store, svc.cfg.Storage.Bucket, res.Prefix, res.Marker, tables, svc.db, logg)

	if runStructure {
		logg.Info("Checking storage structure...", zap.String("bucket", svc.cfg.Storage.Bucket))
		missing, err := checker.CheckStructure(ctx)
		if err != nil {
			return fmt.Errorf("structure check failed: %w", err)
		}
		if len(missing) == 0 {
			logg.Info("Storage structure is valid.")
		} else {
			logg.Warn("Missing folders", zap.Strings("folders", missing))
			if fixFlag {
				if err := checker.FixStructure(ctx, missing); err != nil {
					return fmt.Errorf("failed to fix structure: %w", err)
				}
				logg.Info("Structure fixed successfully.")
			} else {
				logg.Info("Run 'integrity structure --fix' to create missing folders.")
			}
		}
	}

	if runReferences {
		logg.Info("Checking references...")
		report, err := checker.CheckReferences(ctx)
		if err != nil {
			return fmt.Errorf("reference check failed: %w", err)
		}
		if report.Matched {
			logg.Info("All references present.", zap.Int("checked", report.Checked))
		} else {
			for _, m := range report.Missing {
				logg.Warn("Missing reference", zap.String("key", m.Key), zap.String("address", m.Address))
			}
			logg.Warn("References missing", zap.Int("checked", report.Checked), zap.Int("missing", len(report.Missing)))
		}
		if jsonFlag {
			filename := fmt.Sprintf("integrity_references_%d.json", time.Now().Unix())
			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			logg.Info("Integrity report saved", zap.String("file", filename))
		}
	}

	if runSchema {
		if !checker.HasDatabase() {
			logg.Warn("Skipping schema check, no database connection")
			return nil
		}
		logg.Info("Checking key table schema...")
		report, err := checker.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if report.Matched {
			logg.Info("Key table schema matches.", zap.String("table", report.Table))
		} else {
			logg.Warn("Missing Columns", zap.String("table", report.Table), zap.Strings("columns", report.MissingColumns))
		}
	}
	return nil
}
