package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"addressable-resources/core/addressables"
	"addressable-resources/core/reconcile"
	"addressable-resources/feature/discovery"
	"addressable-resources/feature/resources/collection"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	authorityFlag string
	targetFlag    string
	scanFlag      string
	dryRunFlag    bool
	yesConfirm    bool
	planJSON      bool
)

// reconcileCmd compares the copies of the key table and optionally repairs one of them.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Reconcile the key table between manifest, database and content",
	Long: `Compares the key table held in the manifest file, the database and a
discovery scan of the content, reporting missing keys and address mismatches.

With --target the command plans the changes that make the target match the
authority and applies them after confirmation.

Examples:
  # Report only
  reconcile

  # Make the database match the manifest
  reconcile --authority manifest --target database

  # Rewrite the manifest from a storage scan without prompting
  reconcile --scan storage --authority scan --target manifest --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&authorityFlag, "authority", "manifest", "Source considered correct: manifest, database or scan")
	reconcileCmd.Flags().StringVar(&targetFlag, "target", "", "Source to repair: manifest or database (empty reports only)")
	reconcileCmd.Flags().StringVar(&scanFlag, "scan", addressables.TableSourceDirectory, "Content scan to compare: directory, storage or none")
	reconcileCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm changes (non-interactive)")
	reconcileCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	svc, err := newServices(targetFlag == "database" || authorityFlag == "database")
	if err != nil {
		return err
	}
	l := svc.logger

	spec, err := svc.reconcileSpec()
	if err != nil {
		return err
	}

	opts := reconcile.Options{
		Authority: authorityFlag,
		Target:    targetFlag,
		DryRun:    dryRunFlag,
	}

	l.Info("Planning reconciliation...")
	plan, err := reconcile.ReconcileWithPlan(ctx, spec, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}

	if planJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			return err
		}
	} else {
		printReconcileReport(l, plan)
	}

	if targetFlag == "" {
		l.Info("No target requested. Use --target to repair a source.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("Target already matches authority.", zap.String("target", targetFlag))
		return nil
	}
	if dryRunFlag {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if !confirmDestructiveAction() {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	l.Info("Applying actions...", zap.String("target", targetFlag))
	executed, err := reconcile.ApplyPlan(ctx, spec, plan, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

// reconcileSpec assembles the sources available with the current configuration.
func (s *services) reconcileSpec() (*reconcile.Spec, error) {
	res := s.cfg.Resources
	sources := []reconcile.Source{&collection.ManifestSource{Path: res.Manifest}}

	if s.db != nil {
		if err := collection.Migrate(s.db); err != nil {
			return nil, fmt.Errorf("failed to migrate key table: %w", err)
		}
		sources = append(sources, &collection.DBSource{DB: s.db})
	}

	switch scanFlag {
	case addressables.TableSourceDirectory:
		sources = append(sources, collection.ScanSource("scan", func(context.Context) (*collection.Collection, error) {
			return discovery.ScanDir(os.DirFS(res.ContentRoot), res.Marker)
		}))
	case addressables.TableSourceStorage:
		sources = append(sources, collection.ScanSource("scan", func(ctx context.Context) (*collection.Collection, error) {
			return discovery.ScanStorage(ctx, s.store, s.cfg.Storage.Bucket, res.Prefix, res.Marker)
		}))
	case "none":
	default:
		return nil, fmt.Errorf("unknown scan %q (expected %s, %s or none)", scanFlag,
			addressables.TableSourceDirectory, addressables.TableSourceStorage)
	}

	return &reconcile.Spec{Name: "resources", Sources: sources}, nil
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, plan *reconcile.Plan) {
	s := plan.Summary

	fields := []zap.Field{
		zap.Int("total_keys", s.TotalKeys),
		zap.Int("complete", s.Complete),
		zap.Int("mismatches", s.Mismatches),
	}
	for name, n := range s.Missing {
		fields = append(fields, zap.Int("missing_"+name, n))
	}
	l.Info("Reconciliation report", fields...)

	if len(plan.Actions) == 0 {
		return
	}
	l.Info("Planned actions",
		zap.Int("add_actions", s.AddActions),
		zap.Int("update_actions", s.UpdateActions),
		zap.Int("remove_actions", s.RemoveActions),
		zap.Int("total_actions", len(plan.Actions)),
	)

	maxShow := min(5, len(plan.Actions))
	for _, action := range plan.Actions[:maxShow] {
		l.Info("Sample action",
			zap.String("type", string(action.Type)),
			zap.String("key", action.Key),
			zap.String("reason", action.Reason),
		)
	}
	if len(plan.Actions) > maxShow {
		l.Info("Additional actions not shown", zap.Int("count", len(plan.Actions)-maxShow))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm changes: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	return strings.TrimSpace(response) == "yes"
}
