package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"addressable-resources/core/addressables"
	"addressable-resources/feature/discovery"
	"addressable-resources/feature/resources/collection"

	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// discoverCmd represents the discover command
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan content for marker folders and write the key table",
	Long: `Scans the content root (or the storage bucket with --source storage) for
folders named after the configured marker and writes every file below them
to the key table manifest. Use --db to also persist the table and --publish
to upload the manifest next to the content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		source, _ := cmd.Flags().GetString("source")
		out, _ := cmd.Flags().GetString("out")
		toDB, _ := cmd.Flags().GetBool("db")
		publish, _ := cmd.Flags().GetBool("publish")

		svc, err := newServices(toDB)
		if err != nil {
			return err
		}
		res := svc.cfg.Resources

		var table *collection.Collection
		switch source {
		case addressables.TableSourceDirectory:
			table, err = discovery.ScanDir(os.DirFS(res.ContentRoot), res.Marker)
		case addressables.TableSourceStorage:
			table, err = discovery.ScanStorage(ctx, svc.store, svc.cfg.Storage.Bucket, res.Prefix, res.Marker)
		default:
			return fmt.Errorf("unknown source %q (expected %s or %s)", source,
				addressables.TableSourceDirectory, addressables.TableSourceStorage)
		}
		if err != nil {
			return err
		}
		svc.logger.Info("Discovery finished", zap.String("source", source), zap.Int("keys", table.Len()))

		if out == "" {
			out = res.Manifest
		}
		if out == "-" {
			if err := collection.WriteManifest(cmd.OutOrStdout(), table); err != nil {
				return err
			}
		} else {
			if err := collection.SaveManifestFile(out, table); err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}
			svc.logger.Info("Manifest written", zap.String("file", out))
		}

		if toDB {
			if err := collection.Migrate(svc.db); err != nil {
				return fmt.Errorf("failed to migrate key table: %w", err)
			}
			if err := collection.SaveToDB(ctx, svc.db, table); err != nil {
				return err
			}
			svc.logger.Info("Key table stored in database", zap.String("table", collection.TableName))
		}

		if publish {
			var buf bytes.Buffer
			if err := collection.WriteManifest(&buf, table); err != nil {
				return err
			}
			name := path.Join(res.Prefix, filepath.Base(res.Manifest))
			_, err := svc.store.PutObject(ctx, svc.cfg.Storage.Bucket, name, &buf, int64(buf.Len()),
				minio.PutObjectOptions{ContentType: "application/toml"})
			if err != nil {
				return fmt.Errorf("failed to publish manifest: %w", err)
			}
			svc.logger.Info("Manifest published", zap.String("bucket", svc.cfg.Storage.Bucket), zap.String("object", name))
		}
		return nil
	},
}

func init() {
	discoverCmd.Flags().String("source", addressables.TableSourceDirectory, "Where to scan: directory or storage")
	discoverCmd.Flags().String("out", "", "Manifest output path (defaults to the configured manifest, - for stdout)")
	discoverCmd.Flags().Bool("db", false, "Also store the key table in the database")
	discoverCmd.Flags().Bool("publish", false, "Upload the manifest to the storage bucket")
	RootCmd.AddCommand(discoverCmd)
}
