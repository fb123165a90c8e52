package cmd

import (
	"context"
	"fmt"
	"os"

	"addressable-resources/core/addressables"
	"addressable-resources/core/assets"
	"addressable-resources/core/bundle"
	"addressable-resources/core/config"
	"addressable-resources/core/database"
	"addressable-resources/core/logger"
	"addressable-resources/core/storage"
	"addressable-resources/feature/discovery"
	"addressable-resources/feature/resources"
	"addressable-resources/feature/resources/bridge"
	"addressable-resources/feature/resources/collection"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the collaborators every command builds from configuration.
type services struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Client
	db     *gorm.DB
	mode   addressables.Mode
}

// newServices loads configuration and connects to storage and, optionally, the database.
func newServices(requireDB bool) (*services, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	mode, err := addressables.ParseMode(cfg.Resources.Mode)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	s := &services{cfg: cfg, logger: logg, store: store, mode: mode}

	needDB := requireDB || cfg.Resources.TableSource == addressables.TableSourceDatabase
	if conn, err := database.Connect(cfg.Database); err != nil {
		if needDB {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		s.db = conn
		logg.Info("Connected to key table database", zap.String("driver", cfg.Database.Driver))
	}

	return s, nil
}

// tableSource is the configured table source. Authoring always scans the content root.
func (s *services) tableSource() string {
	if s.mode == addressables.ModeAuthoring {
		return addressables.TableSourceDirectory
	}
	return s.cfg.Resources.TableSource
}

// loadTable builds the key table from the configured source.
func (s *services) loadTable(ctx context.Context) (*collection.Collection, error) {
	res := s.cfg.Resources
	switch src := s.tableSource(); src {
	case addressables.TableSourceManifest:
		return collection.LoadManifestFile(res.Manifest)
	case addressables.TableSourceDatabase:
		if s.db == nil {
			return nil, fmt.Errorf("table source %q requires a database", src)
		}
		return collection.LoadFromDB(ctx, s.db)
	case addressables.TableSourceStorage:
		return discovery.ScanStorage(ctx, s.store, s.cfg.Storage.Bucket, res.Prefix, res.Marker)
	case addressables.TableSourceDirectory:
		return discovery.ScanDir(os.DirFS(res.ContentRoot), res.Marker)
	default:
		return nil, fmt.Errorf("unknown table source %q", src)
	}
}

// assetSource returns where reference addresses are resolved. Directory tables
// hold content-root relative addresses; every other table holds bucket addresses.
func (s *services) assetSource() addressables.Source {
	if s.tableSource() == addressables.TableSourceDirectory {
		return addressables.NewDirSource(os.DirFS(s.cfg.Resources.ContentRoot))
	}
	return addressables.NewStorageSource(s.store, s.cfg.Storage.Bucket, s.cfg.Resources.Prefix)
}

// loaderOptions wires the engine, bridge, fallback and editor source for the configured mode.
func (s *services) loaderOptions(registry *assets.Registry) (resources.Options, *addressables.Engine) {
	res := s.cfg.Resources
	source := s.assetSource()

	engine := addressables.NewEngine(source, registry, res.MaxConcurrentLoads, s.logger.Named("engine"))
	opts := resources.Options{
		Mode:     s.mode,
		Bridge:   bridge.New(engine, s.logger.Named("bridge")),
		Fallback: bundle.NewLoader(os.DirFS(res.BundleRoot), registry, s.logger.Named("bundle")),
		Logger:   s.logger.Named("resources"),
	}
	if s.mode == addressables.ModeAuthoring {
		opts.Editor = addressables.NewEditorAssets(source, registry)
	}
	return opts, engine
}
