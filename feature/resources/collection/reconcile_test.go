package collection

import (
	"context"
	"path/filepath"
	"testing"

	"addressable-resources/core/assets"
	"addressable-resources/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestCollection_Set(t *testing.T) {
	c := New()
	c.AddUnique("/a", assets.NewReference("a.txt"))
	c.AddUnique("/b", assets.NewReference("b.txt"))

	c.Set("/A", assets.NewReference("a2.txt"))
	c.Set("/c", assets.NewReference("c.txt"))

	assert.Equal(t, []string{"/a", "/b", "/c"}, c.Keys())
	ref, _ := c.Lookup("/a")
	assert.Equal(t, "a2.txt", ref.Address)
}

func TestApplyActions(t *testing.T) {
	c := New()
	c.AddUnique("/keep", assets.NewReference("keep.txt"))
	c.AddUnique("/move", assets.NewReference("old.txt"))
	c.AddUnique("/drop", assets.NewReference("drop.txt"))

	ApplyActions(c, []reconcile.Action{
		{Type: reconcile.ActionUpdate, Key: "/move", Address: "new.txt"},
		{Type: reconcile.ActionRemove, Key: "/drop"},
		{Type: reconcile.ActionAdd, Key: "/add", Address: "add.txt"},
	})

	assert.Equal(t, reconcile.Index{
		"/keep": "keep.txt",
		"/move": "new.txt",
		"/add":  "add.txt",
	}, Index(c))
	assert.Equal(t, []string{"/keep", "/move", "/add"}, c.Keys())
}

func TestReconcile_ManifestIntoDatabase(t *testing.T) {
	ctx := context.Background()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, Migrate(db))

	stored := New()
	stored.AddUnique("/hero", assets.NewReference("art/hero_old.png"))
	stored.AddUnique("/gone", assets.NewReference("art/gone.png"))
	require.NoError(t, SaveToDB(ctx, db, stored))

	manifest := New()
	manifest.AddUnique("/hero", assets.NewReference("art/hero.png"))
	manifest.AddUnique("/ui/icon", assets.NewReference("ui/icon.png"))
	path := filepath.Join(t.TempDir(), "resources.toml")
	require.NoError(t, SaveManifestFile(path, manifest))

	scanned := ScanSource("scan", func(context.Context) (*Collection, error) { return manifest, nil })
	spec := &reconcile.Spec{
		Name:    t.Name(),
		Sources: []reconcile.Source{&ManifestSource{Path: path}, &DBSource{DB: db}, scanned},
	}
	opts := reconcile.Options{Authority: "manifest", Target: "database", Confirmed: true}

	plan, executed, err := reconcile.ReconcileAndApply(ctx, spec, opts)
	require.NoError(t, err)
	assert.Equal(t, 3, executed)
	assert.Equal(t, 1, plan.Summary.Mismatches)

	out, err := LoadFromDB(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, Index(manifest), Index(out))
}

func TestManifestSource_Apply(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resources.toml")
	c := New()
	c.AddUnique("/a", assets.NewReference("a.txt"))
	require.NoError(t, SaveManifestFile(path, c))

	src := &ManifestSource{Path: path}
	require.NoError(t, src.Apply(context.Background(), []reconcile.Action{
		{Type: reconcile.ActionAdd, Key: "/b", Address: "b.txt"},
	}))

	index, err := src.LoadIndex(context.Background())
	require.NoError(t, err)
	assert.Equal(t, reconcile.Index{"/a": "a.txt", "/b": "b.txt"}, index)
}
