package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingSource is a read-only test source that counts index loads.
type countingSource struct {
	name  string
	index Index
	err   error
	loads atomic.Int32
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) LoadIndex(ctx context.Context) (Index, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	out := make(Index, len(s.index))
	for k, v := range s.index {
		out[k] = v
	}
	return out, nil
}

func newSpec(name string, sources ...Source) *Spec {
	spec := &Spec{Name: name, Sources: sources}
	InvalidateCache(spec)
	return spec
}

func TestBuildCache_ErrorHandling(t *testing.T) {
	ctx := context.Background()

	t.Run("no sources", func(t *testing.T) {
		_, err := BuildCache(ctx, &Spec{Name: "empty"})
		assert.ErrorIs(t, err, ErrNoSources)
	})

	t.Run("duplicate names", func(t *testing.T) {
		spec := &Spec{Sources: []Source{&countingSource{name: "a"}, &countingSource{name: "a"}}}
		_, err := BuildCache(ctx, spec)
		assert.ErrorIs(t, err, ErrDuplicateSource)
	})

	t.Run("load error names the source", func(t *testing.T) {
		boom := errors.New("connection refused")
		spec := &Spec{Sources: []Source{
			&countingSource{name: "manifest", index: Index{"a": "a.png"}},
			&countingSource{name: "database", err: boom},
		}}
		_, err := BuildCache(ctx, spec)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "database")
	})

	t.Run("nil index becomes empty", func(t *testing.T) {
		spec := &Spec{Sources: []Source{NewSource("scan", func(context.Context) (Index, error) { return nil, nil })}}
		cache, err := BuildCache(ctx, spec)
		require.NoError(t, err)
		assert.NotNil(t, cache.Indices["scan"])
	})
}

func TestReconcileAll_UnionKeys(t *testing.T) {
	spec := newSpec("union",
		&countingSource{name: "manifest", index: Index{"a": "a.png", "b": "b.png"}},
		&countingSource{name: "database", index: Index{"b": "b.png", "c": "c.png"}},
		&countingSource{name: "scan", index: Index{"d": "d.png"}},
	)

	results, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)

	keys := make([]string, len(results))
	for i, r := range results {
		keys[i] = r.Key
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, keys)
}

func TestReconcileAll_PresenceFlags(t *testing.T) {
	spec := newSpec("presence",
		&countingSource{name: "manifest", index: Index{"a": "a.png", "b": "b.png"}},
		&countingSource{name: "database", index: Index{"b": "b.png"}},
	)

	results, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, 2)

	a := results[0]
	assert.True(t, a.Present("manifest"))
	assert.False(t, a.Present("database"))
	assert.Equal(t, []string{"database"}, a.Missing)
	assert.False(t, a.Complete())

	b := results[1]
	assert.Empty(t, b.Missing)
	assert.Empty(t, b.Mismatch)
	assert.True(t, b.Complete())
}

func TestReconcileAll_MismatchDetection(t *testing.T) {
	spec := newSpec("mismatch",
		&countingSource{name: "manifest", index: Index{"hero": "art/hero.png"}},
		&countingSource{name: "database", index: Index{"hero": "art/hero_v2.png"}},
		&countingSource{name: "scan", index: Index{"hero": "art/hero.png"}},
	)

	results, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []string{"address: manifest=art/hero.png database=art/hero_v2.png"}, results[0].Mismatch)
	assert.Equal(t, "art/hero_v2.png", results[0].Addresses["database"])
}

func TestCache_Hit(t *testing.T) {
	src := &countingSource{name: "manifest", index: Index{"a": "a.png"}}
	spec := newSpec("hit", src)
	spec.CacheTTL = time.Minute

	_, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)
	_, err = ReconcileAll(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestCache_Expiration(t *testing.T) {
	src := &countingSource{name: "manifest", index: Index{"a": "a.png"}}
	spec := newSpec("expiry", src)
	spec.CacheTTL = 10 * time.Millisecond

	_, err := ReconcileAll(context.Background(), spec)
	require.NoError(t, err)
	time.Sleep(30 * time.Millisecond)
	_, err = ReconcileAll(context.Background(), spec)
	require.NoError(t, err)

	assert.Equal(t, int32(2), src.loads.Load())
}

func TestCache_Disabled(t *testing.T) {
	src := &countingSource{name: "manifest", index: Index{"a": "a.png"}}
	spec := newSpec("disabled", src)

	for i := 0; i < 3; i++ {
		_, err := ReconcileAll(context.Background(), spec)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), src.loads.Load())
}

func TestCache_ConcurrentCallersShareBuild(t *testing.T) {
	src := &countingSource{name: "manifest", index: Index{"a": "a.png"}}
	spec := newSpec("shared", src)
	spec.CacheTTL = time.Minute

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := ReconcileAll(context.Background(), spec)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), src.loads.Load())
}

func TestReconcileOne_WithCache(t *testing.T) {
	spec := newSpec("one",
		&countingSource{name: "manifest", index: Index{"a": "a.png"}},
		&countingSource{name: "database", index: Index{}},
	)
	spec.CacheTTL = time.Minute

	result, err := ReconcileOne(context.Background(), spec, "a")
	require.NoError(t, err)
	assert.Equal(t, "a", result.Key)
	assert.Equal(t, []string{"database"}, result.Missing)
}

func TestReconcileOne_NotFound(t *testing.T) {
	spec := newSpec("one-missing",
		&countingSource{name: "manifest", index: Index{"a": "a.png"}},
		&countingSource{name: "database", index: Index{"a": "a.png"}},
	)

	result, err := ReconcileOne(context.Background(), spec, "zzz")
	require.NoError(t, err)
	assert.Equal(t, []string{"manifest", "database"}, result.Missing)
	assert.Empty(t, result.Addresses)
}
