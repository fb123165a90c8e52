package bridge

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"
	"time"

	"addressable-resources/core/addressables"
	"addressable-resources/core/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gatedSource struct {
	gate    chan struct{}
	fetches atomic.Int32
}

func (s *gatedSource) Fetch(ctx context.Context, address string) ([]byte, error) {
	s.fetches.Add(1)
	<-s.gate
	return []byte(address), nil
}

func dirEngine(files fstest.MapFS) *addressables.Engine {
	return addressables.NewEngine(addressables.NewDirSource(files), assets.NewRegistry(), 4, nil)
}

func TestBridge_LoadAndRelease(t *testing.T) {
	eng := dirEngine(fstest.MapFS{"data/hero.bin": {Data: []byte{1, 2, 3}}})
	b := New(eng, nil)
	ref := assets.NewReference("data/hero.bin")

	obj, err := b.LoadAs(context.Background(), ref, assets.KindBinary)
	require.NoError(t, err)
	blob, ok := obj.(*assets.Blob)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3}, blob.Data)
	assert.Equal(t, "hero", blob.Name())

	assert.True(t, b.Holds(obj))
	got, ok := b.Reference(obj)
	require.True(t, ok)
	assert.Equal(t, ref, got)
	assert.Equal(t, 1, b.Len())

	require.NoError(t, b.Release(obj))
	assert.False(t, b.Holds(obj))
	assert.Equal(t, int64(1), eng.Released())
	assert.Equal(t, 0, eng.Active())

	assert.ErrorIs(t, b.Release(obj), ErrNotLoaded)
	assert.Equal(t, int64(1), eng.Released())
}

func TestBridge_SequentialLoadsReuseOperation(t *testing.T) {
	eng := dirEngine(fstest.MapFS{"a.txt": {Data: []byte("hello")}})
	b := New(eng, nil)
	ref := assets.NewReference("a.txt")

	first, err := b.LoadAs(context.Background(), ref, assets.KindText)
	require.NoError(t, err)
	second, err := b.LoadAs(context.Background(), ref, assets.KindText)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int64(1), eng.Started())
	assert.Equal(t, 1, b.Len())
}

func TestBridge_ConcurrentLoadsStartOneOperation(t *testing.T) {
	src := &gatedSource{gate: make(chan struct{})}
	eng := addressables.NewEngine(src, assets.NewRegistry(), 4, nil)
	b := New(eng, nil)
	ref := assets.NewReference("shared")

	const callers = 16
	results := make([]assets.Object, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			obj, err := b.LoadAs(context.Background(), ref, assets.KindBinary)
			assert.NoError(t, err)
			results[i] = obj
		}(i)
	}

	assert.Eventually(t, func() bool { return src.fetches.Load() == 1 }, time.Second, 5*time.Millisecond)
	close(src.gate)
	wg.Wait()

	assert.Equal(t, int64(1), eng.Started())
	assert.Equal(t, int32(1), src.fetches.Load())
	for _, obj := range results {
		assert.Same(t, results[0], obj)
	}
}

func TestBridge_Failures(t *testing.T) {
	eng := dirEngine(fstest.MapFS{"a.txt": {Data: []byte("hello")}})
	b := New(eng, nil)

	_, err := b.LoadAs(context.Background(), assets.NewReference("missing.txt"), assets.KindText)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, addressables.ErrNotFound)

	_, err = b.LoadAs(context.Background(), assets.NewReference("a.txt"), assets.Kind("unknown"))
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, assets.ErrUnsupportedKind)

	_, err = b.LoadAs(context.Background(), assets.Reference{}, assets.KindText)
	assert.ErrorIs(t, err, addressables.ErrInvalidReference)

	assert.Equal(t, 0, b.Len())
}

func TestBridge_KindMismatchOnReusedOperation(t *testing.T) {
	eng := dirEngine(fstest.MapFS{"a.txt": {Data: []byte("hello")}})
	b := New(eng, nil)
	ref := assets.NewReference("a.txt")

	_, err := b.LoadAs(context.Background(), ref, assets.KindBinary)
	require.NoError(t, err)

	_, err = b.LoadAs(context.Background(), ref, assets.KindText)
	assert.ErrorIs(t, err, ErrLoadFailed)
	assert.ErrorIs(t, err, ErrKindMismatch)
	assert.Equal(t, int64(1), eng.Started())
}

func TestBridge_ReleasedBeforeRegistration(t *testing.T) {
	src := &gatedSource{gate: make(chan struct{})}
	eng := addressables.NewEngine(src, assets.NewRegistry(), 4, nil)
	b := New(eng, nil)
	ref := assets.NewReference("late")

	errs := make(chan error, 1)
	go func() {
		_, err := b.LoadAs(context.Background(), ref, assets.KindBinary)
		errs <- err
	}()

	assert.Eventually(t, func() bool { return src.fetches.Load() == 1 }, time.Second, 5*time.Millisecond)
	op, ok := eng.Operation(ref)
	require.True(t, ok)
	require.NoError(t, eng.Release(op))
	close(src.gate)

	assert.ErrorIs(t, <-errs, ErrReleased)
	assert.Equal(t, 0, b.Len())
}

// sharedSystem completes every operation with the same object.
type sharedSystem struct {
	obj      assets.Object
	mu       sync.Mutex
	ops      map[assets.Reference]*addressables.Operation
	releases int
}

func (s *sharedSystem) LoadAsync(_ context.Context, ref assets.Reference, kind assets.Kind) (*addressables.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op := addressables.NewOperation(ref, kind)
	op.Complete(s.obj, nil)
	s.ops[ref] = op
	return op, nil
}

func (s *sharedSystem) Operation(ref assets.Reference) (*addressables.Operation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.ops[ref]
	return op, ok && op.IsValid()
}

func (s *sharedSystem) Release(op *addressables.Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !op.MarkReleased() {
		return addressables.ErrAlreadyReleased
	}
	s.releases++
	return nil
}

func TestBridge_IdentityCollision(t *testing.T) {
	sys := &sharedSystem{
		obj: &assets.Blob{AssetName: "shared"},
		ops: make(map[assets.Reference]*addressables.Operation),
	}
	b := New(sys, nil)

	obj, err := b.LoadAs(context.Background(), assets.NewReference("one"), assets.KindBinary)
	require.NoError(t, err)

	_, err = b.LoadAs(context.Background(), assets.NewReference("two"), assets.KindBinary)
	assert.ErrorIs(t, err, ErrIdentityCollision)
	assert.False(t, errors.Is(err, ErrLoadFailed))

	ref, ok := b.Reference(obj)
	require.True(t, ok)
	assert.Equal(t, "one", ref.Address)

	require.NoError(t, b.Release(obj))
	assert.Equal(t, 1, sys.releases)
}
