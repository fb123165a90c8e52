package ledger

import (
	"sync"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type object struct{ name string }

func TestLedger_RoundTrip(t *testing.T) {
	l := New[*object]()
	o := &object{name: "hero"}

	for i := 0; i < 3; i++ {
		l.Increase(o)
	}
	assert.Equal(t, 3, l.Count(o))

	release, err := l.Decrease(o)
	require.NoError(t, err)
	assert.False(t, release)
	release, err = l.Decrease(o)
	require.NoError(t, err)
	assert.False(t, release)
	release, err = l.Decrease(o)
	require.NoError(t, err)
	assert.True(t, release)

	assert.False(t, l.IsTracked(o))
	assert.Equal(t, 0, l.Count(o))
	assert.Equal(t, 0, l.Len())
}

func TestLedger_DecreaseUntracked(t *testing.T) {
	l := New[*object]()

	release, err := l.Decrease(&object{})
	assert.ErrorIs(t, err, ErrNotTracked)
	assert.False(t, release)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_IdentityNotEquality(t *testing.T) {
	l := New[*object]()
	a := &object{name: "same"}
	b := &object{name: "same"}

	l.Increase(a)
	assert.True(t, l.IsTracked(a))
	assert.False(t, l.IsTracked(b))

	_, err := l.Decrease(b)
	assert.ErrorIs(t, err, ErrNotTracked)
	assert.Equal(t, 1, l.Count(a))
}

func TestLedger_Snapshot(t *testing.T) {
	l := New[string]()
	l.Increase("a")
	l.Increase("a")
	l.Increase("b")

	snap := l.Snapshot()
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, snap)

	snap["a"] = 10
	assert.Equal(t, 2, l.Count("a"))
}

func TestLedger_Concurrent(t *testing.T) {
	l := New[*object]()
	o := &object{}
	const workers = 32

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Increase(o)
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, l.Count(o))

	var mu sync.Mutex
	releases := 0
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Decrease(o)
			assert.NoError(t, err)
			if release {
				mu.Lock()
				releases++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, releases)
	assert.False(t, l.IsTracked(o))
}

func TestLedger_BalancedSequencesReleaseOnce(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("balanced increase/decrease releases exactly once per drain", prop.ForAll(
		func(n int) bool {
			l := New[*object]()
			o := &object{}
			for i := 0; i < n; i++ {
				l.Increase(o)
			}
			releases := 0
			for i := 0; i < n; i++ {
				release, err := l.Decrease(o)
				if err != nil {
					return false
				}
				if release {
					if i != n-1 {
						return false
					}
					releases++
				}
			}
			return releases == 1 && !l.IsTracked(o)
		},
		gen.IntRange(1, 200),
	))

	properties.Property("interleaved owners never go negative", prop.ForAll(
		func(ops []bool) bool {
			l := New[*object]()
			o := &object{}
			held := 0
			for _, inc := range ops {
				if inc {
					l.Increase(o)
					held++
					continue
				}
				release, err := l.Decrease(o)
				if held == 0 {
					if err == nil {
						return false
					}
					continue
				}
				held--
				if release != (held == 0) {
					return false
				}
			}
			return l.Count(o) == held && l.IsTracked(o) == (held > 0)
		},
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
