package ratestore

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_FirstReserveHasNoPrevious(t *testing.T) {
	m := NewMemory()
	now := time.Now()

	prev, err := m.Reserve(context.Background(), now, time.Second)
	require.NoError(t, err)
	assert.True(t, prev.IsZero())
	assert.Equal(t, now, m.Last())
}

func TestMemory_ReserveSpacesSlots(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1000, 0)

	_, err := m.Reserve(context.Background(), now, time.Second)
	require.NoError(t, err)

	prev, err := m.Reserve(context.Background(), now, time.Second)
	require.NoError(t, err)
	assert.Equal(t, now, prev)
	assert.Equal(t, now.Add(time.Second), m.Last())

	prev, err = m.Reserve(context.Background(), now.Add(100*time.Millisecond), time.Second)
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Second), prev)
	assert.Equal(t, now.Add(2*time.Second), m.Last())
}

func TestMemory_ReserveAfterIdleUsesNow(t *testing.T) {
	m := NewMemory()
	start := time.Unix(1000, 0)
	later := start.Add(time.Hour)

	_, _ = m.Reserve(context.Background(), start, time.Second)
	prev, err := m.Reserve(context.Background(), later, time.Second)
	require.NoError(t, err)
	assert.Equal(t, start, prev)
	assert.Equal(t, later, m.Last())
}

func TestMemory_ConcurrentReservesAreDistinct(t *testing.T) {
	m := NewMemory()
	now := time.Unix(1000, 0)
	const n = 50

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		prevs []time.Time
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prev, err := m.Reserve(context.Background(), now, 10*time.Millisecond)
			assert.NoError(t, err)
			mu.Lock()
			prevs = append(prevs, prev)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Slice(prevs, func(i, j int) bool { return prevs[i].Before(prevs[j]) })
	require.Len(t, prevs, n)
	assert.True(t, prevs[0].IsZero())
	for i := 2; i < n; i++ {
		assert.Equal(t, 10*time.Millisecond, prevs[i].Sub(prevs[i-1]))
	}
	assert.Equal(t, now.Add((n-1)*10*time.Millisecond), m.Last())
}

func TestMemory_ReleaseRestoresPrevious(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Unix(1000, 0)

	_, _ = m.Reserve(ctx, now, time.Second)
	prev, err := m.Reserve(ctx, now, time.Second)
	require.NoError(t, err)
	slot := m.Last()

	require.NoError(t, m.Release(ctx, slot, prev))
	assert.Equal(t, now, m.Last())
}

func TestMemory_ReleaseKeepsNewerReservation(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	now := time.Unix(1000, 0)

	_, _ = m.Reserve(ctx, now, time.Second)
	prev, _ := m.Reserve(ctx, now, time.Second)
	slot := m.Last()
	_, _ = m.Reserve(ctx, now, time.Second)
	newer := m.Last()

	require.NoError(t, m.Release(ctx, slot, prev))
	assert.Equal(t, newer, m.Last())
}
