package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTL_ExpiresEntries(t *testing.T) {
	c := NewTTL[string]("layout", 40*time.Millisecond, 10, nil)

	c.Set("a", "<svg/>")
	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, "<svg/>", v)

	time.Sleep(80 * time.Millisecond)
	_, ok = c.Get("a")
	require.False(t, ok)
}

func TestTTL_Delete(t *testing.T) {
	c := NewTTL[int]("t", time.Minute, 2, nil)
	c.Set("a", 1)
	require.Equal(t, 1, c.Len())
	c.Delete("a")
	_, ok := c.Get("a")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestTTL_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewTTL[int]("t", time.Minute, 2, nil)
	c.Set("a", 1)
	c.Set("b", 2)
	_, _ = c.Get("a")
	c.Set("c", 3)

	_, ok := c.Get("b")
	require.False(t, ok)
	_, ok = c.Get("a")
	require.True(t, ok)
	_, ok = c.Get("c")
	require.True(t, ok)
}

type countingObserver struct {
	mu     sync.Mutex
	hits   int
	misses int
}

func (o *countingObserver) ObserveCache(_ string, hit bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
}

func TestTTL_GetOrLoad_CachesSuccess(t *testing.T) {
	obs := &countingObserver{}
	c := NewTTL[string]("layout", time.Minute, 10, obs)
	var calls int32
	load := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "<svg id=\"w\"/>", nil
	}

	for i := 0; i < 3; i++ {
		v, err := c.GetOrLoad(context.Background(), "k", load)
		require.NoError(t, err)
		require.Equal(t, "<svg id=\"w\"/>", v)
	}
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
	require.Equal(t, 2, obs.hits)
	require.Equal(t, 1, obs.misses)
}

func TestTTL_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	c := NewTTL[string]("layout", time.Minute, 10, nil)
	boom := errors.New("backend down")

	_, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "", boom
	})
	require.ErrorIs(t, err, boom)

	v, err := c.GetOrLoad(context.Background(), "k", func(ctx context.Context) (string, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", v)
}

func TestTTL_GetOrLoad_SharesConcurrentLoads(t *testing.T) {
	c := NewTTL[string]("layout", time.Minute, 10, nil)
	var calls int32
	release := make(chan struct{})
	load := func(ctx context.Context) (string, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return "v", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrLoad(context.Background(), "k", load)
			require.NoError(t, err)
			require.Equal(t, "v", v)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
