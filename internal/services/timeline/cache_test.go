package timeline

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheHitsSameVersion(t *testing.T) {
	c := NewCache()
	calls := 0
	compute := func() (*Series, error) {
		calls++
		return &Series{HumanCount: calls}, nil
	}

	first, err := c.Get("g1", 1, compute)
	require.NoError(t, err)
	second, err := c.Get("g1", 1, compute)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestCacheRecomputesOnNewVersion(t *testing.T) {
	c := NewCache()
	calls := 0
	compute := func() (*Series, error) {
		calls++
		return &Series{HumanCount: calls}, nil
	}

	_, _ = c.Get("g1", 1, compute)
	s, err := c.Get("g1", 2, compute)
	require.NoError(t, err)
	assert.Equal(t, 2, s.HumanCount)

	// Games are independent
	_, _ = c.Get("g2", 2, compute)
	assert.Equal(t, 3, calls)
}

func TestCacheDoesNotStoreErrors(t *testing.T) {
	c := NewCache()
	boom := errors.New("boom")
	_, err := c.Get("g1", 1, func() (*Series, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	s, err := c.Get("g1", 1, func() (*Series, error) { return &Series{HumanCount: 5}, nil })
	require.NoError(t, err)
	assert.Equal(t, 5, s.HumanCount)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	calls := 0
	compute := func() (*Series, error) {
		calls++
		return &Series{}, nil
	}
	_, _ = c.Get("g1", 1, compute)
	c.Invalidate("g1")
	_, _ = c.Get("g1", 1, compute)
	assert.Equal(t, 2, calls)
}

func TestCacheSharesConcurrentMisses(t *testing.T) {
	c := NewCache()
	var calls atomic.Int32
	release := make(chan struct{})
	compute := func() (*Series, error) {
		calls.Add(1)
		<-release
		return &Series{}, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Get("g1", 7, compute)
		}()
	}
	// Let the callers pile up on the in-flight computation
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())

	// Once stored, further reads never compute
	before := calls.Load()
	_, _ = c.Get("g1", 7, compute)
	assert.Equal(t, before, calls.Load())
}
