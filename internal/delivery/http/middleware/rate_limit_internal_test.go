package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterSweepDropsExpiredEntries(t *testing.T) {
	m := &memoryLimiter{}
	start := time.Now()

	count, _ := m.hit("rl:ip:1", time.Minute, start)
	require.Equal(t, 1, count)

	m.sweep(start.Add(2 * time.Minute))
	_, ok := m.entries.Load("rl:ip:1")
	assert.False(t, ok)

	count, _ = m.hit("rl:ip:1", time.Minute, start.Add(2*time.Minute))
	assert.Equal(t, 1, count)
}

func TestMemoryLimiterHitSkipsSweptEntry(t *testing.T) {
	m := &memoryLimiter{}
	now := time.Now()

	// an entry a concurrent sweep already unlinked while a hit held it
	stale := &rateLimitEntry{count: 3, resetAt: now.Add(time.Minute), removed: true}
	m.entries.Store("rl:ip:1", stale)

	done := make(chan struct{})
	go func() {
		defer close(done)
		time.Sleep(10 * time.Millisecond)
		m.entries.CompareAndDelete("rl:ip:1", stale)
	}()

	count, _ := m.hit("rl:ip:1", time.Minute, now)
	<-done
	assert.Equal(t, 1, count)
	assert.Equal(t, 3, stale.count)

	live, ok := m.entries.Load("rl:ip:1")
	require.True(t, ok)
	assert.NotSame(t, stale, live)
}

func TestMemoryLimiterCountsEveryConcurrentHitAcrossSweeps(t *testing.T) {
	m := &memoryLimiter{}
	window := 50 * time.Millisecond
	start := time.Now()

	var wg sync.WaitGroup
	const hits = 200
	results := make(chan int, hits)
	for i := 0; i < hits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			count, _ := m.hit("rl:ip:1", window, start)
			results <- count
		}()
	}
	// sweeps at a time before the window ends must not drop the live entry
	for i := 0; i < 20; i++ {
		m.sweep(start)
	}
	wg.Wait()
	close(results)

	highest := 0
	for c := range results {
		if c > highest {
			highest = c
		}
	}
	assert.Equal(t, hits, highest)
}
