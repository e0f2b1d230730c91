package parallel

import (
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	cfg := DefaultConfig()

	var counter int64
	n := 10000

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestFor_Sequential(t *testing.T) {
	cfg := Config{Enabled: false}

	var counter int64
	For(100, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != 100 {
		t.Errorf("Expected 100, got %d", counter)
	}
}

func TestFor_SmallChunk(t *testing.T) {
	// Test that small work units fall back to sequential.
	cfg := DefaultConfig()

	var counter int64
	n := cfg.MinChunkSize - 1

	For(n, func(_ int) {
		atomic.AddInt64(&counter, 1)
	}, cfg)

	if counter != int64(n) {
		t.Errorf("Expected %d, got %d", n, counter)
	}
}

func TestForChunks_CoversRange(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}

	n := 100
	seen := make([]int32, n)
	chunks := ForChunks(n, cfg, func(_, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&seen[i], 1)
		}
	})

	if chunks < 1 || chunks > cfg.NumWorkers {
		t.Errorf("Expected 1..%d chunks, got %d", cfg.NumWorkers, chunks)
	}
	for i, c := range seen {
		if c != 1 {
			t.Errorf("Index %d visited %d times", i, c)
		}
	}
}

func TestForChunks_Empty(t *testing.T) {
	chunks := ForChunks(0, DefaultConfig(), func(_, _, _ int) {
		t.Error("callback should not run for empty range")
	})
	if chunks != 0 {
		t.Errorf("Expected 0 chunks, got %d", chunks)
	}
}

func TestForChunks_SequentialFallback(t *testing.T) {
	cfg := Config{Enabled: false}

	var calls int
	chunks := ForChunks(50, cfg, func(chunk, start, end int) {
		calls++
		if chunk != 0 || start != 0 || end != 50 {
			t.Errorf("Expected single chunk (0,0,50), got (%d,%d,%d)", chunk, start, end)
		}
	})
	if chunks != 1 || calls != 1 {
		t.Errorf("Expected one sequential chunk, got chunks=%d calls=%d", chunks, calls)
	}
}

func BenchmarkFor(b *testing.B) {
	cfg := DefaultConfig()
	n := 10000

	b.Run("parallel", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfg)
		}
	})

	b.Run("sequential", func(b *testing.B) {
		cfgSeq := cfg
		cfgSeq.Enabled = false
		for i := 0; i < b.N; i++ {
			var sum int64
			For(n, func(i int) {
				atomic.AddInt64(&sum, int64(i))
			}, cfgSeq)
		}
	})
}
