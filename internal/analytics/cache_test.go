package analytics

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestSentimentCache_GetPut(t *testing.T) {
	c := NewSentimentCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("empty cache should miss")
	}

	c.Put("a", 42)
	got, ok := c.Get("a")
	if !ok || got != 42 {
		t.Errorf("Get(a) = %v, %v; want 42, true", got, ok)
	}

	c.Put("a", -7)
	if got, _ := c.Get("a"); got != -7 {
		t.Errorf("Put should overwrite: got %v", got)
	}

	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestSentimentCache_ScoreComputesOnce(t *testing.T) {
	c := NewSentimentCache()
	computes := 0
	compute := func() float64 {
		computes++
		return 12
	}

	if got := c.score("id", compute); got != 12 {
		t.Errorf("first score = %v, want 12", got)
	}
	if got := c.score("id", compute); got != 12 {
		t.Errorf("second score = %v, want 12", got)
	}
	if computes != 1 {
		t.Errorf("compute ran %d times, want 1", computes)
	}
}

func TestSentimentCache_ConcurrentScoresShareCompute(t *testing.T) {
	c := NewSentimentCache()
	var computes atomic.Int64

	var wg sync.WaitGroup
	for n := 0; n < 16; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := c.score("shared", func() float64 {
				computes.Add(1)
				return 3
			})
			if got != 3 {
				t.Errorf("score = %v, want 3", got)
			}
		}()
	}
	wg.Wait()

	if n := computes.Load(); n != 1 {
		t.Errorf("compute ran %d times under contention, want 1", n)
	}
}
