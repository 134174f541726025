package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTracker_Snapshot(t *testing.T) {
	tr := NewTracker(100)
	for i := 1; i <= 100; i++ {
		tr.Record(time.Duration(i) * time.Millisecond)
	}

	s := tr.Snapshot()
	assert.Equal(t, int64(100), s.Count)
	assert.Equal(t, 100, s.Samples)
	assert.Equal(t, 1.0, s.MinMS)
	assert.Equal(t, 100.0, s.MaxMS)
	assert.Equal(t, 50.0, s.P50MS)
	assert.Equal(t, 99.0, s.P99MS)
}

func TestTracker_WindowOverwritesOldest(t *testing.T) {
	tr := NewTracker(3)
	for _, ms := range []int{500, 1, 2, 3} {
		tr.Record(time.Duration(ms) * time.Millisecond)
	}

	s := tr.Snapshot()
	assert.Equal(t, int64(4), s.Count)
	assert.Equal(t, 3, s.Samples)
	assert.Equal(t, 3.0, s.MaxMS)
}

func TestTracker_Empty(t *testing.T) {
	assert.Equal(t, Snapshot{}, NewTracker(0).Snapshot())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(10)
	r.Record("GET /api/posts", time.Millisecond)
	r.Record("GET /api/posts", 3*time.Millisecond)
	r.Record("POST /api/auth", 2*time.Millisecond)

	snap := r.Snapshot()
	assert.Len(t, snap, 2)
	assert.Equal(t, int64(2), snap["GET /api/posts"].Count)
	assert.Equal(t, 2.0, snap["GET /api/posts"].AvgMS)
}
