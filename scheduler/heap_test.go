package scheduler

import (
	"container/heap"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerHeap_OrdersByInstantThenID(t *testing.T) {
	h := newTriggerHeap()
	base := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	c := uuid.MustParse("00000000-0000-0000-0000-00000000000c")

	heap.Push(h, &Trigger{JobID: c, NextFireInstant: base.Add(time.Minute)})
	heap.Push(h, &Trigger{JobID: b, NextFireInstant: base})
	heap.Push(h, &Trigger{JobID: a, NextFireInstant: base})

	got := []uuid.UUID{
		heap.Pop(h).(*Trigger).JobID,
		heap.Pop(h).(*Trigger).JobID,
		heap.Pop(h).(*Trigger).JobID,
	}
	assert.Equal(t, []uuid.UUID{a, b, c}, got)
}

func TestTriggerHeap_IndexTracksRemoval(t *testing.T) {
	h := newTriggerHeap()
	base := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
		heap.Push(h, &Trigger{JobID: ids[i], NextFireInstant: base.Add(time.Duration(i) * time.Second)})
	}

	i, ok := h.indexOf(ids[2])
	require.True(t, ok)
	removed := heap.Remove(h, i).(*Trigger)
	assert.Equal(t, ids[2], removed.JobID)

	_, ok = h.indexOf(ids[2])
	assert.False(t, ok)

	// The remaining triggers still pop in instant order.
	prev := heap.Pop(h).(*Trigger)
	for h.Len() > 0 {
		next := heap.Pop(h).(*Trigger)
		assert.False(t, next.NextFireInstant.Before(prev.NextFireInstant))
		prev = next
	}
}

func TestTriggerHeap_Peek(t *testing.T) {
	h := newTriggerHeap()
	assert.Nil(t, h.peek())

	tr := &Trigger{JobID: uuid.New(), NextFireInstant: time.Now()}
	heap.Push(h, tr)
	assert.Equal(t, tr, h.peek())
	assert.Equal(t, 1, h.Len())
}
