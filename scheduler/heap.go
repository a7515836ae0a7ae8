package scheduler

import "github.com/google/uuid"

// triggerHeap is a container/heap.Interface over active triggers, ordered
// ascending by (NextFireInstant, JobID): triggers due in the same tick
// dispatch in that order.
type triggerHeap struct {
	items []*Trigger
	index map[uuid.UUID]int
}

func newTriggerHeap() *triggerHeap {
	return &triggerHeap{index: make(map[uuid.UUID]int)}
}

func (h *triggerHeap) Len() int { return len(h.items) }

func (h *triggerHeap) Less(i, j int) bool {
	a, b := h.items[i], h.items[j]
	if a.NextFireInstant.Equal(b.NextFireInstant) {
		return a.JobID.String() < b.JobID.String()
	}
	return a.NextFireInstant.Before(b.NextFireInstant)
}

func (h *triggerHeap) Swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
	h.index[h.items[i].JobID] = i
	h.index[h.items[j].JobID] = j
}

func (h *triggerHeap) Push(x any) {
	t := x.(*Trigger)
	h.index[t.JobID] = len(h.items)
	h.items = append(h.items, t)
}

func (h *triggerHeap) Pop() any {
	n := len(h.items)
	t := h.items[n-1]
	h.items[n-1] = nil
	h.items = h.items[:n-1]
	delete(h.index, t.JobID)
	return t
}

func (h *triggerHeap) peek() *Trigger {
	if len(h.items) == 0 {
		return nil
	}
	return h.items[0]
}

func (h *triggerHeap) indexOf(jobID uuid.UUID) (int, bool) {
	i, ok := h.index[jobID]
	return i, ok
}
