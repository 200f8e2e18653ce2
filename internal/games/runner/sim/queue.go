package sim

import "sync"

// SpawnQueue hands obstacles from the spawner goroutine to the tick.
// Post and Drain hold the lock only to swap slices, so neither side waits on
// the other's work.
type SpawnQueue struct {
	mu      sync.Mutex
	pending []Obstacle
}

// NewSpawnQueue creates an empty queue.
func NewSpawnQueue() *SpawnQueue {
	return &SpawnQueue{}
}

// Post enqueues obstacles for the next drain.
func (q *SpawnQueue) Post(obs ...Obstacle) {
	q.mu.Lock()
	q.pending = append(q.pending, obs...)
	q.mu.Unlock()
}

// Drain removes and returns everything posted so far, in posting order.
func (q *SpawnQueue) Drain() []Obstacle {
	q.mu.Lock()
	out := q.pending
	q.pending = nil
	q.mu.Unlock()
	return out
}

// Len returns the number of obstacles waiting.
func (q *SpawnQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
