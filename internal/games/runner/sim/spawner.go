package sim

import (
	"context"
	"math/rand"
	"time"
)

// Spawner wait bounds, in Unit steps.
const (
	SpawnMinWait = 1
	SpawnMaxWait = 5
)

// Spawner periodically posts a cloud and a tree to a SpawnQueue.
// It runs in its own goroutine via Run and owns its RNG.
type Spawner struct {
	queue *SpawnQueue
	rng   *rand.Rand

	MinWait int           // Shortest wait, in Unit steps
	MaxWait int           // Longest wait, in Unit steps
	Unit    time.Duration // Length of one wait step

	// OnWave is called from the spawner goroutine after each wave is posted.
	OnWave func(wave int)
}

// NewSpawner creates a spawner seeded for reproducible waves. It does not
// start any goroutine.
func NewSpawner(queue *SpawnQueue, seed int64) *Spawner {
	return &Spawner{
		queue:   queue,
		rng:     rand.New(rand.NewSource(seed)),
		MinWait: SpawnMinWait,
		MaxWait: SpawnMaxWait,
		Unit:    time.Second,
	}
}

// Run posts an initial wave, then one wave after each random wait until ctx
// is done. Cancellation is the normal way to stop and returns nil.
func (s *Spawner) Run(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}

	wave := 0
	s.post(wave)

	for {
		timer := time.NewTimer(s.nextWait())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
			wave++
			s.post(wave)
		}
	}
}

func (s *Spawner) post(wave int) {
	s.queue.Post(NewCloud(s.rng), NewTree())
	if s.OnWave != nil {
		s.OnWave(wave)
	}
}

// nextWait draws a whole number of Units in [MinWait, MaxWait].
func (s *Spawner) nextWait() time.Duration {
	steps := s.MinWait
	if s.MaxWait > s.MinWait {
		steps += s.rng.Intn(s.MaxWait - s.MinWait + 1)
	}
	return time.Duration(steps) * s.Unit
}
