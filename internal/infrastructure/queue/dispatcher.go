package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/sharenest/sharenest/internal/api/metrics"
	"github.com/sharenest/sharenest/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes rating recompute jobs to a fixed set of workers using
// consistent hashing on the property id, so recomputes for the same property
// never run concurrently and apply in submission order.
type Dispatcher struct {
	workers []chan string
	ratings ports.RatingService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, ratings ports.RatingService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		ratings: ratings,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue submits a property for rating recomputation. The call is
// non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(propertyID string) {
	i := d.shardIndex(propertyID)
	d.workers[i] <- propertyID
	metrics.RatingQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a property id deterministically to a worker index.
func (d *Dispatcher) shardIndex(propertyID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(propertyID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case propertyID, ok := <-ch:
			if !ok {
				return
			}
			start := time.Now()
			err := d.ratings.Recompute(ctx, propertyID)
			metrics.RatingRecomputeDuration.Observe(time.Since(start).Seconds())
			metrics.RatingQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err != nil {
				d.log.Error().Err(err).
					Str("property_id", propertyID).
					Int("worker_id", id).
					Msg("rating recompute failed")
			}
		}
	}
}
