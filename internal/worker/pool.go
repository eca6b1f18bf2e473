// Package worker runs pipeline jobs on a bounded goroutine pool so HTTP
// requests can hand work off and poll for completion. Each job is sequential
// inside; the pool only parallelizes independent runs.
package worker

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// Job is one unit of background work.
type Job interface {
	Execute(ctx context.Context) error
	ID() string
}

// Dispatcher owns the queue and the workers draining it.
type Dispatcher struct {
	queue  chan Job
	wg     sync.WaitGroup
	cancel context.CancelFunc
	log    *logrus.Logger
}

// NewDispatcher creates a dispatcher with the given worker count and queue
// capacity.
func NewDispatcher(workers, queueSize int, log *logrus.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		queue: make(chan Job, queueSize),
		log:   log,
	}
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	for i := 1; i <= workers; i++ {
		d.wg.Add(1)
		go d.work(ctx, i)
	}
	log.WithField("workers", workers).Info("worker pool started")
	return d
}

func (d *Dispatcher) work(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-d.queue:
			if !ok {
				return
			}
			d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).Info("job started")
			if err := job.Execute(ctx); err != nil {
				d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).WithError(err).Error("job failed")
				continue
			}
			d.log.WithFields(logrus.Fields{"worker": id, "job": job.ID()}).Info("job finished")
		}
	}
}

// Submit enqueues a job without blocking. It reports false when the queue is
// full; callers turn that into a backpressure response.
func (d *Dispatcher) Submit(job Job) bool {
	select {
	case d.queue <- job:
		return true
	default:
		d.log.WithField("job", job.ID()).Warn("job queue full, submission rejected")
		return false
	}
}

// Stop cancels in-flight jobs and waits for the workers to exit.
func (d *Dispatcher) Stop() {
	d.cancel()
	d.wg.Wait()
	d.log.Info("worker pool stopped")
}
