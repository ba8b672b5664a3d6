package mirror

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Dispatcher decouples mirror recomputation from the booking write that
// triggered it. The queue is bounded and drop-on-full: the projection is
// eventually consistent and must never block or fail an API write.
type Dispatcher struct {
	recomputer *Recomputer
	log        *zap.Logger
	queue      chan string
}

func NewDispatcher(recomputer *Recomputer, log *zap.Logger) *Dispatcher {
	d := &Dispatcher{
		recomputer: recomputer,
		log:        log,
		queue:      make(chan string, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for date := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)

		if err := d.recomputer.Recompute(ctx, date); err != nil {
			d.log.Warn("mirror recompute failed",
				zap.String("date", date),
				zap.Error(err),
			)
		}

		cancel()
	}
}

// Enqueue schedules a recompute for the date. Never blocks.
func (d *Dispatcher) Enqueue(date string) {
	select {
	case d.queue <- date:
	default:
		d.log.Warn("mirror queue full, dropping recompute",
			zap.String("date", date),
		)
	}
}
