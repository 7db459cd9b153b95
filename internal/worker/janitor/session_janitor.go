package janitor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/together-as-one/internal/worker"
)

// Evictor drops sessions idle longer than their TTL.
type Evictor interface {
	EvictIdle(now time.Time) int
}

// SessionJanitor периодически удаляет неактивные сессии поиска
type SessionJanitor struct {
	*worker.BaseWorker
	evictor  Evictor
	interval time.Duration
	clock    func() time.Time
}

func NewSessionJanitor(evictor Evictor, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SessionJanitor{
		BaseWorker: worker.NewBaseWorker("session-janitor", "", logger),
		evictor:    evictor,
		interval:   interval,
		clock:      time.Now,
	}
}

// Start runs a sweep every interval until stopped.
func (j *SessionJanitor) Start(ctx context.Context) error {
	j.Logger().Info("Starting session janitor", zap.Duration("interval", j.interval))

	for j.Pause(ctx, j.interval) {
		j.Sweep()
	}

	if ctx.Err() != nil && !j.IsStopped() {
		return ctx.Err()
	}
	return nil
}

// Sweep evicts idle sessions once and returns how many were removed.
func (j *SessionJanitor) Sweep() int {
	n := j.evictor.EvictIdle(j.clock())
	if n > 0 {
		j.Logger().Info("Idle finder sessions evicted", zap.Int("count", n))
	}
	return n
}
