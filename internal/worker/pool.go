package worker

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"go.uber.org/zap"
)

type WorkPool interface {
	Push(job model.SyncJob)
}

// SyncPool runs the mock sync. Jobs only keep the indicator on for a while.
type SyncPool struct {
	queue    chan model.SyncJob
	stop     chan struct{}
	inFlight atomic.Int32
	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
}

// NewSyncPool creates a pool of background sync workers.
func NewSyncPool(size int, delay time.Duration) *SyncPool {
	if size <= 0 {
		size = 1
	}
	pool := &SyncPool{
		queue: make(chan model.SyncJob, size*8),
		stop:  make(chan struct{}),
	}

	for i := 0; i < size; i++ {
		var worker Worker = &SyncWorker{id: i, delay: delay, pool: pool}
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			worker.Run(pool.queue)
		}()
	}
	return pool
}

// Implement WorkPool interface
func (p *SyncPool) Push(job model.SyncJob) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		log.Debug("Sync pool closed, dropping job", zap.String("job_id", job.ID))
		return
	}

	p.inFlight.Add(1)
	select {
	case p.queue <- job:
	default:
		// A sync is already pending, the indicator is on anyway
		p.inFlight.Add(-1)
		log.Debug("Sync queue full, dropping job", zap.String("job_id", job.ID))
	}
}

// Syncing reports whether a sync job is queued or running.
func (p *SyncPool) Syncing() bool {
	return p.inFlight.Load() > 0
}

// Close stops the workers. Pending jobs are abandoned.
func (p *SyncPool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.stop)
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *SyncPool) done() {
	p.inFlight.Add(-1)
}
