package worker

import (
	"time"

	"github.com/Xunop/aldiaa/internal/log"
	"github.com/Xunop/aldiaa/internal/model"
	"go.uber.org/zap"
)

// SyncWorker pretends to push the catalog somewhere. It contacts nothing.
type SyncWorker struct {
	id    int
	delay time.Duration
	pool  *SyncPool
}

func (w *SyncWorker) Run(c <-chan model.SyncJob) {
	log.Debug("Sync worker started", zap.Int("worker_id", w.id))
	for job := range c {
		log.Debug("Syncing",
			zap.Int("worker_id", w.id),
			zap.String("job_id", job.ID),
			zap.String("user_id", job.UserID),
			zap.String("reason", job.Reason))

		timer := time.NewTimer(w.delay)
		select {
		case <-timer.C:
			log.Info("Sync finished", zap.String("job_id", job.ID), zap.String("user_id", job.UserID))
		case <-w.pool.stop:
			timer.Stop()
		}
		w.pool.done()
	}
	log.Debug("Sync worker stopped", zap.Int("worker_id", w.id))
}
