package worker // import "github.com/Xunop/aldiaa/internal/worker"

import (
	"github.com/Xunop/aldiaa/internal/model"
)

type Worker interface {
	Run(c <-chan model.SyncJob)
}
