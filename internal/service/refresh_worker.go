package service

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"call-metrics-service/internal/model"
)

// Refresher is the slice of DashboardService the worker needs.
type Refresher interface {
	Refresh(ctx context.Context) (model.RefreshResult, error)
}

type refreshWorker struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	log       *logrus.Entry
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewRefreshWorker starts a background loop that re-pulls the source on a
// fixed interval so dashboard reads always hit a warm snapshot.
func NewRefreshWorker(refresher Refresher, interval, timeout time.Duration, log *logrus.Entry) *refreshWorker {
	worker := &refreshWorker{
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
		log:       log,
		stop:      make(chan struct{}),
	}
	worker.wg.Add(1)
	go worker.startLoop()
	return worker
}

// Shutdown stops the loop and waits for an in-flight refresh to finish.
func (w *refreshWorker) Shutdown() {
	close(w.stop)
	w.wg.Wait()
	w.log.Info("refresh worker stopped")
}

func (w *refreshWorker) startLoop() {
	defer w.wg.Done()

	// Warm the snapshot right away instead of waiting a full interval.
	w.refreshOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refreshOnce()
		case <-w.stop:
			return
		}
	}
}

func (w *refreshWorker) refreshOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	result, err := w.refresher.Refresh(ctx)
	if err != nil {
		// Keep serving the previous snapshot; the next tick retries.
		w.log.WithError(err).Error("scheduled refresh failed")
		return
	}
	w.log.WithFields(logrus.Fields{
		"source":  result.Source,
		"records": result.RecordCount,
	}).Debug("scheduled refresh completed")
}
