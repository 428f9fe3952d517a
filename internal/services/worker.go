package services

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"alfredoptarigan/recruitment-intake/internal/models"
	"alfredoptarigan/recruitment-intake/internal/repositories"
)

// InspectionJob points the worker at a freshly stored attachment.
type InspectionJob struct {
	ApplicationID string
	Category      string
	Path          string
}

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(job InspectionJob) bool
}

type worker struct {
	repo        repositories.ApplicationRepository
	inspector   CVInspector
	log         *zap.Logger
	jobQueue    chan InspectionJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

func NewWorker(
	repo repositories.ApplicationRepository,
	inspector CVInspector,
	log *zap.Logger,
	concurrency int,
	queueSize int,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = 100
	}
	return &worker{
		repo:        repo,
		inspector:   inspector,
		log:         log,
		jobQueue:    make(chan InspectionJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.log.Info("starting inspection worker", zap.Int("concurrency", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs still queued are abandoned and their
// attachments stay pending.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping inspection worker")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("inspection worker stopped")
	})
}

// EnqueueJob implements Worker. It never blocks the caller: when the queue
// is full or the worker is stopped the job is dropped and false is returned.
func (w *worker) EnqueueJob(job InspectionJob) bool {
	select {
	case <-w.stopChan:
		w.log.Warn("worker stopped, dropping inspection job", zap.String("application_id", job.ApplicationID))
		return false
	default:
	}

	select {
	case w.jobQueue <- job:
		w.log.Debug("inspection job enqueued", zap.String("application_id", job.ApplicationID), zap.String("category", job.Category))
		return true
	default:
		w.log.Warn("inspection queue full, dropping job", zap.String("application_id", job.ApplicationID))
		return false
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ctx.Done():
			return
		case job := <-w.jobQueue:
			w.process(workerID, job)
		}
	}
}

func (w *worker) process(workerID int, job InspectionJob) {
	log := w.log.With(
		zap.Int("worker", workerID),
		zap.String("application_id", job.ApplicationID),
		zap.String("category", job.Category),
	)

	result := w.inspect(job.Path)
	if err := w.repo.UpdateInspection(job.ApplicationID, job.Category, result); err != nil {
		log.Error("failed to store inspection result", zap.Error(err))
		return
	}

	log.Info("attachment inspected",
		zap.String("status", string(result.Status)),
		zap.Int("pages", result.PageCount),
	)
}

func (w *worker) inspect(path string) (result *models.InspectionResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &models.InspectionResult{
				Status: models.InspectionFailed,
				Error:  fmt.Sprintf("inspection panicked: %v", r),
			}
		}
	}()

	return w.inspector.Inspect(path)
}
