package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/emiliell/MatchWise/internal/models"
	"github.com/emiliell/MatchWise/internal/repositories"
)

// Worker runs queued pool-match jobs in the background so the company
// flow can return immediately and poll for results.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(jobID uuid.UUID)
}

type worker struct {
	jobRepo     repositories.MatchJobRepository
	matcher     MatcherService
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	jobRepo repositories.MatchJobRepository,
	matcher MatcherService,
	concurrency int,
) Worker {
	return &worker{
		jobRepo:     jobRepo,
		matcher:     matcher,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	// Start worker goroutines
	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Start polling for pending jobs
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(jobID uuid.UUID) {
	select {
	case w.jobQueue <- jobID:
		log.Printf("📥 Match job %s enqueued\n", jobID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue job %s\n", jobID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case jobID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing match job %s\n", workerID, jobID)
			if err := w.runMatchJob(ctx, jobID); err != nil {
				log.Printf("❌ Worker #%d failed match job %s: %v\n", workerID, jobID, err)
			} else {
				log.Printf("✅ Worker #%d completed match job %s\n", workerID, jobID)
			}
		}
	}
}

func (w *worker) runMatchJob(ctx context.Context, jobID uuid.UUID) error {
	if err := w.jobRepo.UpdateStatus(jobID, models.StatusProcessing); err != nil {
		return err
	}

	job, err := w.jobRepo.FindByID(jobID)
	if err != nil {
		w.jobRepo.UpdateError(jobID, err.Error())
		return err
	}

	jobSkills, results, err := w.matcher.MatchPool(ctx, job.ActorEmail, job.JobText)
	if err != nil {
		w.jobRepo.UpdateError(jobID, err.Error())
		return err
	}

	return w.jobRepo.UpdateResult(jobID, jobSkills, results)
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.jobRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending match jobs\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
