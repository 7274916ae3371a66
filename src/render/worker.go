package render

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/recall-labs/go-recall/src/concurrent"
)

const progressInterval = 10

// Job describes one simulated video-processing run.
type Job struct {
	ID          string
	Path        string
	Preset      Preset
	TotalFrames int
	FrameDelay  time.Duration
}

// NewJob builds a job for the given input path.
func NewJob(path string, preset Preset, totalFrames int) Job {
	if totalFrames <= 0 {
		totalFrames = 100
	}
	return Job{
		ID:          uuid.NewString(),
		Path:        path,
		Preset:      preset,
		TotalFrames: totalFrames,
		FrameDelay:  10 * time.Millisecond,
	}
}

// Worker runs simulated frame processing, reporting progress every ten
// frames the way the original pipeline did.
type Worker struct {
	log *logrus.Logger
}

func NewWorker(log *logrus.Logger) *Worker {
	if log == nil {
		log = logrus.New()
	}
	return &Worker{log: log}
}

// Process ticks through the job's frames, honoring cancellation between
// frames. It returns the number of frames completed.
func (w *Worker) Process(ctx context.Context, job Job) (int, error) {
	start := time.Now()
	for processed := 1; processed <= job.TotalFrames; processed++ {
		select {
		case <-ctx.Done():
			return processed - 1, ctx.Err()
		case <-time.After(job.FrameDelay):
		}
		if processed%progressInterval == 0 {
			w.log.WithFields(logrus.Fields{
				"job":     job.ID,
				"path":    job.Path,
				"frames":  processed,
				"total":   job.TotalFrames,
				"elapsed": time.Since(start).Round(100 * time.Millisecond).String(),
			}).Info("render progress")
		}
	}
	return job.TotalFrames, nil
}

// ProcessBatch runs several jobs through a bounded worker pool.
func (w *Worker) ProcessBatch(ctx context.Context, jobs []Job, maxConcurrency int) error {
	return concurrent.ParallelForEach(ctx, jobs, func(job Job) error {
		_, err := w.Process(ctx, job)
		return err
	}, maxConcurrency)
}
