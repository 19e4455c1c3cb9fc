package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/streamforge/transcoder/internal/config"
	"github.com/streamforge/transcoder/internal/models"
	"github.com/streamforge/transcoder/internal/videos"
	"github.com/streamforge/transcoder/pkg/logger"
	"github.com/streamforge/transcoder/pkg/utils"
)

// Outcome classifies a single poll of the encode queue.
type Outcome string

const (
	OutcomeNoJob     Outcome = "no_job"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// EncodeResult reports what one queue poll did. Video is the encoding that
// was claimed, nil when no job was taken.
type EncodeResult struct {
	Outcome Outcome
	Video   *models.Video
	Err     error
}

// Hooks are optional lifecycle notifications. Any of the fields may be nil.
type Hooks struct {
	Processing func(video *models.Video)
	Success    func(video *models.Video)
	Error      func(video *models.Video)
}

// Transcoder runs a recipe template with the given options.
type Transcoder interface {
	Execute(ctx context.Context, recipe string, opts map[string]string) error
}

// Worker polls the record store for queued encodings and runs them.
type Worker struct {
	cfg        *config.Config
	logger     logger.Logger
	videoRepo  videos.Repository
	awsRepo    videos.AWSRepository
	transcoder Transcoder
	hooks      Hooks
	wg         sync.WaitGroup
}

func NewWorker(
	cfg *config.Config,
	logger logger.Logger,
	videoRepo videos.Repository,
	awsRepo videos.AWSRepository,
	transcoder Transcoder,
	hooks Hooks,
) *Worker {
	return &Worker{
		cfg:        cfg,
		logger:     logger,
		videoRepo:  videoRepo,
		awsRepo:    awsRepo,
		transcoder: transcoder,
		hooks:      hooks,
	}
}

// Start launches the configured number of poll loops. Loops stop when ctx is
// cancelled; Wait blocks until they have drained.
func (w *Worker) Start(ctx context.Context) {
	count := w.cfg.Worker.WorkerCount
	if count < 1 {
		count = 1
	}
	w.logger.Infof("starting %d encode workers", count)
	for i := 0; i < count; i++ {
		w.wg.Add(1)
		go w.run(ctx)
	}
}

func (w *Worker) Wait() {
	w.wg.Wait()
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	pollInterval := time.Duration(w.cfg.Worker.PollInterval) * time.Second
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	for {
		if ctx.Err() != nil {
			return
		}

		if w.cfg.Worker.MaxCPUUsage > 0 {
			if ok, usage := utils.CheckCPUUsage(w.cfg.Worker.MaxCPUUsage); !ok {
				w.logger.Debugf("cpu usage %.2f%% above %.0f%%, backing off",
					usage, w.cfg.Worker.MaxCPUUsage)
				if !sleepCtx(ctx, pollInterval) {
					return
				}
				continue
			}
		}

		result := w.EncodeNext(ctx)
		if result.Outcome == OutcomeNoJob {
			if result.Err != nil {
				w.logger.Errorf("queue poll failed: %v", result.Err)
			}
			if !sleepCtx(ctx, pollInterval) {
				return
			}
		}
	}
}

// EncodeNext takes at most one queued encoding and runs it to completion.
// The claim is a conditional update, so two workers polling the same queue
// cannot both run the same encoding; the loser reports no job.
func (w *Worker) EncodeNext(ctx context.Context) EncodeResult {
	if !sleepCtx(ctx, time.Duration(w.cfg.Worker.RecordSettleDelay)*time.Second) {
		return EncodeResult{Outcome: OutcomeNoJob}
	}

	next, err := w.videoRepo.NextQueued(ctx)
	if err != nil {
		return EncodeResult{Outcome: OutcomeNoJob, Err: err}
	}
	if next == nil {
		return EncodeResult{Outcome: OutcomeNoJob}
	}

	claimed, err := w.videoRepo.ClaimQueued(ctx, next.VideoID)
	if err != nil {
		return EncodeResult{Outcome: OutcomeNoJob, Err: err}
	}
	if claimed == nil {
		w.logger.Debugf("encoding %s claimed by another worker", next.VideoID)
		return EncodeResult{Outcome: OutcomeNoJob}
	}

	if w.hooks.Processing != nil {
		w.hooks.Processing(claimed)
	}

	if !sleepCtx(ctx, time.Duration(w.cfg.Worker.StoreSettleDelay)*time.Second) {
		return EncodeResult{Outcome: OutcomeNoJob}
	}

	encoded, err := w.Encode(ctx, claimed)
	if err == nil {
		if w.hooks.Success != nil {
			w.hooks.Success(encoded)
		}
		return EncodeResult{Outcome: OutcomeSucceeded, Video: encoded, Err: nil}
	}

	var encErr *models.EncodingError
	if errors.As(err, &encErr) {
		if w.hooks.Error != nil {
			w.hooks.Error(claimed)
		}
	} else {
		w.reportUnexpected(ctx, claimed, err)
	}
	return EncodeResult{Outcome: OutcomeFailed, Video: claimed, Err: err}
}

// reportUnexpected dumps the encoding and its parent when a failure was not a
// plain transcode error, so an operator can reconstruct the state.
func (w *Worker) reportUnexpected(ctx context.Context, video *models.Video, cause error) {
	w.logger.Errorf("unexpected failure encoding %s: %v", video.VideoID, cause)
	w.logger.Errorf("encoding state: %+v", video)
	if parent, err := w.videoRepo.GetVideoByID(ctx, video.Parent); err == nil && parent != nil {
		w.logger.Errorf("parent state: %+v", parent)
	}
}

// sleepCtx sleeps for d unless ctx is cancelled first. Returns false on
// cancellation.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
