package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sorenlabs/soren/core"
)

const pdfMIMEType = "application/pdf"

// GenerationFlow drives one document upload through the injected strategy.
//
// The machine has three states: initial, loading and success. A failed run
// returns to initial with its partial progress discarded; there is no
// retained failure state. Each submission gets a job token, and progress or
// completion carrying a stale token is dropped, so a response that arrives
// after a reset or a newer submission can never corrupt the live job.
type GenerationFlow struct {
	mu      sync.Mutex
	job     core.GenerationJob
	token   uint64
	renewed []func()

	strategy core.GenerationStrategy
	router   core.DocumentRouter
	timeout  time.Duration
	log      *zap.Logger
}

func NewGenerationFlow(strategy core.GenerationStrategy, router core.DocumentRouter, timeout time.Duration, log *zap.Logger) *GenerationFlow {
	if timeout <= 0 {
		timeout = core.DefaultGenerationTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &GenerationFlow{
		job:      core.GenerationJob{State: core.JobInitial},
		strategy: strategy,
		router:   router,
		timeout:  timeout,
		log:      log,
	}
}

// OnRenew registers a callback fired whenever the live job is replaced:
// on reset and on a newly completed run. The Q&A flow uses it to drop the
// exchange tied to the previous video.
func (f *GenerationFlow) OnRenew(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.renewed = append(f.renewed, fn)
}

// Job returns a snapshot of the live job.
func (f *GenerationFlow) Job() core.GenerationJob {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.job
}

// Submit validates the upload and runs the generation strategy to completion.
// Non-PDF uploads fail with core.ErrUnsupportedFileType and leave the state
// untouched. The run is bounded by the configured timeout so a lost backend
// response cannot leave the flow stuck in loading.
func (f *GenerationFlow) Submit(ctx context.Context, upload core.FileUpload) (core.GenerationJob, error) {
	if upload.ContentType != pdfMIMEType {
		f.log.Warn("rejected upload", zap.String("file", upload.Name), zap.String("contentType", upload.ContentType))
		return f.Job(), core.ErrUnsupportedFileType
	}

	f.mu.Lock()
	f.token++
	token := f.token
	f.job = core.GenerationJob{
		State:    core.JobLoading,
		FileName: upload.Name,
		FileSize: upload.Size,
	}
	route := f.router.Route(upload.Name)
	f.mu.Unlock()

	f.log.Info("generation started",
		zap.String("file", upload.Name),
		zap.String("videoId", route.VideoID),
	)

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	result, err := f.strategy.Generate(ctx, upload, route, func(stage string, percent int) {
		f.applyProgress(token, stage, percent)
	})
	if err != nil {
		f.fail(token, err)
		return f.Job(), fmt.Errorf("generation failed: %w", err)
	}
	if result == nil || result.VideoURL == "" {
		f.fail(token, core.ErrUploadRejected)
		return f.Job(), fmt.Errorf("generation failed: %w", core.ErrUploadRejected)
	}

	f.complete(token, result)
	return f.Job(), nil
}

// Reset discards the live job and returns the flow to initial. Any run still
// in flight keeps its now-stale token and its outcome is dropped on arrival.
func (f *GenerationFlow) Reset() core.GenerationJob {
	f.mu.Lock()
	f.token++
	f.job = core.GenerationJob{State: core.JobInitial}
	job := f.job
	hooks := append([]func(){}, f.renewed...)
	f.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
	return job
}

// applyProgress records a stage update. Progress is strictly increasing
// within one job; late or lower values are ignored.
func (f *GenerationFlow) applyProgress(token uint64, stage string, percent int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token != f.token || f.job.State != core.JobLoading {
		return
	}
	if percent <= f.job.Progress && f.job.Progress > 0 {
		return
	}
	f.job.Stage = stage
	f.job.Progress = percent
}

func (f *GenerationFlow) complete(token uint64, result *core.GenerationResult) {
	f.mu.Lock()
	if token != f.token || f.job.State != core.JobLoading {
		f.mu.Unlock()
		f.log.Debug("discarded stale completion", zap.String("videoId", result.VideoID))
		return
	}
	f.job.State = core.JobSuccess
	f.job.Stage = ""
	f.job.Progress = 100
	f.job.VideoURL = result.VideoURL
	f.job.VideoID = result.VideoID
	hooks := append([]func(){}, f.renewed...)
	f.mu.Unlock()

	f.log.Info("generation succeeded", zap.String("videoId", result.VideoID))
	for _, fn := range hooks {
		fn()
	}
}

func (f *GenerationFlow) fail(token uint64, cause error) {
	f.mu.Lock()
	if token != f.token || f.job.State != core.JobLoading {
		f.mu.Unlock()
		return
	}
	f.job = core.GenerationJob{State: core.JobInitial}
	f.mu.Unlock()

	f.log.Warn("generation failed", zap.Error(cause))
}
