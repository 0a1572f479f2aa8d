package services

import (
	"context"
	"time"

	"github.com/sorenlabs/soren/core"
)

// SimulatedStep is one stage of the simulated generation run.
type SimulatedStep struct {
	Label   string
	Delay   time.Duration
	Percent int
}

// DefaultSimulatedSteps mirrors the stages a real generation run goes
// through, with latency small enough for a live demo.
func DefaultSimulatedSteps() []SimulatedStep {
	return []SimulatedStep{
		{Label: "Analyzing PDF...", Delay: 600 * time.Millisecond, Percent: 20},
		{Label: "Extracting concepts...", Delay: 800 * time.Millisecond, Percent: 50},
		{Label: "Generating animation...", Delay: 1000 * time.Millisecond, Percent: 80},
		{Label: "Finalizing...", Delay: 400 * time.Millisecond, Percent: 100},
	}
}

// SimulatedStrategy walks a fixed ordered step sequence with no network call
// and resolves the result from the document route's pre-rendered video.
type SimulatedStrategy struct {
	Steps []SimulatedStep

	// Sleep is injectable for tests; nil means a context-aware time.Sleep.
	Sleep func(ctx context.Context, d time.Duration) error
}

var _ core.GenerationStrategy = (*SimulatedStrategy)(nil)

func (s *SimulatedStrategy) Generate(ctx context.Context, _ core.FileUpload, route core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error) {
	steps := s.Steps
	if len(steps) == 0 {
		steps = DefaultSimulatedSteps()
	}
	sleep := s.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	for _, step := range steps {
		progress(step.Label, step.Percent)
		if err := sleep(ctx, step.Delay); err != nil {
			return nil, err
		}
	}

	return &core.GenerationResult{
		VideoURL: route.VideoPath,
		VideoID:  route.VideoID,
	}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// DelegatedStrategy uploads the document to the backend service, which
// performs the actual generation and reports the resulting video.
type DelegatedStrategy struct {
	Client core.Uploader
}

var _ core.GenerationStrategy = (*DelegatedStrategy)(nil)

func (s *DelegatedStrategy) Generate(ctx context.Context, upload core.FileUpload, _ core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error) {
	progress("Uploading...", 5)
	return s.Client.Upload(ctx, upload)
}
