package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sorenlabs/soren/core"
)

// strategyFunc adapts a function to core.GenerationStrategy for tests.
type strategyFunc func(ctx context.Context, upload core.FileUpload, route core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error)

func (f strategyFunc) Generate(ctx context.Context, upload core.FileUpload, route core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error) {
	return f(ctx, upload, route, progress)
}

func pdfUpload(name string) core.FileUpload {
	return core.FileUpload{Name: name, Size: 1 << 20, ContentType: "application/pdf"}
}

func instantSimulated() *SimulatedStrategy {
	return &SimulatedStrategy{
		Sleep: func(context.Context, time.Duration) error { return nil },
	}
}

// Requirement: only application/pdf uploads start a job; anything else leaves
// the flow in initial with an UnsupportedFileType error.
func TestGenerationFlow_RejectsNonPDF(t *testing.T) {
	flow := NewGenerationFlow(instantSimulated(), DefaultRouter(), 0, nil)

	job, err := flow.Submit(context.Background(), core.FileUpload{
		Name:        "report.pdf",
		ContentType: "text/plain",
	})

	if !errors.Is(err, core.ErrUnsupportedFileType) {
		t.Fatalf("Submit() error = %v, want ErrUnsupportedFileType", err)
	}
	if job.State != core.JobInitial {
		t.Errorf("job state = %q, want initial", job.State)
	}
	if job.FileName != "" || job.Progress != 0 {
		t.Errorf("rejected upload left residue in job: %+v", job)
	}
}

// Requirement: the simulated strategy ends in success with the video identity
// selected by case-insensitive filename routing.
func TestGenerationFlow_SimulatedRouting(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantID   string
	}{
		{name: "lora paper routes to lora video", fileName: "LoRA_paper.pdf", wantID: "video1_lorapaper"},
		{name: "other pdf routes to fallback video", fileName: "randomfile.pdf", wantID: "video2_gag"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			flow := NewGenerationFlow(instantSimulated(), DefaultRouter(), 0, nil)

			job, err := flow.Submit(context.Background(), pdfUpload(test.fileName))
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}

			if job.State != core.JobSuccess {
				t.Fatalf("job state = %q, want success", job.State)
			}
			if job.VideoID != test.wantID {
				t.Errorf("job video id = %q, want %q", job.VideoID, test.wantID)
			}
			if job.VideoURL == "" {
				t.Error("successful job should carry a playable video URL")
			}
			if job.Progress != 100 || job.Stage != "" {
				t.Errorf("successful job progress/stage = %d/%q, want 100/empty", job.Progress, job.Stage)
			}
			if job.FileName != test.fileName {
				t.Errorf("job file name = %q, want %q", job.FileName, test.fileName)
			}
		})
	}
}

// Requirement: a failed run returns the flow to initial and discards partial
// progress; no failure state is retained.
func TestGenerationFlow_FailureReturnsToInitial(t *testing.T) {
	strategy := strategyFunc(func(_ context.Context, _ core.FileUpload, _ core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error) {
		progress("Uploading...", 5)
		return nil, errors.New("backend exploded")
	})
	flow := NewGenerationFlow(strategy, DefaultRouter(), 0, nil)

	job, err := flow.Submit(context.Background(), pdfUpload("report.pdf"))
	if err == nil {
		t.Fatal("Submit() should fail when the strategy fails")
	}
	if job.State != core.JobInitial {
		t.Errorf("job state = %q, want initial", job.State)
	}
	if job.Progress != 0 || job.Stage != "" {
		t.Errorf("failed job kept partial progress: %+v", job)
	}
}

// Requirement: an empty result is a failure, never a success without a
// playable video.
func TestGenerationFlow_EmptyResultFails(t *testing.T) {
	strategy := strategyFunc(func(context.Context, core.FileUpload, core.DocumentRoute, core.ProgressFunc) (*core.GenerationResult, error) {
		return &core.GenerationResult{}, nil
	})
	flow := NewGenerationFlow(strategy, DefaultRouter(), 0, nil)

	job, err := flow.Submit(context.Background(), pdfUpload("report.pdf"))
	if !errors.Is(err, core.ErrUploadRejected) {
		t.Fatalf("Submit() error = %v, want ErrUploadRejected", err)
	}
	if job.State != core.JobInitial {
		t.Errorf("job state = %q, want initial", job.State)
	}
}

// Requirement: progress is strictly increasing within one job; lower or equal
// updates are ignored, and updates after the job ended are dropped.
func TestGenerationFlow_MonotonicProgress(t *testing.T) {
	var flow *GenerationFlow
	var mid core.GenerationJob
	var captured core.ProgressFunc

	strategy := strategyFunc(func(_ context.Context, _ core.FileUpload, _ core.DocumentRoute, progress core.ProgressFunc) (*core.GenerationResult, error) {
		captured = progress
		progress("Analyzing PDF...", 20)
		progress("Regression", 10) // must be ignored
		progress("Extracting concepts...", 50)
		mid = flow.Job()
		return nil, errors.New("stop before completion")
	})
	flow = NewGenerationFlow(strategy, DefaultRouter(), 0, nil)

	_, _ = flow.Submit(context.Background(), pdfUpload("report.pdf"))

	if mid.Progress != 50 || mid.Stage != "Extracting concepts..." {
		t.Errorf("mid-run progress/stage = %d/%q, want 50/Extracting concepts...", mid.Progress, mid.Stage)
	}

	// The run is over; its progress callback carries a stale token now.
	captured("Late", 99)
	if got := flow.Job(); got.State != core.JobInitial || got.Progress != 0 {
		t.Errorf("stale progress mutated job: %+v", got)
	}
}

// Requirement: Reset returns to initial with empty metadata, and an in-flight
// run whose token went stale cannot resurrect the job afterwards.
func TestGenerationFlow_ResetDiscardsStaleCompletion(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	strategy := strategyFunc(func(ctx context.Context, _ core.FileUpload, route core.DocumentRoute, _ core.ProgressFunc) (*core.GenerationResult, error) {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		return &core.GenerationResult{VideoURL: route.VideoPath, VideoID: route.VideoID}, nil
	})
	flow := NewGenerationFlow(strategy, DefaultRouter(), 0, nil)

	done := make(chan core.GenerationJob, 1)
	go func() {
		job, _ := flow.Submit(context.Background(), pdfUpload("report.pdf"))
		done <- job
	}()

	<-started
	flow.Reset()
	close(release)

	if job := <-done; job.State != core.JobInitial {
		t.Errorf("job after stale completion = %+v, want initial", job)
	}
	if got := flow.Job(); got.State != core.JobInitial || got.VideoID != "" || got.FileName != "" {
		t.Errorf("flow job = %+v, want pristine initial", got)
	}
}

// Requirement: from success, Reset always returns to initial with empty file
// metadata.
func TestGenerationFlow_ResetAfterSuccess(t *testing.T) {
	flow := NewGenerationFlow(instantSimulated(), DefaultRouter(), 0, nil)

	if _, err := flow.Submit(context.Background(), pdfUpload("LoRA_paper.pdf")); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	job := flow.Reset()
	if job.State != core.JobInitial || job.FileName != "" || job.VideoURL != "" || job.Progress != 0 {
		t.Errorf("Reset() = %+v, want empty initial job", job)
	}
}

// Requirement: the timeout bounds a run so the flow cannot stay stuck in
// loading; expiry fails back to initial.
func TestGenerationFlow_TimeoutFailsJob(t *testing.T) {
	strategy := &SimulatedStrategy{
		Steps: []SimulatedStep{{Label: "Analyzing PDF...", Delay: time.Hour, Percent: 20}},
	}
	flow := NewGenerationFlow(strategy, DefaultRouter(), 10*time.Millisecond, nil)

	job, err := flow.Submit(context.Background(), pdfUpload("report.pdf"))
	if err == nil {
		t.Fatal("Submit() should fail on timeout")
	}
	if job.State != core.JobInitial {
		t.Errorf("job state after timeout = %q, want initial", job.State)
	}
}
