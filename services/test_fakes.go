package services

import (
	"context"
	"sync"

	"github.com/sorenlabs/soren/core"
)

// FakeBackend is a test-only fake implementing core.Uploader and
// core.DoubtClient. It records calls and exposes error/response fields for
// behavior injection.
type FakeBackend struct {
	mu sync.Mutex

	uploadErr    error
	uploadResult *core.GenerationResult
	uploadCalls  int

	contextErr   error
	contextDoc   *core.DocumentContext
	contextCalls int
	lastContext  core.ContextRequest

	doubtErr    error
	doubtAnswer *core.Answer
	doubtCalls  int
	lastDoubt   core.DoubtRequest
}

var (
	_ core.Uploader    = (*FakeBackend)(nil)
	_ core.DoubtClient = (*FakeBackend)(nil)
)

func NewFakeBackend() *FakeBackend {
	return &FakeBackend{
		uploadResult: &core.GenerationResult{VideoURL: "/output/test/video.mp4", VideoID: "video_test"},
		contextDoc:   &core.DocumentContext{PDFText: "pdf text", ManimCode: "manim code"},
		doubtAnswer:  &core.Answer{Text: "an answer"},
	}
}

func (f *FakeBackend) Upload(_ context.Context, _ core.FileUpload) (*core.GenerationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploadCalls++
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	return f.uploadResult, nil
}

func (f *FakeBackend) FetchContext(_ context.Context, req core.ContextRequest) (*core.DocumentContext, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contextCalls++
	f.lastContext = req
	if f.contextErr != nil {
		return nil, f.contextErr
	}
	return f.contextDoc, nil
}

func (f *FakeBackend) AskDoubt(_ context.Context, req core.DoubtRequest) (*core.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doubtCalls++
	f.lastDoubt = req
	if f.doubtErr != nil {
		return nil, f.doubtErr
	}
	return f.doubtAnswer, nil
}

// FakeVerifier is a test-only core.IdentityVerifier returning a canned
// assertion or error.
type FakeVerifier struct {
	assertion *core.IdentityAssertion
	err       error
}

func (f *FakeVerifier) Verify(string) (*core.IdentityAssertion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assertion, nil
}
