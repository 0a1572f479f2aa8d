package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sorenlabs/soren/core"
)

// QAFlow answers questions about the currently generated video. Each round
// resolves the document context first and only then asks for an answer; a
// context failure never reaches the answer endpoint. The exchange lives only
// while the generation job stays in success and is dropped when the job is
// renewed.
type QAFlow struct {
	mu       sync.Mutex
	exchange *core.QAExchange

	flow   *GenerationFlow
	router core.DocumentRouter
	client core.DoubtClient
	log    *zap.Logger
}

func NewQAFlow(flow *GenerationFlow, router core.DocumentRouter, client core.DoubtClient, log *zap.Logger) *QAFlow {
	if log == nil {
		log = zap.NewNop()
	}
	qa := &QAFlow{
		flow:   flow,
		router: router,
		client: client,
		log:    log,
	}
	flow.OnRenew(qa.Clear)
	return qa
}

// Ask submits a question about the active video at the given playback
// position. A blank question is a no-op: no request is made, no state
// changes, and no error surfaces. Failed rounds keep the question and the
// failure message; the video itself is unaffected.
func (q *QAFlow) Ask(ctx context.Context, question string, playbackSeconds float64) (*core.QAExchange, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, nil
	}

	job := q.flow.Job()
	if job.State != core.JobSuccess {
		return nil, core.ErrNoActiveVideo
	}
	route := q.router.Route(job.FileName)

	q.log.Info("question asked",
		zap.String("videoId", job.VideoID),
		zap.Float64("timestamp", playbackSeconds),
	)

	docCtx, err := q.client.FetchContext(ctx, core.ContextRequest{
		Question:     question,
		PDFName:      route.ContextPDF,
		OutputFolder: route.OutputFolder,
		VideoID:      job.VideoID,
	})
	if err != nil {
		return q.recordFailure(question, err), err
	}

	answer, err := q.client.AskDoubt(ctx, core.DoubtRequest{
		Question:     question,
		VideoID:      job.VideoID,
		Timestamp:    playbackSeconds,
		Context:      *docCtx,
		PDFName:      route.ContextPDF,
		OutputFolder: route.OutputFolder,
	})
	if err != nil {
		return q.recordFailure(question, err), err
	}

	q.mu.Lock()
	q.exchange = &core.QAExchange{Question: question, Answer: answer}
	exchange := *q.exchange
	q.mu.Unlock()
	return &exchange, nil
}

// Clear drops the question, answer and error together, as one update.
func (q *QAFlow) Clear() {
	q.mu.Lock()
	q.exchange = nil
	q.mu.Unlock()
}

// Exchange returns a snapshot of the current round, or nil when none exists.
func (q *QAFlow) Exchange() *core.QAExchange {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.exchange == nil {
		return nil
	}
	exchange := *q.exchange
	return &exchange
}

func (q *QAFlow) recordFailure(question string, err error) *core.QAExchange {
	msg := err.Error()
	if errors.Is(err, core.ErrBackendUnreachable) {
		msg = fmt.Sprintf("%s. Make sure it's running and reachable.", core.ErrBackendUnreachable)
	}

	q.mu.Lock()
	q.exchange = &core.QAExchange{Question: question, Err: msg}
	exchange := *q.exchange
	q.mu.Unlock()

	q.log.Warn("question failed", zap.Error(err))
	return &exchange
}
