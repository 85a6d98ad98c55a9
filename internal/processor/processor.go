package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/extractor"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/hermes"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/normalize"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/review"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/store"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

// ErrSuperseded is returned by Submit when a newer transcript was submitted
// while this one was being extracted. The result has been discarded.
var ErrSuperseded = errors.New("submission superseded by a newer transcript")

// Publisher is the event bus. *hermes.Client satisfies it.
type Publisher interface {
	Publish(subject string, data any) error
}

// RunRecorder persists extraction audit records. *store.Store satisfies it.
type RunRecorder interface {
	RecordRun(ctx context.Context, r store.Run) error
}

// Processor runs the submission pipeline: it resets the review session,
// calls the extraction backend and installs the result.
type Processor struct {
	session *review.Session
	backend extractor.Backend
	runs    RunRecorder
	events  Publisher
	timeout time.Duration
	logger  *slog.Logger
}

// New builds a processor. runs and events may be nil.
func New(session *review.Session, backend extractor.Backend, runs RunRecorder, events Publisher, timeout time.Duration, logger *slog.Logger) *Processor {
	return &Processor{
		session: session,
		backend: backend,
		runs:    runs,
		events:  events,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *Processor) Session() *review.Session { return p.session }

// Outcome summarizes a successful submission.
type Outcome struct {
	RunID      uuid.UUID `json:"run_id"`
	Generation uint64    `json:"generation"`
	Statements int       `json:"statements"`
	OutOfRange []int     `json:"out_of_range,omitempty"`
}

// Submit replaces the reviewed transcript with in and extracts it. The
// previous result is cleared before extraction starts so a failure never
// leaves stale data on screen.
func (p *Processor) Submit(ctx context.Context, in transcript.Input) (Outcome, error) {
	t := in.Model()
	gen := p.session.Begin(t)
	runID := uuid.New()
	started := time.Now().UTC()

	p.logger.Info("processing transcript",
		"run_id", runID,
		"generation", gen,
		"segments", t.Len(),
		"backend", p.backend.Name(),
	)

	result, err := p.extract(ctx, in)
	finished := time.Now().UTC()
	run := store.Run{
		ID:         runID,
		SessionID:  p.session.ID(),
		Generation: gen,
		Backend:    p.backend.Name(),
		Segments:   t.Len(),
		StartedAt:  started,
		FinishedAt: finished,
	}

	if err != nil {
		err = fmt.Errorf("extraction failed: %w", err)
		if !p.session.Fail(gen, err) {
			err = fmt.Errorf("%w: %v", ErrSuperseded, err)
		}
		p.logger.Error("extraction failed", "run_id", runID, "generation", gen, "error", err)

		run.Status = store.RunFailed
		run.Error = err.Error()
		p.record(ctx, run)
		p.publish(hermes.SubjectExtractionFailed, hermes.ExtractionFailed{
			RunID:      runID.String(),
			SessionID:  run.SessionID,
			Generation: gen,
			Backend:    run.Backend,
			Error:      run.Error,
			DurationMS: finished.Sub(started).Milliseconds(),
		})
		return Outcome{}, err
	}

	oor := result.Document.OutOfRange(t.Len())
	if !p.session.Complete(gen, result) {
		return Outcome{}, ErrSuperseded
	}

	sections := normalize.Normalize(&result.Document)
	counts := make(map[string]int, len(sections))
	for _, s := range normalize.NonEmpty(sections) {
		counts[string(s.Key)] = len(s.Statements)
	}
	total := normalize.Total(sections)

	run.Status = store.RunCompleted
	run.Statements = total
	run.Categories = counts
	run.OutOfRange = oor
	p.record(ctx, run)
	p.publish(hermes.SubjectExtractionCompleted, hermes.ExtractionCompleted{
		RunID:      runID.String(),
		SessionID:  run.SessionID,
		Generation: gen,
		Backend:    run.Backend,
		Segments:   t.Len(),
		Statements: total,
		Categories: counts,
		OutOfRange: oor,
		DurationMS: finished.Sub(started).Milliseconds(),
	})

	p.logger.Info("transcript processed",
		"run_id", runID,
		"generation", gen,
		"statements", total,
	)
	return Outcome{RunID: runID, Generation: gen, Statements: total, OutOfRange: oor}, nil
}

// Extract runs the backend without touching the review session.
func (p *Processor) Extract(ctx context.Context, in transcript.Input) (*document.ExtractionResult, error) {
	return p.extract(ctx, in)
}

func (p *Processor) extract(ctx context.Context, in transcript.Input) (*document.ExtractionResult, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	result, err := p.backend.Extract(ctx, in)
	if err != nil {
		return nil, err
	}
	if oor := result.Document.OutOfRange(len(in.Transcript)); len(oor) > 0 {
		p.logger.Warn("extraction references segments outside the transcript",
			"segments", len(in.Transcript),
			"indices", oor,
		)
	}
	return result, nil
}

// HandleTranscriptSubmitted is the NATS handler for ner.transcript.submitted.
func (p *Processor) HandleTranscriptSubmitted(subject string, data []byte) {
	in, err := transcript.Parse(data)
	if err != nil {
		p.logger.Error("rejected transcript submission", "subject", subject, "error", err)
		return
	}

	if _, err := p.Submit(context.Background(), in); err != nil {
		p.logger.Warn("transcript submission did not complete", "subject", subject, "error", err)
	}
}

func (p *Processor) record(ctx context.Context, run store.Run) {
	if p.runs == nil {
		return
	}
	// The request context may already be cancelled by the extraction timeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.runs.RecordRun(ctx, run); err != nil {
		p.logger.Error("failed to record extraction run", "run_id", run.ID, "error", err)
	}
}

func (p *Processor) publish(subject string, data any) {
	if p.events == nil {
		return
	}
	if err := p.events.Publish(subject, data); err != nil {
		p.logger.Error("failed to publish", "subject", subject, "error", err)
	}
}
