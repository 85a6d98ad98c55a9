package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/document"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/hermes"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/review"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/store"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/transcript"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeBackend struct {
	result *document.ExtractionResult
	err    error
	// wait, when set, blocks Extract until closed or ctx is done.
	wait chan struct{}
}

func (f *fakeBackend) Extract(ctx context.Context, _ transcript.Input) (*document.ExtractionResult, error) {
	if f.wait != nil {
		select {
		case <-f.wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.result, f.err
}

func (f *fakeBackend) Name() string { return "fake" }

type fakeRuns struct {
	mu   sync.Mutex
	runs []store.Run
}

func (f *fakeRuns) RecordRun(_ context.Context, r store.Run) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs = append(f.runs, r)
	return nil
}

type published struct {
	subject string
	data    any
}

type fakeBus struct {
	mu   sync.Mutex
	msgs []published
}

func (f *fakeBus) Publish(subject string, data any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, published{subject, data})
	return nil
}

func (f *fakeBus) subjects() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.msgs {
		out = append(out, m.subject)
	}
	return out
}

func sampleInput(n int) transcript.Input {
	segs := make([]transcript.Segment, n)
	for i := range segs {
		segs[i] = transcript.Segment{Time: "00:00", Speaker: "Gydytojas", Text: "tekstas"}
	}
	return transcript.Input{Transcript: segs}
}

func sampleResult() *document.ExtractionResult {
	return &document.ExtractionResult{Document: document.Document{
		Allergies: []document.Allergy{{Type: "vaistai", Description: "penicillin", SourceSegments: []int{2}}},
		VitalSigns: &document.VitalSigns{Items: []document.VitalSignItem{
			{Name: "Temperatūra", Value: "36.6", SourceSegments: []int{6, 12}},
		}},
	}}
}

func newTestProcessor(backend *fakeBackend, runs *fakeRuns, bus *fakeBus) *Processor {
	logger := discardLogger()
	var events Publisher
	if bus != nil {
		events = bus
	}
	var recorder RunRecorder
	if runs != nil {
		recorder = runs
	}
	session := review.NewSession(category.Default(), NewObserver(events, logger), logger)
	return New(session, backend, recorder, events, time.Second, logger)
}

func TestSubmit_Success(t *testing.T) {
	runs := &fakeRuns{}
	bus := &fakeBus{}
	p := newTestProcessor(&fakeBackend{result: sampleResult()}, runs, bus)

	out, err := p.Submit(context.Background(), sampleInput(8))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), out.Generation)
	assert.Equal(t, 2, out.Statements)
	assert.Equal(t, []int{12}, out.OutOfRange)

	v := p.Session().Snapshot()
	assert.Equal(t, review.StatusReady, v.Status)
	assert.Equal(t, 2, v.Total)

	require.Len(t, runs.runs, 1)
	run := runs.runs[0]
	assert.Equal(t, out.RunID, run.ID)
	assert.Equal(t, store.RunCompleted, run.Status)
	assert.Equal(t, map[string]int{"vital_signs": 1, "allergies": 1}, run.Categories)
	assert.Equal(t, 8, run.Segments)

	assert.Contains(t, bus.subjects(), hermes.SubjectExtractionCompleted)
}

func TestSubmit_Failure(t *testing.T) {
	runs := &fakeRuns{}
	bus := &fakeBus{}
	p := newTestProcessor(&fakeBackend{err: errors.New("quota exceeded")}, runs, bus)

	_, err := p.Submit(context.Background(), sampleInput(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.NotErrorIs(t, err, ErrSuperseded)

	v := p.Session().Snapshot()
	assert.Equal(t, review.StatusFailed, v.Status)
	assert.Equal(t, "extraction failed: quota exceeded", v.Error)
	assert.Empty(t, v.Sections)

	require.Len(t, runs.runs, 1)
	assert.Equal(t, store.RunFailed, runs.runs[0].Status)
	assert.Contains(t, bus.subjects(), hermes.SubjectExtractionFailed)
}

func TestSubmit_FailureClearsPreviousResult(t *testing.T) {
	backend := &fakeBackend{result: sampleResult()}
	p := newTestProcessor(backend, nil, nil)

	_, err := p.Submit(context.Background(), sampleInput(8))
	require.NoError(t, err)

	backend.result, backend.err = nil, errors.New("boom")
	_, err = p.Submit(context.Background(), sampleInput(8))
	require.Error(t, err)

	v := p.Session().Snapshot()
	assert.Equal(t, review.StatusFailed, v.Status)
	assert.Equal(t, 0, v.Total)
}

func TestSubmit_Timeout(t *testing.T) {
	backend := &fakeBackend{wait: make(chan struct{})}
	p := newTestProcessor(backend, nil, nil)
	p.timeout = 10 * time.Millisecond

	_, err := p.Submit(context.Background(), sampleInput(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSubmit_StaleResultDiscarded(t *testing.T) {
	slow := &fakeBackend{result: sampleResult(), wait: make(chan struct{})}
	p := newTestProcessor(slow, nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Submit(context.Background(), sampleInput(8))
		done <- err
	}()

	require.Eventually(t, func() bool {
		return p.Session().Snapshot().Status == review.StatusPending
	}, time.Second, 5*time.Millisecond)

	// A second submission starts while the first is still extracting.
	gen := p.Session().Begin(transcript.New(sampleInput(2).Transcript))
	close(slow.wait)

	err := <-done
	assert.ErrorIs(t, err, ErrSuperseded)

	v := p.Session().Snapshot()
	assert.Equal(t, gen, v.Generation)
	assert.Equal(t, review.StatusPending, v.Status)
	assert.Len(t, v.Transcript, 2)
}

func TestObserverPublishesHighlightAndNavigation(t *testing.T) {
	bus := &fakeBus{}
	p := newTestProcessor(&fakeBackend{result: sampleResult()}, nil, bus)
	_, err := p.Submit(context.Background(), sampleInput(8))
	require.NoError(t, err)

	_, err = p.Session().Hover("allergies", 0)
	require.NoError(t, err)
	_, ok, err := p.Session().Click("allergies", 0)
	require.NoError(t, err)
	require.True(t, ok)

	bus.mu.Lock()
	defer bus.mu.Unlock()

	var highlight *hermes.HighlightChanged
	var nav *hermes.Navigate
	for _, m := range bus.msgs {
		switch d := m.data.(type) {
		case hermes.HighlightChanged:
			highlight = &d
		case hermes.Navigate:
			nav = &d
		}
	}
	require.NotNil(t, highlight)
	assert.Equal(t, []int{2}, highlight.Segments)
	require.NotNil(t, nav)
	assert.Equal(t, "segment-2", nav.Anchor)
}

func TestNewObserver_NilBus(t *testing.T) {
	assert.Nil(t, NewObserver(nil, discardLogger()))
}

func TestHandleTranscriptSubmitted(t *testing.T) {
	p := newTestProcessor(&fakeBackend{result: sampleResult()}, nil, nil)

	p.HandleTranscriptSubmitted(hermes.SubjectTranscriptSubmitted, []byte(`not json`))
	assert.Equal(t, review.StatusIdle, p.Session().Snapshot().Status)

	p.HandleTranscriptSubmitted(hermes.SubjectTranscriptSubmitted, []byte(`{"transcript": [
		{"time": "00:01", "speaker": "Gydytojas", "text": "Labas"},
		{"time": "00:02", "speaker": "Pacientas", "text": "Laba diena"},
		{"time": "00:03", "speaker": "Pacientas", "text": "Alergija penicilinui"}
	]}`))
	v := p.Session().Snapshot()
	assert.Equal(t, review.StatusReady, v.Status)
	assert.Len(t, v.Transcript, 3)
}

func TestExtract_LeavesSessionUntouched(t *testing.T) {
	p := newTestProcessor(&fakeBackend{result: sampleResult()}, nil, nil)

	result, err := p.Extract(context.Background(), sampleInput(8))
	require.NoError(t, err)
	assert.Len(t, result.Document.Allergies, 1)
	assert.Equal(t, review.StatusIdle, p.Session().Snapshot().Status)
}
