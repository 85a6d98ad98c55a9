package processor

import (
	"log/slog"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/hermes"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/review"
)

type busObserver struct {
	events Publisher
	logger *slog.Logger
}

// NewObserver forwards session highlight and navigation changes to the event
// bus. It returns nil when events is nil.
func NewObserver(events Publisher, logger *slog.Logger) review.Observer {
	if events == nil {
		return nil
	}
	return &busObserver{events: events, logger: logger}
}

func (o *busObserver) HighlightChanged(sessionID string, segments []int) {
	if segments == nil {
		segments = []int{}
	}
	if err := o.events.Publish(hermes.SubjectHighlight, hermes.HighlightChanged{
		SessionID: sessionID,
		Segments:  segments,
	}); err != nil {
		o.logger.Error("failed to publish highlight", "error", err)
	}
}

func (o *busObserver) Navigated(sessionID string, n review.Navigation) {
	if err := o.events.Publish(hermes.SubjectNavigate, hermes.Navigate{
		SessionID: sessionID,
		Segment:   n.Segment,
		Anchor:    n.Anchor,
	}); err != nil {
		o.logger.Error("failed to publish navigation", "error", err)
	}
}
