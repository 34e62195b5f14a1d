// Package slog routes pipeline progress events to a structured logger.
package slog

import (
	"log/slog"

	"github.com/fwojciec/docharvest"
)

// Ensure Reporter implements docharvest.Reporter at compile time.
var _ docharvest.Reporter = (*Reporter)(nil)

// Reporter logs pipeline events through log/slog. The pipeline itself
// has no logging dependency; this adapter is injected by the CLI.
type Reporter struct {
	logger *slog.Logger
}

// NewReporter creates a new Reporter.
func NewReporter(logger *slog.Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report implements docharvest.Reporter.
func (r *Reporter) Report(event docharvest.Event) {
	attrs := []any{
		"phase", event.Phase,
		"target", event.Target,
	}
	if event.URL != "" {
		attrs = append(attrs, "url", event.URL)
	}
	if event.Filename != "" {
		attrs = append(attrs, "file", event.Filename)
	}
	if event.Total > 0 {
		attrs = append(attrs, "completed", event.Completed, "total", event.Total)
	}

	switch event.Type {
	case docharvest.EventPhaseStarted:
		r.logger.Info("phase started", attrs...)
	case docharvest.EventPhaseCompleted:
		r.logger.Info("phase completed", append(attrs, "count", event.Completed)...)
	case docharvest.EventItemCompleted:
		r.logger.Debug("item completed", attrs...)
	case docharvest.EventItemSkipped:
		r.logger.Debug("item unchanged", attrs...)
	case docharvest.EventItemFailed:
		r.logger.Warn("item failed", append(attrs, "err", event.Err)...)
	}
}
