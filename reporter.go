package docharvest

// EventType classifies a pipeline progress event.
type EventType int

// Event types emitted by the pipeline.
const (
	EventPhaseStarted EventType = iota
	EventPhaseCompleted
	EventItemCompleted
	EventItemSkipped
	EventItemFailed
)

// Event is a structured pipeline progress event. The pipeline has no
// dependency on any particular output sink; tests assert on emitted
// events and the CLI routes them to a logger.
type Event struct {
	Type      EventType
	Phase     string
	Target    string
	URL       string
	Filename  string
	Completed int
	Total     int
	Err       error
}

// Reporter consumes pipeline progress events.
type Reporter interface {
	Report(event Event)
}

// NopReporter discards all events.
type NopReporter struct{}

// Report implements Reporter.
func (NopReporter) Report(Event) {}
