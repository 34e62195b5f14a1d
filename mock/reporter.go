package mock

import (
	"sync"

	"github.com/fwojciec/docharvest"
)

var _ docharvest.Reporter = (*Reporter)(nil)

// Reporter collects pipeline events for test assertions.
// It is safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	events []docharvest.Event
}

func (r *Reporter) Report(event docharvest.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the collected events.
func (r *Reporter) Events() []docharvest.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]docharvest.Event(nil), r.events...)
}

// EventsOf returns the collected events of one type.
func (r *Reporter) EventsOf(t docharvest.EventType) []docharvest.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []docharvest.Event
	for _, event := range r.events {
		if event.Type == t {
			out = append(out, event)
		}
	}
	return out
}
