package analytics

import (
	"encoding/json"
	"sync"
)

// Event is one gtag() call: a command followed by its arguments.
type Event struct {
	Command string
	Args    []any
}

// MarshalJSON renders the event the way gtag pushes its arguments object.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(append([]any{e.Command}, e.Args...))
}

// DataLayer is the process wide tracking queue.
type DataLayer struct {
	mu     sync.Mutex
	events []Event
}

func (d *DataLayer) Push(e Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, e)
}

// Events returns a copy of the queued events in push order.
func (d *DataLayer) Events() []Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Event, len(d.events))
	copy(out, d.events)
	return out
}

func (d *DataLayer) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.events)
}

// Holder keeps at most one DataLayer alive.
type Holder struct {
	mu    sync.Mutex
	layer *DataLayer
}

// EnsureDataLayer returns the existing queue, creating an empty one on first use.
func (h *Holder) EnsureDataLayer() *DataLayer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.layer == nil {
		h.layer = &DataLayer{}
	}
	return h.layer
}
