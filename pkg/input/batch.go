package input

import "iter"

type entry struct {
	event    Event
	consumed bool
}

// Batch is the set of events delivered to one input pass. Every event
// carries a consumed flag that hides it from later fresh-only consumers.
type Batch struct {
	entries []entry
}

// NewBatch returns a batch holding the given events, none consumed.
func NewBatch(events ...Event) *Batch {
	b := &Batch{entries: make([]entry, 0, len(events))}
	for _, e := range events {
		b.Push(e)
	}
	return b
}

// Push appends an unconsumed event.
func (b *Batch) Push(e Event) {
	b.entries = append(b.entries, entry{event: e})
}

// Len returns the number of events in the batch.
func (b *Batch) Len() int {
	return len(b.entries)
}

// Clear drops every event, keeping the capacity for the next frame.
func (b *Batch) Clear() {
	clear(b.entries)
	b.entries = b.entries[:0]
}

// Pending is an unconsumed event handed out by [Batch.Fresh].
type Pending struct {
	e *entry
}

// Event returns the wrapped event.
func (p Pending) Event() Event {
	return p.e.event
}

// Consume marks the event as handled.
func (p Pending) Consume() {
	p.e.consumed = true
}

// IsConsumed reports whether the event was consumed, possibly by the
// current consumer earlier in the same iteration.
func (p Pending) IsConsumed() bool {
	return p.e.consumed
}

// Fresh iterates events that have not been consumed yet. An event consumed
// while iterating is still the one yielded; later calls skip it.
func (b *Batch) Fresh() iter.Seq[Pending] {
	return func(yield func(Pending) bool) {
		for i := range b.entries {
			if b.entries[i].consumed {
				continue
			}
			if !yield(Pending{e: &b.entries[i]}) {
				return
			}
		}
	}
}

// Consumed iterates events that some consumer already handled.
func (b *Batch) Consumed() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for i := range b.entries {
			if !b.entries[i].consumed {
				continue
			}
			if !yield(b.entries[i].event) {
				return
			}
		}
	}
}

// All iterates every event with its consumed flag.
func (b *Batch) All() iter.Seq2[Event, bool] {
	return func(yield func(Event, bool) bool) {
		for i := range b.entries {
			if !yield(b.entries[i].event, b.entries[i].consumed) {
				return
			}
		}
	}
}
