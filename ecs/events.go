package ecs

import "github.com/milk9111/platformer/ecs/component"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const EventOverlap = "overlap"

// OverlapEvent is emitted by the physics step for every sensor pair that
// touched during the step. A and B carry the kinds the pair was matched on.
type OverlapEvent struct {
	A, B         Entity
	KindA, KindB component.BodyKind
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
