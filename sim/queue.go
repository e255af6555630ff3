// Implements the TrainQueue, the ordered train list behind a station's
// reserved, hold and no-go sets.

package sim

import (
	"strings"
)

// TrainQueue is an insertion-ordered list of trains.
// Membership is tracked by the owning Station; the queue only keeps order.
type TrainQueue struct {
	queue []*Train
}

// Enqueue adds a train to the back of the queue.
func (q *TrainQueue) Enqueue(t *Train) {
	if t == nil {
		panic("Enqueue: train must not be nil")
	}
	q.queue = append(q.queue, t)
}

func (q *TrainQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range q.queue {
		sb.WriteString(t.ID)
		if i < len(q.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of trains in the queue.
func (q *TrainQueue) Len() int {
	return len(q.queue)
}

// Peek returns the train at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (q *TrainQueue) Peek() *Train {
	if len(q.queue) == 0 {
		return nil
	}
	return q.queue[0]
}

// Dequeue removes and returns the train at the front of the queue.
// Returns nil if the queue is empty.
func (q *TrainQueue) Dequeue() *Train {
	if len(q.queue) == 0 {
		return nil
	}
	t := q.queue[0]
	q.queue[0] = nil
	q.queue = q.queue[1:]
	return t
}

// Remove deletes t from the queue, preserving the order of the rest.
// Returns false if t was not queued.
func (q *TrainQueue) Remove(t *Train) bool {
	for i, v := range q.queue {
		if v == t {
			q.queue = append(q.queue[:i], q.queue[i+1:]...)
			return true
		}
	}
	return false
}

// Items returns a copy of the queue contents in order.
func (q *TrainQueue) Items() []*Train {
	out := make([]*Train, len(q.queue))
	copy(out, q.queue)
	return out
}
