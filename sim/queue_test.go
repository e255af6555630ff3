package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrainQueue_Peek_NonEmpty_ReturnsFront(t *testing.T) {
	// GIVEN a queue with trains [A, B]
	q := &TrainQueue{}
	a, b := NewTrain("A", Coord{1, 1}), NewTrain("B", Coord{2, 2})
	q.Enqueue(a)
	q.Enqueue(b)

	// WHEN Peek() is called
	got := q.Peek()

	// THEN it returns the front element without removing it
	assert.Same(t, a, got)
	assert.Equal(t, 2, q.Len())
}

func TestTrainQueue_Empty_ReturnsNil(t *testing.T) {
	q := &TrainQueue{}
	assert.Nil(t, q.Peek())
	assert.Nil(t, q.Dequeue())
	assert.Equal(t, "[]", q.String())
}

func TestTrainQueue_Dequeue_IsFIFO(t *testing.T) {
	q := &TrainQueue{}
	trains := []*Train{NewTrain("A", Coord{1, 1}), NewTrain("B", Coord{1, 2}), NewTrain("C", Coord{1, 3})}
	for _, tr := range trains {
		q.Enqueue(tr)
	}
	for _, want := range trains {
		assert.Same(t, want, q.Dequeue())
	}
	assert.Equal(t, 0, q.Len())
}

func TestTrainQueue_Remove_PreservesOrder(t *testing.T) {
	// GIVEN [A, B, C]
	q := &TrainQueue{}
	a, b, c := NewTrain("A", Coord{1, 1}), NewTrain("B", Coord{1, 2}), NewTrain("C", Coord{1, 3})
	q.Enqueue(a)
	q.Enqueue(b)
	q.Enqueue(c)

	// WHEN B is removed, and then a train that is not queued
	assert.True(t, q.Remove(b))
	assert.False(t, q.Remove(NewTrain("X", Coord{9, 9})))

	// THEN [A, C] remains
	assert.Equal(t, []*Train{a, c}, q.Items())
	assert.Equal(t, "[A C]", q.String())
}

func TestTrainQueue_Items_ReturnsCopy(t *testing.T) {
	q := &TrainQueue{}
	a := NewTrain("A", Coord{1, 1})
	q.Enqueue(a)
	items := q.Items()
	items[0] = nil
	assert.Same(t, a, q.Peek())
}

func TestTrainQueue_EnqueueNil_Panics(t *testing.T) {
	q := &TrainQueue{}
	assert.Panics(t, func() { q.Enqueue(nil) })
}
