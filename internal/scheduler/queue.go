package scheduler

import (
	"sync"

	"github.com/tupyy/editor-heartbeat/internal/scheduler/containers"
	"go.uber.org/zap"
)

// Operation is a started operation which can be polled without blocking.
type Operation[T any] interface {
	Poll() Result[T]
}

type pendingRequest[T any] struct {
	op         Operation[T]
	onComplete func(T)
}

// Queue is a cooperative queue of pending operations.
// It never waits on an operation: each call to Tick polls the operation at the head of the queue
// and either fires its callback or moves it to the tail.
//
// Enqueue and Tick can be called from different goroutines but callbacks are always called
// from the goroutine calling Tick.
type Queue[T any] struct {
	lock    sync.Mutex
	pending *containers.Queue[*pendingRequest[T]]
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{
		pending: containers.NewQueue[*pendingRequest[T]](),
	}
}

// Enqueue adds the operation at the tail of the queue.
// onComplete is called exactly once when the operation is found completed.
func (q *Queue[T]) Enqueue(op Operation[T], onComplete func(T)) {
	q.lock.Lock()
	defer q.lock.Unlock()

	q.pending.Push(&pendingRequest[T]{op: op, onComplete: onComplete})
}

// Tick polls at most one operation. It returns true if a callback has been fired.
func (q *Queue[T]) Tick() bool {
	q.lock.Lock()
	req, ok := q.pending.Pop()
	q.lock.Unlock()

	if !ok {
		return false
	}

	result := req.op.Poll()
	if result.IsPending() {
		q.lock.Lock()
		q.pending.Push(req)
		q.lock.Unlock()

		return false
	}

	q.complete(req, result.Value)

	return true
}

// Len returns the number of operations not yet completed.
func (q *Queue[T]) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.pending.Size()
}

func (q *Queue[T]) complete(req *pendingRequest[T], value T) {
	if req.onComplete == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			zap.S().Errorw("completion callback panicked", "panic", r)
		}
	}()

	req.onComplete(value)
}
