package scheduler

import "sync"

type Result[T any] struct {
	Value T
	ready bool
}

func (r Result[T]) IsReady() bool {
	return r.ready
}

func (r Result[T]) IsPending() bool {
	return !r.ready
}

// Future holds the value of an operation running in the background.
// It is resolved by the first value written into the input channel or when the channel is closed.
// Any value written after the first one is ignored.
type Future[T any] struct {
	lock     sync.Mutex
	value    T
	resolved bool
	done     chan struct{}
}

func NewFuture[T any](input chan T) *Future[T] {
	f := &Future[T]{
		done: make(chan struct{}),
	}

	go func() {
		value, ok := <-input

		f.lock.Lock()
		if ok {
			f.value = value
		}
		f.resolved = true
		f.lock.Unlock()

		close(f.done)
	}()

	return f
}

// NewResolvedFuture returns a future already resolved with value.
func NewResolvedFuture[T any](value T) *Future[T] {
	f := &Future[T]{
		value:    value,
		resolved: true,
		done:     make(chan struct{}),
	}
	close(f.done)

	return f
}

func (f *Future[T]) Resolved() bool {
	f.lock.Lock()
	defer f.lock.Unlock()

	return f.resolved
}

// Done is closed when the future is resolved.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Poll never blocks. Once resolved, it returns the same value on every call.
func (f *Future[T]) Poll() Result[T] {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.resolved {
		return Result[T]{ready: false}
	}

	return Result[T]{
		Value: f.value,
		ready: true,
	}
}
