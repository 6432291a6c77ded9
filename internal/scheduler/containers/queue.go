package containers

type n[T any] struct {
	next  *n[T]
	value T
}

// Queue is a FIFO queue. It is *not* thread safe.
type Queue[T any] struct {
	head *n[T]
	tail *n[T]
	size int
}

func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// Push adds p at the tail of the queue.
func (s *Queue[T]) Push(p T) {
	node := &n[T]{value: p}
	if s.tail == nil {
		s.head = node
	} else {
		s.tail.next = node
	}

	s.tail = node
	s.size++
}

func (s *Queue[T]) Peek() (T, bool) {
	var none T
	if s.head == nil {
		return none, false
	}

	return s.head.value, true
}

// Pop removes the head of the queue. It returns false if the queue is empty.
func (s *Queue[T]) Pop() (T, bool) {
	var none T
	if s.head == nil {
		return none, false
	}

	head := s.head
	s.head = head.next
	if s.head == nil {
		s.tail = nil
	}

	head.next = nil
	s.size--

	return head.value, true
}

func (s *Queue[T]) Size() int {
	return s.size
}
