package entity

type Result[T any] struct {
	Value T
	Error error
}

func (r Result[T]) Failed() bool {
	return r.Error != nil
}
