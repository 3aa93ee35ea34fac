package ast

// Arena stores values addressed by 1-based ids; id 0 means "none".
type Arena[T any] struct {
	Data []T
}

// Allocate appends value and returns its 1-based index.
func (a *Arena[T]) Allocate(value T) uint32 {
	a.Data = append(a.Data, value)
	return uint32(len(a.Data))
}

// Get returns nil for index 0 and for indexes past the end.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.Data) {
		return nil
	}
	return &a.Data[index-1]
}

// Slice is read only.
func (a *Arena[T]) Slice() []T {
	return a.Data
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.Data))
}
