package solver

import "fmt"

// arena is an append-only store handing out dense typed ids. An id is an
// offset into the backing slice; a lookup past the end is a programming
// error and panics.
type arena[I ~uint32, T any] struct {
	items []T
}

func (a *arena[I, T]) alloc(v T) I {
	id := I(len(a.items))
	a.items = append(a.items, v)
	return id
}

func (a *arena[I, T]) get(id I) *T {
	if int(id) >= len(a.items) {
		panic(fmt.Sprintf("arena: id %d out of range (%d allocated)", id, len(a.items)))
	}
	return &a.items[id]
}

func (a *arena[I, T]) valid(id I) bool {
	return int(id) < len(a.items)
}

func (a *arena[I, T]) len() int {
	return len(a.items)
}

func (a *arena[I, T]) clear() {
	a.items = a.items[:0]
}
