package priority

import (
	"fmt"
	"reflect"
)

// Verify checks the heap property and that no slot past the size retains a value.
func Verify[T any](h *Heap[T]) error {
	for i := 1; i < h.size; i++ {
		if h.cmp(h.items[parent(i)], h.items[i]) > 0 {
			return fmt.Errorf("heap property violated: parent %d > child %d", parent(i), i)
		}
	}
	for i := h.size; i < len(h.items); i++ {
		if !isZero(h.items[i]) {
			return fmt.Errorf("slot %d past size %d is not cleared", i, h.size)
		}
	}
	return nil
}

// Buffer exposes the live buffer for layout assertions.
func Buffer[T any](h *Heap[T]) []T {
	return h.items[:h.size]
}

var NextCapacity = nextCapacity

func isZero[T any](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}
