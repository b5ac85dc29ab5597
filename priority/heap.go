package priority

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"reflect"

	"golang.org/x/exp/constraints"
)

// DefaultCapacity is the buffer size of a heap created without an explicit capacity.
const DefaultCapacity = 11

var (
	ErrInvalidArgument        = errors.New("priority: invalid argument")
	ErrIndexOutOfRange        = errors.New("priority: index out of range")
	ErrConcurrentModification = errors.New("priority: heap modified during iteration")
)

// Heap is a binary min-heap stored in a contiguous buffer.
// The zero value is not usable; construct heaps with New, NewWithCapacity,
// NewOrdered or FromSlice.
type Heap[T any] struct {
	items []T // len(items) is the capacity, items[size:] hold zero values
	size  int
	cmp   func(a, b T) int // negative when a must be closer to the root than b
	mods  int
}

// New creates an empty heap ordered by compare. It panics if compare is nil.
func New[T any](compare func(a, b T) int) *Heap[T] {
	h, err := NewWithCapacity(DefaultCapacity, compare)
	if err != nil {
		panic(err)
	}
	return h
}

// NewWithCapacity creates an empty heap whose buffer initially holds capacity elements.
func NewWithCapacity[T any](capacity int, compare func(a, b T) int) (*Heap[T], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: capacity %d, must be at least 1", ErrInvalidArgument, capacity)
	}
	if compare == nil {
		return nil, fmt.Errorf("%w: nil comparator", ErrInvalidArgument)
	}
	return &Heap[T]{
		items: make([]T, capacity),
		cmp:   compare,
	}, nil
}

// NewOrdered creates an empty heap using the natural order of T.
func NewOrdered[T constraints.Ordered]() *Heap[T] {
	return New(cmp.Compare[T])
}

// FromSlice builds a heap holding a copy of elems in linear time.
// No heap is built if elems contains a nil element.
func FromSlice[T any](elems []T, compare func(a, b T) int) (*Heap[T], error) {
	if compare == nil {
		return nil, fmt.Errorf("%w: nil comparator", ErrInvalidArgument)
	}
	for i, v := range elems {
		if isNil(v) {
			return nil, fmt.Errorf("%w: nil element at position %d", ErrInvalidArgument, i)
		}
	}

	h := &Heap[T]{
		items: make([]T, max(DefaultCapacity, len(elems))),
		size:  len(elems),
		cmp:   compare,
	}
	copy(h.items, elems)
	h.heapify()
	return h, nil
}

// Clone returns an independent copy of the heap with the same comparator and capacity.
func (h *Heap[T]) Clone() *Heap[T] {
	items := make([]T, len(h.items))
	copy(items, h.items[:h.size])
	return &Heap[T]{
		items: items,
		size:  h.size,
		cmp:   h.cmp,
	}
}

// Len returns the number of elements in the heap.
func (h *Heap[T]) Len() int {
	return h.size
}

// IsEmpty reports whether the heap holds no elements.
func (h *Heap[T]) IsEmpty() bool {
	return h.size == 0
}

// Cap returns the current buffer capacity.
func (h *Heap[T]) Cap() int {
	return len(h.items)
}

// Push inserts v. Nil pointers, maps, slices, channels, functions and
// interfaces are rejected with ErrInvalidArgument.
func (h *Heap[T]) Push(v T) error {
	if isNil(v) {
		return fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	h.grow(h.size + 1)
	h.items[h.size] = v
	h.size++
	h.up(h.size - 1)
	h.mods++
	return nil
}

// PushAll inserts every element of vs. If any element is nil nothing is inserted.
func (h *Heap[T]) PushAll(vs ...T) error {
	for i, v := range vs {
		if isNil(v) {
			return fmt.Errorf("%w: nil element at position %d", ErrInvalidArgument, i)
		}
	}
	h.grow(h.size + len(vs))
	for _, v := range vs {
		h.items[h.size] = v
		h.size++
		h.up(h.size - 1)
	}
	h.mods++
	return nil
}

// Peek returns the minimum element without removing it.
// The boolean is false when the heap is empty.
func (h *Heap[T]) Peek() (T, bool) {
	if h.size == 0 {
		var zero T
		return zero, false
	}
	return h.items[0], true
}

// Pop removes and returns the minimum element.
// The boolean is false when the heap is empty.
func (h *Heap[T]) Pop() (T, bool) {
	if h.size == 0 {
		var zero T
		return zero, false
	}
	top := h.items[0]
	h.removeAt(0)
	return top, true
}

// DecreaseKey replaces the element at index i with v, which must not order
// after the element it replaces, and moves it towards the root.
func (h *Heap[T]) DecreaseKey(i int, v T) error {
	if err := h.checkIndex(i); err != nil {
		return err
	}
	if isNil(v) {
		return fmt.Errorf("%w: nil element", ErrInvalidArgument)
	}
	if h.cmp(h.items[i], v) < 0 {
		return fmt.Errorf("%w: new value at index %d orders after the current one", ErrInvalidArgument, i)
	}
	h.items[i] = v
	h.up(i)
	h.mods++
	return nil
}

// RemoveAt removes and returns the element at buffer index i.
func (h *Heap[T]) RemoveAt(i int) (T, error) {
	if err := h.checkIndex(i); err != nil {
		var zero T
		return zero, err
	}
	removed := h.items[i]
	h.removeAt(i)
	return removed, nil
}

// RemoveFunc removes the first element, in buffer order, for which match returns true.
func (h *Heap[T]) RemoveFunc(match func(T) bool) (T, bool) {
	if i := h.index(match); i >= 0 {
		removed := h.items[i]
		h.removeAt(i)
		return removed, true
	}
	var zero T
	return zero, false
}

// ContainsFunc reports whether any element satisfies match.
func (h *Heap[T]) ContainsFunc(match func(T) bool) bool {
	return h.index(match) >= 0
}

// Merge returns a new heap holding the elements of both h and other.
// Neither h nor other is modified. The result uses h's comparator.
func (h *Heap[T]) Merge(other *Heap[T]) *Heap[T] {
	if other == nil {
		return h.Clone()
	}
	n := h.size + other.size
	m := &Heap[T]{
		items: make([]T, max(n, len(h.items))),
		size:  n,
		cmp:   h.cmp,
	}
	copy(m.items, h.items[:h.size])
	copy(m.items[h.size:], other.items[:other.size])
	m.heapify()
	return m
}

// Clear removes all elements, keeping the buffer.
func (h *Heap[T]) Clear() {
	clear(h.items[:h.size])
	h.size = 0
	h.mods++
}

// Slice returns a copy of the elements in buffer order.
func (h *Heap[T]) Slice() []T {
	out := make([]T, h.size)
	copy(out, h.items[:h.size])
	return out
}

// All iterates over the elements in buffer order without removing them.
// Modifying the heap while iterating panics with ErrConcurrentModification.
func (h *Heap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		mods := h.mods
		for i := 0; i < h.size; i++ {
			if !yield(h.items[i]) {
				return
			}
			if h.mods != mods {
				panic(ErrConcurrentModification)
			}
		}
	}
}

// Drain pops elements in priority order until the heap is empty or the
// consumer stops. An element handed to a consumer that stops is already removed.
func (h *Heap[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := h.Pop()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

func (h *Heap[T]) checkIndex(i int) error {
	if i < 0 || i >= h.size {
		return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, i, h.size)
	}
	return nil
}

func (h *Heap[T]) index(match func(T) bool) int {
	for i := 0; i < h.size; i++ {
		if match(h.items[i]) {
			return i
		}
	}
	return -1
}

// removeAt fills slot i with the tail element and repairs the heap around it.
// The moved element can only violate the heap property in one direction.
func (h *Heap[T]) removeAt(i int) {
	var zero T
	last := h.size - 1
	h.size = last
	h.mods++
	if i == last {
		h.items[last] = zero
		return
	}
	h.items[i] = h.items[last]
	h.items[last] = zero
	if i > 0 && h.less(i, parent(i)) {
		h.up(i)
	} else {
		h.down(i)
	}
}

// filter keeps the elements for which keep returns true and rebuilds the heap.
func (h *Heap[T]) filter(keep func(T) bool) bool {
	n := 0
	for i := 0; i < h.size; i++ {
		if keep(h.items[i]) {
			h.items[n] = h.items[i]
			n++
		}
	}
	if n == h.size {
		return false
	}
	clear(h.items[n:h.size])
	h.size = n
	h.heapify()
	h.mods++
	return true
}

// grow makes room for at least need elements. Below 64 slots the buffer
// grows by two, above it by half.
func (h *Heap[T]) grow(need int) {
	if need <= len(h.items) {
		return
	}
	c := len(h.items)
	for c < need {
		c = nextCapacity(c)
	}
	items := make([]T, c)
	copy(items, h.items[:h.size])
	h.items = items
}

func nextCapacity(c int) int {
	n := c + c>>1
	if c < 64 {
		n = c + 2
	}
	if n <= c {
		n = c + 1
	}
	return n
}

func (h *Heap[T]) heapify() {
	for i := h.size/2 - 1; i >= 0; i-- {
		h.down(i)
	}
}

// swap swaps items at index i and j.
func (h *Heap[T]) swap(i, j int) {
	h.items[i], h.items[j] = h.items[j], h.items[i]
}

// less compares items at index i and j.
func (h *Heap[T]) less(i, j int) bool {
	return h.cmp(h.items[i], h.items[j]) < 0
}

// up moves the element at index i up to its proper position.
func (h *Heap[T]) up(i int) {
	for i > 0 {
		p := parent(i)
		if !h.less(i, p) {
			break
		}
		h.swap(i, p)
		i = p
	}
}

// down moves the element at index i down to its proper position.
func (h *Heap[T]) down(i int) {
	for {
		smallest := i
		left := 2*i + 1
		right := 2*i + 2

		if left < h.size && h.less(left, smallest) {
			smallest = left
		}
		if right < h.size && h.less(right, smallest) {
			smallest = right
		}

		if smallest == i {
			return
		}

		h.swap(i, smallest)
		i = smallest
	}
}

func parent(i int) int { return (i - 1) / 2 }

func isNil[T any](v T) bool {
	rv := reflect.ValueOf(any(v))
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}
