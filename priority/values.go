package priority

// Remove removes the first element equal to v, in buffer order.
func Remove[T comparable](h *Heap[T], v T) bool {
	_, ok := h.RemoveFunc(func(e T) bool { return e == v })
	return ok
}

// Contains reports whether h holds an element equal to v.
func Contains[T comparable](h *Heap[T], v T) bool {
	return h.ContainsFunc(func(e T) bool { return e == v })
}

// ContainsAll reports whether every element of vs is present in h.
func ContainsAll[T comparable](h *Heap[T], vs ...T) bool {
	present := make(map[T]struct{}, h.Len())
	for e := range h.All() {
		present[e] = struct{}{}
	}
	for _, v := range vs {
		if _, ok := present[v]; !ok {
			return false
		}
	}
	return true
}

// RemoveAll removes every element equal to any of vs, duplicates included.
// It reports whether the heap changed.
func RemoveAll[T comparable](h *Heap[T], vs ...T) bool {
	drop := set(vs)
	return h.filter(func(e T) bool {
		_, ok := drop[e]
		return !ok
	})
}

// RetainAll removes every element not equal to one of vs.
// It reports whether the heap changed.
func RetainAll[T comparable](h *Heap[T], vs ...T) bool {
	keep := set(vs)
	return h.filter(func(e T) bool {
		_, ok := keep[e]
		return ok
	})
}

func set[T comparable](vs []T) map[T]struct{} {
	m := make(map[T]struct{}, len(vs))
	for _, v := range vs {
		m[v] = struct{}{}
	}
	return m
}
