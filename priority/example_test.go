package priority_test

import (
	"cmp"
	"fmt"

	"github.com/davidvella/pq/priority"
)

// ExampleHeap_minHeap demonstrates using the heap with the natural order of ints.
func ExampleHeap_minHeap() {
	h := priority.NewOrdered[int]()

	for _, v := range []int{5, 3, 8, 1, 4} {
		_ = h.Push(v)
	}

	if v, ok := h.Peek(); ok {
		fmt.Println("Minimum:", v)
	}

	v, _ := h.Pop()
	fmt.Println("Popped:", v)

	v, _ = h.Peek()
	fmt.Println("New minimum:", v)

	// Output:
	// Minimum: 1
	// Popped: 1
	// New minimum: 3
}

// ExampleHeap_maxHeap demonstrates reversing the comparator.
func ExampleHeap_maxHeap() {
	h := priority.New(func(a, b int) int {
		return cmp.Compare(b, a)
	})

	_ = h.PushAll(10, 20, 15)

	for v := range h.Drain() {
		fmt.Println(v)
	}

	// Output:
	// 20
	// 15
	// 10
}

// ExampleHeap_Merge demonstrates combining two heaps without changing either.
func ExampleHeap_Merge() {
	a, _ := priority.FromSlice([]int{1, 3, 8, 5, 4}, cmp.Compare[int])
	b, _ := priority.FromSlice([]int{7, 2}, cmp.Compare[int])

	merged := a.Merge(b)
	fmt.Println("Sizes:", a.Len(), b.Len(), merged.Len())

	for v := range merged.Drain() {
		fmt.Print(v, " ")
	}
	fmt.Println()

	// Output:
	// Sizes: 5 2 7
	// 1 2 3 4 5 7 8
}

// ExampleHeap_DecreaseKey demonstrates promoting an element in place.
func ExampleHeap_DecreaseKey() {
	h, _ := priority.FromSlice([]int{1, 3, 2, 7, 9, 8, 4}, cmp.Compare[int])

	if err := h.DecreaseKey(4, 0); err != nil {
		fmt.Println(err)
	}
	if err := h.DecreaseKey(1, 100); err != nil {
		fmt.Println(err)
	}

	fmt.Println(h.Slice())

	// Output:
	// priority: invalid argument: new value at index 1 orders after the current one
	// [0 1 2 7 3 8 4]
}
