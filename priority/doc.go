// Package priority implements a generic binary min-heap backed by a single
// growable buffer. The element at the root is always the minimum under the
// comparator supplied at construction, so the heap serves as a priority queue
// for any element type: pass a comparator that orders the most urgent
// element first.
//
// The heap keeps the classic array layout: the children of index i live at
// 2i+1 and 2i+2 and its parent at (i-1)/2. Positions in the order produced by
// All and Slice are the buffer indexes accepted by RemoveAt and DecreaseKey.
//
// Key features:
//   - Natural ordering for ordered types via NewOrdered, explicit comparators via New
//   - O(log n) Push, Pop, DecreaseKey and RemoveAt
//   - O(1) Peek, Len and IsEmpty
//   - O(n) bulk construction with FromSlice and non-destructive Merge
//   - Nil elements are rejected with ErrInvalidArgument
//
// Accessors that may find the heap empty (Peek, Pop, RemoveFunc) return the
// zero value and false instead of an error, so a zero value returned with
// true is always a real element.
//
// Basic usage:
//
//	h := priority.NewOrdered[int]()
//
//	for _, v := range []int{5, 3, 8, 1, 4} {
//	    if err := h.Push(v); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
//	min, _ := h.Peek() // 1
//
//	for v := range h.Drain() {
//	    fmt.Println(v) // 1 3 4 5 8
//	}
//
// A Heap is not safe for concurrent use.
package priority
