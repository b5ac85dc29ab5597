package simulation

import (
	"cmp"
	"fmt"
)

// Request is a unit of work waiting in the queue.
type Request struct {
	ID       int // sequential across the whole run, starting at 1
	Priority int // larger is more urgent
	Step     int // step on which the request arrived
}

func (r *Request) String() string {
	return fmt.Sprintf("request %d (priority %d, arrived at step %d)", r.ID, r.Priority, r.Step)
}

// CompareRequests orders requests so that the most urgent one comes first:
// higher priority first, and among equal priorities the earlier request.
func CompareRequests(a, b *Request) int {
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
