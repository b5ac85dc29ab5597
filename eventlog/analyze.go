package eventlog

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/google/btree"
)

var (
	ErrUnmatchedRemove = errors.New("eventlog: remove without matching add")
	ErrDuplicateAdd    = errors.New("eventlog: request added twice")
)

// Wait describes how long a served request stayed in the queue.
type Wait struct {
	RequestID int
	Priority  int
	Added     int
	Removed   int
}

// Steps returns the number of steps between admission and removal.
func (w Wait) Steps() int {
	return w.Removed - w.Added
}

// longer orders waits by descending duration, then by ascending request id.
func longer(a, b Wait) bool {
	if a.Steps() != b.Steps() {
		return a.Steps() > b.Steps()
	}
	return a.RequestID < b.RequestID
}

// Report summarises an event log.
type Report struct {
	Added   int
	Removed int
	pending map[int]Event
	waits   *btree.BTreeG[Wait]
}

// Analyze pairs ADD and REMOVE events by request id. Request ids are
// single use: adding an id that is queued or already served fails with
// ErrDuplicateAdd, and a removal stepped before its admission fails with
// ErrMalformedEvent.
func Analyze(events iter.Seq2[Event, error]) (*Report, error) {
	r := &Report{
		pending: make(map[int]Event),
		waits:   btree.NewG[Wait](2, longer),
	}
	served := make(map[int]struct{})

	for e, err := range events {
		if err != nil {
			return nil, err
		}
		switch e.Action {
		case ActionAdd:
			if _, ok := r.pending[e.RequestID]; ok {
				return nil, fmt.Errorf("%w: request %d at step %d", ErrDuplicateAdd, e.RequestID, e.Step)
			}
			if _, ok := served[e.RequestID]; ok {
				return nil, fmt.Errorf("%w: request %d at step %d was already served",
					ErrDuplicateAdd, e.RequestID, e.Step)
			}
			r.pending[e.RequestID] = e
			r.Added++
		case ActionRemove:
			add, ok := r.pending[e.RequestID]
			if !ok {
				return nil, fmt.Errorf("%w: request %d at step %d", ErrUnmatchedRemove, e.RequestID, e.Step)
			}
			if e.Step < add.Step {
				return nil, fmt.Errorf("%w: request %d removed at step %d before its admission at step %d",
					ErrMalformedEvent, e.RequestID, e.Step, add.Step)
			}
			delete(r.pending, e.RequestID)
			served[e.RequestID] = struct{}{}
			r.waits.ReplaceOrInsert(Wait{
				RequestID: e.RequestID,
				Priority:  add.Priority,
				Added:     add.Step,
				Removed:   e.Step,
			})
			r.Removed++
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidAction, e.Action)
		}
	}
	return r, nil
}

// AnalyzeReader analyzes the event log read from r.
func AnalyzeReader(r io.Reader) (*Report, error) {
	return Analyze(Seq(r))
}

// Pending returns the number of requests added but never removed.
func (r *Report) Pending() int {
	return len(r.pending)
}

// MaxWait returns the served request that waited longest. Ties go to the
// lower request id. The boolean is false when no request was served.
func (r *Report) MaxWait() (Wait, bool) {
	return r.waits.Min()
}

// Longest returns up to n served requests ordered from the longest wait down.
func (r *Report) Longest(n int) []Wait {
	if n <= 0 {
		return nil
	}
	out := make([]Wait, 0, min(n, r.waits.Len()))
	r.waits.Ascend(func(w Wait) bool {
		out = append(out, w)
		return len(out) < n
	})
	return out
}

// MeanWait returns the average number of steps served requests waited.
func (r *Report) MeanWait() float64 {
	if r.waits.Len() == 0 {
		return 0
	}
	total := 0
	r.waits.Ascend(func(w Wait) bool {
		total += w.Steps()
		return true
	})
	return float64(total) / float64(r.waits.Len())
}
