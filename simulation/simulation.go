package simulation

import (
	"context"
	"fmt"
	"math/rand"

	"go.uber.org/zap"

	"github.com/davidvella/pq/eventlog"
	"github.com/davidvella/pq/priority"
)

// EventSink receives every queue event of a run in order.
type EventSink interface {
	Append(e eventlog.Event) error
}

// Result summarises a finished run.
type Result struct {
	Steps     int // steps executed, generation and drain together
	Added     int
	Removed   int
	FinalStep int // step of the last removal, zero when nothing was served
}

// Simulator runs the request scheduling simulation: on every generation step
// a random batch of requests arrives and the most urgent queued request is
// served; afterwards one request is served per step until the queue is empty.
type Simulator struct {
	cfg    Config
	logger *zap.Logger
	rnd    *rand.Rand
	queue  *priority.Heap[*Request]
	nextID int
}

// New creates a simulator for cfg.
func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions(cfg)
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.rnd == nil {
		o.rnd = rand.New(rand.NewSource(cfg.Seed))
	}

	return &Simulator{
		cfg:    cfg,
		logger: o.logger,
		rnd:    o.rnd,
	}, nil
}

// Pending returns the number of requests still queued.
func (s *Simulator) Pending() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.Len()
}

// Run executes a full simulation, writing every admission and removal to sink.
// The context is checked between steps; a cancelled run returns the partial
// result together with the context error.
func (s *Simulator) Run(ctx context.Context, sink EventSink) (Result, error) {
	s.queue = priority.New(CompareRequests)
	s.nextID = 1

	var res Result
	s.logger.Info("simulation started",
		zap.Int("steps", s.cfg.Steps),
		zap.Int("maxArrivals", s.cfg.MaxArrivals),
		zap.Int("minPriority", s.cfg.MinPriority),
		zap.Int("maxPriority", s.cfg.MaxPriority))

	for step := 1; step <= s.cfg.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Steps = step

		added, err := s.arrive(step, sink)
		res.Added += added
		if err != nil {
			return res, err
		}

		served, err := s.serve(step, sink)
		if err != nil {
			return res, err
		}
		if served {
			res.Removed++
			res.FinalStep = step
		}
	}

	for step := s.cfg.Steps + 1; !s.queue.IsEmpty(); step++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Steps = step

		if _, err := s.serve(step, sink); err != nil {
			return res, err
		}
		res.Removed++
		res.FinalStep = step
	}

	s.logger.Info("simulation finished",
		zap.Int("added", res.Added),
		zap.Int("removed", res.Removed),
		zap.Int("finalStep", res.FinalStep))
	return res, nil
}

// arrive admits a random batch of requests.
func (s *Simulator) arrive(step int, sink EventSink) (int, error) {
	n := s.between(s.cfg.MinArrivals, s.cfg.MaxArrivals)
	for i := 0; i < n; i++ {
		r := &Request{
			ID:       s.nextID,
			Priority: s.between(s.cfg.MinPriority, s.cfg.MaxPriority),
			Step:     step,
		}
		if err := s.queue.Push(r); err != nil {
			return i, fmt.Errorf("failed to queue %s: %w", r, err)
		}
		s.nextID++

		if err := s.emit(sink, eventlog.ActionAdd, r, step); err != nil {
			return i + 1, err
		}
	}
	return n, nil
}

// serve removes the most urgent request, if any.
func (s *Simulator) serve(step int, sink EventSink) (bool, error) {
	r, ok := s.queue.Pop()
	if !ok {
		return false, nil
	}
	return true, s.emit(sink, eventlog.ActionRemove, r, step)
}

func (s *Simulator) emit(sink EventSink, action eventlog.Action, r *Request, step int) error {
	e := eventlog.Event{
		Action:    action,
		RequestID: r.ID,
		Priority:  r.Priority,
		Step:      step,
	}
	if ce := s.logger.Check(zap.DebugLevel, "queue event"); ce != nil {
		ce.Write(zap.Stringer("event", e), zap.Int("queued", s.queue.Len()))
	}
	if err := sink.Append(e); err != nil {
		return fmt.Errorf("failed to record %s: %w", e, err)
	}
	return nil
}

// between returns a uniform random integer in [lo, hi].
func (s *Simulator) between(lo, hi int) int {
	return lo + s.rnd.Intn(hi-lo+1)
}
