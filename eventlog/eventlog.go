package eventlog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"
)

// Action is the kind of queue event recorded in the log.
type Action string

const (
	ActionAdd    Action = "ADD"
	ActionRemove Action = "REMOVE"
)

var (
	ErrInvalidAction  = errors.New("eventlog: invalid action")
	ErrMalformedEvent = errors.New("eventlog: malformed event")
	ErrWriterClosed   = errors.New("eventlog: writer is closed")
)

// Event is a single admission or removal of a request.
type Event struct {
	Action    Action
	RequestID int
	Priority  int
	Step      int
}

// String formats the event as a log line without the trailing newline.
func (e Event) String() string {
	return fmt.Sprintf("%s %d %d %d", e.Action, e.RequestID, e.Priority, e.Step)
}

func (a Action) valid() bool {
	return a == ActionAdd || a == ActionRemove
}

// Write writes a single event line to the writer.
func Write(w io.Writer, e Event) (int64, error) {
	if !e.Action.valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, e.Action)
	}
	n, err := io.WriteString(w, e.String()+"\n")
	if err != nil {
		return int64(n), fmt.Errorf("error writing event: %w", err)
	}
	return int64(n), nil
}

// Parse parses a single log line of the form "ACTION REQUEST_ID PRIORITY STEP".
func Parse(line string) (Event, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Event{}, fmt.Errorf("%w: want 4 fields, got %d in %q", ErrMalformedEvent, len(fields), line)
	}

	e := Event{Action: Action(fields[0])}
	if !e.Action.valid() {
		return Event{}, fmt.Errorf("%w: %w: %q", ErrMalformedEvent, ErrInvalidAction, fields[0])
	}

	var err error
	if e.RequestID, err = strconv.Atoi(fields[1]); err != nil {
		return Event{}, fmt.Errorf("%w: request id: %w", ErrMalformedEvent, err)
	}
	if e.Priority, err = strconv.Atoi(fields[2]); err != nil {
		return Event{}, fmt.Errorf("%w: priority: %w", ErrMalformedEvent, err)
	}
	if e.Step, err = strconv.Atoi(fields[3]); err != nil {
		return Event{}, fmt.Errorf("%w: step: %w", ErrMalformedEvent, err)
	}
	return e, nil
}

// Seq creates an iterator over the events in r. Blank lines are skipped.
// Iteration stops after the first error is yielded.
func Seq(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		scanner := bufio.NewScanner(r)
		line := 0
		for scanner.Scan() {
			line++
			text := strings.TrimSpace(scanner.Text())
			if text == "" {
				continue
			}
			e, err := Parse(text)
			if err != nil {
				yield(Event{}, fmt.Errorf("line %d: %w", line, err))
				return
			}
			if !yield(e, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Event{}, fmt.Errorf("error reading events: %w", err))
		}
	}
}

// ReadEvents reads all events into a slice.
func ReadEvents(r io.Reader) ([]Event, error) {
	events := make([]Event, 0, 16)
	for e, err := range Seq(r) {
		if err != nil {
			return events, err
		}
		events = append(events, e)
	}
	return events, nil
}

// Writer buffers events and writes them to an underlying file.
type Writer struct {
	bw     *bufio.Writer
	wc     io.WriteCloser
	count  int
	closed bool
}

// NewWriter creates a Writer that owns wc and closes it on Close.
func NewWriter(wc io.WriteCloser) *Writer {
	return &Writer{
		bw: bufio.NewWriter(wc),
		wc: wc,
	}
}

// Append writes a single event.
func (w *Writer) Append(e Event) error {
	if w.closed {
		return ErrWriterClosed
	}
	if _, err := Write(w.bw, e); err != nil {
		return err
	}
	w.count++
	return nil
}

// Count returns the number of events appended so far.
func (w *Writer) Count() int {
	return w.count
}

// Flush writes buffered events to the underlying file.
func (w *Writer) Flush() error {
	if w.closed {
		return ErrWriterClosed
	}
	return w.bw.Flush()
}

// Close flushes and closes the underlying file.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.bw.Flush(); err != nil {
		_ = w.wc.Close()
		return fmt.Errorf("error flushing events: %w", err)
	}
	return w.wc.Close()
}
