// Package simulation runs a discrete-step request scheduling simulation on
// top of the priority heap. Each run writes one ADD event per admitted
// request and one REMOVE event per served request to an EventSink, usually
// an *eventlog.Writer.
package simulation
