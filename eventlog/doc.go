// Package eventlog implements the flat text log written by the request
// scheduling simulation. Each line records one queue event:
//
//	ACTION REQUEST_ID PRIORITY STEP
//
// where ACTION is ADD when a request enters the queue and REMOVE when it is
// served. Fields are separated by single spaces and lines end with '\n'.
//
// Basic usage:
//
//	w := eventlog.NewWriter(file)
//	_ = w.Append(eventlog.Event{Action: eventlog.ActionAdd, RequestID: 1, Priority: 3, Step: 1})
//	_ = w.Append(eventlog.Event{Action: eventlog.ActionRemove, RequestID: 1, Priority: 3, Step: 2})
//	_ = w.Close()
//
//	// Reading events back
//	for e, err := range eventlog.Seq(r) {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(e)
//	}
//
//	// Finding the request that waited longest
//	report, err := eventlog.AnalyzeReader(r)
//	if wait, ok := report.MaxWait(); ok {
//	    fmt.Printf("request %d waited %d steps\n", wait.RequestID, wait.Steps())
//	}
package eventlog
