// Package walkthrough runs scripted find, insert, update and delete
// sessions against a memstore client using the blocking subscriber façade.
//
// Every step builds a new subscriber, subscribes it to one operation, waits
// and then logs either the result or the captured failure. Subscribers are
// never reused between steps.
package walkthrough
