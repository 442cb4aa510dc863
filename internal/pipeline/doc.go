// Package pipeline streams read records from one or more sources into a
// Sink. Parsing runs on its own goroutine while the Sink consumes records
// strictly in input order on the caller's goroutine, so a Sink never needs
// locking and its results do not depend on scheduling.
//
// The only contract to implement is Sink (AddRead).
package pipeline
