// Package deliver paces the hand-off of a ranked list to the presentation
// layer. Revealing thousands of rows in one synchronous call would stall the
// input path, so the scheduler shows an initial chunk immediately and grows
// the view by a fixed step once per rendering tick, aborting cleanly when a
// newer list replaces the one being revealed.
package deliver
