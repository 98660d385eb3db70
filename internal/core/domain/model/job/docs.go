// Package job contains the Job aggregate: one priced visit to a client on a calendar
// day, with optional manual overrides (ETA, worker pin).
//
// The capacity planner only ever changes the day a job falls on and, through manual
// reset, its overrides. Prices and statuses are owned by other parts of the system.
package job
