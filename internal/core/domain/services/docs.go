// Package services provides the capacity planner's domain services. They are pure:
// every input is passed in, nothing is read from or written to a store.
//
// The package includes:
//   - CalculateDayCapacity / AssembleWeekCapacity: capacity of a day and of a week
//   - Redistributor: greedy sequential bin-packing of a week's jobs in round order
//
// Application command handlers read the inputs, call these services and commit the
// resulting moves in one batch.
package services
