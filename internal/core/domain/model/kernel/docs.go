// Package kernel provides the value objects shared by the round planner's domain model.
//
// The package includes:
//   - UUID: identifiers for tenants, jobs, clients and workers
//   - Date: a calendar day in the business's time zone
//   - Week: a Monday-aligned seven day span, the unit of redistribution
//
// Dates are always evaluated in a single configured location; "today" and the
// current week are derived from an injected clock, never from ambient state.
package kernel
