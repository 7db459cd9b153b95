// Package finder implements the "Find Water" pipeline: distance annotation
// relative to the detected or map-picked location, filter predicates,
// distance ranking and pagination, plus the Orchestrator that recomputes
// them as a session's inputs change.
//
// Data flow: source records -> Annotate -> Filter -> SortByDistance -> Paginate.
package finder
