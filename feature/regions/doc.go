// Package regions exposes read-only HTTP endpoints over the configured
// target and source worlds: the merge plan, decoded region headers,
// in-memory merge previews and the merge journal.
//
//	GET /regions/plan?refresh=true
//	GET /regions/history?limit=20
//	GET /regions/preview/:name?rule=last-modified
//	GET /regions/:side/:name
//
// Nothing here writes to either world.
package regions
