// Package listing implements the incremental list controller behind the
// search results: one search session at a time, pages appended in request
// order, no duplicate names.
//
// The controller is a plain state machine:
//
//	Idle ──Start/SetFilter──▶ LoadingInitial ──page, next──▶ Ready
//	                              │      └──page, no next──▶ Exhausted
//	                              └──error──▶ Error
//	Ready ──NearBottom──▶ LoadingMore ──page──▶ Ready | Exhausted
//	                          └──error──▶ Error ──Retry──▶ (same loading state, same cursor)
//
// A filter change from any state starts a new session. Operations never block:
// they return a *Request for the caller to run (see Fetch) and the caller
// hands the Result back through Apply. Each session carries a random id, and
// Apply discards results whose session or cursor no longer matches the fetch
// in flight, which stands in for request cancellation.
package listing
