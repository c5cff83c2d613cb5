// Package mockcatalog is a development stand-in for the public catalog API.
//
// It serves the same list and detail shapes from a SQLite fixture store seeded
// with an embedded set of creatures, so the browser and CLI can be exercised
// offline and deterministically. Unlike the public API it honours the search
// parameter server-side.
//
// Routes:
//
//	GET /api/v2/pokemon?search=&offset=&limit=   list page, next link or null
//	GET /api/v2/pokemon/{id|name}/              detail
//	GET /health                                 liveness
//	GET /metrics                                Prometheus metrics
//
// Any catalog request accepts ?fail=<status> to force an error response, and
// Options.FailEvery fails every Nth list request with 503, which makes the
// browser's retry path easy to try by hand.
package mockcatalog
