// Package catalog provides an HTTP client for the creature catalog REST API.
//
// # Overview
//
// The client fetches pages of entity references for the list view and the
// extended attributes shown on the back of a detail card. It defaults to the
// public PokeAPI but works against any service exposing the same shapes,
// including the fixture server in cmd/pokedexter-mock.
//
// # Endpoints
//
//   - GET <base><list path>?offset=N&limit=N[&search=S]
//     returns {count, next, previous, results:[{name,url}]}
//   - GET <detail url>
//     returns {height, weight, abilities:[{ability:{name}}], types:[{type:{name}}]}
//
// The search filter is applied locally as well, so upstreams that ignore the
// search parameter still yield only matching names. The next link is turned
// into a Cursor; a null link yields a nil cursor, meaning the last page.
//
// # Errors
//
// Every failure is one of three types, inspectable with errors.As:
//
//   - *NetworkError: the request could not be sent or completed
//   - *UpstreamError: the service answered with a non-2xx status
//   - *ParseError: the body or the next link could not be decoded
//
// Kind maps an error to a short label for display.
//
// # Caching
//
// Options.CacheTTL enables a short-lived in-memory cache of decoded pages and
// details. It is off by default, so every search reaches the network.
package catalog
