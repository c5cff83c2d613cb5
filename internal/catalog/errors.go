package catalog

import (
	"errors"
	"fmt"
)

// NetworkError reports a request that could not be sent or completed.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// UpstreamError reports a non-success status from the catalog service.
type UpstreamError struct {
	URL        string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.URL, e.StatusCode)
}

// ParseError reports a response body that could not be decoded.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Error kinds returned by Kind.
const (
	KindNetwork  = "network"
	KindUpstream = "upstream"
	KindParse    = "parse"
	KindUnknown  = "unknown"
)

// Kind classifies err into one of the catalog error kinds. It returns an
// empty string for a nil error.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var netErr *NetworkError
	var upErr *UpstreamError
	var parseErr *ParseError
	switch {
	case errors.As(err, &upErr):
		return KindUpstream
	case errors.As(err, &parseErr):
		return KindParse
	case errors.As(err, &netErr):
		return KindNetwork
	default:
		return KindUnknown
	}
}
