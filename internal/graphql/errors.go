package graphql

import (
	"fmt"
	"strings"
)

// TransportError reports a non-2xx HTTP response. The raw body is carried
// for diagnostics and is never interpreted as a GraphQL document.
type TransportError struct {
	StatusCode int
	Body       []byte
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("graphql: unexpected HTTP status %d: %s", e.StatusCode, e.Body)
}

// QueryError reports application-level errors returned by the remote service
// in an otherwise successful HTTP response. All messages are carried; the
// first is guaranteed present.
type QueryError struct {
	Messages []string
}

func (e *QueryError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

// First returns the first error message reported by the service.
func (e *QueryError) First() string {
	if len(e.Messages) == 0 {
		return ""
	}
	return e.Messages[0]
}
