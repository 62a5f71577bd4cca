// Package graphql provides the HTTP client for the host's GraphQL API,
// along with typed wrappers for the queries and mutations the plugin issues.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config holds the connection parameters for the single GraphQL endpoint
// this process may talk to. It is built once from the invocation input and
// never mutated afterwards.
type Config struct {
	Scheme string
	Port   int
	// SessionCookie is the value of the host session credential. Empty means
	// unauthenticated (the command-line fallback path).
	SessionCookie string
	Timeout       time.Duration
}

// HTTPClient is a concrete implementation of the Client interface that sends
// GraphQL requests over HTTP using the standard library net/http package.
type HTTPClient struct {
	httpClient    *http.Client
	graphqlURL    string
	sessionCookie string
}

// NewHTTPClient constructs an HTTPClient from the provided Config. It returns
// an error if the scheme is empty or the port is not positive. When
// cfg.Timeout is zero or negative, a default of 30 seconds is used.
func NewHTTPClient(cfg Config) (*HTTPClient, error) {
	if cfg.Scheme == "" {
		return nil, fmt.Errorf("graphql: scheme is required")
	}
	if cfg.Port <= 0 {
		return nil, fmt.Errorf("graphql: port must be a positive integer")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPClient{
		httpClient:    &http.Client{Timeout: timeout},
		graphqlURL:    fmt.Sprintf("%s://localhost:%d/graphql", cfg.Scheme, cfg.Port),
		sessionCookie: cfg.SessionCookie,
	}, nil
}

// URL returns the endpoint this client posts to.
func (c *HTTPClient) URL() string {
	return c.graphqlURL
}

// graphqlRequest is the JSON body shape for a GraphQL HTTP request.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse is the JSON body shape for a GraphQL HTTP response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// Execute sends a GraphQL query to the configured endpoint and returns the
// raw JSON bytes of the "data" field on success. Variables may be nil, in
// which case the "variables" key is omitted from the request body entirely.
//
// Execute returns an error if:
//   - the query string is empty (no request is issued)
//   - the HTTP request cannot be created or sent
//   - the server responds with a non-2xx status code (*TransportError; the
//     body is never parsed as GraphQL on this path)
//   - the response body cannot be decoded as JSON
//   - the response carries a non-empty errors collection (*QueryError)
//
// An absent "data" field with no errors returns nil bytes, not an error.
func (c *HTTPClient) Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("graphql: query must not be empty")
	}

	reqBody := graphqlRequest{
		Query:     query,
		Variables: variables,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("graphql: create request: %w", err)
	}
	// Accept-Encoding is supplied by the transport, which also handles the
	// decompression it advertises.
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("DNT", "1")
	if c.sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.sessionCookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graphql: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("graphql: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: raw}
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(raw, &gqlResp); err != nil {
		return nil, fmt.Errorf("graphql: decode response: %w", err)
	}

	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return nil, &QueryError{Messages: msgs}
	}

	return []byte(gqlResp.Data), nil
}
