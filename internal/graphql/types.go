package graphql

import "context"

// GraphQLError represents a single error returned in a GraphQL response.
type GraphQLError struct {
	Message string `json:"message"`
}

// Client defines the interface for executing GraphQL queries.
type Client interface {
	Execute(ctx context.Context, query string, variables map[string]any) ([]byte, error)
}

// Tag is a remote tag entity. Only the fields the plugin reads are mapped.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Scene is a remote scene entity with the tags currently attached to it.
type Scene struct {
	ID   string `json:"id"`
	Tags []Tag  `json:"tags"`
}

// TagIDs returns the IDs of the scene's tags in order.
func (s *Scene) TagIDs() []string {
	ids := make([]string, 0, len(s.Tags))
	for _, t := range s.Tags {
		ids = append(ids, t.ID)
	}
	return ids
}
