package graphql

import (
	"context"
	"encoding/json"
	"fmt"
)

const queryAllTags = `
query {
  allTags {
    id
    name
  }
}
`

const mutationTagCreate = `
mutation tagCreate($input: TagCreateInput!) {
  tagCreate(input: $input) {
    id
  }
}
`

const mutationTagDestroy = `
mutation tagDestroy($input: TagDestroyInput!) {
  tagDestroy(input: $input)
}
`

const queryFindScenes = `
query findScenes($filter: FindFilterType!) {
  findScenes(filter: $filter) {
    count
    scenes {
      id
      tags {
        id
      }
    }
  }
}
`

const mutationSceneUpdate = `
mutation sceneUpdate($input: SceneUpdateInput!) {
  sceneUpdate(input: $input) {
    id
  }
}
`

// FindTagIDByName returns the ID of the first tag whose name matches name,
// or "" when no such tag exists. The full tag set is fetched in one response;
// the remote tag list is assumed small enough not to need pagination.
func (c *HTTPClient) FindTagIDByName(ctx context.Context, name string) (string, error) {
	data, err := c.Execute(ctx, queryAllTags, nil)
	if err != nil {
		return "", err
	}

	var resp struct {
		AllTags []Tag `json:"allTags"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("graphql: decode allTags: %w", err)
	}

	for _, tag := range resp.AllTags {
		if tag.Name == name {
			return tag.ID, nil
		}
	}
	return "", nil
}

// CreateTag creates a tag with the given name and returns its ID.
func (c *HTTPClient) CreateTag(ctx context.Context, name string) (string, error) {
	variables := map[string]any{
		"input": map[string]any{"name": name},
	}

	data, err := c.Execute(ctx, mutationTagCreate, variables)
	if err != nil {
		return "", err
	}

	var resp struct {
		TagCreate Tag `json:"tagCreate"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("graphql: decode tagCreate: %w", err)
	}
	return resp.TagCreate.ID, nil
}

// DestroyTag deletes the tag with the given ID. The remote service rejects
// unknown IDs; callers wanting idempotence must check existence first.
func (c *HTTPClient) DestroyTag(ctx context.Context, id string) error {
	variables := map[string]any{
		"input": map[string]any{"id": id},
	}

	_, err := c.Execute(ctx, mutationTagDestroy, variables)
	return err
}

// FindRandomScene fetches exactly one randomly-ordered scene. It returns nil
// when the remote scene count is zero.
func (c *HTTPClient) FindRandomScene(ctx context.Context) (*Scene, error) {
	variables := map[string]any{
		"filter": map[string]any{
			"per_page": 1,
			"sort":     "random",
		},
	}

	data, err := c.Execute(ctx, queryFindScenes, variables)
	if err != nil {
		return nil, err
	}

	var resp struct {
		FindScenes struct {
			Count  int     `json:"count"`
			Scenes []Scene `json:"scenes"`
		} `json:"findScenes"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("graphql: decode findScenes: %w", err)
	}

	if resp.FindScenes.Count == 0 || len(resp.FindScenes.Scenes) == 0 {
		return nil, nil
	}
	return &resp.FindScenes.Scenes[0], nil
}

// UpdateScene replaces the scene's tag list wholesale with tagIDs. Callers
// must pass the complete desired sequence, not a delta.
func (c *HTTPClient) UpdateScene(ctx context.Context, id string, tagIDs []string) error {
	if tagIDs == nil {
		tagIDs = []string{}
	}
	variables := map[string]any{
		"input": map[string]any{
			"id":      id,
			"tag_ids": tagIDs,
		},
	}

	_, err := c.Execute(ctx, mutationSceneUpdate, variables)
	return err
}
