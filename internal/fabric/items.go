package fabric

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// Item types used by the toolkit.
const (
	ItemTypeNotebook  = "Notebook"
	ItemTypeDataAgent = "DataAgent"
	ItemTypeAISkill   = "AISkill"
)

// Item is a workspace item (notebook, data agent, lakehouse, ...).
type Item struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Type        string `json:"type"`
	WorkspaceID string `json:"workspaceId"`
	Description string `json:"description,omitempty"`
}

type itemDefinition struct {
	Parts []definitionPart `json:"parts"`
}

type definitionPart struct {
	Path        string `json:"path"`
	Payload     string `json:"payload"`
	PayloadType string `json:"payloadType"`
}

// notebookDefinition packages notebook source for the item API.
func notebookDefinition(content []byte) itemDefinition {
	return itemDefinition{
		Parts: []definitionPart{{
			Path:        "notebook-content.py",
			Payload:     base64.StdEncoding.EncodeToString(content),
			PayloadType: "InlineBase64",
		}},
	}
}

// ValidateWorkspaceID reports whether a workspace id has the expected UUID
// shape.
func ValidateWorkspaceID(workspaceID string) bool {
	return uuid.Validate(workspaceID) == nil
}

// CreateNotebook creates a notebook item from source content. Creation is
// asynchronous on the service side; this call waits for provisioning to
// finish and returns the new item.
func (c *Client) CreateNotebook(ctx context.Context, workspaceID, displayName, description string, content []byte) (*Item, error) {
	body := struct {
		DisplayName string         `json:"displayName"`
		Description string         `json:"description,omitempty"`
		Definition  itemDefinition `json:"definition"`
	}{
		DisplayName: displayName,
		Description: description,
		Definition:  notebookDefinition(content),
	}

	var item Item
	resp, err := c.do(ctx, http.MethodPost, fmt.Sprintf("/workspaces/%s/notebooks", workspaceID), body, &item)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusAccepted {
		item = Item{}
		if err := c.awaitOperation(ctx, resp.Header.Get("Location"), &item); err != nil {
			return nil, err
		}
	}

	c.log.Info().Str("workspace", workspaceID).Str("notebook", item.ID).Msg("notebook created")
	return &item, nil
}

// UpdateNotebookDefinition replaces an existing notebook's source content.
func (c *Client) UpdateNotebookDefinition(ctx context.Context, workspaceID, notebookID string, content []byte) error {
	body := struct {
		Definition itemDefinition `json:"definition"`
	}{Definition: notebookDefinition(content)}

	path := fmt.Sprintf("/workspaces/%s/items/%s/updateDefinition?updateMetadata=false", workspaceID, notebookID)
	resp, err := c.do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusAccepted {
		if err := c.awaitOperation(ctx, resp.Header.Get("Location"), nil); err != nil {
			return err
		}
	}

	c.log.Info().Str("workspace", workspaceID).Str("notebook", notebookID).Msg("notebook definition updated")
	return nil
}

// GetItem fetches a workspace item by id. Returns ErrItemNotFound when the
// item does not exist.
func (c *Client) GetItem(ctx context.Context, workspaceID, itemID string) (*Item, error) {
	var item Item
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/workspaces/%s/items/%s", workspaceID, itemID), nil, &item)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ListItems returns all items in a workspace, following continuation tokens.
// itemType filters server-side when non-empty.
func (c *Client) ListItems(ctx context.Context, workspaceID, itemType string) ([]Item, error) {
	var items []Item
	token := ""

	for {
		path := fmt.Sprintf("/workspaces/%s/items", workspaceID)
		query := url.Values{}
		if itemType != "" {
			query.Set("type", itemType)
		}
		if token != "" {
			query.Set("continuationToken", token)
		}
		if len(query) > 0 {
			path += "?" + query.Encode()
		}

		var page struct {
			Value             []Item `json:"value"`
			ContinuationToken string `json:"continuationToken"`
		}
		if _, err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		items = append(items, page.Value...)
		if page.ContinuationToken == "" {
			return items, nil
		}
		token = page.ContinuationToken
	}
}

// FindNotebookByName returns the notebook with the exact display name, or
// ErrItemNotFound if the workspace has none.
func (c *Client) FindNotebookByName(ctx context.Context, workspaceID, displayName string) (*Item, error) {
	items, err := c.ListItems(ctx, workspaceID, ItemTypeNotebook)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].DisplayName == displayName {
			return &items[i], nil
		}
	}
	return nil, ErrItemNotFound
}
