// Package clerkhttp is implementation of directory interface over a
// Clerk-style users REST API.
package clerkhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/emotter/emotter/internal/directory"
	"github.com/emotter/emotter/internal/entities"
)

type client struct {
	http    *http.Client
	baseURL string
	token   string
}

type userDTO struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	ProfileImageURL string `json:"profile_image_url"`
}

// New creates new instance of client.
func New(baseURL, token string, timeout time.Duration) directory.Directory {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		token:   token,
	}
}

func (c *client) GetAuthors(ctx context.Context, ids []string) ([]*entities.Author, error) {
	if len(ids) > directory.MaxBatchIDs {
		return nil, directory.ErrTooManyIDs
	}

	q := url.Values{}
	for _, id := range ids {
		q.Add("user_id", id)
	}
	q.Set("limit", fmt.Sprint(directory.MaxBatchIDs))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/v1/users?%s", c.baseURL, q.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory responded with %s", resp.Status)
	}

	var uu []userDTO
	if err := json.NewDecoder(resp.Body).Decode(&uu); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]*entities.Author, len(uu))
	for i, u := range uu {
		if u.Username == "" {
			return nil, fmt.Errorf("%w: id=%s", directory.ErrMissingUsername, u.ID)
		}

		out[i] = &entities.Author{
			ID:              u.ID,
			Username:        u.Username,
			ProfileImageURL: u.ProfileImageURL,
		}
	}

	return out, nil
}
