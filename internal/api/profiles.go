package api

import (
	"context"
	"encoding/json"
	"fmt"

	"yagomarket/internal/types"
)

// CurrentProfile fetches the authenticated user's contact profile. The
// response shape varies across backend versions, so the raw payload goes
// to internal/profile for extraction.
func (c *Client) CurrentProfile(ctx context.Context) (json.RawMessage, error) {
	return c.RawJSON(ctx, "/api/profile/current")
}

// ProfileByUser fetches a profile by owning user id.
func (c *Client) ProfileByUser(ctx context.Context, userID int) (json.RawMessage, error) {
	return c.RawJSON(ctx, fmt.Sprintf("/api/profiles/user/%d", userID))
}

// Profiles fetches every profile; last-resort fallback for backends
// missing the scoped routes.
func (c *Client) Profiles(ctx context.Context) (json.RawMessage, error) {
	return c.RawJSON(ctx, "/api/profiles")
}

// SaveProfile creates or updates the user's contact info.
func (c *Client) SaveProfile(ctx context.Context, p types.Profile) error {
	return c.post(ctx, "/api/profiles", p, nil)
}
