package api

import (
	"context"
	"fmt"

	"yagomarket/internal/types"
)

type authResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Login exchanges credentials for a session. Validation failures come back
// as *APIError with field messages.
func (c *Client) Login(ctx context.Context, email, password string) (types.Session, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var out authResponse
	if err := c.post(ctx, "/api/login", payload, &out); err != nil {
		return types.Session{}, err
	}
	return types.Session{Token: out.Token, User: out.User}, nil
}

// Register creates an account and returns the fresh session. The backend
// requires a matching password confirmation.
func (c *Client) Register(ctx context.Context, name, email, password, role string) (types.Session, error) {
	payload := map[string]string{
		"name":                  name,
		"email":                 email,
		"password":              password,
		"password_confirmation": password,
		"role":                  role,
	}
	var out authResponse
	if err := c.post(ctx, "/api/register", payload, &out); err != nil {
		return types.Session{}, err
	}
	return types.Session{Token: out.Token, User: out.User}, nil
}

// UpdateUserRequest edits the identity record. The password fields are
// only sent when the user is changing their password.
type UpdateUserRequest struct {
	Name                    string `json:"name"`
	Email                   string `json:"email"`
	CurrentPassword         string `json:"current_password,omitempty"`
	NewPassword             string `json:"new_password,omitempty"`
	NewPasswordConfirmation string `json:"new_password_confirmation,omitempty"`
}

// UpdateUser saves personal info for the given user id.
func (c *Client) UpdateUser(ctx context.Context, id int, req UpdateUserRequest) error {
	return c.put(ctx, fmt.Sprintf("/api/users/%d", id), req, nil)
}
