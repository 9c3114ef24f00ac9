package api

import (
	"context"
	"fmt"

	"github.com/naveen1798kumar/acb-dashboard/internal/models"
)

// Login exchanges admin credentials for a bearer token. Token issuance and
// verification live entirely on the server; the client just carries the
// returned string.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, "POST", c.url("/auth/admin-login"), body, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return "", &Error{Kind: KindUnexpectedShape, Message: "login response carried no token"}
	}
	return resp.Token, nil
}

// ListUsers returns the registered storefront users.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	data, err := c.getRaw(ctx, c.url("/auth/users"))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return decodeList[models.User](data, "users")
}
