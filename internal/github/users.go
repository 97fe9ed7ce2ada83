package github

import (
	"context"
	"fmt"
)

// FetchAuthenticatedUser resolves the identity behind the token.
func (c *Client) FetchAuthenticatedUser(ctx context.Context) (User, error) {
	u, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return User{}, c.wrapError("get authenticated user", err)
	}
	return userFromGH(u), nil
}

// GetUser fetches a user's public profile.
func (c *Client) GetUser(ctx context.Context, login string) (User, error) {
	u, _, err := c.gh.Users.Get(ctx, login)
	if err != nil {
		return User{}, c.wrapError(fmt.Sprintf("get user %s", login), err)
	}
	return userFromGH(u), nil
}
