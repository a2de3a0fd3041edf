package apisvc

import (
	"context"

	"github.com/Sky-walkerX/Examcell/core/auth"
)

var _ auth.Authenticator = (*Client)(nil)

// Login exchanges credentials for a token. It is the only call allowed without a session.
func (c *Client) Login(ctx context.Context, creds auth.Credentials) (auth.LoginResponse, error) {
	var resp auth.LoginResponse
	err := c.post(ctx, loginEndpoint, JSONBody{Value: creds}, &resp)
	return resp, err
}
