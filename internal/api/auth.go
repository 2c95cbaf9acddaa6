package api

import (
	"context"
	"net/http"
)

type AuthClient struct{ c *Client }

func NewAuthClient(c *Client) *AuthClient { return &AuthClient{c: c} }

func (ac *AuthClient) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res LoginResult
	if err := ac.c.Do(ctx, http.MethodPost, "/auth/login", "", body, &res); err != nil {
		return LoginResult{}, err
	}
	return res, nil
}

func (ac *AuthClient) Register(ctx context.Context, email, password string) error {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	return ac.c.Do(ctx, http.MethodPost, "/auth/register", "", body, nil)
}
