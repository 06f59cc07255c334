package gateway

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
	"github.com/louisbranch/culater/internal/services/dashboard/session"
)

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the account registration body.
type SignupRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	LicenseKey string `json:"licenseKey"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token and stores it. The new
// session is returned with its decoded subject.
func (c *Client) Login(ctx context.Context, creds Credentials) (domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, call{
		name:            "login",
		method:          http.MethodPost,
		path:            "/api/auth/login",
		body:            creds,
		out:             &resp,
		rejectedMessage: map[int]string{http.StatusUnauthorized: "invalid email or password"},
	})
	if err != nil {
		return domain.Session{}, err
	}
	token := strings.TrimSpace(resp.AccessToken)
	if !session.WellFormed(token) {
		return domain.Session{}, apperrors.Unknown(fmt.Errorf("login response carried no usable access_token"))
	}
	if err := c.tokens.Save(ctx, token); err != nil {
		return domain.Session{}, apperrors.Unknown(err)
	}
	sess, ok := c.tokens.Load(ctx)
	if !ok {
		return domain.Session{}, apperrors.Unauthenticated("stored credential could not be loaded")
	}
	return sess, nil
}

// Signup registers an account. The server answers 401 for an invalid
// license key.
func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	return c.do(ctx, call{
		name:            "signup",
		method:          http.MethodPost,
		path:            c.signupPath,
		body:            req,
		rejectedMessage: map[int]string{http.StatusUnauthorized: "invalid license key"},
	})
}

// Logout ends the session server-side and clears the local credential. It
// fails fast without a request when no well-formed credential is stored.
func (c *Client) Logout(ctx context.Context) error {
	if _, ok := c.tokens.Load(ctx); !ok {
		return apperrors.Unauthenticated("not logged in")
	}
	err := c.do(ctx, call{
		name:         "logout",
		method:       http.MethodPost,
		path:         "/api/auth/logout",
		body:         struct{}{},
		sessionBound: true,
	})
	if err != nil {
		return err
	}
	if err := c.tokens.Clear(ctx); err != nil {
		return apperrors.Unknown(err)
	}
	return nil
}
