package mutation

import (
	"context"
	"strings"

	"github.com/louisbranch/culater/internal/services/dashboard/coordinator"
	"github.com/louisbranch/culater/internal/services/dashboard/domain"
	"github.com/louisbranch/culater/internal/services/dashboard/gateway"
	apperrors "github.com/louisbranch/culater/internal/services/dashboard/platform/errors"
)

const minPasswordLength = 8

// Login signs in and stores the session.
func (p *Pipeline) Login(ctx context.Context, email, password string) (domain.Session, error) {
	fields := map[string]string{}
	email = strings.TrimSpace(email)
	if email == "" {
		fields["email"] = "email is required"
	}
	if password == "" {
		fields["password"] = "password is required"
	}
	if len(fields) > 0 {
		return domain.Session{}, apperrors.Validation(fields)
	}
	done := p.begin(coordinator.ActionLogin)
	defer done()
	return p.api.Login(ctx, gateway.Credentials{Email: email, Password: password})
}

// Signup registers an account with a license key. Fields are checked in form
// order and only the first failure is reported.
func (p *Pipeline) Signup(ctx context.Context, email, password, licenseKey string) error {
	email = strings.TrimSpace(email)
	switch {
	case !validEmail(email):
		return apperrors.Validation(map[string]string{"email": "please enter a valid email"})
	case len(password) < minPasswordLength:
		return apperrors.Validation(map[string]string{"password": "password must be at least 8 characters long"})
	case strings.TrimSpace(licenseKey) == "":
		return apperrors.Validation(map[string]string{"license_key": "license key cannot be empty"})
	}
	done := p.begin(coordinator.ActionSignup)
	defer done()
	return p.api.Signup(ctx, gateway.SignupRequest{
		Email:      email,
		Password:   password,
		LicenseKey: strings.TrimSpace(licenseKey),
	})
}

// Logout ends the session.
func (p *Pipeline) Logout(ctx context.Context) error {
	done := p.begin(coordinator.ActionLogout)
	defer done()
	return p.api.Logout(ctx)
}
