package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"bikefleet-backend/internal/config"
	"bikefleet-backend/internal/logger"
)

// ErrProviderFailure covers timeouts and protocol errors during the
// identity-provider round-trip. Always recoverable by retrying the
// login; never fatal to the process.
var ErrProviderFailure = errors.New("identity provider failure")

// Identity is the verified result of an OIDC handshake.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
}

// Provider performs the redirect-then-callback OAuth handshake against
// one configured OIDC issuer.
type Provider interface {
	Name() string
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*Identity, error)
}

type oidcProvider struct {
	name         string
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
	timeout      time.Duration
}

// NewOIDCProvider discovers the issuer and builds a verifier for it.
func NewOIDCProvider(ctx context.Context, name string, cfg config.OIDCProviderConfig, timeout time.Duration) (Provider, error) {
	provider, err := oidc.NewProvider(ctx, cfg.IssuerURL)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC provider %s: %w", name, err)
	}

	verifier := provider.Verifier(&oidc.Config{ClientID: cfg.ClientID})

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{oidc.ScopeOpenID, "profile", "email"}
	}

	oauth2Config := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     provider.Endpoint(),
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
	}

	return &oidcProvider{
		name:         name,
		verifier:     verifier,
		oauth2Config: oauth2Config,
		timeout:      timeout,
	}, nil
}

func (p *oidcProvider) Name() string {
	return p.name
}

func (p *oidcProvider) AuthCodeURL(state string) string {
	return p.oauth2Config.AuthCodeURL(state)
}

// Exchange trades the authorization code for a verified identity. The
// round-trip is bounded by the configured timeout; on timeout or
// protocol error the flow terminates with ErrProviderFailure rather
// than hanging or retrying.
func (p *oidcProvider) Exchange(ctx context.Context, code string) (*Identity, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	logger.ExternalServiceCall("oidc", "exchange", "provider", p.name)

	oauth2Token, err := p.oauth2Config.Exchange(ctx, code)
	if err != nil {
		logger.ExternalServiceResult("oidc", "exchange", err, "provider", p.name)
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing id_token in response", ErrProviderFailure)
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: id_token verification: %v", ErrProviderFailure, err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("%w: parsing claims: %v", ErrProviderFailure, err)
	}

	logger.ExternalServiceResult("oidc", "exchange", nil, "provider", p.name, "subject", idToken.Subject)

	return &Identity{
		Subject:       idToken.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}
