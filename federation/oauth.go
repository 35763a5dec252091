package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/validation"
)

// Endpoints are the provider URLs an OAuthProvider talks to.
type Endpoints struct {
	TokenURL    string
	UserInfoURL string
}

// wellKnownEndpoints covers the providers the service supports out of the
// box. Others need explicit endpoints via WithEndpoints.
var wellKnownEndpoints = map[string]Endpoints{
	"google": {
		TokenURL:    "https://oauth2.googleapis.com/token",
		UserInfoURL: "https://openidconnect.googleapis.com/v1/userinfo",
	},
	"facebook": {
		TokenURL:    "https://graph.facebook.com/v18.0/oauth/access_token",
		UserInfoURL: "https://graph.facebook.com/me?fields=id,name,email",
	},
}

// OAuthProvider completes the authorization-code exchange against an OAuth2
// provider and verifies the signed-in user via its userinfo endpoint.
type OAuthProvider struct {
	cfg       ProviderConfig
	endpoints Endpoints
	client    *http.Client
	log       *logger.Logger
}

// OAuthOption customizes an OAuthProvider.
type OAuthOption func(*OAuthProvider)

// WithHTTPClient replaces the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) OAuthOption {
	return func(p *OAuthProvider) { p.client = client }
}

// WithEndpoints overrides the provider endpoints, for providers without
// built-in endpoints or for tests.
func WithEndpoints(endpoints Endpoints) OAuthOption {
	return func(p *OAuthProvider) { p.endpoints = endpoints }
}

// NewOAuthProvider creates a provider from configuration. The provider name
// must either be well-known or come with explicit endpoints.
func NewOAuthProvider(cfg ProviderConfig, log *logger.Logger, opts ...OAuthOption) (*OAuthProvider, error) {
	p := &OAuthProvider{
		cfg:       cfg,
		endpoints: wellKnownEndpoints[cfg.Name],
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log.WithComponent("federation." + cfg.Name),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.endpoints.TokenURL == "" || p.endpoints.UserInfoURL == "" {
		return nil, fmt.Errorf("no endpoints known for provider %q", cfg.Name)
	}
	return p, nil
}

// Name returns the provider identifier.
func (p *OAuthProvider) Name() string { return p.cfg.Name }

// Assert exchanges the authorization code for an access token and resolves
// the user behind it. Every transport or protocol failure surfaces as
// PROVIDER_UNAVAILABLE; the caller can retry, nothing is wrong with the
// user's input.
func (p *OAuthProvider) Assert(ctx context.Context, code string) (Assertion, error) {
	accessToken, err := p.exchangeCode(ctx, code)
	if err != nil {
		return Assertion{}, apperrors.ProviderUnavailable(p.cfg.Name, err)
	}

	info, err := p.fetchUserInfo(ctx, accessToken)
	if err != nil {
		return Assertion{}, apperrors.ProviderUnavailable(p.cfg.Name, err)
	}

	assertion := Assertion{
		Provider:      p.cfg.Name,
		ExternalID:    info.subject(),
		Email:         info.Email,
		EmailVerified: info.emailVerified(),
		Name:          info.Name,
	}
	if err := validation.Validate(assertion); err != nil {
		return Assertion{}, apperrors.ProviderUnavailable(p.cfg.Name, err)
	}

	p.log.Debug("assertion verified", logger.Fields("external_id", assertion.ExternalID))
	return assertion, nil
}

func (p *OAuthProvider) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {p.cfg.ClientID},
		"client_secret": {p.cfg.ClientSecret},
		"redirect_uri":  {p.cfg.RedirectURL},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoints.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("building token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := p.doJSON(req, &payload); err != nil {
		return "", fmt.Errorf("exchanging code: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}
	return payload.AccessToken, nil
}

type userInfo struct {
	Sub           string `json:"sub"`
	ID            string `json:"id"`
	Email         string `json:"email"`
	EmailVerified *bool  `json:"email_verified"`
	Name          string `json:"name"`
}

// emailVerified treats providers that omit the field as attesting the
// address; the ones that send it get the honest answer.
func (i userInfo) emailVerified() bool {
	return i.EmailVerified == nil || *i.EmailVerified
}

// subject returns the stable external ID: OIDC "sub", or "id" for providers
// that predate OIDC.
func (i userInfo) subject() string {
	if i.Sub != "" {
		return i.Sub
	}
	return i.ID
}

func (p *OAuthProvider) fetchUserInfo(ctx context.Context, accessToken string) (userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.endpoints.UserInfoURL, nil)
	if err != nil {
		return userInfo{}, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	var info userInfo
	if err := p.doJSON(req, &info); err != nil {
		return userInfo{}, fmt.Errorf("fetching userinfo: %w", err)
	}
	return info, nil
}

func (p *OAuthProvider) doJSON(req *http.Request, out any) error {
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", req.URL.Path, resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}
