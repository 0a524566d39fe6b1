package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"promptory-server/internal/utils/httpclients"
)

const (
	googleAuthEndpoint  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenEndpoint = "https://oauth2.googleapis.com/token"
	googleJWKSURL       = "https://www.googleapis.com/oauth2/v3/certs"

	googleIssuer      = "https://accounts.google.com"
	googleIssuerShort = "accounts.google.com"
)

const (
	jwksRefreshInterval        = time.Hour
	jwksInitialRetryInterval   = time.Second
	jwksInitialRetryMaxBackoff = 10 * time.Second
	jwksInitialRetryTimeout    = 2 * time.Minute
)

// GoogleIdentity holds verified ID token claims for a Google account.
type GoogleIdentity struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type googleTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
	Scope       string `json:"scope,omitempty"`
}

// GoogleClient drives the authorization code flow against Google and
// verifies returned ID tokens against Google's JWKS.
type GoogleClient struct {
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *resty.Client
	logger       zerolog.Logger
	jwks         atomic.Pointer[keyfunc.JWKS]
	lastErr      atomic.Value // stores lastErrWrap
}

// lastErrWrap is a sentinel wrapper to avoid storing bare nil in atomic.Value.
type lastErrWrap struct{ Err error }

// NewGoogleClient initialises JWKS fetching and returns the client.
func NewGoogleClient(ctx context.Context, clientID, clientSecret, redirectURI string, logger zerolog.Logger) (*GoogleClient, error) {
	if clientID == "" || clientSecret == "" {
		return nil, errors.New("google client credentials are required")
	}

	client := &GoogleClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   httpclients.NewClient("google-oauth"),
		logger:       logger,
	}
	client.lastErr.Store(lastErrWrap{Err: nil})

	if err := client.initJWKS(ctx); err != nil {
		return nil, err
	}

	return client, nil
}

func (c *GoogleClient) initJWKS(ctx context.Context) error {
	options := keyfunc.Options{
		RefreshErrorHandler: func(err error) {
			c.lastErr.Store(lastErrWrap{Err: err})
			if err != nil {
				c.logger.Error().Err(err).Msg("jwks refresh failed")
			}
		},
		RefreshInterval:   jwksRefreshInterval,
		RefreshUnknownKID: true,
	}

	if ctx != nil {
		options.Ctx = ctx
	}

	backoff := jwksInitialRetryInterval
	deadline := time.Now().Add(jwksInitialRetryTimeout)
	if ctx != nil {
		if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
			deadline = ctxDeadline
		}
	}

	for attempt := 1; ; attempt++ {
		jwks, err := keyfunc.Get(googleJWKSURL, options)
		if err == nil {
			c.lastErr.Store(lastErrWrap{Err: nil})
			c.jwks.Store(jwks)
			return nil
		}

		c.logger.Warn().
			Err(err).
			Str("jwks_url", googleJWKSURL).
			Int("attempt", attempt).
			Msg("initial jwks fetch failed, retrying")

		if ctx != nil {
			select {
			case <-ctx.Done():
				return fmt.Errorf("fetch jwks: %w", ctx.Err())
			case <-time.After(backoff):
			}
		} else {
			time.Sleep(backoff)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("fetch jwks: %w", err)
		}

		if next := backoff * 2; next <= jwksInitialRetryMaxBackoff {
			backoff = next
		} else {
			backoff = jwksInitialRetryMaxBackoff
		}
	}
}

// AuthCodeURL builds the Google consent page URL for the given CSRF state.
func (c *GoogleClient) AuthCodeURL(state string) string {
	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	params.Set("scope", "openid email profile")
	params.Set("state", state)
	params.Set("access_type", "online")
	params.Set("prompt", "select_account")
	return googleAuthEndpoint + "?" + params.Encode()
}

// Exchange trades an authorization code for verified identity claims.
func (c *GoogleClient) Exchange(ctx context.Context, code string) (*GoogleIdentity, error) {
	var tokens googleTokenResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"client_id":     c.clientID,
			"client_secret": c.clientSecret,
			"code":          code,
			"grant_type":    "authorization_code",
			"redirect_uri":  c.redirectURI,
		}).
		SetResult(&tokens).
		Post(googleTokenEndpoint)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("exchange code: google returned status %d", resp.StatusCode())
	}
	if tokens.IDToken == "" {
		return nil, errors.New("exchange code: response missing id_token")
	}

	return c.VerifyIDToken(ctx, tokens.IDToken)
}

// VerifyIDToken validates the signature and claims of a Google ID token.
func (c *GoogleClient) VerifyIDToken(_ context.Context, rawToken string) (*GoogleIdentity, error) {
	jwks := c.jwks.Load()
	if jwks == nil {
		return nil, errors.New("jwks not initialised")
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	token, err := parser.ParseWithClaims(rawToken, jwt.MapClaims{}, jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("parse id token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("invalid id token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	iss, _ := mapClaims["iss"].(string)
	if iss != googleIssuer && iss != googleIssuerShort {
		return nil, fmt.Errorf("issuer mismatch %s", iss)
	}

	aud, _ := mapClaims["aud"].(string)
	if aud != c.clientID {
		return nil, errors.New("audience mismatch")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, errors.New("sub claim missing")
	}

	email, _ := mapClaims["email"].(string)
	if email == "" {
		return nil, errors.New("email claim missing")
	}

	emailVerified, _ := mapClaims["email_verified"].(bool)
	name, _ := mapClaims["name"].(string)
	picture, _ := mapClaims["picture"].(string)

	return &GoogleIdentity{
		Subject:       sub,
		Email:         email,
		EmailVerified: emailVerified,
		Name:          name,
		Picture:       picture,
	}, nil
}

// Ready indicates whether JWKS has been successfully loaded.
func (c *GoogleClient) Ready() bool {
	if c.jwks.Load() == nil {
		return false
	}
	if val := c.lastErr.Load(); val != nil {
		if wrap, ok := val.(lastErrWrap); ok && wrap.Err != nil {
			return false
		}
	}
	return true
}
