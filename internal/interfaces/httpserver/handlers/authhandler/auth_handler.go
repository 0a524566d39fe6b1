package authhandler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"promptory-server/internal/config"
	"promptory-server/internal/domain/user"
	"promptory-server/internal/infrastructure/auth"
	"promptory-server/internal/infrastructure/metrics"
	"promptory-server/internal/interfaces/httpserver/middlewares"
	"promptory-server/internal/interfaces/httpserver/responses"
	"promptory-server/internal/utils/idgen"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
	stateLength     = 32
)

const providerGoogle = "google"

// AuthHandler drives the Google login flow and issues access tokens.
type AuthHandler struct {
	google *auth.GoogleClient
	tokens *auth.TokenService
	users  *user.Service
	cfg    *config.Config
	logger zerolog.Logger
}

func NewAuthHandler(google *auth.GoogleClient, tokens *auth.TokenService, users *user.Service, cfg *config.Config, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		google: google,
		tokens: tokens,
		users:  users,
		cfg:    cfg,
		logger: logger,
	}
}

// Login redirects the browser to the Google consent page with a CSRF state cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	state, err := idgen.GenerateSecureID("st", stateLength)
	if err != nil {
		metrics.RecordAuthRequest(providerGoogle, "error")
		responses.HandleErrorWithStatus(c, http.StatusInternalServerError, err, "failed to start login")
		return
	}

	cookie := responses.NewCookieWithSecurity(stateCookieName, state, time.Now().Add(stateCookieTTL))
	http.SetCookie(c.Writer, cookie)

	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state))
}

// Callback completes the authorization code flow and issues an access token.
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	cookieState, err := c.Cookie(stateCookieName)
	if err != nil || state == "" || state != cookieState {
		metrics.RecordAuthRequest(providerGoogle, "state_mismatch")
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("state mismatch"), "invalid login state")
		return
	}

	// Expire the state cookie, it is single use.
	expired := responses.NewCookieWithSecurity(stateCookieName, "", time.Unix(0, 0))
	http.SetCookie(c.Writer, expired)

	code := c.Query("code")
	if code == "" {
		metrics.RecordAuthRequest(providerGoogle, "missing_code")
		responses.HandleErrorWithStatus(c, http.StatusBadRequest, errors.New("missing code"), "missing authorization code")
		return
	}

	identity, err := h.google.Exchange(c.Request.Context(), code)
	if err != nil {
		h.logger.Error().Err(err).Msg("google code exchange failed")
		metrics.RecordAuthRequest(providerGoogle, "exchange_failed")
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, err, "login failed")
		return
	}

	usr, err := h.users.EnsureUser(c.Request.Context(), user.Identity{
		Email:      identity.Email,
		Provider:   providerGoogle,
		ProviderID: &identity.Subject,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to resolve user after login")
		metrics.RecordAuthRequest(providerGoogle, "user_resolution_failed")
		responses.HandleError(c, err, "login failed")
		return
	}

	accessToken, err := h.tokens.Issue(usr.ID, usr.Email)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to issue access token")
		metrics.RecordAuthRequest(providerGoogle, "token_issue_failed")
		responses.HandleErrorWithStatus(c, http.StatusInternalServerError, err, "login failed")
		return
	}

	metrics.RecordAuthRequest(providerGoogle, "success")

	if h.cfg.FrontendURL != "" {
		redirect, err := url.Parse(h.cfg.FrontendURL)
		if err == nil {
			query := redirect.Query()
			query.Set("token", accessToken)
			redirect.RawQuery = query.Encode()
			c.Redirect(http.StatusTemporaryRedirect, redirect.String())
			return
		}
		h.logger.Warn().Err(err).Msg("invalid frontend url, returning token inline")
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "Bearer",
	})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	usr, err := h.users.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err, "failed to load user")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    usr.ID,
		"email": usr.Email,
	})
}
