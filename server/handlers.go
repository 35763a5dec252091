package server

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adboard/authcore/authctx"
	"github.com/adboard/authcore/credential"
	apperrors "github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/federation"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/observability"
	"github.com/adboard/authcore/session"
	"github.com/adboard/authcore/version"
)

// Handlers bundles the auth endpoints and their collaborators.
type Handlers struct {
	verifier  *credential.Verifier
	providers *federation.Registry
	bridge    *federation.Bridge
	builder   *identity.Builder
	sessions  *session.Issuer
	metrics   *observability.AuthMetrics
	log       *logger.Logger
	cfg       Config
}

// NewHandlers creates the endpoint handlers.
func NewHandlers(
	verifier *credential.Verifier,
	providers *federation.Registry,
	bridge *federation.Bridge,
	builder *identity.Builder,
	sessions *session.Issuer,
	metrics *observability.AuthMetrics,
	log *logger.Logger,
	cfg Config,
) *Handlers {
	return &Handlers{
		verifier:  verifier,
		providers: providers,
		bridge:    bridge,
		builder:   builder,
		sessions:  sessions,
		metrics:   metrics,
		log:       log.WithComponent("handlers"),
		cfg:       cfg,
	}
}

type loginRequest struct {
	Identifier string `form:"identifier" json:"identifier" binding:"required"`
	Secret     string `form:"secret" json:"secret" binding:"required"`
	RememberMe bool   `form:"remember_me" json:"remember_me"`
	ReturnURL  string `form:"return_url" json:"return_url"`
}

type sessionResponse struct {
	ExpiresAt  time.Time `json:"expires_at"`
	Persistent bool      `json:"persistent"`
}

// LoginPage renders a minimal login form. The return_url query parameter
// survives the round-trip as a hidden field.
func (h *Handlers) LoginPage(c *gin.Context) {
	returnURL := html.EscapeString(c.Query("return_url"))
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>Log in</title></head>
<body>
<form method="post" action="%s">
<input type="hidden" name="return_url" value="%s">
<label>Email <input type="email" name="identifier" required></label>
<label>Password <input type="password" name="secret" required></label>
<label><input type="checkbox" name="remember_me" value="true"> Remember me</label>
<button type="submit">Log in</button>
</form>
</body>
</html>`, h.cfg.LoginPath, returnURL)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Login verifies credentials and grants a session.
func (h *Handlers) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondWithError(c, apperrors.Validation("identifier and secret are required").WithCause(err))
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLoginAttempt(ctx)
	}

	user, err := h.verifier.Verify(ctx, req.Identifier, req.Secret)
	if err != nil {
		h.recordLoginFailure(c, err)
		RespondWithError(c, err)
		return
	}

	token, err := h.sessions.Issue(h.builder.Build(user), req.RememberMe)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	h.grantSession(c, token)

	h.log.Info("login succeeded", logger.Fields(
		logger.FieldUserID, user.ID,
		"persistent", token.Persistent,
	))

	if req.ReturnURL != "" {
		target, ok := localReturnURL(req.ReturnURL)
		if !ok {
			target = "/"
		}
		c.Redirect(http.StatusFound, target)
		return
	}
	RespondOK(c, sessionResponse{ExpiresAt: token.ExpiresAt, Persistent: token.Persistent})
}

// Logout revokes the current session and clears the cookie. Requests
// without a session still get 204; logout is idempotent.
func (h *Handlers) Logout(c *gin.Context) {
	if token, err := c.Cookie(h.cfg.CookieName); err == nil && token != "" {
		h.sessions.Revoke(token)
		if h.metrics != nil {
			h.metrics.RecordSessionRevoked(c.Request.Context())
		}
	}
	c.SetCookie(h.cfg.CookieName, "", -1, "/", "", h.cfg.CookieSecure, true)
	RespondNoContent(c)
}

// Callback completes a federated sign-in: the provider verifies the
// authorization code, the bridge resolves the assertion to a local account,
// and a session is granted exactly as for a password login.
func (h *Handlers) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("provider")

	provider, ok := h.providers.Get(name)
	if !ok {
		RespondWithError(c, apperrors.InvalidInput("provider", fmt.Sprintf("unknown identity provider %q", name)))
		return
	}

	code := c.Query("code")
	if code == "" {
		RespondWithError(c, apperrors.InvalidInput("code", "authorization code is required"))
		return
	}

	assertion, err := provider.Assert(ctx, code)
	if err != nil {
		if _, ok := apperrors.AsAuthError(err); !ok {
			err = apperrors.ProviderUnavailable(name, err)
		}
		RespondWithError(c, err)
		return
	}

	user, err := h.bridge.Resolve(ctx, assertion)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	token, err := h.sessions.Issue(h.builder.Build(user), false)
	if err != nil {
		RespondWithError(c, err)
		return
	}
	h.grantSession(c, token)

	h.log.Info("federated login succeeded", logger.Fields(
		logger.FieldUserID, user.ID,
		"provider", name,
	))

	if target, ok := localReturnURL(c.Query("return_url")); ok {
		c.Redirect(http.StatusFound, target)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// Me returns the authenticated principal's claims. Only reachable behind
// the gate middleware.
func (h *Handlers) Me(c *gin.Context) {
	principal := authctx.MustGet(c.Request.Context())
	RespondOK(c, gin.H{"claims": principal.Claims()})
}

// Healthz reports liveness and the running build.
func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": version.Get().String()})
}

func (h *Handlers) recordLoginFailure(c *gin.Context, err error) {
	if h.metrics == nil {
		return
	}
	ctx := c.Request.Context()
	if authErr, ok := apperrors.AsAuthError(err); ok {
		h.metrics.RecordLoginFailure(ctx, string(authErr.Code))
		if authErr.Code == apperrors.ErrCodeLockedOut {
			h.metrics.RecordLockout(ctx)
		}
		return
	}
	h.metrics.RecordLoginFailure(ctx, string(apperrors.ErrCodeInternal))
}

// grantSession sets the session cookie. Persistent sessions carry a max-age
// so they survive the browser; others stay session cookies.
func (h *Handlers) grantSession(c *gin.Context, token session.Token) {
	maxAge := 0
	if token.Persistent {
		maxAge = int(token.ExpiresAt.Sub(token.IssuedAt).Seconds())
	}
	c.SetCookie(h.cfg.CookieName, token.Value, maxAge, "/", "", h.cfg.CookieSecure, true)
	if h.metrics != nil {
		h.metrics.RecordSessionIssued(c.Request.Context(), token.Persistent)
	}
}

// localReturnURL accepts only same-site absolute paths, never schemes or
// protocol-relative URLs that would make login an open redirect.
func localReturnURL(raw string) (string, bool) {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return "", false
	}
	return raw, true
}
