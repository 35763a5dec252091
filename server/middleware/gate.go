package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/adboard/authcore/authctx"
	apperrors "github.com/adboard/authcore/errors"
	"github.com/adboard/authcore/gate"
	"github.com/adboard/authcore/observability"
)

// GateConfig configures the session gate middleware.
type GateConfig struct {
	// CookieName is the session cookie to read the token from.
	CookieName string

	// LoginPath is where challenged browser requests are redirected.
	LoginPath string

	// Metrics records gate decisions when non-nil.
	Metrics *observability.AuthMetrics
}

// RequireSession gates a route behind a valid session and the named
// policies. Challenges redirect browsers to the login page with the original
// URL as return_url; API clients get 401. Denials always get the policy
// error as JSON.
func RequireSession(g *gate.Gate, cfg GateConfig, policies ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := g.Handle(extractToken(c, cfg.CookieName), policies...)
		if cfg.Metrics != nil {
			cfg.Metrics.RecordGateDecision(c.Request.Context(), decision.Outcome.String())
		}

		switch decision.Outcome {
		case gate.OutcomeAllow:
			c.Request = c.Request.WithContext(authctx.Set(c.Request.Context(), decision.Principal))
			c.Next()
		case gate.OutcomeChallenge:
			if wantsHTML(c) {
				c.Redirect(http.StatusFound,
					cfg.LoginPath+"?return_url="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperrors.Unauthenticated().ToResponse())
		default:
			err := decision.Err
			if err == nil {
				err = apperrors.Forbidden("")
			}
			c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
		}
	}
}

// extractToken reads the session token from the cookie, falling back to an
// Authorization bearer header for API clients.
func extractToken(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
