package server

import (
	"github.com/adboard/authcore/gate"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/observability"
	"github.com/adboard/authcore/server/middleware"
)

// ProtectedRoute guards a path with a set of named policies. The route
// serves the principal's claims; applications mount their real handlers the
// same way.
type ProtectedRoute struct {
	Path     string
	Policies []string
}

// RegisterRoutes wires the middleware stack and all endpoints onto the
// engine. Protected routes and /me sit behind the session gate.
func (s *Server) RegisterRoutes(h *Handlers, g *gate.Gate, metrics *observability.AuthMetrics, log *logger.Logger, protected []ProtectedRoute) {
	s.engine.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
	)

	s.engine.GET("/healthz", h.Healthz)
	s.engine.GET(s.config.LoginPath, h.LoginPage)
	s.engine.POST(s.config.LoginPath, h.Login)
	s.engine.POST("/logout", h.Logout)
	s.engine.GET("/auth/:provider/callback", h.Callback)

	gateCfg := middleware.GateConfig{
		CookieName: s.config.CookieName,
		LoginPath:  s.config.LoginPath,
		Metrics:    metrics,
	}

	s.engine.GET("/me", middleware.RequireSession(g, gateCfg), h.Me)
	for _, route := range protected {
		s.engine.GET(route.Path, middleware.RequireSession(g, gateCfg, route.Policies...), h.Me)
	}
}
