// authd is the authentication service: password and federated login,
// session issuance, and policy-gated routes. Everything is wired here with
// explicit constructors, no container.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adboard/authcore/config"
	"github.com/adboard/authcore/credential"
	"github.com/adboard/authcore/federation"
	"github.com/adboard/authcore/gate"
	"github.com/adboard/authcore/identity"
	"github.com/adboard/authcore/logger"
	"github.com/adboard/authcore/mail"
	"github.com/adboard/authcore/observability"
	"github.com/adboard/authcore/password"
	"github.com/adboard/authcore/policy"
	"github.com/adboard/authcore/server"
	"github.com/adboard/authcore/session"
	"github.com/adboard/authcore/store/memory"
	"github.com/adboard/authcore/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "authd:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	if err := config.Load("authd", &cfg); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobal(log)
	log.Info("starting", logger.Fields(
		"environment", cfg.Environment,
		"version", version.Get().String(),
	))

	if cfg.Observability.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Observability)
		if err != nil {
			return fmt.Errorf("initializing tracer: %w", err)
		}
		defer shutdownProvider(tp.Shutdown, log, "tracer")

		mp, err := observability.InitMeter(ctx, cfg.Observability)
		if err != nil {
			return fmt.Errorf("initializing meter: %w", err)
		}
		defer shutdownProvider(mp.Shutdown, log, "meter")
	}

	metrics, err := observability.NewAuthMetrics(observability.Meter("authcore"))
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	users := memory.New()
	hasher := password.NewHasher(cfg.Password)
	if err := seedUsers(ctx, users, hasher, cfg, log); err != nil {
		return fmt.Errorf("seeding users: %w", err)
	}

	verifier := credential.NewVerifier(users, hasher, cfg.Lockout, log,
		credential.WithConfirmationSender(mail.NewLogSender(log)))
	builder := identity.NewBuilder(identity.AttributeClaim{Type: policy.MinimumAgeClaim})

	issuer, err := session.NewIssuer(cfg.Session, log)
	if err != nil {
		return fmt.Errorf("creating session issuer: %w", err)
	}

	providers := federation.NewRegistry()
	for _, pc := range cfg.Federation.Providers {
		provider, err := federation.NewOAuthProvider(pc, log)
		if err != nil {
			return fmt.Errorf("creating provider %s: %w", pc.Name, err)
		}
		if err := providers.Register(provider); err != nil {
			return fmt.Errorf("registering provider %s: %w", pc.Name, err)
		}
	}
	bridge := federation.NewBridge(users, log)

	engine := policy.NewEngine()
	engine.MustRegister(policy.MinimumAgeName, policy.MinimumAge())
	for _, rp := range cfg.Policies.Roles {
		if err := engine.Register(rp.Name, policy.RequireRole(rp.Role)); err != nil {
			return fmt.Errorf("registering policy %s: %w", rp.Name, err)
		}
	}

	// Every policy a route references must exist before we serve a single
	// request; a typo in config fails the boot, not the first visitor.
	var required []string
	for _, route := range cfg.Policies.Routes {
		required = append(required, route.Policies...)
	}
	if err := engine.CheckRegistered(required...); err != nil {
		return fmt.Errorf("checking route policies: %w", err)
	}

	srv := server.New(cfg.Server, log)
	handlers := server.NewHandlers(verifier, providers, bridge, builder, issuer, metrics, log, cfg.Server)

	protected := make([]server.ProtectedRoute, 0, len(cfg.Policies.Routes))
	for _, route := range cfg.Policies.Routes {
		protected = append(protected, server.ProtectedRoute{Path: route.Path, Policies: route.Policies})
	}
	srv.RegisterRoutes(handlers, gate.New(issuer, engine), metrics, log, protected)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	return srv.Stop(context.Background())
}

// seedUsers creates the configured accounts. Secrets must satisfy the
// password policy so a weak development password never ships silently.
func seedUsers(ctx context.Context, users *memory.Store, hasher password.Hasher, cfg config.Config, log *logger.Logger) error {
	for _, seed := range cfg.Users {
		if err := password.CheckPolicy(cfg.Password, seed.Secret); err != nil {
			return fmt.Errorf("user %s: %w", seed.Identifier, err)
		}
		hash, err := hasher.Hash(seed.Secret)
		if err != nil {
			return fmt.Errorf("user %s: %w", seed.Identifier, err)
		}

		displayName := seed.DisplayName
		if displayName == "" {
			displayName = seed.Identifier
		}
		user, err := users.Create(ctx, &identity.User{
			Identifier:   seed.Identifier,
			DisplayName:  displayName,
			PasswordHash: hash,
			Roles:        seed.Roles,
			Attributes:   seed.Attributes,
			Confirmed:    seed.Confirmed,
		})
		if err != nil {
			return fmt.Errorf("user %s: %w", seed.Identifier, err)
		}
		log.Info("seeded user", logger.Fields(
			logger.FieldUserID, user.ID,
			"roles", user.Roles,
		))
	}
	return nil
}

func shutdownProvider(shutdown func(context.Context) error, log *logger.Logger, name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn(name+" shutdown failed", logger.Fields("error", err.Error()))
	}
}
