package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AuthMetrics holds the metric instruments the auth paths record against.
// Counters only carry low-cardinality attributes (failure reason, gate
// outcome), never identifiers or emails.
type AuthMetrics struct {
	loginAttempts   metric.Int64Counter
	loginFailures   metric.Int64Counter
	lockouts        metric.Int64Counter
	sessionsIssued  metric.Int64Counter
	sessionsRevoked metric.Int64Counter
	gateDecisions   metric.Int64Counter
}

// NewAuthMetrics creates the auth metric instruments on the given meter.
func NewAuthMetrics(meter metric.Meter) (*AuthMetrics, error) {
	loginAttempts, err := meter.Int64Counter("auth.login.attempts",
		metric.WithDescription("Total login attempts"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.attempts counter: %w", err)
	}

	loginFailures, err := meter.Int64Counter("auth.login.failures",
		metric.WithDescription("Failed login attempts by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.login.failures counter: %w", err)
	}

	lockouts, err := meter.Int64Counter("auth.lockouts",
		metric.WithDescription("Accounts locked out after repeated failures"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.lockouts counter: %w", err)
	}

	sessionsIssued, err := meter.Int64Counter("auth.sessions.issued",
		metric.WithDescription("Sessions issued, by persistence"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.sessions.issued counter: %w", err)
	}

	sessionsRevoked, err := meter.Int64Counter("auth.sessions.revoked",
		metric.WithDescription("Sessions explicitly revoked"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.sessions.revoked counter: %w", err)
	}

	gateDecisions, err := meter.Int64Counter("auth.gate.decisions",
		metric.WithDescription("Request gate decisions by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating auth.gate.decisions counter: %w", err)
	}

	return &AuthMetrics{
		loginAttempts:   loginAttempts,
		loginFailures:   loginFailures,
		lockouts:        lockouts,
		sessionsIssued:  sessionsIssued,
		sessionsRevoked: sessionsRevoked,
		gateDecisions:   gateDecisions,
	}, nil
}

// RecordLoginAttempt records one credential verification attempt.
func (m *AuthMetrics) RecordLoginAttempt(ctx context.Context) {
	m.loginAttempts.Add(ctx, 1)
}

// RecordLoginFailure records a failed login. reason is an error code such
// as INVALID_CREDENTIALS or LOCKED_OUT.
func (m *AuthMetrics) RecordLoginFailure(ctx context.Context, reason string) {
	m.loginFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordLockout records an account crossing the lockout threshold.
func (m *AuthMetrics) RecordLockout(ctx context.Context) {
	m.lockouts.Add(ctx, 1)
}

// RecordSessionIssued records a session grant.
func (m *AuthMetrics) RecordSessionIssued(ctx context.Context, persistent bool) {
	m.sessionsIssued.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("persistent", persistent),
	))
}

// RecordSessionRevoked records an explicit logout.
func (m *AuthMetrics) RecordSessionRevoked(ctx context.Context) {
	m.sessionsRevoked.Add(ctx, 1)
}

// RecordGateDecision records one request gate evaluation.
func (m *AuthMetrics) RecordGateDecision(ctx context.Context, outcome string) {
	m.gateDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}
