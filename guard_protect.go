package authguard

import (
	"context"
)

// Operation is a protected action executed under [Guard.Protect]. The error
// it returns is treated as opaque upstream failure and routed through the
// sanitizer before reaching a user.
type Operation func(ctx context.Context) error

// ProtectResult reports the outcome of one [Guard.Protect] invocation.
//
// RateLimited and InvalidInput are refusals decided before the operation ran;
// SafeMessage is always populated on failure and is the only text that may be
// shown to an end user.
type ProtectResult struct {
	Allowed      bool
	RateLimited  bool
	InvalidInput bool
	SafeMessage  string
	Err          error
}

// Credentials carries raw login/registration input into [Guard.Protect].
// Empty fields skip the corresponding validation, so flows that only throttle
// (e.g. logout) pass the zero value.
type Credentials struct {
	Email    string
	Password string
}

// Protect runs the fixed sensitive-operation pattern end to end: rate-limit
// check, then input validation, then op; on failure the error is sanitized
// into a safe message, on success the limiter entry for key is reset.
//
// The returned error is the sentinel classification (ErrRateLimited,
// ErrInvalidEmail, ErrWeakPassword, or the operation's own error); UI layers
// should display ProtectResult.SafeMessage and nothing else.
func (g *Guard) Protect(ctx context.Context, key string, creds Credentials, op Operation) (ProtectResult, error) {
	if g == nil {
		return ProtectResult{SafeMessage: g.SanitizeError(ErrGuardNotReady), Err: ErrGuardNotReady}, ErrGuardNotReady
	}
	if op == nil {
		return ProtectResult{SafeMessage: g.SanitizeError(ErrNilOperation), Err: ErrNilOperation}, ErrNilOperation
	}

	ok, err := g.CanAttempt(ctx, key)
	if err != nil {
		return ProtectResult{SafeMessage: g.SanitizeError(err), Err: err}, err
	}
	if !ok {
		g.metricInc(MetricProtectRefused)
		return ProtectResult{
			RateLimited: true,
			SafeMessage: "Too many attempts. Please wait a moment and try again.",
			Err:         ErrRateLimited,
		}, ErrRateLimited
	}

	if creds.Email != "" && !g.ValidEmail(creds.Email) {
		g.metricInc(MetricProtectRefused)
		g.emitAudit(ctx, AuditEvent{EventType: AuditValidationFailed, Key: key, Success: false, Error: ErrInvalidEmail.Error()})
		return ProtectResult{
			InvalidInput: true,
			SafeMessage:  "Please enter a valid email address.",
			Err:          ErrInvalidEmail,
		}, ErrInvalidEmail
	}
	if creds.Password != "" && !g.ValidPassword(creds.Password) {
		g.metricInc(MetricProtectRefused)
		g.emitAudit(ctx, AuditEvent{EventType: AuditValidationFailed, Key: key, Success: false, Error: ErrWeakPassword.Error()})
		return ProtectResult{
			InvalidInput: true,
			SafeMessage:  "Password does not meet the security requirements.",
			Err:          ErrWeakPassword,
		}, ErrWeakPassword
	}

	start := g.clock()
	opErr := op(ctx)
	g.metricObserve(MetricProtectLatency, g.clock().Sub(start))

	if opErr != nil {
		g.metricInc(MetricProtectFailure)
		g.emitAudit(ctx, AuditEvent{EventType: AuditOperationFailed, Key: key, Success: false, Error: opErr.Error()})
		return ProtectResult{
			Allowed:     true,
			SafeMessage: g.SanitizeError(opErr),
			Err:         opErr,
		}, opErr
	}

	g.Reset(key)
	g.metricInc(MetricProtectSuccess)
	g.emitAudit(ctx, AuditEvent{EventType: AuditOperationSucceeded, Key: key, Success: true})
	return ProtectResult{Allowed: true}, nil
}

// CheckCredentials validates raw credentials without touching the limiter.
// Both checks run even when the first fails so a caller can surface all
// problems at once.
func (g *Guard) CheckCredentials(email, password string) (emailOK, passwordOK bool) {
	emailOK = g.ValidEmail(email)
	passwordOK = g.ValidPassword(password)
	return emailOK, passwordOK
}
