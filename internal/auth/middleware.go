package auth

import (
	"context"
	"log"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type ctxKey string

const principalKey ctxKey = "auth_principal"

var tracer = otel.Tracer("github.com/ccsfp-clinic/clinic-gateway/auth")

// MetricsRecorder interface for recording auth metrics
type MetricsRecorder interface {
	RecordAuthFailure(ctx context.Context, reason string)
}

// Middleware verifies the session cookie and injects the Principal into the
// request context. Browser requests without a valid session are redirected
// to the login page rather than handed a bare 401.
func Middleware(sessions *Sessions) func(http.Handler) http.Handler {
	return MiddlewareWithMetrics(sessions, nil)
}

// MiddlewareWithMetrics verifies the session cookie with metrics recording
func MiddlewareWithMetrics(sessions *Sessions, metrics MetricsRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			ctx, span := tracer.Start(ctx, "auth.Middleware",
				trace.WithSpanKind(trace.SpanKindInternal),
			)
			defer span.End()

			principal, err := sessions.Verify(r)
			if err != nil {
				reason := "invalid_session"
				if err == ErrNoSession {
					reason = "missing_session"
				} else {
					log.Printf("[ERROR] Session validation failed: %v", err)
				}
				span.SetStatus(codes.Error, "session validation failed")
				span.SetAttributes(attribute.String("error.type", reason))
				if metrics != nil {
					metrics.RecordAuthFailure(ctx, reason)
				}
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			span.SetAttributes(
				attribute.String("user.name", principal.Username),
				attribute.String("user.role", principal.Role),
			)

			ctx = context.WithValue(ctx, principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the Principal stored by the middleware.
func FromContext(ctx context.Context) (*Principal, bool) {
	pr, ok := ctx.Value(principalKey).(*Principal)
	return pr, ok
}

// WithPrincipal returns a context carrying the given principal, for tests.
func WithPrincipal(ctx context.Context, pr *Principal) context.Context {
	return context.WithValue(ctx, principalKey, pr)
}

// RequireRole gates a handler on the session's role.
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pr, ok := FromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if pr.Role != role {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
