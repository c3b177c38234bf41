package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/pazorg/candidatetrack/internal/security"
	"github.com/pazorg/candidatetrack/internal/security/audit"
	"github.com/pazorg/candidatetrack/internal/security/auth"
	"github.com/pazorg/candidatetrack/internal/security/ratelimit"
)

type ClaimsContextKey struct{}

// adminPath reports whether the request targets the authenticated admin
// surface. Everything else (funnel submissions, status checks, health,
// metrics) is public.
func adminPath(path string) bool {
	return strings.HasPrefix(path, "/api/admin/") && path != "/api/admin/login"
}

// requiredPermission maps an admin request to the permission its role must
// hold.
func requiredPermission(method, path string) security.Permission {
	if strings.HasPrefix(path, "/api/admin/export") {
		return security.PermExportData
	}
	switch method {
	case http.MethodGet:
		if path == "/api/admin/candidates" {
			return security.PermListCandidates
		}
		return security.PermReadCandidate
	case http.MethodDelete:
		return security.PermDeleteCandidate
	default:
		return security.PermUpdateCandidate
	}
}

// JWTMiddleware requires a valid admin token on the admin surface, checks
// the token's role against the permission the request needs, and attaches
// the claims to the request context.
func JWTMiddleware(tm *auth.TokenManager, authz *security.AuthorizationService, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !adminPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			// browser preflights never carry Authorization; let them
			// through to the CORS handler
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing auth"}`, http.StatusUnauthorized)
				return
			}

			tokenString, err := auth.ExtractToken(authHeader)
			if err != nil {
				http.Error(w, `{"error":"invalid auth"}`, http.StatusUnauthorized)
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				log.Info("rejected admin token", slog.String("error", err.Error()))
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			perm := requiredPermission(r.Method, r.URL.Path)
			if err := authz.ValidatePermission(security.Role(claims.Role), perm); err != nil {
				log.Info("rejected admin request",
					slog.String("email", claims.Email),
					slog.String("error", err.Error()),
				)
				http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimitMiddleware applies a sliding-window limit per client IP on the
// public funnel, with a stricter limit on login attempts. Authenticated
// admin traffic is not limited.
func RateLimitMiddleware(limiter *ratelimit.Limiter, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/healthz" || r.URL.Path == "/readyz" || r.URL.Path == "/metrics" ||
				adminPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ip := clientIP(r)
			allowed := limiter.Allow(ip)
			if allowed && r.URL.Path == "/api/admin/login" {
				allowed = limiter.AllowLogin(ip)
			}
			if !allowed {
				log.Warn("rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuditMiddleware records every admin mutation before it executes.
func AuditMiddleware(auditLog *audit.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminPath(r.URL.Path) && r.Method != http.MethodGet && r.Method != http.MethodOptions {
				email := ""
				if claims := GetClaimsFromContext(r.Context()); claims != nil {
					email = claims.Email
				}
				// routing has not happened yet, so the candidate ID is
				// only available as part of the path
				auditLog.LogAction(r.Context(), email, strings.ToLower(r.Method), "candidate", "", "initiated", r.URL.Path)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	if c := ctx.Value(ClaimsContextKey{}); c != nil {
		return c.(*auth.Claims)
	}
	return nil
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
