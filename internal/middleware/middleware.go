// Package middleware wraps the API mux with request ids, request logging,
// panic recovery and bearer token authentication.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/chrisdamba/babysitter/internal/ports"
	"github.com/chrisdamba/babysitter/internal/utils"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type Middleware func(http.Handler) http.Handler

type contextKey int

const (
	requestIDKey contextKey = iota
	actorKey
)

// Chain applies middleware in declaration order, the first one outermost.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	wrapped := handler
	for i := len(middleware) - 1; i >= 0; i-- {
		wrapped = middleware[i](wrapped)
	}
	return wrapped
}

// RequestID reuses the caller's X-Request-ID or generates one, and echoes it.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			w.Header().Set(RequestIDHeader, requestID)
			ctx := context.WithValue(r.Context(), requestIDKey, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestIDOf prefers the id on the request context and falls back to the
// echoed response header when RequestID wraps the caller instead.
func requestIDOf(w http.ResponseWriter, r *http.Request) string {
	if id := RequestIDFrom(r.Context()); id != "" {
		return id
	}
	return w.Header().Get(RequestIDHeader)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if r.URL.RawQuery != "" {
				path += "?" + r.URL.RawQuery
			}
			attrs := []slog.Attr{
				slog.String("request_id", RequestIDFrom(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", path),
				slog.Int("status", rec.status),
				slog.Duration("latency", time.Since(start)),
				slog.String("remote_addr", r.RemoteAddr),
			}

			level := slog.LevelInfo
			switch {
			case rec.status >= 500:
				level = slog.LevelError
			case rec.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}

func Recovery(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
						slog.Any("error", err),
						slog.String("request_id", requestIDOf(w, r)),
						slog.String("stack", string(debug.Stack())),
					)
					ae := utils.NewInternalServerError("internal server error")
					utils.RenderResponse(r, w, ae.StatusCode, ae)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

type TokenParser interface {
	ParseToken(token string) (*ports.Actor, error)
}

// Authenticate resolves a Bearer token into an actor on the request context.
// Requests without an Authorization header pass through anonymously; a
// malformed or invalid token is rejected with 401.
func Authenticate(parser TokenParser, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				ae := utils.NewUnauthorized("Invalid authorization header format")
				utils.RenderResponse(r, w, ae.StatusCode, ae)
				return
			}

			actor, err := parser.ParseToken(strings.TrimSpace(token))
			if err != nil {
				logger.WarnContext(r.Context(), "token rejected",
					slog.String("request_id", RequestIDFrom(r.Context())),
					slog.String("error", err.Error()))
				ae := utils.NewUnauthorized("Invalid or expired token")
				utils.RenderResponse(r, w, ae.StatusCode, ae)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func WithActor(ctx context.Context, actor *ports.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFrom returns the authenticated actor, or nil for anonymous requests.
func ActorFrom(ctx context.Context) *ports.Actor {
	actor, _ := ctx.Value(actorKey).(*ports.Actor)
	return actor
}
