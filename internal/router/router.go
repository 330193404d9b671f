package router

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/ovaphlow/pitchfork/service-shop-go/internal/order"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/product"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/session"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user"
	"github.com/ovaphlow/pitchfork/service-shop-go/internal/user/entity"
)

// RequestIDHeader carries the per-request id in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey struct{}

// RequestID returns the id assigned by RequestIDMiddleware, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// RequestIDMiddleware keeps an incoming X-Request-ID or assigns a snowflake id,
// and echoes it on the response.
func RequestIDMiddleware(node *snowflake.Node) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = node.Generate().String()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
		})
	}
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			// ensure status is set
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", RequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Prevent MIME sniffing
			w.Header().Set("X-Content-Type-Options", "nosniff")

			// Clickjacking protection
			w.Header().Set("X-Frame-Options", "DENY")

			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

			// JSON API only: nothing here should ever load subresources.
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none';")
			}

			// HSTS only over TLS, 30 days
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BodyLimitMiddleware caps request bodies at limit bytes. Reads past the cap
// fail, which the JSON decoder reports as a malformed body.
func BodyLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORSMiddleware admits the storefront origin with credentials so the
// session cookie travels on cross-origin requests.
func CORSMiddleware(origin string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{origin},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", RequestIDHeader},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler
}

// Handlers groups the feature handlers mounted by RegisterRoutes.
type Handlers struct {
	User    *user.Handler
	Product *product.Handler
	Order   *order.Handler
}

// Options carries the transport settings.
type Options struct {
	FrontendURL string
	BodyLimit   int64
	Node        *snowflake.Node
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, verifier session.Verifier, h Handlers, opts Options) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// auth routes
	mux.HandleFunc("POST /api/auth/register", h.User.Register)
	mux.HandleFunc("POST /api/auth/login", h.User.Login)
	mux.HandleFunc("GET /api/auth/logout", h.User.Logout)
	mux.Handle("GET /api/auth/me", session.RequireAuth(http.HandlerFunc(h.User.Me)))

	// catalog routes
	adminOnly := session.RequireRole(entity.RoleAdmin)
	mux.HandleFunc("GET /api/products", h.Product.List)
	mux.Handle("POST /api/admin/products", adminOnly(http.HandlerFunc(h.Product.Create)))
	mux.Handle("PUT /api/admin/products/{id}", adminOnly(http.HandlerFunc(h.Product.Update)))
	mux.Handle("DELETE /api/admin/products/{id}", adminOnly(http.HandlerFunc(h.Product.Delete)))

	// checkout checks the caller itself
	mux.HandleFunc("POST /api/orders/checkout", h.Order.Checkout)

	var handler http.Handler = mux
	handler = session.Authenticate(verifier, logger)(handler)
	handler = BodyLimitMiddleware(opts.BodyLimit)(handler)
	handler = CORSMiddleware(opts.FrontendURL)(handler)
	handler = SecurityHeadersMiddleware()(handler)
	handler = LoggingMiddleware(logger)(handler)
	if opts.Node != nil {
		handler = RequestIDMiddleware(opts.Node)(handler)
	}
	return handler
}
