// Package api provides the SignCast management HTTP API: router, server,
// configuration and JWT authentication.
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/signcast/signcast/internal/api/auth"
	"github.com/signcast/signcast/internal/api/handlers"
	apiMiddleware "github.com/signcast/signcast/internal/api/middleware"
	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/internal/telemetry"
	"github.com/signcast/signcast/pkg/devicestate"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/metrics"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/signcast/signcast/pkg/signage/store"
)

// Deps carries everything the router's handlers need. State and Metrics
// may be nil when the respective subsystems are disabled.
type Deps struct {
	Store   store.Store
	Blobs   media.Store
	Engine  *quota.Engine
	State   *devicestate.Store
	Metrics *metrics.SignageMetrics
}

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - POST /api/auth/login - User authentication
//   - POST /api/auth/refresh - Token refresh
//   - GET /api/auth/me - Current user info
//   - /api/tenants/* - Tenant management (admin; package change runs quota enforcement)
//   - /api/packages/* - Package management (reads open; writes admin only)
//   - /api/contents/* - Media upload/list/delete and storage usage views
//   - /api/playlists/* - Playlist and item-order management
//   - /api/layouts/* - Layout and zone management
//   - /api/devices/* - Device registration, assignment and heartbeat
//   - /api/payments/* - Payment create/confirm/list
func NewRouter(deps Deps, jwtService *auth.JWTService, maxUploadBytes int64) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(traceRequests)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	healthHandler := handlers.NewHealthHandler(deps.Store, deps.Blobs, deps.State)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	authHandler := handlers.NewAuthHandler(deps.Store, jwtService)
	tenantHandler := handlers.NewTenantHandler(deps.Store, deps.Blobs, deps.Engine)
	packageHandler := handlers.NewPackageHandler(deps.Store)
	contentHandler := handlers.NewContentHandler(deps.Store, deps.Blobs, deps.Engine, deps.Metrics, maxUploadBytes)
	playlistHandler := handlers.NewPlaylistHandler(deps.Store)
	layoutHandler := handlers.NewLayoutHandler(deps.Store)
	deviceHandler := handlers.NewDeviceHandler(deps.Store, deps.State, deps.Metrics)
	paymentHandler := handlers.NewPaymentHandler(deps.Store, deps.Engine)

	r.Route("/api", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Device heartbeat - authenticated by pairing code, not JWT.
		// Player firmware has no user account.
		r.Post("/devices/{id}/heartbeat", deviceHandler.Heartbeat)

		// Protected routes - require authentication
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))

			// Tenant management. Reads are open to operators; writes are
			// admin only. PUT is where package changes (and quota
			// enforcement) happen.
			r.Route("/tenants", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireRole("admin", "operator"))
					r.Get("/", tenantHandler.List)
					r.Get("/{id}", tenantHandler.Get)
				})

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())
					r.Post("/", tenantHandler.Create)
					r.Put("/{id}", tenantHandler.Update)
					r.Delete("/{id}", tenantHandler.Delete)
				})
			})

			// Package catalog: every authenticated user can browse;
			// only admins mutate.
			r.Route("/packages", func(r chi.Router) {
				r.Get("/", packageHandler.List)
				r.Get("/{id}", packageHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())
					r.Post("/", packageHandler.Create)
					r.Put("/{id}", packageHandler.Update)
					r.Delete("/{id}", packageHandler.Delete)
				})
			})

			// Content: upload, storage views, CRUD. The fixed-path
			// routes must be registered before /{id}.
			r.Route("/contents", func(r chi.Router) {
				r.Get("/storage-usage", contentHandler.StorageUsage)
				r.Get("/storage-info", contentHandler.StorageInfo)
				r.Post("/", contentHandler.Upload)
				r.Get("/", contentHandler.List)
				r.Get("/{id}", contentHandler.Get)
				r.Get("/{id}/download", contentHandler.Download)
				r.Delete("/{id}", contentHandler.Delete)
			})

			r.Route("/playlists", func(r chi.Router) {
				r.Post("/", playlistHandler.Create)
				r.Get("/", playlistHandler.List)
				r.Get("/{id}", playlistHandler.Get)
				r.Put("/{id}", playlistHandler.Update)
				r.Put("/{id}/items", playlistHandler.ReplaceItems)
				r.Delete("/{id}", playlistHandler.Delete)
			})

			r.Route("/layouts", func(r chi.Router) {
				r.Post("/", layoutHandler.Create)
				r.Get("/", layoutHandler.List)
				r.Get("/{id}", layoutHandler.Get)
				r.Put("/{id}", layoutHandler.Update)
				r.Put("/{id}/zones", layoutHandler.ReplaceZones)
				r.Delete("/{id}", layoutHandler.Delete)
			})

			r.Route("/devices", func(r chi.Router) {
				r.Post("/", deviceHandler.Register)
				r.Get("/", deviceHandler.List)
				r.Get("/{id}", deviceHandler.Get)
				r.Put("/{id}", deviceHandler.Update)
				r.Delete("/{id}", deviceHandler.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Post("/", paymentHandler.Create)
				r.Get("/", paymentHandler.List)
				r.Get("/{id}", paymentHandler.Get)
				r.Post("/{id}/confirm", paymentHandler.Confirm)
				r.Post("/{id}/fail", paymentHandler.Fail)
			})
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// traceRequests opens a server span per API request, so handler spans
// nest under it and request logs can carry the trace id. Healthchecks
// are not traced.
func traceRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isHealthPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}
		ctx, span := telemetry.StartSpan(r.Context(), r.Method+" "+r.URL.Path)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}
		if traceID := telemetry.TraceID(r.Context()); traceID != "" {
			logArgs = append(logArgs, "trace_id", traceID)
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
