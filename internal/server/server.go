package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/SpinWheel_Go/internal/database"
	"github.com/osse101/SpinWheel_Go/internal/handler"
	"github.com/osse101/SpinWheel_Go/internal/live"
	"github.com/osse101/SpinWheel_Go/internal/logger"
	"github.com/osse101/SpinWheel_Go/internal/metrics"
	"github.com/osse101/SpinWheel_Go/internal/wheel"
)

type Server struct {
	httpServer   *http.Server
	dbPool       database.Pool
	wheelService wheel.Service
	hub          *live.Hub
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, dbPool database.Pool, wheelService wheel.Service, hub *live.Hub) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(apiKey, trustedProxies, dbPool, wheelService, hub),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:       dbPool,
		wheelService: wheelService,
		hub:          hub,
	}
}

// NewRouter builds the full route tree with its middleware stack
func NewRouter(apiKey string, trustedProxies []string, dbPool database.Pool, wheelService wheel.Service, hub *live.Hub) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	wheelHandler := handler.NewWheelHandler(wheelService)
	adminCacheHandler := handler.NewAdminCacheHandler(wheelService)
	adminMetricsHandler := handler.NewAdminMetricsHandler(hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/wheels", func(r chi.Router) {
			r.Post("/", wheelHandler.HandleCreateWheel)
			r.Get("/", wheelHandler.HandleListWheels)

			r.Route("/{"+handler.ParamWheelID+"}", func(r chi.Router) {
				r.Get("/", wheelHandler.HandleGetWheel)
				r.Delete("/", wheelHandler.HandleDeleteWheel)
				r.Patch("/settings", wheelHandler.HandleUpdateSettings)

				r.Post("/participants", wheelHandler.HandleAddParticipant)
				r.Patch("/participants/{"+handler.ParamParticipantID+"}", wheelHandler.HandleUpdateParticipantWeight)
				r.Delete("/participants/{"+handler.ParamParticipantID+"}", wheelHandler.HandleRemoveParticipant)

				r.Post("/spin", wheelHandler.HandleSpin)
				r.Get("/probabilities", wheelHandler.HandleProbabilities)
				r.Post("/reset", wheelHandler.HandleReset)

				r.Post("/rig", wheelHandler.HandleSetRig)
				r.Delete("/rig", wheelHandler.HandleClearRig)

				// Live feeds
				r.Get("/live", live.WebSocketHandler(hub, handler.WheelIDFromRequest))
				r.Get("/events", live.SSEHandler(hub, handler.WheelIDFromRequest))
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/cache/stats", adminCacheHandler.HandleGetCacheStats)
			r.Get("/metrics", adminMetricsHandler.HandleGetMetrics)
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Hijack supports websocket upgrades on live routes
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

// Flush supports the SSE feed
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		log.Debug(LogMsgRequestHeaders, "headers", sanitizeHeaders(r.Header))

		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// sanitizeHeaders copies headers with credentials redacted
func sanitizeHeaders(h http.Header) http.Header {
	sanitized := make(http.Header, len(h))
	for k, v := range h {
		if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
			sanitized[k] = []string{RedactedValue}
		} else {
			sanitized[k] = v
		}
	}
	return sanitized
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
