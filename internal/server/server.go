package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusconnect/campusconnect/internal/blob"
	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/directory"
	"github.com/campusconnect/campusconnect/internal/identity"
	"github.com/campusconnect/campusconnect/internal/llm"
	"github.com/campusconnect/campusconnect/internal/matching"
	"github.com/campusconnect/campusconnect/internal/oracle"
	"github.com/campusconnect/campusconnect/internal/otp"
	"github.com/campusconnect/campusconnect/internal/server/middleware"
	"github.com/campusconnect/campusconnect/internal/server/ratelimit"
	"github.com/campusconnect/campusconnect/internal/types"
)

// partnerFinder is the matching entry point as the handlers see it.
type partnerFinder interface {
	FindPartners(ctx context.Context, currentUserID, profileText string) ([]types.RankedResult, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          DBClient
	closeDB     func()
	rateLimiter *ratelimit.Limiter
	jwtService  *identity.Service
	userService *UserService
	authHandler *AuthHandler
	avatars     blob.Store
	llmClient   llm.Client

	// newFinder builds a request-scoped finder for the given suggestion
	// count. Swapped out in tests.
	newFinder func(count int) partnerFinder
}

// Config holds server configuration
type Config struct {
	Port          int
	DatabaseURL   string
	APIKey        string
	AvatarDir     string
	AvatarURL     string
	OracleTimeout time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	database, err := directory.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:      database,
		closeDB: database.Close,
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = identity.NewService(jwtConfig)

	s.authHandler = NewAuthHandler(s.userService, s.jwtService, s.db, otp.NewStore(otp.SystemClock()))

	avatarDir := cfg.AvatarDir
	if avatarDir == "" {
		avatarDir = "data/avatars"
	}
	avatarURL := cfg.AvatarURL
	if avatarURL == "" {
		avatarURL = fmt.Sprintf("http://localhost:%d/avatars", cfg.Port)
	}
	s.avatars, err = blob.NewFSStore(avatarDir, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create avatar store: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	s.llmClient = llmClient

	oracleAdapter := oracle.New(llmClient)
	s.newFinder = func(count int) partnerFinder {
		return matching.NewFinder(database, oracleAdapter, matching.Options{
			DesiredCount: count,
			Timeout:      cfg.OracleTimeout,
		})
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes(avatarDir)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Long timeout for matching calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes(avatarDir string) http.Handler {
	auth := middleware.Auth(s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("POST /auth/otp/request", s.authHandler.RequestOTP)
	mux.HandleFunc("POST /auth/otp/verify", s.authHandler.VerifyOTP)
	mux.Handle("PUT /auth/password", auth(http.HandlerFunc(s.handleUpdatePassword)))

	// Directory
	mux.HandleFunc("GET /users", s.handleListUsers)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)

	// Own profile
	mux.Handle("GET /me", auth(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("PUT /me", auth(http.HandlerFunc(s.handleUpdateMe)))
	mux.Handle("DELETE /me", auth(http.HandlerFunc(s.handleDeleteMe)))
	mux.Handle("POST /me/avatar", auth(http.HandlerFunc(s.handleUploadAvatar)))

	// Connections
	mux.Handle("GET /me/connections", auth(http.HandlerFunc(s.handleListConnections)))
	mux.Handle("POST /connections/{id}", auth(http.HandlerFunc(s.handleAddConnection)))
	mux.Handle("DELETE /connections/{id}", auth(http.HandlerFunc(s.handleRemoveConnection)))

	// Partner matching. Auth is optional: anonymous callers still get
	// suggestions, just without connection boosting.
	mux.Handle("POST /partners/find", s.withOptionalAuth(http.HandlerFunc(s.handleFindPartners)))

	// Uploaded avatars are served as static files.
	mux.Handle("GET /avatars/", http.StripPrefix("/avatars/", http.FileServer(http.Dir(avatarDir))))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		if err := s.llmClient.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}
	if s.closeDB != nil {
		s.closeDB()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// withOptionalAuth attaches the account id to the context when a bearer
// token is present. A missing header passes through anonymously; a present
// but invalid token is still rejected.
func (s *Server) withOptionalAuth(next http.Handler) http.Handler {
	authed := middleware.Auth(s.jwtService)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			next.ServeHTTP(w, r)
			return
		}
		authed.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password update requests for the
// authenticated account.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePasswordWithUserID(w, r, userID)
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP from RemoteAddr; X-Forwarded-For would need a trusted proxy.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
