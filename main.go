package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"cricket-scout/config"
	"cricket-scout/store"
)

type Server struct {
	db          *pgxpool.Pool
	store       *store.Store
	queryCache  *QueryCache
	rateLimiter *RateLimiter
	router      *mux.Router
	httpServer  *http.Server
	config      *config.Config
}

func NewServer(cfg *config.Config) (*Server, error) {
	dbConfig, err := pgxpool.ParseConfig(cfg.Database.URL())
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	dbConfig.MaxConns = 25
	dbConfig.MinConns = 5
	dbConfig.MaxConnLifetime = time.Hour
	dbConfig.MaxConnIdleTime = time.Minute * 30

	db, err := pgxpool.NewWithConfig(context.Background(), dbConfig)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(context.Background()); err != nil {
		return nil, err
	}

	s := &Server{
		db:          db,
		store:       store.New(db),
		queryCache:  NewQueryCache(),
		rateLimiter: NewRateLimiter(cfg.Cache.RateLimit, cfg.Cache.RateBurst),
		config:      cfg,
		router:      mux.NewRouter(),
	}

	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	// Root endpoint for API documentation
	s.router.HandleFunc("/", s.rootHandler).Methods("GET")

	// API version prefix
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", s.healthHandler).Methods("GET")

	// Teams endpoints
	api.HandleFunc("/teams", s.getTeamsHandler).Methods("GET")
	api.HandleFunc("/teams/{team}/batters", s.getTeamBattersHandler).Methods("GET")

	// Batters endpoints
	api.HandleFunc("/batters", s.getBattersHandler).Methods("GET")
	api.HandleFunc("/batters/{id}", s.getBatterHandler).Methods("GET")
	api.HandleFunc("/batters/{id}/outliers", s.getOutliersHandler).Methods("GET")
	api.HandleFunc("/batters/{id}/writeup", s.getWriteupHandler).Methods("GET")
	api.HandleFunc("/batters/{id}/wagon-wheel", s.getWagonWheelHandler).Methods("GET")
	api.HandleFunc("/batters/{id}/bowler-types", s.getBowlerTypesHandler).Methods("GET")

	// Field zone reference
	api.HandleFunc("/zones", s.getZonesHandler).Methods("GET")

	// API status and metrics
	api.HandleFunc("/status", s.apiStatusHandler).Methods("GET")
	api.HandleFunc("/metrics", s.handleMetrics).Methods("GET")

	// Apply middleware
	s.router.Use(s.loggingMiddleware)
	s.router.Use(s.recoveryMiddleware)
	s.router.Use(s.rateLimitMiddleware)
}

func (s *Server) Start() error {
	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         86400,
	})

	handler := c.Handler(handlers.CompressHandler(s.router))

	s.httpServer = &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting scouting API on port %s", s.config.Port)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down scouting API...")

	s.db.Close()

	return s.httpServer.Shutdown(ctx)
}

// Middleware
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(lrw, r)

		duration := time.Since(start)
		appMetrics.IncrementRequests()
		appMetrics.AddResponseTime(duration)
		if lrw.statusCode >= http.StatusInternalServerError {
			appMetrics.IncrementErrors()
		}
		log.Printf("%s %s %d %v", r.Method, r.RequestURI, lrw.statusCode, duration)
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("Panic recovered: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(r.RemoteAddr) {
			writeError(w, "Rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	server, err := NewServer(cfg)
	if err != nil {
		log.Fatal("Failed to create server:", err)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatal("Server shutdown failed:", err)
		}
		log.Println("Server shutdown complete")
	}()

	if err := server.Start(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Server failed to start:", err)
	}
}
