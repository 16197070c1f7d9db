package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roost/auth"
	"roost/booking"
	"roost/config"
	"roost/db"
	"roost/mq"
	"roost/places"
	"roost/ratelim"
	"roost/rdx"
	"roost/routes"
	"roost/session"
	"roost/uploads"
	"roost/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func setupRouter(cfg config.Config, store *db.Store, cache *rdx.Cache, events *mq.Emitter) *httprouter.Router {
	codec := session.NewCodec(cfg.JWTSecret, cfg.SessionTTL)
	rateLimiter := ratelim.NewRateLimiter()

	authHandler := auth.NewHandler(store.Users, codec, events)
	placeHandler := places.NewHandler(store.Places, cache, events)
	bookingHandler := booking.NewHandler(store.Bookings, events)
	uploadHandler := uploads.NewHandler(cfg.UploadsDir)

	router := httprouter.New()
	router.GET("/test", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		utils.RespondWithJSON(w, http.StatusOK, "test ok")
	})

	routes.AddAuthRoutes(router, authHandler, codec, rateLimiter)
	routes.AddPlaceRoutes(router, placeHandler, codec)
	routes.AddBookingRoutes(router, bookingHandler, codec)
	routes.AddUploadRoutes(router, uploadHandler, rateLimiter)
	routes.AddStaticRoutes(router, cfg.UploadsDir)

	return router
}

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	cache := rdx.Connect(cfg.RedisAddr)
	events := mq.NewEmitter(cache.Client())

	router := setupRouter(cfg, store, cache, events)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           loggingMiddleware(securityHeaders(corsHandler)),
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}
	if err := store.Disconnect(shutdownCtx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}

	log.Println("Server stopped cleanly")
}
