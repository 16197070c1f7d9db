package routes

import (
	"net/http"

	"roost/auth"
	"roost/booking"
	"roost/middleware"
	"roost/places"
	"roost/ratelim"
	"roost/session"
	"roost/uploads"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, h *auth.Handler, codec *session.Codec, rl *ratelim.RateLimiter) {
	router.POST("/register", rl.Limit(h.Register))
	router.POST("/login", rl.Limit(h.Login))
	router.GET("/profile", middleware.WithSession(codec, h.Profile))
	router.POST("/logout", h.Logout)
}

func AddPlaceRoutes(router *httprouter.Router, h *places.Handler, codec *session.Codec) {
	router.GET("/places", h.List)
	router.POST("/places", middleware.WithSession(codec, h.Create))
	router.GET("/places/:id", h.Get)
	router.PUT("/places/:id", middleware.WithSession(codec, h.Update))
	router.GET("/my-places", middleware.WithSession(codec, h.MyPlaces))
}

func AddBookingRoutes(router *httprouter.Router, h *booking.Handler, codec *session.Codec) {
	router.POST("/booking", middleware.WithSession(codec, h.Create))
	router.GET("/booking", middleware.WithSession(codec, h.Mine))
	router.GET("/booking/:id", middleware.WithSession(codec, h.Get))
}

func AddUploadRoutes(router *httprouter.Router, h *uploads.Handler, rl *ratelim.RateLimiter) {
	router.POST("/upload", rl.Limit(h.Photos))
	router.POST("/upload-link", rl.Limit(h.ByLink))
}

func AddStaticRoutes(router *httprouter.Router, uploadsDir string) {
	router.ServeFiles("/uploads/*filepath", http.Dir(uploadsDir))
}
