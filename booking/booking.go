package booking

import (
	"context"
	"encoding/json"
	"net/http"

	"roost/middleware"
	"roost/models"
	"roost/mq"
	"roost/utils"

	"github.com/julienschmidt/httprouter"
)

// BookingStore persists reservations. Reads are always scoped to the
// booking's creator and come back with the referenced place joined in.
type BookingStore interface {
	Insert(ctx context.Context, booking *models.Booking) error
	ByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ByIDForUser(ctx context.Context, id, userID string) (*models.Booking, error)
}

type Handler struct {
	Store  BookingStore
	Events *mq.Emitter
}

func NewHandler(store BookingStore, events *mq.Emitter) *Handler {
	return &Handler{Store: store, Events: events}
}

// Create handles POST /booking. The booking's userId always comes from
// the principal, never the body. No date or overlap validation happens
// here; the store takes the fields as given.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": "jwt must be provided"})
		return
	}

	var booking models.Booking
	if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": err.Error()})
		return
	}

	booking.BookingID = "b" + utils.GenerateRandomString(13)
	booking.UserID = principal.UserID
	booking.Place = nil

	if err := h.Store.Insert(r.Context(), &booking); err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": err.Error()})
		return
	}

	go h.Events.Emit("booking-created", mq.Event{EntityType: "booking", EntityID: booking.BookingID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusOK, booking)
}

// Mine handles GET /booking: the principal's bookings with places joined.
func (h *Handler) Mine(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": "jwt must be provided"})
		return
	}

	bookings, err := h.Store.ByUser(r.Context(), principal.UserID)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": err.Error()})
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	utils.RespondWithJSON(w, http.StatusOK, bookings)
}

// Get handles GET /booking/:id, scoped to the principal's own bookings.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": "jwt must be provided"})
		return
	}

	booking, err := h.Store.ByIDForUser(r.Context(), ps.ByName("id"), principal.UserID)
	if err != nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": err.Error()})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, booking)
}
