package places

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"roost/middleware"
	"roost/models"
	"roost/mq"
	"roost/utils"

	"github.com/julienschmidt/httprouter"
)

const (
	listCacheKey = "places:all"
	listCacheTTL = 5 * time.Minute
)

const notLoggedInMsg = "You are not logged in"

// PlaceStore persists listings. UpdateOwned must match id and owner in a
// single store operation; the bool result is matched-or-not and does not
// distinguish a missing place from a foreign-owned one.
type PlaceStore interface {
	Insert(ctx context.Context, place *models.Place) error
	ByID(ctx context.Context, id string) (*models.Place, error)
	ByOwner(ctx context.Context, ownerID string) ([]models.Place, error)
	All(ctx context.Context) ([]models.Place, error)
	UpdateOwned(ctx context.Context, id, ownerID string, fields models.Place) (bool, error)
}

// ListCache holds the rendered public place list between reads. A nil
// cache disables caching.
type ListCache interface {
	Get(ctx context.Context, key string) string
	Set(ctx context.Context, key, val string, ttl time.Duration)
	Del(ctx context.Context, keys ...string)
}

type Handler struct {
	Store  PlaceStore
	Cache  ListCache
	Events *mq.Emitter
}

func NewHandler(store PlaceStore, cache ListCache, events *mq.Emitter) *Handler {
	return &Handler{Store: store, Cache: cache, Events: events}
}

// Create handles POST /places. The owner is always the session principal;
// an owner field in the body is ignored.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": notLoggedInMsg})
		return
	}

	var place models.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	place.PlaceID = utils.GenerateRandomString(14)
	place.Owner = principal.UserID
	place.CreatedAt = time.Now()

	if err := h.Store.Insert(r.Context(), &place); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	if h.Cache != nil {
		h.Cache.Del(r.Context(), listCacheKey)
	}
	go h.Events.Emit("place-created", mq.Event{EntityType: "place", EntityID: place.PlaceID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"newPlace": place})
}

// MyPlaces handles GET /my-places: only listings owned by the principal.
func (h *Handler) MyPlaces(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": notLoggedInMsg})
		return
	}

	places, err := h.Store.ByOwner(r.Context(), principal.UserID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}
	if places == nil {
		places = []models.Place{}
	}
	utils.RespondWithJSON(w, http.StatusOK, places)
}

// Get handles GET /places/:id. Public; a missing place yields null.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	place, err := h.Store.ByID(r.Context(), ps.ByName("id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch place")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, place)
}

// List handles GET /places. Public, read through the cache.
func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if h.Cache != nil {
		if cached := h.Cache.Get(r.Context(), listCacheKey); cached != "" {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	places, err := h.Store.All(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch places")
		return
	}
	if places == nil {
		places = []models.Place{}
	}

	if h.Cache != nil {
		if data, err := json.Marshal(places); err == nil {
			h.Cache.Set(r.Context(), listCacheKey, string(data), listCacheTTL)
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, places)
}

// Update handles PUT /places/:id. The match against id and owner happens
// as one conditional store update; when nothing matches the response is
// null, whether the place is missing or owned by someone else.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"error": notLoggedInMsg})
		return
	}

	var fields models.Place
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := ps.ByName("id")
	matched, err := h.Store.UpdateOwned(r.Context(), id, principal.UserID, fields)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update place")
		return
	}
	if !matched {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}

	if h.Cache != nil {
		h.Cache.Del(r.Context(), listCacheKey)
	}
	go h.Events.Emit("place-updated", mq.Event{EntityType: "place", EntityID: id, Method: "PUT"})

	place, err := h.Store.ByID(r.Context(), id)
	if err != nil {
		log.Printf("update place: refetch %s failed: %v", id, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch place")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, place)
}
