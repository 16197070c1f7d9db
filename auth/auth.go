package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"roost/middleware"
	"roost/models"
	"roost/mq"
	"roost/session"
	"roost/utils"

	"github.com/julienschmidt/httprouter"
)

// UserStore is the credential-store collaborator: it persists accounts
// and looks them up by email for login.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Handler struct {
	Users  UserStore
	Codec  *session.Codec
	Events *mq.Emitter
}

func NewHandler(users UserStore, codec *session.Codec, events *mq.Emitter) *Handler {
	return &Handler{Users: users, Codec: codec, Events: events}
}

// Register handles POST /register. The created document is returned
// as-is, bcrypt digest included; a store rejection surfaces as a 400
// with the raw error.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	digest, err := HashPassword(input.Password)
	if err != nil {
		log.Printf("register: hash failed for %s: %v", input.Email, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user := &models.User{
		UserID:    "u" + utils.GenerateRandomString(12),
		Name:      input.Name,
		Email:     input.Email,
		Password:  digest,
		CreatedAt: time.Now(),
	}

	if err := h.Users.Create(r.Context(), user); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	go h.Events.Emit("user-registered", mq.Event{EntityType: "user", EntityID: user.UserID, Method: "POST"})

	utils.RespondWithJSON(w, http.StatusOK, user)
}

// Login handles POST /login. On success the session token is set as an
// httpOnly cookie and the user document is returned.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid credentials"})
		return
	}

	user, err := h.Users.FindByEmail(r.Context(), input.Email)
	if err != nil {
		log.Printf("login: lookup %s failed: %v", input.Email, err)
	}
	if err != nil || user == nil || !VerifyPassword(input.Password, user.Password) {
		utils.RespondWithJSON(w, http.StatusBadRequest, utils.M{"message": "Invalid credentials"})
		return
	}

	token, err := h.Codec.Issue(user.UserID, user.Email, user.Name)
	if err != nil {
		log.Printf("login: token issue failed for %s: %v", user.UserID, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	session.SetCookie(w, token, h.Codec.TTL())
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// Profile handles GET /profile: the principal's claims, or null when the
// request carries no valid session.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	principal := middleware.Principal(r)
	if principal == nil {
		utils.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"email": principal.Email,
		"id":    principal.UserID,
		"name":  principal.Name,
	})
}

// Logout handles POST /logout by clearing the cookie. The token itself is
// not revoked and stays valid until its expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	session.ClearCookie(w)
	utils.RespondWithJSON(w, http.StatusOK, true)
}
