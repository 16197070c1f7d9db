package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roost/middleware"
	"roost/models"
	"roost/session"

	"github.com/julienschmidt/httprouter"
)

type fakeBookingStore struct {
	bookings map[string]*models.Booking
	places   map[string]*models.Place
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{
		bookings: make(map[string]*models.Booking),
		places:   make(map[string]*models.Place),
	}
}

func (s *fakeBookingStore) Insert(_ context.Context, booking *models.Booking) error {
	copied := *booking
	s.bookings[booking.BookingID] = &copied
	return nil
}

func (s *fakeBookingStore) ByUser(_ context.Context, userID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, booking := range s.bookings {
		if booking.UserID == userID {
			out = append(out, s.joined(booking))
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ByIDForUser(_ context.Context, id, userID string) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok || booking.UserID != userID {
		return nil, nil
	}
	joined := s.joined(booking)
	return &joined, nil
}

func (s *fakeBookingStore) joined(booking *models.Booking) models.Booking {
	copied := *booking
	if place, ok := s.places[booking.PlaceID]; ok {
		placeCopy := *place
		copied.Place = &placeCopy
	}
	return copied
}

func asPrincipal(r *http.Request, userID string) *http.Request {
	return middleware.WithPrincipal(r, &session.Claims{UserID: userID})
}

func TestCreateRequiresSession(t *testing.T) {
	h := NewHandler(newFakeBookingStore(), nil)

	r := httptest.NewRequest(http.MethodPost, "/booking", strings.NewReader(`{"placeId":"p1"}`))
	w := httptest.NewRecorder()
	h.Create(w, r, nil)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected an error payload, got %v", body)
	}
}

func TestCreateOverridesClientUserID(t *testing.T) {
	store := newFakeBookingStore()
	h := NewHandler(store, nil)

	r := httptest.NewRequest(http.MethodPost, "/booking",
		strings.NewReader(`{"placeId":"p1","userId":"intruder","numberOfGuests":2,"price":180}`))
	w := httptest.NewRecorder()
	h.Create(w, asPrincipal(r, "u1"), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.UserID != "u1" {
		t.Fatalf("userId = %q, want u1", got.UserID)
	}

	stored := store.bookings[got.BookingID]
	if stored == nil || stored.UserID != "u1" {
		t.Fatalf("stored booking userId wrong: %+v", stored)
	}
}

func TestMineScopedToUserWithPlaceJoined(t *testing.T) {
	store := newFakeBookingStore()
	store.places["p1"] = &models.Place{PlaceID: "p1", Owner: "host", Title: "Loft"}
	store.bookings["b1"] = &models.Booking{BookingID: "b1", PlaceID: "p1", UserID: "u1"}
	store.bookings["b2"] = &models.Booking{BookingID: "b2", PlaceID: "p1", UserID: "u2"}
	h := NewHandler(store, nil)

	r := httptest.NewRequest(http.MethodGet, "/booking", nil)
	w := httptest.NewRecorder()
	h.Mine(w, asPrincipal(r, "u1"), nil)

	var got []models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if len(got) != 1 || got[0].BookingID != "b1" {
		t.Fatalf("unexpected bookings: %+v", got)
	}
	if got[0].Place == nil || got[0].Place.Title != "Loft" {
		t.Fatalf("place not joined: %+v", got[0])
	}
}

func TestGetForeignBookingIsNull(t *testing.T) {
	store := newFakeBookingStore()
	store.bookings["b1"] = &models.Booking{BookingID: "b1", PlaceID: "p1", UserID: "u1"}
	h := NewHandler(store, nil)

	r := httptest.NewRequest(http.MethodGet, "/booking/b1", nil)
	w := httptest.NewRecorder()
	h.Get(w, asPrincipal(r, "u2"), httprouter.Params{{Key: "id", Value: "b1"}})

	if strings.TrimSpace(w.Body.String()) != "null" {
		t.Fatalf("expected null, got %q", w.Body.String())
	}
}

func TestGetOwnBooking(t *testing.T) {
	store := newFakeBookingStore()
	store.places["p1"] = &models.Place{PlaceID: "p1", Title: "Loft"}
	store.bookings["b1"] = &models.Booking{BookingID: "b1", PlaceID: "p1", UserID: "u1"}
	h := NewHandler(store, nil)

	r := httptest.NewRequest(http.MethodGet, "/booking/b1", nil)
	w := httptest.NewRecorder()
	h.Get(w, asPrincipal(r, "u1"), httprouter.Params{{Key: "id", Value: "b1"}})

	var got models.Booking
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if got.BookingID != "b1" || got.Place == nil || got.Place.Title != "Loft" {
		t.Fatalf("unexpected booking: %+v", got)
	}
}
