package models

import "time"

// Place is a rental listing. Owner is set by the server from the session
// principal at creation and never changes afterwards.
type Place struct {
	PlaceID     string    `json:"id" bson:"placeid"`
	Owner       string    `json:"owner" bson:"owner"`
	Title       string    `json:"title" bson:"title"`
	Address     string    `json:"address" bson:"address"`
	Photos      []string  `json:"photos" bson:"photos"`
	Description string    `json:"description" bson:"description"`
	Perks       []string  `json:"perks" bson:"perks"`
	ExtraInfo   string    `json:"extraInfo" bson:"extrainfo"`
	CheckIn     int       `json:"checkIn" bson:"checkin"`
	CheckOut    int       `json:"checkOut" bson:"checkout"`
	MaxGuests   int       `json:"maxGuests" bson:"maxguests"`
	Price       int       `json:"price" bson:"price"`
	CreatedAt   time.Time `json:"-" bson:"created_at"`
	UpdatedAt   time.Time `json:"-" bson:"updated_at,omitempty"`
}
