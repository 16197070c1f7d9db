package models

import "time"

// Booking is a reserved stay. UserID always comes from the session
// principal; a client-supplied value is discarded. Place is populated at
// read time from PlaceID and never stored.
type Booking struct {
	BookingID      string    `json:"id" bson:"bookingid"`
	PlaceID        string    `json:"placeId" bson:"placeid"`
	UserID         string    `json:"userId" bson:"userid"`
	CheckIn        time.Time `json:"checkIn" bson:"checkin"`
	CheckOut       time.Time `json:"checkOut" bson:"checkout"`
	Name           string    `json:"name" bson:"name"`
	Phone          string    `json:"phone" bson:"phone"`
	NumberOfGuests int       `json:"numberOfGuests" bson:"numberofguests"`
	Price          int       `json:"price" bson:"price"`
	Place          *Place    `json:"place,omitempty" bson:"place,omitempty"`
}
