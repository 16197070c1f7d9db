package models

import "time"

// User is a registered account. The password field holds the bcrypt digest;
// it stays in the JSON shape because register and login return the stored
// document as-is.
type User struct {
	UserID    string    `json:"id" bson:"userid"`
	Name      string    `json:"name" bson:"name"`
	Email     string    `json:"email" bson:"email"`
	Password  string    `json:"password" bson:"password"`
	CreatedAt time.Time `json:"-" bson:"created_at"`
}
