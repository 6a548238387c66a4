package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationState tracks where a user is in the phone-collection flow.
// A chat with no user document at all is considered unregistered.
type RegistrationState string

const (
	RegistrationPendingPhone RegistrationState = "pending_phone"
	RegistrationRegistered   RegistrationState = "registered"
)

// User represents a registered (or registering) Telegram chat, stored in the
// "users" collection. One document per chat_id; created on first /start,
// updated once when the phone number arrives, never deleted.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ChatID            int64              `bson:"chat_id" json:"chat_id"`
	FirstName         string             `bson:"first_name" json:"first_name"`
	Username          string             `bson:"username" json:"username"`
	PhoneNumber       *string            `bson:"phone_number" json:"phone_number"`
	RegistrationState RegistrationState  `bson:"registration_state" json:"registration_state"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// Registered reports whether the phone-collection flow has completed.
func (u *User) Registered() bool {
	return u.RegistrationState == RegistrationRegistered
}
