package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account owning folders and bookmarks. Required fields
// are validated at construction and on every mutation, so a User loaded or
// built through this package is always in a consistent state.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	PhoneNumber  *string       `bson:"phone_number,omitempty"`
	IsDeleted    bool          `bson:"is_deleted"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

// NewUser creates a user with the required fields validated. The phone
// number is optional and may be nil.
func NewUser(name, email, passwordHash string, phoneNumber *string) (*User, error) {
	if isBlank(name) {
		return nil, ErrEmptyName
	}
	if isBlank(email) {
		return nil, ErrEmptyEmail
	}
	if isBlank(passwordHash) {
		return nil, ErrEmptyPasswordHash
	}

	now := time.Now()

	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PhoneNumber:  phoneNumber,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// Rename replaces the user's name. Blank input is rejected.
func (u *User) Rename(name string) error {
	if isBlank(name) {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// ChangeEmail replaces the user's email. Blank input is rejected.
func (u *User) ChangeEmail(email string) error {
	if isBlank(email) {
		return ErrEmptyEmail
	}
	u.Email = email
	return nil
}

// ChangePassword replaces the stored password hash. Blank input is rejected.
func (u *User) ChangePassword(passwordHash string) error {
	if isBlank(passwordHash) {
		return ErrEmptyPasswordHash
	}
	u.PasswordHash = passwordHash
	return nil
}

// SetPhoneNumber replaces the phone number. A nil value clears it.
func (u *User) SetPhoneNumber(phoneNumber *string) {
	u.PhoneNumber = phoneNumber
}

// Delete marks the account as deleted. There is no undelete.
func (u *User) Delete() {
	u.IsDeleted = true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
