// models/user.go
package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rriehl64/collibra-app-sub009/utils"
)

const (
	RoleAdmin       = "admin"
	RoleDataSteward = "data-steward"
	RoleUser        = "user"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"password,omitempty"`
	Role            string             `bson:"role" json:"role"`
	Department      string             `bson:"department,omitempty" json:"department,omitempty"`
	JobTitle        string             `bson:"jobTitle,omitempty" json:"jobTitle,omitempty"`
	AssignedDomains []string           `bson:"assignedDomains" json:"assignedDomains"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) SetID(id primitive.ObjectID) { u.ID = id }
func (u *User) GetID() primitive.ObjectID   { return u.ID }

func (u *User) CreatedTime() time.Time     { return u.CreatedAt }
func (u *User) SetCreatedTime(t time.Time) { u.CreatedAt = t }

func (u *User) Touch(now time.Time) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

func (u *User) Validate() error {
	if u.Name == "" {
		return validationError("name is required")
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return validationError(fmt.Sprintf("invalid email %q", u.Email))
	}
	if !ValidRole(u.Role) {
		return validationError(fmt.Sprintf("unknown role %q", u.Role))
	}
	return nil
}

// BeforeSave normalizes the email and hashes a plain-text password.
func (u *User) BeforeSave() error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Password == "" || utils.IsPasswordHash(u.Password) {
		return nil
	}
	hash, err := utils.HashPassword(u.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.Password = hash
	return nil
}

func (u *User) Sanitize() { u.Password = "" }

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleDataSteward, RoleUser:
		return true
	}
	return false
}
