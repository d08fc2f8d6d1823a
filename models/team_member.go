// models/team_member.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MemberActive   = "active"
	MemberArchived = "archived"
)

type TeamMember struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"`
	Department string             `bson:"department,omitempty" json:"department,omitempty"`
	Status     string             `bson:"status" json:"status"`
	JoinedAt   time.Time          `bson:"joinedAt" json:"joinedAt"`
	ArchivedAt *time.Time         `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (m *TeamMember) SetID(id primitive.ObjectID) { m.ID = id }
func (m *TeamMember) GetID() primitive.ObjectID   { return m.ID }

func (m *TeamMember) CreatedTime() time.Time     { return m.CreatedAt }
func (m *TeamMember) SetCreatedTime(t time.Time) { m.CreatedAt = t }

func (m *TeamMember) Touch(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.JoinedAt.IsZero() {
		m.JoinedAt = now
	}
	if m.Status == "" {
		m.Status = MemberActive
	}
	m.UpdatedAt = now
}

func (m *TeamMember) Validate() error {
	if m.Name == "" {
		return validationError("name is required")
	}
	if m.Email == "" {
		return validationError("email is required")
	}
	if m.Status != "" && m.Status != MemberActive && m.Status != MemberArchived {
		return validationError("status must be active or archived")
	}
	return nil
}

// Archive marks the member archived; it reports false if already archived.
func (m *TeamMember) Archive(now time.Time) bool {
	if m.Status == MemberArchived {
		return false
	}
	m.Status = MemberArchived
	m.ArchivedAt = &now
	m.UpdatedAt = now
	return true
}

// Reactivate reverses Archive; it reports false if the member is active.
func (m *TeamMember) Reactivate(now time.Time) bool {
	if m.Status != MemberArchived {
		return false
	}
	m.Status = MemberActive
	m.ArchivedAt = nil
	m.UpdatedAt = now
	return true
}
