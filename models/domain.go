// models/domain.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Domain struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Type         string             `bson:"type,omitempty" json:"type,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"`
	Owner        string             `bson:"owner,omitempty" json:"owner,omitempty"`
	ParentDomain string             `bson:"parentDomain,omitempty" json:"parentDomain,omitempty"`
	Tags         []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (d *Domain) SetID(id primitive.ObjectID) { d.ID = id }
func (d *Domain) GetID() primitive.ObjectID   { return d.ID }

func (d *Domain) CreatedTime() time.Time     { return d.CreatedAt }
func (d *Domain) SetCreatedTime(t time.Time) { d.CreatedAt = t }

func (d *Domain) Touch(now time.Time) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

func (d *Domain) Validate() error {
	if d.Name == "" {
		return validationError("name is required")
	}
	return nil
}
