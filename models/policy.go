// models/policy.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Policy struct {
	ID                 primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name               string               `bson:"name" json:"name"`
	Description        string               `bson:"description" json:"description"`
	Category           string               `bson:"category" json:"category"`
	Status             string               `bson:"status" json:"status"` // draft, active, archived
	Version            string               `bson:"version" json:"version"`
	EffectiveDate      time.Time            `bson:"effectiveDate,omitempty" json:"effectiveDate,omitempty"`
	AffectedDomains    []string             `bson:"affectedDomains" json:"affectedDomains"`
	AffectedAssetTypes []string             `bson:"affectedAssetTypes" json:"affectedAssetTypes"`
	Controls           []Control            `bson:"controls" json:"controls"`
	RelatedRegulations []Regulation         `bson:"relatedRegulations" json:"relatedRegulations"`
	Owner              *primitive.ObjectID  `bson:"owner,omitempty" json:"owner,omitempty"`
	Approvers          []primitive.ObjectID `bson:"approvers,omitempty" json:"approvers,omitempty"`
	CreatedAt          time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Control struct {
	Name                 string `bson:"name" json:"name"`
	Description          string `bson:"description,omitempty" json:"description,omitempty"`
	ImplementationStatus string `bson:"implementationStatus" json:"implementationStatus"`
}

type Regulation struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	URL         string `bson:"url,omitempty" json:"url,omitempty"`
}

func (p *Policy) SetID(id primitive.ObjectID) { p.ID = id }
func (p *Policy) GetID() primitive.ObjectID   { return p.ID }

func (p *Policy) CreatedTime() time.Time     { return p.CreatedAt }
func (p *Policy) SetCreatedTime(t time.Time) { p.CreatedAt = t }

func (p *Policy) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *Policy) Validate() error {
	if p.Name == "" {
		return validationError("name is required")
	}
	if p.Category == "" {
		return validationError("category is required")
	}
	return nil
}
