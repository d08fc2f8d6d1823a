// models/portfolio.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Portfolio records link to each other only by string ids
// (milestone.portfolioId == Portfolio.PortfolioID); nothing checks them.
type Portfolio struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PortfolioID string             `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Manager     string             `bson:"manager" json:"manager"`
	TotalBudget float64            `bson:"totalBudget" json:"totalBudget"`
	Status      string             `bson:"status" json:"status"`
	KPIs        []bson.M           `bson:"kpis" json:"kpis"`
	OKR         []bson.M           `bson:"okr" json:"okr"`
	Risks       []bson.M           `bson:"risks" json:"risks"`
	Innovations []bson.M           `bson:"innovations" json:"innovations"`
	Milestones  []bson.M           `bson:"milestones" json:"milestones"`
	Projects    []bson.M           `bson:"projects" json:"projects"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (p *Portfolio) SetID(id primitive.ObjectID) { p.ID = id }
func (p *Portfolio) GetID() primitive.ObjectID   { return p.ID }

func (p *Portfolio) CreatedTime() time.Time     { return p.CreatedAt }
func (p *Portfolio) SetCreatedTime(t time.Time) { p.CreatedAt = t }

func (p *Portfolio) Touch(now time.Time) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func (p *Portfolio) Validate() error {
	if p.PortfolioID == "" {
		return validationError("id is required")
	}
	if p.Name == "" {
		return validationError("name is required")
	}
	return nil
}
