// models/program_documentation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProgramDocumentation struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID   string             `bson:"projectId" json:"projectId"`
	ProjectName string             `bson:"projectName" json:"projectName"`
	PortfolioID string             `bson:"portfolioId" json:"portfolioId"`
	Sections    []DocSection       `bson:"sections" json:"sections"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type DocSection struct {
	ID       string   `bson:"id" json:"id"`
	Title    string   `bson:"title" json:"title"`
	Icon     string   `bson:"icon,omitempty" json:"icon,omitempty"`
	Status   string   `bson:"status" json:"status"`
	Priority string   `bson:"priority" json:"priority"`
	Content  []string `bson:"content" json:"content"`
}

func (d *ProgramDocumentation) SetID(id primitive.ObjectID) { d.ID = id }
func (d *ProgramDocumentation) GetID() primitive.ObjectID   { return d.ID }

func (d *ProgramDocumentation) CreatedTime() time.Time     { return d.CreatedAt }
func (d *ProgramDocumentation) SetCreatedTime(t time.Time) { d.CreatedAt = t }

func (d *ProgramDocumentation) Touch(now time.Time) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now
}

func (d *ProgramDocumentation) Validate() error {
	if d.ProjectID == "" {
		return validationError("projectId is required")
	}
	return nil
}
