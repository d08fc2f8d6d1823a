// models/data_asset.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	CertificationCertified   = "certified"
	CertificationPending     = "pending"
	CertificationUncertified = "uncertified"

	RelationshipSource  = "source"
	RelationshipDerived = "derived"

	ComplianceUnknown = "Unknown"
)

type DataAsset struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Type           string             `bson:"type" json:"type"`
	Domain         string             `bson:"domain" json:"domain"`
	Owner          string             `bson:"owner" json:"owner"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Status         string             `bson:"status" json:"status"`
	Tags           []string           `bson:"tags" json:"tags"`
	Certification  string             `bson:"certification,omitempty" json:"certification,omitempty"`
	Stewards       []string           `bson:"stewards" json:"stewards"`
	Governance     Governance         `bson:"governance" json:"governance"`
	QualityMetrics QualityMetrics     `bson:"qualityMetrics" json:"qualityMetrics"`
	RelatedAssets  []RelatedAsset     `bson:"relatedAssets" json:"relatedAssets"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Governance struct {
	ComplianceStatus string      `bson:"complianceStatus" json:"complianceStatus"`
	Policies         []PolicyRef `bson:"policies" json:"policies"`
}

type PolicyRef struct {
	Name        string `bson:"name" json:"name"`
	Description string `bson:"description,omitempty" json:"description,omitempty"`
	Status      string `bson:"status,omitempty" json:"status,omitempty"`
}

// QualityMetrics are percentages in [0,100].
type QualityMetrics struct {
	Completeness float64 `bson:"completeness" json:"completeness"`
	Accuracy     float64 `bson:"accuracy" json:"accuracy"`
	Consistency  float64 `bson:"consistency" json:"consistency"`
}

type RelatedAsset struct {
	AssetID          string `bson:"assetId" json:"assetId"`
	RelationshipType string `bson:"relationshipType" json:"relationshipType"`
}

// DefaultGovernance is the governance block given to assets that carry none.
func DefaultGovernance() Governance {
	return Governance{ComplianceStatus: ComplianceUnknown, Policies: []PolicyRef{}}
}

func (a *DataAsset) SetID(id primitive.ObjectID) { a.ID = id }
func (a *DataAsset) GetID() primitive.ObjectID   { return a.ID }

func (a *DataAsset) CreatedTime() time.Time     { return a.CreatedAt }
func (a *DataAsset) SetCreatedTime(t time.Time) { a.CreatedAt = t }

func (a *DataAsset) Touch(now time.Time) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
}

func (a *DataAsset) Validate() error {
	if a.Name == "" {
		return validationError("name is required")
	}
	switch a.Certification {
	case "", CertificationCertified, CertificationPending, CertificationUncertified:
	default:
		return validationError(fmt.Sprintf("unknown certification %q", a.Certification))
	}
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"completeness", a.QualityMetrics.Completeness},
		{"accuracy", a.QualityMetrics.Accuracy},
		{"consistency", a.QualityMetrics.Consistency},
	} {
		if m.value < 0 || m.value > 100 {
			return validationError(fmt.Sprintf("qualityMetrics.%s must be between 0 and 100", m.name))
		}
	}
	for _, rel := range a.RelatedAssets {
		if rel.RelationshipType != RelationshipSource && rel.RelationshipType != RelationshipDerived {
			return validationError(fmt.Sprintf("unknown relationshipType %q", rel.RelationshipType))
		}
	}
	return nil
}
