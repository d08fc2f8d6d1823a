package seed

import (
	"time"

	"github.com/rriehl64/collibra-app-sub009/models"
)

// Lineage is the legacy source/target shape carried by older mock data.
type Lineage struct {
	Sources []string `json:"sources,omitempty"`
	Targets []string `json:"targets,omitempty"`
}

// MockDataAsset is a data asset as it appears in mock-data.json. Pointer and
// nil-slice fields distinguish "absent" from "present but empty".
type MockDataAsset struct {
	Name           string                 `json:"name"`
	Type           string                 `json:"type"`
	Domain         string                 `json:"domain"`
	Owner          string                 `json:"owner"`
	Description    string                 `json:"description"`
	Status         string                 `json:"status"`
	Tags           []string               `json:"tags"`
	Certification  string                 `json:"certification"`
	Stewards       []string               `json:"stewards"`
	Governance     *models.Governance     `json:"governance"`
	QualityMetrics *models.QualityMetrics `json:"qualityMetrics"`
	RelatedAssets  []models.RelatedAsset  `json:"relatedAssets"`
	Lineage        *Lineage               `json:"lineage"`
}

// TransformDataAsset backfills missing stewardship, governance and quality
// fields and converts lineage into relatedAssets. Fields already present are
// kept as they are.
func TransformDataAsset(in MockDataAsset, now time.Time) models.DataAsset {
	out := models.DataAsset{
		Name:          in.Name,
		Type:          in.Type,
		Domain:        in.Domain,
		Owner:         in.Owner,
		Description:   in.Description,
		Status:        in.Status,
		Tags:          in.Tags,
		Certification: in.Certification,
		Stewards:      in.Stewards,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Stewards == nil {
		out.Stewards = []string{}
	}
	if in.Governance != nil {
		out.Governance = *in.Governance
	} else {
		out.Governance = models.DefaultGovernance()
	}
	if in.QualityMetrics != nil {
		out.QualityMetrics = *in.QualityMetrics
	}

	related := make([]models.RelatedAsset, 0, len(in.RelatedAssets))
	related = append(related, in.RelatedAssets...)
	if in.Lineage != nil {
		for _, id := range in.Lineage.Sources {
			related = append(related, models.RelatedAsset{AssetID: id, RelationshipType: models.RelationshipSource})
		}
		for _, id := range in.Lineage.Targets {
			related = append(related, models.RelatedAsset{AssetID: id, RelationshipType: models.RelationshipDerived})
		}
	}
	out.RelatedAssets = related
	return out
}

func TransformDataAssets(in []MockDataAsset, now time.Time) []models.DataAsset {
	out := make([]models.DataAsset, 0, len(in))
	for _, a := range in {
		out = append(out, TransformDataAsset(a, now))
	}
	return out
}
