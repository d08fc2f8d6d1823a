package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/rriehl64/collibra-app-sub009/utils"
)

func TestDataAsset_Validate(t *testing.T) {
	tests := []struct {
		name    string
		asset   DataAsset
		wantErr bool
	}{
		{"minimal", DataAsset{Name: "Customer Table"}, false},
		{"missing name", DataAsset{}, true},
		{"bad certification", DataAsset{Name: "x", Certification: "gold"}, true},
		{"metric above range", DataAsset{Name: "x", QualityMetrics: QualityMetrics{Accuracy: 101}}, true},
		{"metric below range", DataAsset{Name: "x", QualityMetrics: QualityMetrics{Completeness: -1}}, true},
		{"bad relationship", DataAsset{Name: "x", RelatedAssets: []RelatedAsset{{AssetID: "a", RelationshipType: "peer"}}}, true},
		{"full", DataAsset{
			Name:           "x",
			Certification:  CertificationCertified,
			QualityMetrics: QualityMetrics{100, 0, 50},
			RelatedAssets:  []RelatedAsset{{AssetID: "a", RelationshipType: RelationshipDerived}},
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.asset.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUser_BeforeSave(t *testing.T) {
	utils.PasswordCost = bcrypt.MinCost

	u := &User{Name: "Ada", Email: "  Ada@Example.com ", Password: "hunter22"}
	require.NoError(t, u.BeforeSave())

	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.True(t, utils.CheckPasswordHash("hunter22", u.Password))

	hashed := u.Password
	require.NoError(t, u.BeforeSave())
	assert.Equal(t, hashed, u.Password, "existing hash must not be rehashed")

	u.Sanitize()
	assert.Empty(t, u.Password)
}

func TestUser_Validate(t *testing.T) {
	assert.NoError(t, (&User{Name: "a", Email: "a@b.io", Role: RoleDataSteward}).Validate())
	assert.ErrorIs(t, (&User{Name: "a", Email: "nope", Role: RoleUser}).Validate(), ErrValidation)
	assert.ErrorIs(t, (&User{Name: "a", Email: "a@b.io", Role: "root"}).Validate(), ErrValidation)
}

func TestTeamMember_ArchiveReactivate(t *testing.T) {
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	m := &TeamMember{Name: "Sam", Email: "sam@example.com"}
	m.Touch(now)
	assert.Equal(t, MemberActive, m.Status)
	assert.Equal(t, now, m.JoinedAt)

	assert.True(t, m.Archive(now.Add(time.Hour)))
	assert.Equal(t, MemberArchived, m.Status)
	require.NotNil(t, m.ArchivedAt)
	assert.False(t, m.Archive(now), "second archive is a no-op")

	assert.True(t, m.Reactivate(now.Add(2*time.Hour)))
	assert.Equal(t, MemberActive, m.Status)
	assert.Nil(t, m.ArchivedAt)
	assert.False(t, m.Reactivate(now))
}

func TestTouch_KeepsCreatedAt(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	d := &Domain{Name: "Finance", CreatedAt: created}
	d.Touch(created.Add(time.Hour))
	assert.Equal(t, created, d.CreatedAt)
	assert.Equal(t, created.Add(time.Hour), d.UpdatedAt)
}
