package seed

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/models"
)

// SeederCollections are the collections touched by Import and Destroy.
type SeederCollections struct {
	Users      Collection
	Policies   Collection
	DataAssets Collection
	Domains    Collection
}

func (c SeederCollections) all() []Collection {
	return []Collection{c.Users, c.Policies, c.DataAssets, c.Domains}
}

type Seeder struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewSeeder(logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{logger: logger, now: time.Now}
}

// Import clears the seeder collections and inserts data. Policies are owned
// by the first admin and approved by every data steward.
func (s *Seeder) Import(ctx context.Context, colls SeederCollections, data *SampleData) error {
	if err := Clean(ctx, s.logger, colls.all()...); err != nil {
		return err
	}
	now := s.now().UTC()

	var owner *primitive.ObjectID
	var approvers []primitive.ObjectID
	users := make([]interface{}, 0, len(data.Users))
	for i := range data.Users {
		u := data.Users[i]
		if err := u.BeforeSave(); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		if err := u.Validate(); err != nil {
			return fmt.Errorf("user %s: %w", u.Email, err)
		}
		u.SetID(primitive.NewObjectID())
		u.Touch(now)
		switch u.Role {
		case models.RoleAdmin:
			if owner == nil {
				id := u.ID
				owner = &id
			}
		case models.RoleDataSteward:
			approvers = append(approvers, u.ID)
		}
		users = append(users, &u)
	}

	policies := make([]interface{}, 0, len(data.Policies))
	for i := range data.Policies {
		p := data.Policies[i]
		p.Owner = owner
		p.Approvers = approvers
		p.Touch(now)
		policies = append(policies, &p)
	}

	assets := TransformDataAssets(data.DataAssets, now)
	assetDocs := make([]interface{}, 0, len(assets))
	for i := range assets {
		assetDocs = append(assetDocs, &assets[i])
	}

	domains := make([]interface{}, 0, len(data.Domains))
	for i := range data.Domains {
		d := data.Domains[i]
		d.Touch(now)
		domains = append(domains, &d)
	}

	for _, step := range []struct {
		coll Collection
		docs []interface{}
	}{
		{colls.Users, users},
		{colls.Policies, policies},
		{colls.DataAssets, assetDocs},
		{colls.Domains, domains},
	} {
		if len(step.docs) == 0 {
			continue
		}
		if _, err := step.coll.InsertMany(ctx, step.docs); err != nil {
			return fmt.Errorf("import %s: %w", step.coll.Name(), err)
		}
		s.logger.Info("imported", zap.String("collection", step.coll.Name()), zap.Int("count", len(step.docs)))
	}
	return nil
}

// Destroy deletes all documents from the seeder collections.
func (s *Seeder) Destroy(ctx context.Context, colls SeederCollections) error {
	return Clean(ctx, s.logger, colls.all()...)
}
