package seed

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/models"
)

func TestLoadMockData(t *testing.T) {
	fsys := fstest.MapFS{
		"good.json": {Data: []byte(`{"dataAssets":[{"name":"a"}],"domains":[{"name":"d"}]}`)},
		"bad.json":  {Data: []byte(`{"dataAssets": [`)},
	}
	logger := zap.NewNop()

	data := LoadMockData(fsys, "good.json", logger)
	require.NotNil(t, data)
	assert.Len(t, data.DataAssets, 1)
	assert.Len(t, data.Domains, 1)

	assert.Nil(t, LoadMockData(fsys, "bad.json", logger))
	assert.Nil(t, LoadMockData(fsys, "missing.json", logger))
}

func TestLoadMockData_BundledFixture(t *testing.T) {
	data := LoadMockData(Fixtures, MockDataFile, zap.NewNop())
	require.NotNil(t, data)
	assert.Len(t, data.DataAssets, 5)
	assert.Len(t, data.Domains, 5)
}

func TestMigrateDataAssets_NilDataSkips(t *testing.T) {
	coll := newMem("dataassets")
	res := NewMigrator(zap.NewNop()).MigrateDataAssets(context.Background(), coll, nil)
	assert.Nil(t, res)
	assert.Empty(t, coll.docs)
}

func TestMigrateDataAssets_Success(t *testing.T) {
	m := NewMigrator(zap.NewNop())
	m.now = func() time.Time { return fixedNow }
	coll := newMem("dataassets")
	data := &MockData{DataAssets: []MockDataAsset{
		{Name: "a", Lineage: &Lineage{Sources: []string{"x"}}},
		{Name: "b"},
	}}

	res := m.MigrateDataAssets(context.Background(), coll, data)

	require.NotNil(t, res)
	assert.Equal(t, Result{Processed: 2, Inserted: 2, Errors: 0}, *res)
	require.Len(t, coll.docs, 2)
	require.NotNil(t, coll.lastOrdered)
	assert.False(t, *coll.lastOrdered, "data assets are inserted unordered")

	first := coll.docs[0].(*models.DataAsset)
	assert.Equal(t, "x", first.RelatedAssets[0].AssetID)
	assert.Equal(t, fixedNow, first.CreatedAt)
}

func TestMigrateDataAssets_InsertErrorIsIndeterminate(t *testing.T) {
	coll := newMem("dataassets")
	coll.writtenBeforeErr = 1
	coll.insertErr = mongo.BulkWriteException{
		WriteErrors: []mongo.BulkWriteError{{WriteError: mongo.WriteError{Index: 1, Code: 11000, Message: "duplicate key"}}},
	}
	data := &MockData{DataAssets: []MockDataAsset{{Name: "a"}, {Name: "b"}}}

	res := NewMigrator(zap.NewNop()).MigrateDataAssets(context.Background(), coll, data)

	require.NotNil(t, res)
	assert.Equal(t, Result{Processed: 0, Inserted: 0, Errors: 1, Indeterminate: true}, *res)
	assert.Len(t, coll.docs, 1, "a row written before the failure stays written")
}

func TestMigrateDataAssets_EmptyInput(t *testing.T) {
	coll := newMem("dataassets")
	res := NewMigrator(zap.NewNop()).MigrateDataAssets(context.Background(), coll, &MockData{})
	require.NotNil(t, res)
	assert.Equal(t, Result{}, *res)
}

func TestMigrateDomains(t *testing.T) {
	coll := newMem("domains")
	data := &MockData{Domains: []models.Domain{{Name: "Finance"}, {Name: "Customer"}}}

	res := NewMigrator(zap.NewNop()).MigrateDomains(context.Background(), coll, data)

	require.NotNil(t, res)
	assert.Equal(t, 2, res.Inserted)
	d := coll.docs[1].(*models.Domain)
	assert.Equal(t, "Customer", d.Name)
	assert.False(t, d.CreatedAt.IsZero())
}

func TestMigrateDomains_GenericError(t *testing.T) {
	coll := newMem("domains")
	coll.insertErr = errors.New("connection reset")
	res := NewMigrator(zap.NewNop()).MigrateDomains(context.Background(), coll, &MockData{Domains: []models.Domain{{Name: "x"}}})
	require.NotNil(t, res)
	assert.True(t, res.Indeterminate)
	assert.Equal(t, 1, res.Errors)
}
