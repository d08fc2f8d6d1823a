package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReseed_IdempotentCount(t *testing.T) {
	ctx := context.Background()
	coll := newMem("portfolios")
	coll.docs = []interface{}{"stale-1", "stale-2", "stale-3", "stale-4"}
	docs := []interface{}{"a", "b", "c"}

	count, err := Reseed(ctx, zap.NewNop(), coll, docs)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = Reseed(ctx, zap.NewNop(), coll, docs)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count, "second run must not double the collection")
}

func TestReseed_InsertFailureLeavesCollectionEmpty(t *testing.T) {
	coll := newMem("portfolios")
	coll.docs = []interface{}{"old"}
	coll.insertErr = errors.New("boom")

	_, err := Reseed(context.Background(), zap.NewNop(), coll, []interface{}{"new"})
	require.Error(t, err)
	assert.Empty(t, coll.docs)
}

func TestClean_StopsOnError(t *testing.T) {
	a := newMem("a")
	a.docs = []interface{}{1}
	b := newMem("b")
	b.deleteErr = errors.New("denied")
	c := newMem("c")
	c.docs = []interface{}{1}

	err := Clean(context.Background(), zap.NewNop(), a, b, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear b")
	assert.Empty(t, a.docs)
	assert.Len(t, c.docs, 1)
}
