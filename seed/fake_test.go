package seed

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// memCollection is an in-memory Collection.
type memCollection struct {
	name      string
	docs      []interface{}
	insertErr error
	deleteErr error
	// writtenBeforeErr documents are kept even when insertErr is returned.
	writtenBeforeErr int
	lastOrdered      *bool
}

func newMem(name string) *memCollection { return &memCollection{name: name} }

func (m *memCollection) Name() string { return m.name }

func (m *memCollection) DeleteMany(_ context.Context, _ interface{}, _ ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	if m.deleteErr != nil {
		return nil, m.deleteErr
	}
	n := len(m.docs)
	m.docs = nil
	return &mongo.DeleteResult{DeletedCount: int64(n)}, nil
}

func (m *memCollection) InsertMany(_ context.Context, docs []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	m.lastOrdered = nil
	for _, o := range opts {
		if o != nil && o.Ordered != nil {
			m.lastOrdered = o.Ordered
		}
	}
	if m.insertErr != nil {
		m.docs = append(m.docs, docs[:m.writtenBeforeErr]...)
		return nil, m.insertErr
	}
	ids := make([]interface{}, 0, len(docs))
	for range docs {
		ids = append(ids, primitive.NewObjectID())
	}
	m.docs = append(m.docs, docs...)
	return &mongo.InsertManyResult{InsertedIDs: ids}, nil
}

func (m *memCollection) CountDocuments(_ context.Context, _ interface{}, _ ...*options.CountOptions) (int64, error) {
	return int64(len(m.docs)), nil
}
