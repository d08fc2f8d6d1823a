package handlers

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/websocket"
)

// memRepo is an in-memory store.Repository. match decides which documents a
// filter selects; nil matches everything.
type memRepo[T any, PT Doc[T]] struct {
	mu    sync.Mutex
	docs  []T
	match func(doc T, filter bson.M) bool
	err   error
}

func (m *memRepo[T, PT]) List(_ context.Context, filter bson.M, _ store.ListOptions) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []T{}
	for _, d := range m.docs {
		if m.match == nil || m.match(d, filter) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memRepo[T, PT]) Get(ctx context.Context, id primitive.ObjectID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.index(id); i >= 0 {
		d := m.docs[i]
		return &d, nil
	}
	return nil, store.ErrNotFound
}

func (m *memRepo[T, PT]) FindOne(_ context.Context, filter bson.M) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.docs {
		if m.match == nil || m.match(d, filter) {
			return &d, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memRepo[T, PT]) Create(_ context.Context, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.docs = append(m.docs, *doc)
	return nil
}

func (m *memRepo[T, PT]) Replace(_ context.Context, id primitive.ObjectID, doc *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.docs[i] = *doc
	return nil
}

func (m *memRepo[T, PT]) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.index(id)
	if i < 0 {
		return store.ErrNotFound
	}
	m.docs = append(m.docs[:i], m.docs[i+1:]...)
	return nil
}

func (m *memRepo[T, PT]) index(id primitive.ObjectID) int {
	for i := range m.docs {
		if PT(&m.docs[i]).GetID() == id {
			return i
		}
	}
	return -1
}

type recordedEvents struct {
	mu     sync.Mutex
	events []websocket.ChangeEvent
}

func (r *recordedEvents) Publish(ev websocket.ChangeEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordedEvents) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Collection+":"+ev.Type)
	}
	return out
}
