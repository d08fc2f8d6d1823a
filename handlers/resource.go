// handlers/resource.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/middleware"
	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/utils"
	"github.com/rriehl64/collibra-app-sub009/websocket"
)

// Publisher receives an event after every successful write.
type Publisher interface {
	Publish(ev websocket.ChangeEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(websocket.ChangeEvent) {}

// Doc constrains PT to the pointer type of T implementing models.Document.
type Doc[T any] interface {
	*T
	models.Document
}

// Resource serves list/get/create/update/delete for one collection.
type Resource[T any, PT Doc[T]] struct {
	name   string
	label  string
	repo   store.Repository[T]
	events Publisher
	logger *zap.Logger
	now    func() time.Time

	listFilter func(*http.Request) bson.M
	sort       bson.D
}

// NewResource builds a Resource. name is the route segment used in change
// events ("data-assets"); label is the singular used in messages ("Data asset").
func NewResource[T any, PT Doc[T]](name, label string, repo store.Repository[T], events Publisher, logger *zap.Logger) *Resource[T, PT] {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resource[T, PT]{
		name:   name,
		label:  label,
		repo:   repo,
		events: events,
		logger: logger.With(zap.String("resource", name)),
		now:    func() time.Time { return time.Now().UTC() },
		sort:   bson.D{{Key: "createdAt", Value: -1}},
	}
}

// WithListFilter derives the list filter from the request query.
func (res *Resource[T, PT]) WithListFilter(fn func(*http.Request) bson.M) *Resource[T, PT] {
	res.listFilter = fn
	return res
}

func (res *Resource[T, PT]) WithSort(sort bson.D) *Resource[T, PT] {
	res.sort = sort
	return res
}

func (res *Resource[T, PT]) Name() string { return res.name }

func (res *Resource[T, PT]) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if res.listFilter != nil {
		filter = res.listFilter(r)
	}

	docs, err := res.repo.List(r.Context(), filter, store.ListOptions{Sort: res.sort})
	if err != nil {
		res.respondError(w, err, "Failed to fetch "+res.name)
		return
	}
	for i := range docs {
		sanitize(PT(&docs[i]))
	}
	utils.RespondWithJSON(w, http.StatusOK, docs)
}

func (res *Resource[T, PT]) Get(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(mux.Vars(r)["id"])
	if err != nil {
		res.respondError(w, err, "")
		return
	}
	doc, err := res.repo.Get(r.Context(), id)
	if err != nil {
		res.respondError(w, err, "Failed to fetch "+res.label)
		return
	}
	sanitize(PT(doc))
	utils.RespondWithJSON(w, http.StatusOK, doc)
}

func (res *Resource[T, PT]) Create(w http.ResponseWriter, r *http.Request) {
	var doc T
	if err := utils.ParseJSON(r, &doc); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	p := PT(&doc)
	p.SetID(primitive.NewObjectID())
	if err := res.prepare(p); err != nil {
		res.respondError(w, err, "Failed to create "+res.label)
		return
	}
	if err := res.repo.Create(r.Context(), &doc); err != nil {
		res.respondError(w, err, "Failed to create "+res.label)
		return
	}

	sanitize(p)
	res.publish(r.Context(), websocket.EventCreated, p)
	utils.RespondWithJSON(w, http.StatusCreated, &doc)
}

func (res *Resource[T, PT]) Update(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(mux.Vars(r)["id"])
	if err != nil {
		res.respondError(w, err, "")
		return
	}
	existing, err := res.repo.Get(r.Context(), id)
	if err != nil {
		res.respondError(w, err, "Failed to update "+res.label)
		return
	}

	// fields missing from the body keep their stored values
	doc := *existing
	if err := utils.ParseJSON(r, &doc); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	p := PT(&doc)
	p.SetID(id)
	p.SetCreatedTime(PT(existing).CreatedTime())
	if err := res.prepare(p); err != nil {
		res.respondError(w, err, "Failed to update "+res.label)
		return
	}
	if err := res.repo.Replace(r.Context(), id, &doc); err != nil {
		res.respondError(w, err, "Failed to update "+res.label)
		return
	}

	sanitize(p)
	res.publish(r.Context(), websocket.EventUpdated, p)
	utils.RespondWithJSON(w, http.StatusOK, &doc)
}

func (res *Resource[T, PT]) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(mux.Vars(r)["id"])
	if err != nil {
		res.respondError(w, err, "")
		return
	}
	if err := res.repo.Delete(r.Context(), id); err != nil {
		res.respondError(w, err, "Failed to delete "+res.label)
		return
	}

	res.events.Publish(websocket.ChangeEvent{
		Type:       websocket.EventDeleted,
		Collection: res.name,
		ID:         id.Hex(),
		Timestamp:  res.now(),
		UserID:     userID(r.Context()),
	})
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": res.label + " deleted"})
}

// prepare stamps timestamps, runs BeforeSave and validates, in that order.
func (res *Resource[T, PT]) prepare(p PT) error {
	p.Touch(res.now())
	if prep, ok := any(p).(models.Preparer); ok {
		if err := prep.BeforeSave(); err != nil {
			return err
		}
	}
	return p.Validate()
}

func (res *Resource[T, PT]) publish(ctx context.Context, typ string, p PT) {
	res.events.Publish(websocket.ChangeEvent{
		Type:       typ,
		Collection: res.name,
		ID:         p.GetID().Hex(),
		Data:       p,
		Timestamp:  res.now(),
		UserID:     userID(ctx),
	})
}

func (res *Resource[T, PT]) respondError(w http.ResponseWriter, err error, fallback string) {
	code, msg := errorStatus(err)
	if code == http.StatusInternalServerError {
		res.logger.Error(fallback, zap.Error(err))
		msg = fallback
	}
	utils.RespondWithError(w, code, msg)
}

// errorStatus maps store and model errors to an HTTP status and message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrInvalidID):
		return http.StatusBadRequest, "Invalid ID"
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "Resource not found"
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, "Duplicate field value entered"
	default:
		return http.StatusInternalServerError, fmt.Sprint(err)
	}
}

func sanitize(v interface{}) {
	if s, ok := v.(models.Sanitizer); ok {
		s.Sanitize()
	}
}

func userID(ctx context.Context) string {
	if claims, ok := middleware.ClaimsFrom(ctx); ok {
		return claims.UserID
	}
	return ""
}
