// handlers/team_handler.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/rriehl64/collibra-app-sub009/models"
	"github.com/rriehl64/collibra-app-sub009/store"
	"github.com/rriehl64/collibra-app-sub009/utils"
	"github.com/rriehl64/collibra-app-sub009/websocket"
)

const teamCollection = "team-members"

// TeamHandler serves the team-management roster. Every response uses the
// {success, data, message} envelope.
type TeamHandler struct {
	repo   store.Repository[models.TeamMember]
	events Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewTeamHandler(repo store.Repository[models.TeamMember], events Publisher, logger *zap.Logger) *TeamHandler {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeamHandler{
		repo:   repo,
		events: events,
		logger: logger.With(zap.String("resource", teamCollection)),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	switch status := r.URL.Query().Get("status"); status {
	case "", "all":
	case models.MemberActive, models.MemberArchived:
		filter["status"] = status
	default:
		utils.RespondWithEnvelope(w, http.StatusBadRequest, nil, "status must be active, archived or all")
		return
	}

	members, err := h.repo.List(r.Context(), filter, store.ListOptions{Sort: bson.D{{Key: "name", Value: 1}}})
	if err != nil {
		h.fail(w, err, "Failed to fetch team members")
		return
	}
	utils.RespondWithEnvelope(w, http.StatusOK, members, "")
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	utils.RespondWithEnvelope(w, http.StatusOK, member, "")
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var m models.TeamMember
	if err := utils.ParseJSON(r, &m); err != nil {
		utils.RespondWithEnvelope(w, http.StatusBadRequest, nil, "Invalid payload")
		return
	}
	m.ID = primitive.NewObjectID()
	m.ArchivedAt = nil
	if m.Status == models.MemberArchived {
		now := h.now()
		m.ArchivedAt = &now
	}
	m.Touch(h.now())
	if err := m.Validate(); err != nil {
		h.fail(w, err, "")
		return
	}
	if err := h.repo.Create(r.Context(), &m); err != nil {
		h.fail(w, err, "Failed to create team member")
		return
	}
	h.publish(r, websocket.EventCreated, &m)
	utils.RespondWithEnvelope(w, http.StatusCreated, &m, "Team member created")
}

// Update replaces the editable fields. Status changes go through Archive
// and Reactivate so archivedAt stays consistent.
func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.load(w, r)
	if !ok {
		return
	}
	var in models.TeamMember
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithEnvelope(w, http.StatusBadRequest, nil, "Invalid payload")
		return
	}

	existing.Name = in.Name
	existing.Email = in.Email
	existing.Role = in.Role
	existing.Department = in.Department
	existing.Touch(h.now())
	if err := existing.Validate(); err != nil {
		h.fail(w, err, "")
		return
	}
	if err := h.repo.Replace(r.Context(), existing.ID, existing); err != nil {
		h.fail(w, err, "Failed to update team member")
		return
	}
	h.publish(r, websocket.EventUpdated, existing)
	utils.RespondWithEnvelope(w, http.StatusOK, existing, "Team member updated")
}

func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := store.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err, "")
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil {
		h.fail(w, err, "Failed to delete team member")
		return
	}
	h.events.Publish(websocket.ChangeEvent{
		Type:       websocket.EventDeleted,
		Collection: teamCollection,
		ID:         id.Hex(),
		Timestamp:  h.now(),
		UserID:     userID(r.Context()),
	})
	utils.RespondWithEnvelope(w, http.StatusOK, nil, "Team member deleted")
}

func (h *TeamHandler) Archive(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*models.TeamMember).Archive, websocket.EventArchived, "Team member archived", "Team member is already archived")
}

func (h *TeamHandler) Reactivate(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, (*models.TeamMember).Reactivate, websocket.EventReactivated, "Team member reactivated", "Team member is already active")
}

func (h *TeamHandler) transition(w http.ResponseWriter, r *http.Request, apply func(*models.TeamMember, time.Time) bool, event, done, noop string) {
	member, ok := h.load(w, r)
	if !ok {
		return
	}
	if !apply(member, h.now()) {
		utils.RespondWithEnvelope(w, http.StatusConflict, member, noop)
		return
	}
	if err := h.repo.Replace(r.Context(), member.ID, member); err != nil {
		h.fail(w, err, "Failed to update team member")
		return
	}
	h.publish(r, event, member)
	utils.RespondWithEnvelope(w, http.StatusOK, member, done)
}

func (h *TeamHandler) load(w http.ResponseWriter, r *http.Request) (*models.TeamMember, bool) {
	id, err := store.ParseID(mux.Vars(r)["id"])
	if err != nil {
		h.fail(w, err, "")
		return nil, false
	}
	member, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondWithEnvelope(w, http.StatusNotFound, nil, "Team member not found")
			return nil, false
		}
		h.fail(w, err, "Failed to fetch team member")
		return nil, false
	}
	return member, true
}

func (h *TeamHandler) publish(r *http.Request, typ string, m *models.TeamMember) {
	h.events.Publish(websocket.ChangeEvent{
		Type:       typ,
		Collection: teamCollection,
		ID:         m.ID.Hex(),
		Data:       m,
		Timestamp:  h.now(),
		UserID:     userID(r.Context()),
	})
}

func (h *TeamHandler) fail(w http.ResponseWriter, err error, fallback string) {
	code, msg := errorStatus(err)
	if code == http.StatusInternalServerError {
		h.logger.Error(fallback, zap.Error(err))
		msg = fallback
	}
	utils.RespondWithEnvelope(w, code, nil, msg)
}
