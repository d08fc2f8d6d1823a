package teamclient

import (
	"context"
	"sync"

	"github.com/rriehl64/collibra-app-sub009/editable"
	"github.com/rriehl64/collibra-app-sub009/models"
	"go.uber.org/zap"
)

// Updater is the part of Client a MemberEditor needs.
type Updater interface {
	UpdateMember(ctx context.Context, m models.TeamMember) (*models.TeamMember, error)
}

// MemberEditor is a click-to-edit form over one roster entry. After a
// successful save the content is the server's copy of the member.
type MemberEditor struct {
	*editable.Field[models.TeamMember]
	api Updater

	mu     sync.Mutex
	stored *models.TeamMember
}

func NewMemberEditor(api Updater, member models.TeamMember, logger *zap.Logger) *MemberEditor {
	e := &MemberEditor{api: api}
	e.Field = editable.NewField(member, e.update,
		editable.WithMultiline[models.TeamMember](),
		editable.WithLogger[models.TeamMember](logger),
	)
	return e
}

func (e *MemberEditor) Save(ctx context.Context) error {
	if err := e.Field.Save(ctx); err != nil {
		return err
	}
	e.mu.Lock()
	stored := e.stored
	e.stored = nil
	e.mu.Unlock()
	if stored != nil {
		e.Field.SetContent(*stored)
	}
	return nil
}

func (e *MemberEditor) update(ctx context.Context, m models.TeamMember) error {
	updated, err := e.api.UpdateMember(ctx, m)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.stored = updated
	e.mu.Unlock()
	return nil
}
