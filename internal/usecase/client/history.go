package client

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/models"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
)

type AddInteractionInput struct {
	Type        string
	Description string
	CreatedBy   string
}

// AddInteraction records a manual contact (call, message, note) and moves
// last_contact forward.
type AddInteraction struct {
	deps
}

func NewAddInteraction(
	repo domain.Repository,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *AddInteraction {
	return &AddInteraction{deps: newDeps(repo, audit, feed)}
}

func (uc *AddInteraction) Execute(
	ctx context.Context,
	actor uuid.UUID,
	clientID uuid.UUID,
	in AddInteractionInput,
) (*models.ClientHistory, error) {

	if _, err := uc.load(ctx, clientID); err != nil {
		return nil, err
	}

	switch in.Type {
	case models.InteractionCall, models.InteractionWhatsApp, models.InteractionEmail, models.InteractionNote:
	case "":
		in.Type = models.InteractionNote
	default:
		return nil, httperr.ErrBusiness("invalid_interaction_type")
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, httperr.ErrBusiness("missing_description")
	}

	entry := &models.ClientHistory{
		ClientID:        clientID,
		InteractionType: in.Type,
		Description:     description,
		InteractionDate: uc.now(),
	}
	if by := strings.TrimSpace(in.CreatedBy); by != "" {
		entry.CreatedBy = &by
	}

	if err := uc.repo.AddHistory(ctx, entry); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "client_interaction_added", clientID, realtime.Update, map[string]any{
		"type": in.Type,
	})
	return entry, nil
}
