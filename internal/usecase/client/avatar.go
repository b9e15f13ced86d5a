package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/crm-manager/internal/audit"
	domain "github.com/BruksfildServices01/crm-manager/internal/domain/client"
	"github.com/BruksfildServices01/crm-manager/internal/httperr"
	"github.com/BruksfildServices01/crm-manager/internal/media"
	"github.com/BruksfildServices01/crm-manager/internal/realtime"
	"github.com/BruksfildServices01/crm-manager/internal/storage"
)

// UploadAvatar converts a picture to webp, stores it and points the client
// at it.
type UploadAvatar struct {
	deps
	processor *media.AvatarProcessor
	store     storage.Store
}

func NewUploadAvatar(
	repo domain.Repository,
	processor *media.AvatarProcessor,
	store storage.Store,
	audit *audit.Dispatcher,
	feed realtime.Publisher,
) *UploadAvatar {
	return &UploadAvatar{
		deps:      newDeps(repo, audit, feed),
		processor: processor,
		store:     store,
	}
}

func (uc *UploadAvatar) Execute(
	ctx context.Context,
	actor uuid.UUID,
	clientID uuid.UUID,
	upload io.Reader,
) (string, error) {

	if _, err := uc.load(ctx, clientID); err != nil {
		return "", err
	}

	data, err := uc.processor.Process(upload)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		return "", httperr.ErrBusiness("image_too_large")
	case errors.Is(err, media.ErrUnsupported):
		return "", httperr.ErrBusiness("invalid_image")
	case err != nil:
		return "", err
	}

	key := fmt.Sprintf("avatars/%s/%d.webp", clientID, uc.now().Unix())
	url, err := uc.store.Put(ctx, key, media.ContentTypeWebP, data)
	if err != nil {
		return "", err
	}

	if err := uc.repo.SetAvatar(ctx, clientID, url); err != nil {
		return "", err
	}

	uc.changed(ctx, actor, "client_avatar_updated", clientID, realtime.Update, map[string]any{
		"key": key,
	})
	return url, nil
}
