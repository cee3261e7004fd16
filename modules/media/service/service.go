package service

import (
	"context"
	"io"

	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/storage"
	"work-exchange-api/modules/media/dto"
)

type MediaServiceInterface interface {
	UploadPhoto(ctx context.Context, actor coreEntity.Actor, file io.Reader, size int64) (*dto.PhotoResponse, *errors.AppError)
}

type MediaService struct {
	store    storage.ObjectStore
	maxBytes int64
}

func NewMediaService(store storage.ObjectStore, maxUploadMB int64) *MediaService {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &MediaService{
		store:    store,
		maxBytes: maxUploadMB << 20,
	}
}
