package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"time"

	"work-exchange-api/core/constants"
	coreEntity "work-exchange-api/core/entity"
	"work-exchange-api/core/errors"
	"work-exchange-api/core/logger"
	"work-exchange-api/core/utils"
	"work-exchange-api/modules/media/dto"
)

const photoType = "image"

// UploadPhoto stores an image and describes it in the canonical photo
// shape. Only formats the image package can decode are accepted.
func (s *MediaService) UploadPhoto(ctx context.Context, actor coreEntity.Actor, file io.Reader, size int64) (*dto.PhotoResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	if size > s.maxBytes {
		return nil, errors.NewFieldError(errors.ErrValidation, "file", fmt.Sprintf("file is larger than %d MB", s.maxBytes>>20))
	}
	body, err := io.ReadAll(io.LimitReader(file, s.maxBytes+1))
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "read upload failed", err)
	}
	if int64(len(body)) > s.maxBytes {
		return nil, errors.NewFieldError(errors.ErrValidation, "file", fmt.Sprintf("file is larger than %d MB", s.maxBytes>>20))
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewFieldError(errors.ErrValidation, "file", "file is not a supported image")
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}

	key := fmt.Sprintf("photos/%s/%s/%s.%s", actor.ID, time.Now().UTC().Format("2006/01"), utils.GenerateRandomString(16), ext)
	url, err := s.store.Put(ctx, key, bytes.NewReader(body), int64(len(body)), "image/"+format)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrUploadFailed, "upload photo failed", err)
	}

	logger.Info("MediaService:UploadPhoto:Done", "key", key, "owner_id", actor.ID, "bytes", len(body))
	return &dto.PhotoResponse{
		URL:    url,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: ext,
		Type:   photoType,
	}, nil
}
