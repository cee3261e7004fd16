package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"sync"
	"testing"

	coreEntity "work-exchange-api/core/entity"
	appErrors "work-exchange-api/core/errors"
	"work-exchange-api/modules/media/service"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (s *fakeStore) Put(_ context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if int64(len(data)) != size || contentType == "" {
		return "", errors.New("bad put")
	}
	s.keys = append(s.keys, key)
	return "https://cdn.example.test/" + key, nil
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadPhoto(t *testing.T) {
	store := &fakeStore{}
	svc := service.NewMediaService(store, 1)
	actor := coreEntity.Actor{ID: uuid.New(), Role: coreEntity.RoleUser}
	data := pngBytes(t, 32, 24)

	photo, err := svc.UploadPhoto(context.Background(), actor, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if photo.Width != 32 || photo.Height != 24 {
		t.Errorf("dimensions = %dx%d, want 32x24", photo.Width, photo.Height)
	}
	if photo.Format != "png" || photo.Type != "image" {
		t.Errorf("format/type = %s/%s", photo.Format, photo.Type)
	}
	if len(store.keys) != 1 || !strings.HasPrefix(store.keys[0], "photos/"+actor.ID.String()+"/") || !strings.HasSuffix(store.keys[0], ".png") {
		t.Fatalf("keys = %v", store.keys)
	}
	if photo.URL != "https://cdn.example.test/"+store.keys[0] {
		t.Errorf("url = %s", photo.URL)
	}
}

func TestUploadPhotoRejects(t *testing.T) {
	actor := coreEntity.Actor{ID: uuid.New(), Role: coreEntity.RoleUser}
	oversized := bytes.Repeat([]byte{0}, (1<<20)+1)

	tests := []struct {
		name string
		body []byte
		size int64
		want appErrors.ErrorCode
	}{
		{"declared size over limit", []byte("x"), 2 << 20, appErrors.ErrValidation},
		{"body over limit", oversized, 10, appErrors.ErrValidation},
		{"not an image", []byte("plain text"), 10, appErrors.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			svc := service.NewMediaService(store, 1)
			_, err := svc.UploadPhoto(context.Background(), actor, bytes.NewReader(tt.body), tt.size)
			if err == nil || err.Code != tt.want {
				t.Fatalf("err = %v, want %s", err, tt.want)
			}
			if err.Field != "file" {
				t.Errorf("field = %q, want file", err.Field)
			}
			if len(store.keys) != 0 {
				t.Errorf("store written: %v", store.keys)
			}
		})
	}
}

func TestUploadPhotoStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("s3 down")}
	svc := service.NewMediaService(store, 1)
	data := pngBytes(t, 4, 4)

	_, err := svc.UploadPhoto(context.Background(), coreEntity.Actor{ID: uuid.New()}, bytes.NewReader(data), int64(len(data)))
	if err == nil || err.Code != appErrors.ErrUploadFailed {
		t.Fatalf("err = %v, want %s", err, appErrors.ErrUploadFailed)
	}
}
