package services

import (
	"context"
	"fmt"
	"io"

	"coralbay/models"
	"coralbay/store"

	"github.com/sirupsen/logrus"
)

type RoomService struct {
	store    *store.Store
	cache    *RoomCache
	uploader ImageUploader
	log      logrus.FieldLogger
}

func NewRoomService(s *store.Store, cache *RoomCache, up ImageUploader, log logrus.FieldLogger) *RoomService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &RoomService{store: s, cache: cache, uploader: up, log: log}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	return s.store.ListRooms(ctx)
}

// Create: phòng mới luôn trống.
func (s *RoomService) Create(ctx context.Context, in models.RoomInput) (models.Room, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Room{}, err
	}
	room := models.Room{RoomType: in.RoomType, RoomNumber: in.RoomNumber}
	if err := s.store.CreateRoom(ctx, &room); err != nil {
		return models.Room{}, fmt.Errorf("create room %s: %w", in.RoomNumber, err)
	}
	s.cache.Invalidate(ctx)
	s.log.WithFields(logrus.Fields{"room_id": room.ID, "room_number": room.RoomNumber}).Info("room created")
	return room, nil
}

// Update không đụng tới availability.
func (s *RoomService) Update(ctx context.Context, id uint, in models.RoomInput) (models.Room, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Room{}, err
	}
	room, err := s.store.UpdateRoom(ctx, id, in)
	if err != nil {
		return models.Room{}, fmt.Errorf("update room %d: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	return room, nil
}

// Delete chỉ xóa phòng đang trống, ngược lại ErrConflict.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if err := s.store.DeleteRoom(ctx, id); err != nil {
		return fmt.Errorf("delete room %d: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	s.log.WithField("room_id", id).Info("room deleted")
	return nil
}

func (s *RoomService) UploadImage(ctx context.Context, id uint, file io.Reader) (models.Room, error) {
	if _, err := s.store.GetRoom(ctx, id); err != nil {
		return models.Room{}, err
	}
	url, err := s.uploader.Upload(ctx, file, "rooms")
	if err != nil {
		return models.Room{}, fmt.Errorf("upload image for room %d: %w", id, err)
	}
	if err := s.store.SetRoomImage(ctx, id, url); err != nil {
		return models.Room{}, err
	}
	s.cache.Invalidate(ctx)
	return s.store.GetRoom(ctx, id)
}
