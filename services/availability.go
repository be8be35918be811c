package services

import (
	"context"
	"errors"

	"coralbay/models"
	"coralbay/store"
)

// AvailabilityManager là nơi duy nhất đổi cờ availability của phòng.
// Room.Availability == false khi và chỉ khi có đúng một booking đang giữ phòng.
type AvailabilityManager struct {
	store *store.Store
	cache *RoomCache
}

func NewAvailabilityManager(s *store.Store, cache *RoomCache) *AvailabilityManager {
	return &AvailabilityManager{store: s, cache: cache}
}

// Reserve chỉ thành công khi phòng đang trống (ErrConflict nếu đã có người giữ).
func (a *AvailabilityManager) Reserve(ctx context.Context, roomID uint) error {
	if err := a.reserve(ctx, a.store, roomID); err != nil {
		return err
	}
	a.cache.Invalidate(ctx)
	return nil
}

func (a *AvailabilityManager) Release(ctx context.Context, roomID uint) error {
	if err := a.release(ctx, a.store, roomID); err != nil {
		return err
	}
	a.cache.Invalidate(ctx)
	return nil
}

// Swap giữ phòng mới trước rồi mới trả phòng cũ; phòng mới không trống thì không có gì thay đổi.
func (a *AvailabilityManager) Swap(ctx context.Context, oldRoomID, newRoomID uint) error {
	err := a.store.Transaction(ctx, func(tx *store.Store) error {
		return a.swap(ctx, tx, oldRoomID, newRoomID)
	})
	if err != nil {
		return err
	}
	a.cache.Invalidate(ctx)
	return nil
}

func (a *AvailabilityManager) reserve(ctx context.Context, s *store.Store, roomID uint) error {
	err := s.ReserveRoom(ctx, roomID)
	if errors.Is(err, models.ErrConflict) {
		reservationConflicts.Inc()
	}
	return err
}

func (a *AvailabilityManager) release(ctx context.Context, s *store.Store, roomID uint) error {
	return s.ReleaseRoom(ctx, roomID)
}

func (a *AvailabilityManager) swap(ctx context.Context, s *store.Store, oldRoomID, newRoomID uint) error {
	if oldRoomID == newRoomID {
		return nil
	}
	if err := a.reserve(ctx, s, newRoomID); err != nil {
		return err
	}
	return a.release(ctx, s, oldRoomID)
}
