package store

import (
	"context"
	"errors"
	"fmt"

	"coralbay/models"

	"gorm.io/gorm"
)

func (s *Store) ListRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := s.db.WithContext(ctx).Order("room_number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Store) ListAvailableRooms(ctx context.Context, roomType string) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Where("room_type = ? AND availability = ?", roomType, true).
		Order("room_number").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

// ListRoomsForBooking trả về phòng trống cùng phòng đang gắn với booking (trang sửa booking).
func (s *Store) ListRoomsForBooking(ctx context.Context, currentRoomID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := s.db.WithContext(ctx).
		Where("availability = ? OR id = ?", true, currentRoomID).
		Order("room_number").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *Store) RoomTypes(ctx context.Context) ([]string, error) {
	var types []string
	err := s.db.WithContext(ctx).Model(&models.Room{}).
		Distinct("room_type").
		Order("room_type").
		Pluck("room_type", &types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (s *Store) CountRooms(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Room{}).Count(&n).Error
	return n, err
}

func (s *Store) GetRoom(ctx context.Context, id uint) (models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, notFound("room", id)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (s *Store) roomNumberTaken(ctx context.Context, number string, excludeID uint) (bool, error) {
	var n int64
	tx := s.db.WithContext(ctx).Model(&models.Room{}).Where("room_number = ?", number)
	if excludeID != 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) CreateRoom(ctx context.Context, room *models.Room) error {
	taken, err := s.roomNumberTaken(ctx, room.RoomNumber, 0)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("room number %s already exists: %w", room.RoomNumber, models.ErrConflict)
	}
	room.Availability = true
	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("room number %s already exists: %w", room.RoomNumber, models.ErrConflict)
		}
		return err
	}
	return nil
}

func (s *Store) CreateRooms(ctx context.Context, rooms []models.Room) error {
	return s.db.WithContext(ctx).Create(&rooms).Error
}

// UpdateRoom chỉ đổi loại phòng và số phòng; trạng thái trống do AvailabilityManager quản lý.
func (s *Store) UpdateRoom(ctx context.Context, id uint, in models.RoomInput) (models.Room, error) {
	room, err := s.GetRoom(ctx, id)
	if err != nil {
		return models.Room{}, err
	}
	taken, err := s.roomNumberTaken(ctx, in.RoomNumber, id)
	if err != nil {
		return models.Room{}, err
	}
	if taken {
		return models.Room{}, fmt.Errorf("room number %s already exists: %w", in.RoomNumber, models.ErrConflict)
	}
	err = s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).
		Updates(map[string]any{"room_type": in.RoomType, "room_number": in.RoomNumber}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.Room{}, fmt.Errorf("room number %s already exists: %w", in.RoomNumber, models.ErrConflict)
		}
		return models.Room{}, err
	}
	room.RoomType = in.RoomType
	room.RoomNumber = in.RoomNumber
	return room, nil
}

func (s *Store) SetRoomImage(ctx context.Context, id uint, url string) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("image_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("room", id)
	}
	return nil
}

// DeleteRoom chỉ xóa phòng đang trống, trong một câu lệnh có điều kiện.
func (s *Store) DeleteRoom(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ? AND availability = ?", id, true).Delete(&models.Room{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("cannot delete room %d with active bookings: %w", id, models.ErrConflict)
}

// ReserveRoom là compare-and-swap trên cờ availability: chỉ thành công khi phòng đang trống.
func (s *Store) ReserveRoom(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).
		Where("id = ? AND availability = ?", id, true).
		Update("availability", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}
	if _, err := s.GetRoom(ctx, id); err != nil {
		return err
	}
	return fmt.Errorf("room %d is no longer available: %w", id, models.ErrConflict)
}

func (s *Store) ReleaseRoom(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&models.Room{}).Where("id = ?", id).Update("availability", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("room", id)
	}
	return nil
}
