package store

import (
	"context"
	"errors"

	"coralbay/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Preload("Room").Order("id").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *Store) GetBooking(ctx context.Context, id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, notFound("booking", id)
		}
		return models.Booking{}, err
	}
	return booking, nil
}

func (s *Store) CountBookingsForRoom(ctx context.Context, roomID uint) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Booking{}).Where("room_id = ?", roomID).Count(&n).Error
	return n, err
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(booking).Error
}

func (s *Store) SaveBooking(ctx context.Context, booking *models.Booking) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Save(booking).Error
}

// DeleteBooking xóa có điều kiện; không có dòng nào bị xóa nghĩa là booking đã bị hủy/hết hạn ở nơi khác.
func (s *Store) DeleteBooking(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Booking{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("booking", id)
	}
	return nil
}

// BookingsCheckingOut trả về các booking có ngày trả phòng đúng bằng date (YYYY-MM-DD).
func (s *Store) BookingsCheckingOut(ctx context.Context, date string) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.WithContext(ctx).Where("check_out_date = ?", date).Order("id").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}
