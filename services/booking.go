package services

import (
	"context"
	"fmt"

	"coralbay/models"
	"coralbay/store"

	"github.com/sirupsen/logrus"
)

type BookingService struct {
	store    *store.Store
	avail    *AvailabilityManager
	cache    *RoomCache
	notify   Dispatcher
	operator string
	log      logrus.FieldLogger
}

func NewBookingService(s *store.Store, avail *AvailabilityManager, cache *RoomCache, notify Dispatcher, operatorEmail string, log logrus.FieldLogger) *BookingService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &BookingService{
		store:    s,
		avail:    avail,
		cache:    cache,
		notify:   notify,
		operator: operatorEmail,
		log:      log,
	}
}

// EditOptions là dữ liệu cho màn hình sửa booking.
type EditOptions struct {
	Booking models.Booking `json:"booking"`
	Rooms   []models.Room  `json:"rooms"`
}

// Create giữ phòng và lưu booking trong cùng một transaction.
func (s *BookingService) Create(ctx context.Context, in models.BookingInput) (models.Booking, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return models.Booking{}, err
	}

	booking := in.Booking()
	var room models.Room
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		if err := s.avail.reserve(ctx, tx, booking.RoomID); err != nil {
			return err
		}
		r, err := tx.GetRoom(ctx, booking.RoomID)
		if err != nil {
			return err
		}
		room = r
		return tx.CreateBooking(ctx, &booking)
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	s.cache.Invalidate(ctx)
	bookingEvents.WithLabelValues("created").Inc()

	s.log.WithFields(logrus.Fields{"booking_id": booking.ID, "room_id": booking.RoomID}).Info("booking created")
	s.notify.Enqueue(BookingConfirmedMessage(booking, room))
	s.notify.Enqueue(NewBookingAlertMessage(s.operator, booking, room))

	booking.Room = &room
	return booking, nil
}

// Edit đổi phòng bằng swap trong transaction; lỗi thì booking và cả hai phòng giữ nguyên.
func (s *BookingService) Edit(ctx context.Context, id uint, u models.BookingUpdate) (models.Booking, error) {
	var (
		updated models.Booking
		room    models.Room
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		current, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		updated = u.Apply(current)
		if err := updated.Validate(); err != nil {
			return err
		}
		if updated.RoomID != current.RoomID {
			if err := s.avail.swap(ctx, tx, current.RoomID, updated.RoomID); err != nil {
				return err
			}
		}
		if err := tx.SaveBooking(ctx, &updated); err != nil {
			return err
		}
		room, err = tx.GetRoom(ctx, updated.RoomID)
		return err
	})
	if err != nil {
		return models.Booking{}, fmt.Errorf("edit booking %d: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	bookingEvents.WithLabelValues("updated").Inc()

	s.log.WithFields(logrus.Fields{"booking_id": id, "room_id": updated.RoomID}).Info("booking updated")
	s.notify.Enqueue(BookingStatusMessage(NotifyUpdated, updated, room))

	updated.Room = &room
	return updated, nil
}

// Cancel xóa booking có điều kiện rồi trả phòng; booking đã bị job hết hạn xóa thì trả ErrNotFound.
func (s *BookingService) Cancel(ctx context.Context, id uint) error {
	var (
		booking models.Booking
		room    models.Room
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		b, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		booking = b
		if err := tx.DeleteBooking(ctx, id); err != nil {
			return err
		}
		if err := s.avail.release(ctx, tx, b.RoomID); err != nil {
			return err
		}
		room, err = tx.GetRoom(ctx, b.RoomID)
		return err
	})
	if err != nil {
		return fmt.Errorf("cancel booking %d: %w", id, err)
	}
	s.cache.Invalidate(ctx)
	bookingEvents.WithLabelValues("cancelled").Inc()

	s.log.WithFields(logrus.Fields{"booking_id": id, "room_id": booking.RoomID}).Info("booking cancelled")
	s.notify.Enqueue(BookingStatusMessage(NotifyCancelled, booking, room))
	return nil
}

func (s *BookingService) Get(ctx context.Context, id uint) (models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.store.ListBookings(ctx)
}

// ListAvailable trả phòng trống theo loại, sắp theo số phòng.
func (s *BookingService) ListAvailable(ctx context.Context, roomType string) ([]models.Room, error) {
	rooms, ok := s.cache.Available(ctx, roomType)
	if !ok {
		gen := s.cache.Generation(ctx)
		var err error
		rooms, err = s.store.ListAvailableRooms(ctx, roomType)
		if err != nil {
			return nil, err
		}
		s.cache.SetAvailable(ctx, gen, roomType, rooms)
	}
	rooms = onlyAvailable(rooms)
	if len(rooms) == 0 {
		return nil, ErrNoRoomsOfType
	}
	return rooms, nil
}

func (s *BookingService) RoomTypes(ctx context.Context) ([]string, error) {
	if types, ok := s.cache.RoomTypes(ctx); ok {
		return types, nil
	}
	gen := s.cache.Generation(ctx)
	types, err := s.store.RoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetRoomTypes(ctx, gen, types)
	return types, nil
}

// EditOptions gồm booking và các phòng có thể chọn: phòng trống hoặc phòng booking đang giữ.
func (s *BookingService) EditOptions(ctx context.Context, id uint) (EditOptions, error) {
	booking, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return EditOptions{}, err
	}
	rooms, err := s.store.ListRoomsForBooking(ctx, booking.RoomID)
	if err != nil {
		return EditOptions{}, err
	}
	return EditOptions{Booking: booking, Rooms: rooms}, nil
}

func onlyAvailable(rooms []models.Room) []models.Room {
	out := rooms[:0:0]
	for _, r := range rooms {
		if r.Availability {
			out = append(out, r)
		}
	}
	return out
}
