package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"coralbay/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s := New(db)
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return s
}

func mustCreateRoom(t *testing.T, s *Store, roomType, number string) models.Room {
	t.Helper()
	room := models.Room{RoomType: roomType, RoomNumber: number}
	if err := s.CreateRoom(context.Background(), &room); err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return room
}

func TestReserveRoomIsConditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Single", "101")

	if err := s.ReserveRoom(ctx, room.ID); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if err := s.ReserveRoom(ctx, room.ID); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict on second reserve, got %v", err)
	}
	if err := s.ReserveRoom(ctx, 999); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown room, got %v", err)
	}

	got, err := s.GetRoom(ctx, room.ID)
	if err != nil {
		t.Fatalf("get room: %v", err)
	}
	if got.Availability {
		t.Fatalf("expected room to stay reserved")
	}
}

func TestReserveRoomConcurrentOnlyOneWins(t *testing.T) {
	s := newTestStore(t)
	room := mustCreateRoom(t, s, "Double", "301")

	const workers = 8
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- s.ReserveRoom(context.Background(), room.ID)
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, models.ErrConflict):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("expected exactly one successful reserve, got %d", wins)
	}
}

func TestReleaseRoomIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Family", "201")

	for i := 0; i < 2; i++ {
		if err := s.ReleaseRoom(ctx, room.ID); err != nil {
			t.Fatalf("release %d: %v", i, err)
		}
	}
	if err := s.ReleaseRoom(ctx, 42); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateRoomRejectsDuplicateNumber(t *testing.T) {
	s := newTestStore(t)
	mustCreateRoom(t, s, "Single", "101")

	dup := models.Room{RoomType: "Double", RoomNumber: "101"}
	if err := s.CreateRoom(context.Background(), &dup); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateRoomRejectsNumberOfAnotherRoom(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateRoom(t, s, "Single", "101")
	other := mustCreateRoom(t, s, "Single", "102")

	if _, err := s.UpdateRoom(ctx, other.ID, models.RoomInput{RoomType: "Single", RoomNumber: "101"}); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	got, err := s.UpdateRoom(ctx, other.ID, models.RoomInput{RoomType: "Deluxe", RoomNumber: "102"})
	if err != nil {
		t.Fatalf("update keeping own number: %v", err)
	}
	if got.RoomType != "Deluxe" {
		t.Fatalf("expected type Deluxe, got %s", got.RoomType)
	}
}

func TestDeleteRoomOnlyWhenAvailable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Single", "101")

	if err := s.ReserveRoom(ctx, room.ID); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := s.DeleteRoom(ctx, room.ID); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("expected ErrConflict for reserved room, got %v", err)
	}
	if err := s.ReleaseRoom(ctx, room.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := s.DeleteRoom(ctx, room.ID); err != nil {
		t.Fatalf("delete available room: %v", err)
	}
	if err := s.DeleteRoom(ctx, room.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListAvailableRoomsFiltersByTypeAndFlag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustCreateRoom(t, s, "Double", "302")
	taken := mustCreateRoom(t, s, "Double", "301")
	mustCreateRoom(t, s, "Single", "101")
	if err := s.ReserveRoom(ctx, taken.ID); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	rooms, err := s.ListAvailableRooms(ctx, "Double")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rooms) != 1 || rooms[0].RoomNumber != "302" {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}

	types, err := s.RoomTypes(ctx)
	if err != nil {
		t.Fatalf("room types: %v", err)
	}
	if len(types) != 2 || types[0] != "Double" || types[1] != "Single" {
		t.Fatalf("unexpected types: %v", types)
	}
}

func TestDeleteBookingIsConditional(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Single", "101")
	booking := models.Booking{GuestName: "A", GuestEmail: "a@example.com", RoomID: room.ID, CheckInDate: "2026-10-01", CheckOutDate: "2026-10-03"}
	if err := s.CreateBooking(ctx, &booking); err != nil {
		t.Fatalf("create booking: %v", err)
	}

	if err := s.DeleteBooking(ctx, booking.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteBooking(ctx, booking.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestBookingsCheckingOutMatchesExactDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Single", "101")
	for _, out := range []string{"2026-10-14", "2026-10-15", "2026-10-14"} {
		b := models.Booking{GuestName: "G", GuestEmail: "g@example.com", RoomID: room.ID, CheckInDate: "2026-10-10", CheckOutDate: out}
		if err := s.CreateBooking(ctx, &b); err != nil {
			t.Fatalf("create booking: %v", err)
		}
	}

	got, err := s.BookingsCheckingOut(ctx, "2026-10-14")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(got))
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	room := mustCreateRoom(t, s, "Single", "101")

	boom := errors.New("boom")
	err := s.Transaction(ctx, func(tx *Store) error {
		if err := tx.ReserveRoom(ctx, room.ID); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := s.GetRoom(ctx, room.ID)
	if !got.Availability {
		t.Fatalf("expected reserve to be rolled back")
	}
}
