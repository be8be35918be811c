package services

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"coralbay/models"
	"coralbay/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

type recorder struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recorder) Enqueue(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recorder) Send(_ context.Context, n Notification) error {
	r.Enqueue(n)
	return nil
}

func (r *recorder) to(addr string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Notification
	for _, n := range r.sent {
		if n.To == addr {
			out = append(out, n)
		}
	}
	return out
}

const operatorEmail = "ops@coralbay.test"

type testEnv struct {
	store    *store.Store
	redis    *redis.Client
	mr       *miniredis.Miniredis
	cache    *RoomCache
	avail    *AvailabilityManager
	bookings *BookingService
	notes    *recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "test.db"), nil)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	st := store.New(db)
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	log := quietLogger()
	cache := NewRoomCache(rdb, time.Minute, log)
	avail := NewAvailabilityManager(st, cache)
	notes := &recorder{}
	return &testEnv{
		store:    st,
		redis:    rdb,
		mr:       mr,
		cache:    cache,
		avail:    avail,
		bookings: NewBookingService(st, avail, cache, notes, operatorEmail, log),
		notes:    notes,
	}
}

func (e *testEnv) room(t *testing.T, roomType, number string) models.Room {
	t.Helper()
	r := models.Room{RoomType: roomType, RoomNumber: number}
	if err := e.store.CreateRoom(context.Background(), &r); err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return r
}

func (e *testEnv) reload(t *testing.T, id uint) models.Room {
	t.Helper()
	r, err := e.store.GetRoom(context.Background(), id)
	if err != nil {
		t.Fatalf("get room %d: %v", id, err)
	}
	return r
}

// assertInvariant: phòng không trống khi và chỉ khi có đúng một booking giữ phòng.
func (e *testEnv) assertInvariant(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	rooms, err := e.store.ListRooms(ctx)
	if err != nil {
		t.Fatalf("list rooms: %v", err)
	}
	for _, r := range rooms {
		n, err := e.store.CountBookingsForRoom(ctx, r.ID)
		if err != nil {
			t.Fatalf("count bookings: %v", err)
		}
		if !r.Availability && n != 1 {
			t.Fatalf("room %s reserved with %d bookings", r.RoomNumber, n)
		}
		if r.Availability && n != 0 {
			t.Fatalf("room %s available with %d bookings", r.RoomNumber, n)
		}
	}
}

func bookingFor(roomID uint) models.BookingInput {
	return models.BookingInput{
		GuestName:    "Nimal Perera",
		GuestEmail:   "nimal@example.com",
		RoomID:       roomID,
		CheckInDate:  "2025-03-08",
		CheckOutDate: "2025-03-10",
	}
}
