package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"coralbay/models"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 9, 30, 0, 0, time.Local) }
}

func TestExpiryReleasesTodaysCheckouts(t *testing.T) {
	env := newTestEnv(t)
	leaving := env.room(t, "Single", "101")
	staying := env.room(t, "Single", "102")
	ctx := context.Background()

	gone, err := env.bookings.Create(ctx, bookingFor(leaving.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	longer := bookingFor(staying.ID)
	longer.GuestEmail = "longer@example.com"
	longer.CheckOutDate = "2025-03-11"
	kept, err := env.bookings.Create(ctx, longer)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sentBefore := len(env.notes.sent)

	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 10), quietLogger())
	report, err := job.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Date != "2025-03-10" || report.Expired != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if _, err := env.store.GetBooking(ctx, gone.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expired booking still present: %v", err)
	}
	if _, err := env.store.GetBooking(ctx, kept.ID); err != nil {
		t.Fatalf("future checkout removed: %v", err)
	}
	if !env.reload(t, leaving.ID).Availability || env.reload(t, staying.ID).Availability {
		t.Fatalf("wrong availability after expiry")
	}
	if len(env.notes.sent) != sentBefore {
		t.Fatalf("expiry must not notify")
	}
	env.assertInvariant(t)
}

func TestExpiryIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, "Single", "101")
	ctx := context.Background()
	if _, err := env.bookings.Create(ctx, bookingFor(room.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 10), quietLogger())
	if _, err := job.RunOnce(ctx); err != nil {
		t.Fatalf("first run: %v", err)
	}
	report, err := job.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if report.Expired != 0 || report.Skipped != 0 || report.Failed != 0 {
		t.Fatalf("second run should be a no-op, got %+v", report)
	}
	env.assertInvariant(t)
}

func TestExpiryIgnoresOtherDates(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, "Single", "101")
	ctx := context.Background()
	if _, err := env.bookings.Create(ctx, bookingFor(room.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 9), quietLogger())
	report, err := job.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Expired != 0 {
		t.Fatalf("expired %d bookings a day early", report.Expired)
	}
	if env.reload(t, room.ID).Availability {
		t.Fatalf("room released early")
	}
}

type manualScheduler struct {
	interval time.Duration
	jobs     []func()
	started  bool
}

func (m *manualScheduler) Every(interval time.Duration, fn func()) error {
	m.interval = interval
	m.jobs = append(m.jobs, fn)
	return nil
}

func (m *manualScheduler) Start() { m.started = true }
func (m *manualScheduler) Stop()  { m.started = false }

func (m *manualScheduler) tick() {
	for _, fn := range m.jobs {
		fn()
	}
}

func TestScheduleExpiryRunsJobOnTick(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, "Single", "101")
	ctx := context.Background()
	if _, err := env.bookings.Create(ctx, bookingFor(room.ID)); err != nil {
		t.Fatalf("create: %v", err)
	}

	sched := &manualScheduler{}
	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 10), quietLogger())
	if err := ScheduleExpiry(ctx, sched, job, 24*time.Hour); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if sched.interval != 24*time.Hour || len(sched.jobs) != 1 {
		t.Fatalf("unexpected registration %+v", sched)
	}
	sched.tick()
	if !env.reload(t, room.ID).Availability {
		t.Fatalf("tick did not expire booking")
	}
}

func TestGocronSchedulerRegistersJob(t *testing.T) {
	sched := NewGocronScheduler()
	if err := sched.Every(30*time.Minute, func() {}); err != nil {
		t.Fatalf("every: %v", err)
	}
	sched.Start()
	sched.Stop()
}

func TestExpirySkipsBookingCancelledAfterSelection(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, "Single", "101")
	ctx := context.Background()
	b, err := env.bookings.Create(ctx, bookingFor(room.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 10), quietLogger())
	selected, err := env.store.BookingsCheckingOut(ctx, "2025-03-10")
	if err != nil || len(selected) != 1 {
		t.Fatalf("checking out = %v, %v", selected, err)
	}
	// khách hủy sau khi job đã chọn booking nhưng trước khi xóa
	if err := env.bookings.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	report := ExpiryReport{Date: "2025-03-10"}
	if err := job.expireAll(ctx, selected, &report); err != nil {
		t.Fatalf("expire: %v", err)
	}
	if report.Skipped != 1 || report.Expired != 0 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if !env.reload(t, room.ID).Availability {
		t.Fatalf("room should stay available")
	}
	var cancelled int
	for _, n := range env.notes.to("nimal@example.com") {
		if n.Kind == NotifyCancelled {
			cancelled++
		}
	}
	if cancelled != 1 {
		t.Fatalf("cancelled notifications = %d, want 1", cancelled)
	}
	env.assertInvariant(t)
}

func TestExpiryAfterCancelIsNoop(t *testing.T) {
	env := newTestEnv(t)
	room := env.room(t, "Single", "101")
	ctx := context.Background()
	b, err := env.bookings.Create(ctx, bookingFor(room.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := env.bookings.Cancel(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	job := NewExpiryJob(env.store, env.avail, env.cache, fixedClock(2025, time.March, 10), quietLogger())
	report, err := job.RunOnce(ctx)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if report.Expired != 0 || report.Skipped != 0 || report.Failed != 0 {
		t.Fatalf("report = %+v", report)
	}
	if !env.reload(t, room.ID).Availability {
		t.Fatalf("room should stay available")
	}
	env.assertInvariant(t)
}
