package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"coralbay/models"
	"coralbay/store"

	"github.com/jasonlvhit/gocron"
	"github.com/sirupsen/logrus"
)

type ExpiryReport struct {
	Date    string `json:"date"`
	Expired int    `json:"expired"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// ExpiryJob xóa các booking trả phòng hôm nay và trả phòng, không gửi thông báo.
type ExpiryJob struct {
	store *store.Store
	avail *AvailabilityManager
	cache *RoomCache
	now   func() time.Time
	log   logrus.FieldLogger
}

func NewExpiryJob(s *store.Store, avail *AvailabilityManager, cache *RoomCache, now func() time.Time, log logrus.FieldLogger) *ExpiryJob {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &ExpiryJob{store: s, avail: avail, cache: cache, now: now, log: log}
}

// RunOnce chạy lại trong cùng ngày là no-op.
func (j *ExpiryJob) RunOnce(ctx context.Context) (ExpiryReport, error) {
	started := time.Now()
	defer func() { expiryRuns.Observe(time.Since(started).Seconds()) }()

	report := ExpiryReport{Date: j.now().Local().Format(models.DateLayout)}
	bookings, err := j.store.BookingsCheckingOut(ctx, report.Date)
	if err != nil {
		return report, fmt.Errorf("expiry run %s: %w", report.Date, err)
	}
	if err := j.expireAll(ctx, bookings, &report); err != nil {
		return report, fmt.Errorf("expiry run %s: %w", report.Date, err)
	}

	expiredBookings.WithLabelValues("expired").Add(float64(report.Expired))
	expiredBookings.WithLabelValues("skipped").Add(float64(report.Skipped))
	expiredBookings.WithLabelValues("failed").Add(float64(report.Failed))
	if report.Expired > 0 {
		j.cache.Invalidate(ctx)
	}
	j.log.WithFields(logrus.Fields{
		"date":    report.Date,
		"expired": report.Expired,
		"skipped": report.Skipped,
		"failed":  report.Failed,
	}).Info("expiry run finished")
	return report, nil
}

// expireAll xử lý danh sách đã chọn trong một transaction, mỗi booking một savepoint.
// Booking bị hủy sau lúc chọn thì DeleteBooking trả ErrNotFound và được đếm là Skipped.
func (j *ExpiryJob) expireAll(ctx context.Context, bookings []models.Booking, report *ExpiryReport) error {
	if len(bookings) == 0 {
		return nil
	}
	return j.store.Transaction(ctx, func(tx *store.Store) error {
		for _, b := range bookings {
			sp := fmt.Sprintf("expire_%d", b.ID)
			if err := tx.SavePoint(sp); err != nil {
				return err
			}
			err := j.expire(ctx, tx, b)
			if err == nil {
				report.Expired++
				continue
			}
			if rbErr := tx.RollbackTo(sp); rbErr != nil {
				return fmt.Errorf("rollback to %s: %w", sp, rbErr)
			}
			entry := j.log.WithFields(logrus.Fields{"booking_id": b.ID, "room_id": b.RoomID})
			if errors.Is(err, models.ErrNotFound) {
				report.Skipped++
				entry.Debug("booking already removed, skipping")
				continue
			}
			report.Failed++
			entry.WithError(err).Error("expire booking")
		}
		return nil
	})
}

func (j *ExpiryJob) expire(ctx context.Context, tx *store.Store, b models.Booking) error {
	if err := tx.DeleteBooking(ctx, b.ID); err != nil {
		return err
	}
	if err := j.avail.release(ctx, tx, b.RoomID); err != nil {
		return err
	}
	bookingEvents.WithLabelValues("expired").Inc()
	return nil
}

// Scheduler cho phép test thay lịch chạy thật bằng lời gọi RunOnce trực tiếp.
type Scheduler interface {
	Every(interval time.Duration, fn func()) error
	Start()
	Stop()
}

type GocronScheduler struct {
	s    *gocron.Scheduler
	stop chan bool
}

func NewGocronScheduler() *GocronScheduler {
	return &GocronScheduler{s: gocron.NewScheduler()}
}

// Every làm tròn xuống theo giờ, tối thiểu 1 giờ.
func (g *GocronScheduler) Every(interval time.Duration, fn func()) error {
	hours := uint64(interval / time.Hour)
	if hours == 0 {
		hours = 1
	}
	return g.s.Every(hours).Hours().Do(fn)
}

func (g *GocronScheduler) Start() {
	g.stop = g.s.Start()
}

func (g *GocronScheduler) Stop() {
	if g.stop != nil {
		g.stop <- true
		g.stop = nil
	}
	g.s.Clear()
}

// ScheduleExpiry đăng ký job hết hạn với scheduler.
func ScheduleExpiry(ctx context.Context, sched Scheduler, job *ExpiryJob, interval time.Duration) error {
	return sched.Every(interval, func() {
		if _, err := job.RunOnce(ctx); err != nil {
			job.log.WithError(err).Error("scheduled expiry run")
		}
	})
}
