package services

import (
	"context"
	"fmt"
	"sync"

	"coralbay/models"

	"github.com/sirupsen/logrus"
)

// Sender gửi một thông báo. Lỗi từ Sender không bao giờ quay về luồng đặt phòng.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Dispatcher là phía đặt phòng nhìn thấy: chỉ đưa vào hàng đợi, không chờ gửi.
type Dispatcher interface {
	Enqueue(n Notification)
}

// Notifier drains a bounded queue on one worker goroutine.
type Notifier struct {
	sender Sender
	queue  chan Notification
	log    logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewNotifier(sender Sender, size int, log logrus.FieldLogger) *Notifier {
	if size <= 0 {
		size = 100
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Notifier{
		sender: sender,
		queue:  make(chan Notification, size),
		log:    log,
		done:   make(chan struct{}),
	}
}

func (n *Notifier) Start() {
	go n.run()
}

func (n *Notifier) run() {
	defer close(n.done)
	for msg := range n.queue {
		n.deliver(msg)
	}
}

func (n *Notifier) deliver(msg Notification) {
	entry := n.log.WithFields(logrus.Fields{
		"kind":       msg.Kind,
		"booking_id": msg.BookingID,
		"to":         msg.To,
	})
	defer func() {
		if r := recover(); r != nil {
			notificationResults.WithLabelValues("failed").Inc()
			entry.Errorf("notification sender panicked: %v", r)
		}
	}()
	if err := n.sender.Send(context.Background(), msg); err != nil {
		notificationResults.WithLabelValues("failed").Inc()
		entry.WithError(fmt.Errorf("%w: %v", models.ErrNotification, err)).Error("send notification")
		return
	}
	notificationResults.WithLabelValues("sent").Inc()
	entry.Info("notification sent")
}

// Enqueue không chặn: hàng đợi đầy hoặc đã đóng thì bỏ thông báo và ghi log.
func (n *Notifier) Enqueue(msg Notification) {
	if msg.To == "" {
		return
	}
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		notificationResults.WithLabelValues("dropped").Inc()
		n.log.WithField("kind", msg.Kind).Warn("notifier closed, dropping notification")
		return
	}
	select {
	case n.queue <- msg:
	default:
		notificationResults.WithLabelValues("dropped").Inc()
		n.log.WithFields(logrus.Fields{"kind": msg.Kind, "booking_id": msg.BookingID}).Warn("notification queue full, dropping")
	}
}

// Close stops accepting work and waits for queued notifications until ctx is done.
func (n *Notifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
