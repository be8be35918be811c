package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coralbay_booking_events_total",
		Help: "Booking lifecycle transitions by event",
	}, []string{"event"})

	reservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "coralbay_reservation_conflicts_total",
		Help: "Reservations rejected because the room was already taken",
	})

	notificationResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coralbay_notifications_total",
		Help: "Notifications by outcome (sent, failed, dropped)",
	}, []string{"outcome"})

	chatQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coralbay_chat_queries_total",
		Help: "Chatbot queries by match result",
	}, []string{"result"})

	expiryRuns = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "coralbay_expiry_run_duration_seconds",
		Help:    "Duration of the daily expiry job",
		Buckets: prometheus.DefBuckets,
	})

	expiredBookings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coralbay_expired_bookings_total",
		Help: "Bookings processed by the expiry job by outcome",
	}, []string{"outcome"})
)
