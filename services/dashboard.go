package services

import (
	"context"

	"coralbay/models"
	"coralbay/store"
)

type ReviewSentiment struct {
	models.Review
	Sentiment float64 `json:"sentiment"`
	Category  string  `json:"category"`
}

type DashboardData struct {
	Bookings           []models.Booking  `json:"bookings"`
	Rooms              []models.Room     `json:"rooms"`
	Reviews            []ReviewSentiment `json:"reviews"`
	RatingDistribution map[int]int       `json:"ratingDistribution"`
	SentimentCounts    map[string]int    `json:"sentimentCounts"`
}

type Dashboard struct {
	store *store.Store
}

func NewDashboard(s *store.Store) *Dashboard {
	return &Dashboard{store: s}
}

func (d *Dashboard) Build(ctx context.Context) (DashboardData, error) {
	bookings, err := d.store.ListBookings(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	rooms, err := d.store.ListRooms(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	reviews, err := d.store.ListReviews(ctx)
	if err != nil {
		return DashboardData{}, err
	}
	data := DashboardData{
		Bookings: bookings,
		Rooms:    rooms,
		Reviews:  make([]ReviewSentiment, 0, len(reviews)),
	}
	data.RatingDistribution, data.SentimentCounts = summarize(reviews, &data.Reviews)
	return data, nil
}

// summarize đếm số sao 1..5 (giá trị ngoài khoảng bỏ qua khi đếm) và nhóm cảm xúc.
func summarize(reviews []models.Review, out *[]ReviewSentiment) (map[int]int, map[string]int) {
	ratings := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	counts := map[string]int{SentimentPositive: 0, SentimentNeutral: 0, SentimentNegative: 0}
	for _, r := range reviews {
		p := Polarity(r.Text)
		cat := SentimentCategory(p)
		counts[cat]++
		if _, ok := ratings[r.Rating]; ok {
			ratings[r.Rating]++
		}
		*out = append(*out, ReviewSentiment{Review: r, Sentiment: p, Category: cat})
	}
	return ratings, counts
}
