package services

import (
	"context"
	"fmt"

	"coralbay/models"
	"coralbay/store"
)

type ReviewService struct {
	store *store.Store
}

func NewReviewService(s *store.Store) *ReviewService {
	return &ReviewService{store: s}
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	return s.store.ListReviews(ctx)
}

// Submit lưu review; rating không bị giới hạn 1-5.
func (s *ReviewService) Submit(ctx context.Context, in models.ReviewInput) (ReviewSentiment, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return ReviewSentiment{}, err
	}
	review := in.Review()
	if err := s.store.CreateReview(ctx, &review); err != nil {
		return ReviewSentiment{}, fmt.Errorf("create review: %w", err)
	}
	p := Polarity(review.Text)
	return ReviewSentiment{Review: review, Sentiment: p, Category: SentimentCategory(p)}, nil
}

func (s *ReviewService) Delete(ctx context.Context, id uint) error {
	return s.store.DeleteReview(ctx, id)
}
