package models

import (
	"fmt"
	"strings"
	"time"
)

type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    int       `gorm:"not null" json:"rating"` // Số sao, không kiểm tra khoảng 1-5
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

type ReviewInput struct {
	Name   string `json:"name" form:"name" validate:"required,max=100"`
	Text   string `json:"review" form:"review" validate:"required"`
	Rating *int   `json:"rating" form:"rating" validate:"required"`
}

func (in *ReviewInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Text = strings.TrimSpace(in.Text)
}

func (in ReviewInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return nil
}

func (in ReviewInput) Review() Review {
	r := Review{Name: in.Name, Text: in.Text}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	return r
}
