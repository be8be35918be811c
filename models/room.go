package models

import (
	"fmt"
	"strings"
	"time"
)

type Room struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RoomType     string    `gorm:"type:varchar(100);not null;index" json:"roomType"`
	RoomNumber   string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"roomNumber"`
	Availability bool      `gorm:"not null;default:true" json:"availability"` // true: trống - false: đã có người đặt
	ImageURL     string    `json:"imageUrl,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

type RoomInput struct {
	RoomType   string `json:"roomType" form:"room_type" validate:"required,max=100"`
	RoomNumber string `json:"roomNumber" form:"room_number" validate:"required,max=50"`
}

func (r *RoomInput) Normalize() {
	r.RoomType = strings.TrimSpace(r.RoomType)
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
}

func (r RoomInput) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return nil
}
