package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout là định dạng ngày nhận/trả phòng, không có múi giờ.
const DateLayout = "2006-01-02"

type Booking struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GuestName    string    `gorm:"type:varchar(100);not null" json:"guestName"`
	GuestEmail   string    `gorm:"type:varchar(100);not null" json:"guestEmail"`
	RoomID       uint      `gorm:"not null;index" json:"roomId"`
	CheckInDate  string    `gorm:"type:varchar(20);not null" json:"checkInDate"`
	CheckOutDate string    `gorm:"type:varchar(20);not null;index" json:"checkOutDate"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Room         *Room     `gorm:"foreignKey:RoomID;constraint:OnDelete:RESTRICT" json:"room,omitempty"`
}

// BookingInput là dữ liệu đặt phòng từ khách hoặc admin.
type BookingInput struct {
	GuestName    string `json:"guestName" form:"name" validate:"required,max=100"`
	GuestEmail   string `json:"guestEmail" form:"email" validate:"required,email,max=100"`
	RoomID       uint   `json:"roomId" form:"room_id" validate:"required"`
	CheckInDate  string `json:"checkInDate" form:"check_in_date" validate:"required,isodate"`
	CheckOutDate string `json:"checkOutDate" form:"check_out_date" validate:"required,isodate"`
}

func (in *BookingInput) Normalize() {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.GuestEmail = strings.TrimSpace(in.GuestEmail)
	in.CheckInDate = strings.TrimSpace(in.CheckInDate)
	in.CheckOutDate = strings.TrimSpace(in.CheckOutDate)
}

func (in BookingInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describe(err))
	}
	return validateStay(in.CheckInDate, in.CheckOutDate)
}

func (in BookingInput) Booking() Booking {
	return Booking{
		GuestName:    in.GuestName,
		GuestEmail:   in.GuestEmail,
		RoomID:       in.RoomID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
	}
}

// BookingUpdate chỉ thay đổi các trường được gửi lên.
type BookingUpdate struct {
	GuestName    *string `json:"guestName" form:"guest_name"`
	GuestEmail   *string `json:"guestEmail" form:"guest_email"`
	RoomID       *uint   `json:"roomId" form:"room_id"`
	CheckInDate  *string `json:"checkInDate" form:"check_in_date"`
	CheckOutDate *string `json:"checkOutDate" form:"check_out_date"`
}

// Apply returns a copy of b with the update applied.
func (u BookingUpdate) Apply(b Booking) Booking {
	if u.GuestName != nil {
		b.GuestName = strings.TrimSpace(*u.GuestName)
	}
	if u.GuestEmail != nil {
		b.GuestEmail = strings.TrimSpace(*u.GuestEmail)
	}
	if u.RoomID != nil && *u.RoomID != 0 {
		b.RoomID = *u.RoomID
	}
	if u.CheckInDate != nil {
		b.CheckInDate = strings.TrimSpace(*u.CheckInDate)
	}
	if u.CheckOutDate != nil {
		b.CheckOutDate = strings.TrimSpace(*u.CheckOutDate)
	}
	b.Room = nil
	return b
}

func (b Booking) Validate() error {
	in := BookingInput{
		GuestName:    b.GuestName,
		GuestEmail:   b.GuestEmail,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
	}
	return in.Validate()
}

func validateStay(checkIn, checkOut string) error {
	in, err := time.Parse(DateLayout, checkIn)
	if err != nil {
		return fmt.Errorf("%w: check-in date must be YYYY-MM-DD", ErrValidation)
	}
	out, err := time.Parse(DateLayout, checkOut)
	if err != nil {
		return fmt.Errorf("%w: check-out date must be YYYY-MM-DD", ErrValidation)
	}
	if !out.After(in) {
		return fmt.Errorf("%w: check-out date must be after check-in date", ErrValidation)
	}
	return nil
}
