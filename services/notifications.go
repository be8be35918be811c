package services

import (
	"fmt"
	"strings"

	"coralbay/models"
)

const (
	NotifyConfirmed = "confirmed"
	NotifyUpdated   = "updated"
	NotifyCancelled = "cancelled"
	NotifyNewAlert  = "new_booking_alert"
)

type Notification struct {
	Kind      string `json:"kind"`
	BookingID uint   `json:"bookingId"`
	To        string `json:"to"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

const hotelSignature = `- Coral Bay Hotel
+94 234 567 890
contact@coralbayhotel.com
123 Coral Street, Hikkaduwa, Sri Lanka`

func BookingConfirmedMessage(b models.Booking, room models.Room) Notification {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
	sb.WriteString("Your reservation at Coral Bay Hotel is confirmed!\n\n")
	writeStay(&sb, b, room)
	sb.WriteString("\nIf you are not coming please send an email to cancel the booking.\nSee you soon!\n\n")
	sb.WriteString(hotelSignature)
	return Notification{
		Kind:      NotifyConfirmed,
		BookingID: b.ID,
		To:        b.GuestEmail,
		Subject:   "Booking Confirmation",
		Body:      sb.String(),
	}
}

func NewBookingAlertMessage(operator string, b models.Booking, room models.Room) Notification {
	var sb strings.Builder
	sb.WriteString("New Booking Received:\n\n")
	fmt.Fprintf(&sb, "Guest Name: %s\nGuest Email: %s\n", b.GuestName, b.GuestEmail)
	writeStay(&sb, b, room)
	sb.WriteString("\nPlease prepare the room accordingly.\n\n- Coral Bay Hotel System")
	return Notification{
		Kind:      NotifyNewAlert,
		BookingID: b.ID,
		To:        operator,
		Subject:   "New Booking Alert",
		Body:      sb.String(),
	}
}

// BookingStatusMessage dùng cho "updated" và "cancelled".
func BookingStatusMessage(status string, b models.Booking, room models.Room) Notification {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Dear %s,\n\n", b.GuestName)
	fmt.Fprintf(&sb, "Your booking at Coral Bay Hotel has been %s.\n\nBooking Details:\n", status)
	writeStay(&sb, b, room)
	sb.WriteString("\nIf you have any questions, please contact us.\n\nBest regards,\nCoral Bay Hotel")
	return Notification{
		Kind:      status,
		BookingID: b.ID,
		To:        b.GuestEmail,
		Subject:   "Booking " + strings.ToUpper(status[:1]) + status[1:],
		Body:      sb.String(),
	}
}

func writeStay(sb *strings.Builder, b models.Booking, room models.Room) {
	fmt.Fprintf(sb, "Room Type: %s\nRoom Number: %s\nCheck-In: %s\nCheck-Out: %s\n",
		room.RoomType, room.RoomNumber, b.CheckInDate, b.CheckOutDate)
}
