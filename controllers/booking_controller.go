package controllers

import (
	"errors"
	"net/http"

	"coralbay/models"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) BookingController {
	return BookingController{Bookings: bookings}
}

const (
	actionCheckAvailability = "check_availability"
	actionConfirmBooking    = "confirm_booking"
)

type bookRequest struct {
	Action   string `json:"action" form:"action"`
	RoomType string `json:"roomType" form:"room_type"`
	models.BookingInput
}

// BookPage godoc
// @Summary Room types and available rooms
// @Tags booking
// @Produce json
// @Param room_type query string false "Room type"
// @Success 200 {object} map[string]interface{}
// @Router /book [get]
func (b BookingController) BookPage(c *gin.Context) {
	ctx := c.Request.Context()
	types, err := b.Bookings.RoomTypes(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	data := gin.H{"roomTypes": types}
	if roomType := c.Query("room_type"); roomType != "" {
		data["selectedType"] = roomType
		rooms, err := b.Bookings.ListAvailable(ctx, roomType)
		if errors.Is(err, services.ErrNoRoomsOfType) {
			// vẫn trả danh sách loại phòng để khách chọn lại
			data["availableRooms"] = []models.Room{}
			respondOK(c, http.StatusOK, err.Error(), data)
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		data["availableRooms"] = rooms
	}
	respondOK(c, http.StatusOK, "OK", data)
}

// Book godoc
// @Summary Check availability or confirm a booking
// @Description action=check_availability cần room_type; action=confirm_booking cần name, email, room_id, check_in_date, check_out_date.
// @Tags booking
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /book [post]
func (b BookingController) Book(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	ctx := c.Request.Context()

	switch req.Action {
	case actionCheckAvailability:
		if req.RoomType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "room_type is required"})
			return
		}
		rooms, err := b.Bookings.ListAvailable(ctx, req.RoomType)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusOK, "OK", gin.H{"selectedType": req.RoomType, "availableRooms": rooms})
	case actionConfirmBooking:
		booking, err := b.Bookings.Create(ctx, req.BookingInput)
		if err != nil {
			respondError(c, err)
			return
		}
		respondOK(c, http.StatusCreated, "Booking confirmed! A confirmation email has been sent.", booking)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Unknown action"})
	}
}

func (b BookingController) List(c *gin.Context) {
	bookings, err := b.Bookings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "OK", bookings)
}

// Create là đường tạo booking của admin, cùng luồng với khách.
func (b BookingController) Create(c *gin.Context) {
	var in models.BookingInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	booking, err := b.Bookings.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Booking created", booking)
}

// Detail trả booking và các phòng có thể chuyển sang.
func (b BookingController) Detail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	opts, err := b.Bookings.EditOptions(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "OK", opts)
}

// Update godoc
// @Summary Edit a booking
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Booking ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /admin/bookings/{id} [put]
func (b BookingController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var u models.BookingUpdate
	if err := c.ShouldBind(&u); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	booking, err := b.Bookings.Edit(c.Request.Context(), id, u)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking updated successfully!", booking)
}

func (b BookingController) Cancel(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := b.Bookings.Cancel(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Booking cancelled successfully!", gin.H{"id": id})
}
