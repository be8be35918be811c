package controllers

import (
	"net/http"

	"coralbay/models"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) RoomController {
	return RoomController{Rooms: rooms}
}

func (r RoomController) List(c *gin.Context) {
	rooms, err := r.Rooms.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "OK", rooms)
}

// Create godoc
// @Summary Add a room
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param room body models.RoomInput true "Room"
// @Success 201 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /admin/rooms [post]
func (r RoomController) Create(c *gin.Context) {
	var in models.RoomInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	room, err := r.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Room added successfully!", room)
}

func (r RoomController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var in models.RoomInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	room, err := r.Rooms.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Room updated successfully!", room)
}

func (r RoomController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := r.Rooms.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Room deleted successfully!", gin.H{"id": id})
}

// UploadImage nhận multipart field "file".
func (r RoomController) UploadImage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "No file uploaded"})
		return
	}
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Cannot open file"})
		return
	}
	defer src.Close()

	room, err := r.Rooms.UploadImage(c.Request.Context(), id, src)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Image uploaded", room)
}
