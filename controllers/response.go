package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"coralbay/models"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

func respondOK(c *gin.Context, status int, mess string, data any) {
	c.JSON(status, gin.H{"code": 1, "mess": mess, "data": data})
}

// respondError đổi lỗi nghiệp vụ sang mã HTTP; lỗi lạ trả 500 và được ghi vào c.Errors.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	mess := "Internal server error"
	switch {
	case errors.Is(err, services.ErrNoRoomsOfType):
		status, mess = http.StatusNotFound, services.ErrNoRoomsOfType.Error()
	case errors.Is(err, models.ErrValidation):
		status, mess = http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrConflict):
		status, mess = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrNotFound):
		status, mess = http.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrUnauthorized):
		status, mess = http.StatusUnauthorized, err.Error()
	case errors.Is(err, services.ErrUploadDisabled):
		status, mess = http.StatusServiceUnavailable, err.Error()
	default:
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"code": 0, "mess": mess})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
