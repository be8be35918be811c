package controllers

import (
	"net/http"

	"coralbay/models"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type ReviewController struct {
	Reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) ReviewController {
	return ReviewController{Reviews: reviews}
}

func (r ReviewController) List(c *gin.Context) {
	reviews, err := r.Reviews.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "OK", reviews)
}

// Submit godoc
// @Summary Submit a guest review
// @Tags reviews
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param review body models.ReviewInput true "Review"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /submit_review [post]
func (r ReviewController) Submit(c *gin.Context) {
	var in models.ReviewInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Invalid request body"})
		return
	}
	review, err := r.Reviews.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "Thank you for your review!", review)
}

func (r ReviewController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := r.Reviews.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Review deleted successfully!", gin.H{"id": id})
}
