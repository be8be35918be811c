package controllers

import (
	"net/http"

	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	Dashboard *services.Dashboard
}

func NewDashboardController(d *services.Dashboard) DashboardController {
	return DashboardController{Dashboard: d}
}

// Show godoc
// @Summary Admin dashboard data
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/dashboard [get]
func (d DashboardController) Show(c *gin.Context) {
	data, err := d.Dashboard.Build(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "OK", data)
}
