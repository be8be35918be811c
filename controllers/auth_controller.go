package controllers

import (
	"net/http"

	middlewares "coralbay/middleware"
	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) AuthController {
	return AuthController{Auth: auth}
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Login godoc
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param login body LoginInput true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /admin/login [post]
func (a AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 0, "mess": "Username and password are required"})
		return
	}
	res, err := a.Auth.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "Login successful", res)
}

func (a AuthController) Logout(c *gin.Context) {
	claims, ok := middlewares.CurrentAdmin(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": 0, "mess": "Invalid token"})
		return
	}
	if err := a.Auth.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "You have been logged out.", nil)
}
