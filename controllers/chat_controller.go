package controllers

import (
	"net/http"

	"coralbay/services"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Bot *services.Chatbot
}

func NewChatController(bot *services.Chatbot) ChatController {
	return ChatController{Bot: bot}
}

type chatRequest struct {
	Query string `json:"query" form:"query"`
}

func (ch ChatController) Page(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"predefined_questions": ch.Bot.Questions()})
}

func (ch ChatController) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"available_questions": ch.Bot.Questions()})
}

// Ask godoc
// @Summary Ask the chatbot
// @Tags chat
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param query body chatRequest true "Query"
// @Success 200 {object} services.ChatReply
// @Failure 429 {object} map[string]interface{}
// @Router /api/chat [post]
func (ch ChatController) Ask(c *gin.Context) {
	var req chatRequest
	// Body rỗng hoặc sai định dạng coi như câu hỏi rỗng; lỗi bind vẫn được ghi vào c.Errors.
	if err := c.ShouldBind(&req); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		req.Query = ""
	}
	c.JSON(http.StatusOK, ch.Bot.Answer(req.Query))
}
