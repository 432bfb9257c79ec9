package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"tripspark/internal/models/request_models"
	"tripspark/internal/models/response_models"
	"tripspark/internal/services"
	"tripspark/pkg/utils"
)

type ChatController struct {
	conversationService services.ConversationServiceInterface
}

func NewChatController(conversationService services.ConversationServiceInterface) *ChatController {
	return &ChatController{
		conversationService: conversationService,
	}
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Handle one user message of a trip planning conversation and return the display events it produced.
// @Description A new conversation is opened when conversation_id is empty; signed-in users reuse their user id.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body request_models.ChatRequest true "Conversation ID and message"
// @Success 200 {object} response_models.ConversationResponse
// @Failure 400 {object} utils.APIResponse
// @Router /chat [post]
func (ch *ChatController) SendMessage(c *gin.Context) {
	var req request_models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Message is required")
		return
	}

	conversationID := req.ConversationID
	isNew := false
	if conversationID == "" {
		conversationID = c.GetString("user_id")
	}
	if conversationID == "" {
		conversationID = uuid.New().String()
		isNew = true
	}

	result, err := ch.conversationService.HandleUserUtterance(c.Request.Context(), conversationID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	events := result.Events
	if events == nil {
		events = []response_models.ChatEvent{}
	}
	if isNew {
		events = append([]response_models.ChatEvent{services.GreetingMessage()}, events...)
	}

	resp := response_models.ConversationResponse{
		ConversationID: result.ConversationID,
		State:          string(result.State),
		Events:         events,
	}
	if result.TripID != nil {
		resp.TripID = result.TripID.String()
	}

	utils.RespondSuccess(c, resp, "Message handled")
}
