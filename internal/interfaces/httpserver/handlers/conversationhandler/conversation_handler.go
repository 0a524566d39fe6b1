package conversationhandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"promptory-server/internal/domain/conversation"
	"promptory-server/internal/infrastructure/metrics"
	"promptory-server/internal/interfaces/httpserver/middlewares"
	"promptory-server/internal/interfaces/httpserver/requests/conversationreq"
	"promptory-server/internal/interfaces/httpserver/responses"
	"promptory-server/internal/interfaces/httpserver/responses/conversationres"
	"promptory-server/internal/utils/platformerrors"
)

// ConversationHandler exposes conversation submission, search and deletion.
type ConversationHandler struct {
	service *conversation.Service
	logger  zerolog.Logger
}

func NewConversationHandler(service *conversation.Service, logger zerolog.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: service,
		logger:  logger,
	}
}

// Create godoc
// @Summary      Record a conversation
// @Description  Stores a prompt/response pair and links its extracted tags atomically.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Success      201  {object}  conversationres.CreateConversationResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /api/v1/conversations [post]
func (h *ConversationHandler) Create(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	var req conversationreq.CreateConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid request body", "a8f3c2d1-5b7e-4960-8c1a-f4d27e9b3056")
		return
	}

	timestamp, err := req.Timestamp()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "c5d91e28-3a46-4b7f-90e2-6d8a1f4c7b39")
		return
	}

	conv, err := h.service.Submit(c.Request.Context(), conversation.SubmitInput{
		UserID:                principal.UserID,
		Source:                conversation.Source(req.Source),
		Prompt:                req.Prompt,
		Response:              req.Response,
		ConversationTimestamp: timestamp,
	})
	if err != nil {
		responses.HandleError(c, err, "failed to record conversation")
		return
	}

	metrics.RecordConversationSubmitted(string(conv.Source), len(conv.Tags))

	c.JSON(http.StatusCreated, conversationres.CreateConversationResponse{
		Success:        true,
		ConversationID: conv.PublicID,
	})
}

// List godoc
// @Summary      Search conversations
// @Description  Returns the caller's conversations, optionally filtered by substring and date.
// @Tags         conversations
// @Produce      json
// @Success      200  {object}  conversationres.ListConversationsResponse
// @Failure      400  {object}  responses.ErrorResponse
// @Router       /api/v1/conversations [get]
func (h *ConversationHandler) List(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	var query conversationreq.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, "invalid query parameters", "e2b74a93-1c58-4f06-ad37-9b5e8c2d6f41")
		return
	}

	date, err := query.ParsedDate()
	if err != nil {
		responses.HandleNewError(c, platformerrors.ErrorTypeValidation, err.Error(), "7c3f8e51-9d24-4a6b-b8f0-2e61c5a9d473")
		return
	}

	filter := conversation.SearchFilter{
		UserID: principal.UserID,
		Date:   date,
	}
	if query.Query != "" {
		q := query.Query
		filter.Query = &q
	}

	results, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		responses.HandleError(c, err, "failed to search conversations")
		return
	}

	metrics.RecordSearch(filter.Query != nil || filter.Date != nil)

	c.JSON(http.StatusOK, conversationres.ListConversationsResponse{
		Total:   len(results),
		Results: conversationres.FromDomainList(results),
	})
}

// Get godoc
// @Summary      Fetch one conversation
// @Tags         conversations
// @Produce      json
// @Success      200  {object}  conversationres.ConversationResponse
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/v1/conversations/{id} [get]
func (h *ConversationHandler) Get(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	conv, err := h.service.GetByPublicIDAndUserID(c.Request.Context(), c.Param("id"), principal.UserID)
	if err != nil {
		responses.HandleError(c, err, "conversation not found")
		return
	}

	c.JSON(http.StatusOK, conversationres.FromDomain(conv))
}

// Delete godoc
// @Summary      Delete a conversation
// @Tags         conversations
// @Produce      json
// @Success      204
// @Failure      404  {object}  responses.ErrorResponse
// @Router       /api/v1/conversations/{id} [delete]
func (h *ConversationHandler) Delete(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.Param("id"), principal.UserID); err != nil {
		responses.HandleError(c, err, "failed to delete conversation")
		return
	}

	c.Status(http.StatusNoContent)
}
