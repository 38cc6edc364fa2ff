package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/common"
	"github.com/suPer8Hu/job-assistant/internal/logger"
	"go.uber.org/zap"
)

type sendMessageReq struct {
	Message   string `json:"message" binding:"required"`
	SessionID string `json:"session_id" binding:"max=64"`
}

func (h *Handler) SendChatbotMessage(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "Please provide a valid message")
		return
	}

	reply, err := h.ChatSvc.SendMessage(c.Request.Context(), chat.SendInput{
		Message:   req.Message,
		SessionID: req.SessionID,
		UserID:    userIDFromContext(c),
	})
	if err != nil {
		if errors.Is(err, chat.ErrInvalidInput) {
			common.Fail(c, http.StatusBadRequest, 10001, "Please provide a valid message")
			return
		}
		h.logger(c).Error("send message failed",
			zap.String(logger.FieldSessionID, req.SessionID),
			zap.String("message", logger.Truncate(req.Message, 80)),
			zap.Error(err),
		)
		internalError(c, 50001)
		return
	}

	common.OK(c, reply)
}

func (h *Handler) ChatbotHistory(c *gin.Context) {
	sessionID := c.Param("session_id")

	hist, err := h.ChatSvc.History(c.Request.Context(), sessionID, userIDFromContext(c))
	if err != nil {
		h.logger(c).Error("load history failed", zap.String(logger.FieldSessionID, sessionID), zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50002, "Failed to retrieve conversation history")
		return
	}

	common.OK(c, hist)
}

type clearReq struct {
	SessionID string `json:"session_id"`
}

func (h *Handler) ClearChatbot(c *gin.Context) {
	var req clearReq
	_ = c.ShouldBindJSON(&req) // allow empty body

	if err := h.ChatSvc.Clear(c.Request.Context(), req.SessionID); err != nil {
		h.logger(c).Error("clear conversation failed", zap.String(logger.FieldSessionID, req.SessionID), zap.Error(err))
		common.Fail(c, http.StatusInternalServerError, 50003, "Failed to clear conversation")
		return
	}

	common.OK(c, gin.H{"cleared": true})
}
