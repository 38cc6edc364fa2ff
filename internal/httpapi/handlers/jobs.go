package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/common"
	"github.com/suPer8Hu/job-assistant/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (h *Handler) SendChatbotMessageAsync(c *gin.Context) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		common.Fail(c, http.StatusBadRequest, 10001, "Please provide a valid message")
		return
	}

	idempoKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	if len(idempoKey) > 128 {
		common.Fail(c, http.StatusBadRequest, 10003, "idempotency key too long")
		return
	}
	// keys are scoped to the authenticated user; anonymous callers have no
	// scope to share, so their keys are ignored
	userID := userIDFromContext(c)
	var idempoKeyPtr *string
	if idempoKey != "" && userID != nil {
		idempoKeyPtr = &idempoKey
	}

	log := h.logger(c)

	sessionID := req.SessionID
	if sessionID == "" {
		id, err := h.ChatSvc.NewSessionID()
		if err != nil {
			log.Error("mint session id failed", zap.Error(err))
			internalError(c, 50001)
			return
		}
		sessionID = id
	}

	jobID, err := common.NewULID()
	if err != nil {
		log.Error("new ulid failed", zap.Error(err))
		internalError(c, 50001)
		return
	}

	j, created, err := h.ChatSvc.CreateJobOrGetExisting(c.Request.Context(), &chat.TurnJob{
		ID:             jobID,
		UserID:         userID,
		SessionID:      sessionID,
		Message:        req.Message,
		IdempotencyKey: idempoKeyPtr,
		Status:         chat.JobQueued,
	})
	if err != nil {
		log.Error("create turn job failed", zap.String(logger.FieldSessionID, sessionID), zap.Error(err))
		internalError(c, 50001)
		return
	}

	// enqueue only when a new job was created
	if created {
		if err := h.Publisher.PublishJob(c.Request.Context(), j.ID); err != nil {
			log.Error("publish turn job failed", zap.String(logger.FieldJobID, j.ID), zap.Error(err))
			internalError(c, 50004)
			return
		}
	}

	common.OK(c, gin.H{"job_id": j.ID, "session_id": j.SessionID})
}

func (h *Handler) GetChatbotJob(c *gin.Context) {
	jobID := c.Param("job_id")

	j, err := h.ChatSvc.GetJob(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
		h.logger(c).Error("load turn job failed", zap.String(logger.FieldJobID, jobID), zap.Error(err))
		internalError(c, 50001)
		return
	}

	// hide jobs that belong to someone else
	if j.UserID != nil {
		uid := userIDFromContext(c)
		if uid == nil || *uid != *j.UserID {
			common.Fail(c, http.StatusNotFound, 40402, "job not found")
			return
		}
	}

	reply, err := j.DecodeReply()
	if err != nil {
		h.logger(c).Error("decode turn reply failed", zap.String(logger.FieldJobID, jobID), zap.Error(err))
		internalError(c, 50001)
		return
	}

	resp := gin.H{
		"id":         j.ID,
		"session_id": j.SessionID,
		"status":     j.Status,
		"reply":      reply,
		"created_at": j.CreatedAt,
		"updated_at": j.UpdatedAt,
	}
	if j.Status == chat.JobFailed {
		resp["error"] = "Something went wrong. Please try again."
	}
	common.OK(c, gin.H{"job": resp})
}
