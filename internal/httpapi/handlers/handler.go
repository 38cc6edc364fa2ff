package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/common"
	"github.com/suPer8Hu/job-assistant/internal/httpapi/middleware"
	"github.com/suPer8Hu/job-assistant/internal/logger"
	"go.uber.org/zap"
)

// JobPublisher enqueues async turn jobs.
type JobPublisher interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Handler struct {
	ChatSvc   *chat.Service
	Publisher JobPublisher
	Log       *zap.Logger
}

func NewHandler(svc *chat.Service, pub JobPublisher, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{ChatSvc: svc, Publisher: pub, Log: log}
}

func (h *Handler) Ping(c *gin.Context) {
	common.OK(c, gin.H{"pong": true})
}

// userIDFromContext returns the authenticated user, or nil for anonymous requests.
func userIDFromContext(c *gin.Context) *uint64 {
	v, ok := c.Get(middleware.UserIDKey)
	if !ok {
		return nil
	}
	id, ok := v.(uint64)
	if !ok {
		return nil
	}
	return &id
}

func (h *Handler) logger(c *gin.Context) *zap.Logger {
	return h.Log.With(zap.String(logger.FieldRequestID, c.GetString(middleware.RequestIDKey)))
}

func internalError(c *gin.Context, code int) {
	common.Fail(c, http.StatusInternalServerError, code, "Something went wrong. Please try again.")
}
