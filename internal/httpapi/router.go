package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/job-assistant/internal/chat"
	"github.com/suPer8Hu/job-assistant/internal/common"
	"github.com/suPer8Hu/job-assistant/internal/config"
	"github.com/suPer8Hu/job-assistant/internal/httpapi/handlers"
	"github.com/suPer8Hu/job-assistant/internal/httpapi/middleware"
	"go.uber.org/zap"
)

// NewRouter wires the chatbot routes. The async turn routes are registered only
// when pub is non-nil.
func NewRouter(cfg config.Config, svc *chat.Service, pub handlers.JobPublisher, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(middleware.RequestID())
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Recovery(log))

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	h := handlers.NewHandler(svc, pub, log)

	r.GET("/ping", h.Ping)

	// Chatbot (JWT optional)
	bot := r.Group("/chatbot")
	bot.Use(middleware.OptionalAuth(cfg.JWTSecret))
	bot.POST("/message", h.SendChatbotMessage)
	bot.GET("/history", h.ChatbotHistory)
	bot.GET("/history/:session_id", h.ChatbotHistory)
	bot.POST("/clear", h.ClearChatbot)

	if pub != nil {
		bot.POST("/message/async", h.SendChatbotMessageAsync)
		bot.GET("/jobs/:job_id", h.GetChatbotJob)
	}
	return r
}
