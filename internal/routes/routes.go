package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/peartree/finbot/internal/bot"
	"github.com/peartree/finbot/internal/handlers"
)

func SetupRouter(exec *bot.Executor) *gin.Engine {
	r := gin.Default()

	r.GET("/", handlers.HealthHandler())
	r.POST("/webhook", handlers.WebhookHandler(exec))

	return r
}
