package routes

import (
	"github.com/flowlog/flowlog-backend/internal/handler"
	"github.com/gin-gonic/gin"
)

// Setup registers the business API routes. Every route requires the
// tenant identity middleware; no operation is reachable without an openid.
func Setup(router *gin.Engine, authMW gin.HandlerFunc, cards *handler.CardHandler, backlogs *handler.BacklogHandler, me *handler.MeHandler) {
	cardGroup := router.Group("/cards", authMW)
	cardGroup.POST("", cards.Create)
	cardGroup.GET("", cards.List)
	cardGroup.PUT("/:id", cards.Update)
	cardGroup.DELETE("/:id", cards.Delete)

	backlogGroup := router.Group("/backlogs", authMW)
	backlogGroup.POST("", backlogs.Create)
	backlogGroup.GET("", backlogs.List)
	backlogGroup.PATCH("/:id", backlogs.Transition)
	backlogGroup.PUT("/:id", backlogs.Update)
	backlogGroup.DELETE("/:id", backlogs.Delete)

	meGroup := router.Group("/me", authMW)
	meGroup.GET("", me.Get)
	meGroup.PUT("", me.Update)
}
