package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/availability")
	{
		group.GET("/check", h.Check)
		group.GET("/slots", h.Slots)
	}
}
