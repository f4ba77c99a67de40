package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/domains/autoreply"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/middleware"
)

func AutoReplyRoutes(r *gin.RouterGroup, s autoreply.Service) {
	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.GET("", listAutoReplies(s))
		authGroup.POST("", createAutoReply(s))
		authGroup.PUT("/:id", updateAutoReply(s))
		authGroup.DELETE("/:id", deleteAutoReply(s))
	}
}

func listAutoReplies(s autoreply.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		rules, err := s.List(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, rules)
	}
}

func createAutoReply(s autoreply.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.AutoReplyDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		rule, err := s.Create(c.Request.Context(), req)
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "data": rule})
	}
}

func updateAutoReply(s autoreply.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req dtos.AutoReplyDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		rule, err := s.Update(c.Request.Context(), id, req)
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "data": rule})
	}
}

func deleteAutoReply(s autoreply.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.Delete(c.Request.Context(), id); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success"})
	}
}
