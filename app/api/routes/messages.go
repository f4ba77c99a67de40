package routes

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/domains/messages"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/middleware"
)

func MessageRoutes(r *gin.RouterGroup, s messages.Service) {
	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.GET("/sent-messages", listSent(s))
		authGroup.PUT("/sent-messages/:id", updateSent(s))
		authGroup.DELETE("/sent-messages/:id", deleteSent(s))
		authGroup.GET("/received-messages", listReceived(s))
		authGroup.PUT("/received-messages/:id", updateReceived(s))
		authGroup.DELETE("/received-messages/:id", deleteReceived(s))
	}
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 0
	}
	return page
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
		return 0, false
	}
	return uint(id), true
}

func listSent(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		items, totalPages, err := s.ListSent(c.Request.Context(), pageParam(c))
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"data": items, "total_pages": totalPages})
	}
}

func listReceived(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		items, totalPages, err := s.ListReceived(c.Request.Context(), pageParam(c))
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"data": items, "total_pages": totalPages})
	}
}

func updateSent(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req dtos.UpdateMessageDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		if err := s.UpdateSent(c.Request.Context(), id, req.Message); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "message": constant.UPDATED})
	}
}

func updateReceived(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req dtos.UpdateMessageDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		if err := s.UpdateReceived(c.Request.Context(), id, req.Message); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "message": constant.UPDATED})
	}
}

func deleteSent(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteSent(c.Request.Context(), id); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "message": constant.DELETED})
	}
}

func deleteReceived(s messages.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		if err := s.DeleteReceived(c.Request.Context(), id); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "message": constant.DELETED})
	}
}
