package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/domains/contacts"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/middleware"
)

func ContactRoutes(r *gin.RouterGroup, s contacts.Service) {
	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.GET("", listContacts(s))
		authGroup.POST("", createContact(s))
		authGroup.PUT("/:id", updateContact(s))
		authGroup.DELETE("/:id", deleteContact(s))
	}
}

func listContacts(s contacts.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		result, err := s.List(c.Request.Context())
		if err != nil {
			c.JSON(500, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, result)
	}
}

func createContact(s contacts.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.ContactDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		contact, err := s.Create(c.Request.Context(), req)
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "contact": contact})
	}
}

func updateContact(s contacts.Service) func(c *gin.Context) {
	return func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}

		var req dtos.ContactDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		contact, err := s.Update(c.Request.Context(), id, req)
		if err != nil {
			c.JSON(400, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(200, gin.H{"status": "success", "contact": contact})
	}
}

func deleteContact(s contacts.Service) func(c *gin.Context) {
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
