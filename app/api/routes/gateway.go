package routes

import (
	"encoding/base64"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/wagateway/pkg/constant"
	"github.com/wagateway/pkg/domains/gateway"
	"github.com/wagateway/pkg/domains/router"
	"github.com/wagateway/pkg/domains/session"
	"github.com/wagateway/pkg/dtos"
	"github.com/wagateway/pkg/middleware"
)

// GatewayRoutes exposes the session control plane. Status and QR polling stay
// open so the dashboard can drive the pairing flow before anyone logs in.
func GatewayRoutes(r *gin.RouterGroup, manager *session.Manager, gw *gateway.Gateway, rt *router.Router) {
	r.GET("/status", getStatus(manager))
	r.GET("/get-qr", getQR(manager))

	authGroup := r.Group("", middleware.CheckAuth())
	{
		authGroup.POST("/send-message", sendMessage(gw))
		authGroup.POST("/logout", logout(manager))
		authGroup.POST("/chatbot-toggle", chatbotToggle(rt))
	}
}

func getStatus(manager *session.Manager) func(c *gin.Context) {
	return func(c *gin.Context) {
		snapshot := manager.Snapshot()
		c.JSON(200, dtos.StatusDTO{
			Connected: snapshot.Phase == session.PhaseConnected,
		})
	}
}

func getQR(manager *session.Manager) func(c *gin.Context) {
	return func(c *gin.Context) {
		snapshot := manager.Snapshot()
		if snapshot.PairingCode == "" {
			c.JSON(404, gin.H{"message": constant.QR_NOT_AVAILABLE})
			return
		}

		resp := dtos.QRCodeDTO{QR: snapshot.PairingCode}
		if png, err := qrcode.Encode(snapshot.PairingCode, qrcode.Medium, 256); err == nil {
			resp.QRPNG = base64.StdEncoding.EncodeToString(png)
		}
		c.JSON(200, resp)
	}
}

func sendMessage(gw *gateway.Gateway) func(c *gin.Context) {
	return func(c *gin.Context) {
		var req dtos.SendMessageDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"status": "error", "message": constant.INVALID_REQUEST})
			return
		}

		if err := gw.Send(c.Request.Context(), req.To, req.Message); err != nil {
			c.JSON(500, gin.H{"status": "error", "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":  "success",
			"message": constant.MESSAGE_SENT,
		})
	}
}

func logout(manager *session.Manager) func(c *gin.Context) {
	return func(c *gin.Context) {
		if err := manager.Logout(c.Request.Context()); err != nil {
			c.JSON(500, gin.H{"status": "error", "message": err.Error()})
			return
		}

		c.JSON(200, gin.H{
			"status":  "success",
			"message": constant.SESSION_LOGGED_OUT,
		})
	}
}

func chatbotToggle(rt *router.Router) func(c *gin.Context) {
	return func(c *gin.Context) {
		c.JSON(200, dtos.ChatbotToggleDTO{
			Status: "success",
			Active: rt.Toggle(),
		})
	}
}
