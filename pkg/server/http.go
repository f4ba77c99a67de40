package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/wagateway/app/api/routes"
	"github.com/wagateway/pkg/config"
	"github.com/wagateway/pkg/database"
	"github.com/wagateway/pkg/domains/auth"
	"github.com/wagateway/pkg/domains/autoreply"
	"github.com/wagateway/pkg/domains/contacts"
	"github.com/wagateway/pkg/domains/gateway"
	"github.com/wagateway/pkg/domains/messages"
	"github.com/wagateway/pkg/domains/router"
	"github.com/wagateway/pkg/domains/session"
	"github.com/wagateway/pkg/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func LaunchHttpServer(appc config.App, sessc config.Session, allows config.Allows) {
	log.Println("Starting HTTP Server...")
	gin.SetMode(gin.DebugMode)

	app := gin.New()
	app.Use(gin.LoggerWithFormatter(func(log gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] - %s \"%s %s %s %d %s\"\n",
			log.TimeStamp.Format("2006-01-02 15:04:05"),
			log.ClientIP,
			log.Method,
			log.Path,
			log.Request.Proto,
			log.StatusCode,
			log.Latency,
		)
	}))
	app.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	app.Use(gin.Recovery())
	app.Use(otelgin.Middleware(appc.Name))
	app.Use(middleware.ClaimIp())
	app.Use(cors.New(cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Origin", "Accept"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	p := ginprom.New(
		ginprom.Engine(app),
		ginprom.Subsystem("gin"),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/swagger/*any"),
	)
	app.Use(p.Instrument())

	db := database.DBClient()
	api := app.Group("/api/v1")

	// Auth Routes
	auth_repo := auth.NewRepo(db)
	auth_service := auth.NewService(auth_repo)
	routes.AuthRoutes(api.Group("/auth"), auth_service)

	// Message stores
	message_repo := messages.NewRepo(db)
	message_service := messages.NewService(message_repo)
	autoreply_repo := autoreply.NewRepo(db)
	autoreply_service := autoreply.NewService(autoreply_repo)
	contact_repo := contacts.NewRepo(db)
	contact_service := contacts.NewService(contact_repo)

	// Session core: manager owns the transport, router consumes inbound
	// messages, gateway fronts operator sends.
	manager := session.NewManager(sessc.ID, session.NewWhatsmeowFactory(sessc.Store), session.Config{
		Backoff:  session.DefaultBackoff,
		Recorder: session.NewRepo(db),
	})
	message_router := router.New(manager, message_repo, autoreply_repo)
	manager.OnMessage(message_router.HandleInbound)
	outbound_gateway := gateway.New(manager, message_repo)

	if err := manager.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start WhatsApp session: %v", err)
	}

	routes.GatewayRoutes(api, manager, outbound_gateway, message_router)
	routes.MessageRoutes(api, message_service)
	routes.AutoReplyRoutes(api.Group("/auto-replies"), autoreply_service)
	routes.ContactRoutes(api.Group("/contacts"), contact_service)

	fmt.Println("Server is running on port " + appc.Port)
	if err := app.Run(net.JoinHostPort(appc.Host, appc.Port)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
