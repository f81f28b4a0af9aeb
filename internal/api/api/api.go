package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/wb-go/wbf/ginext"

	"churchapi/cmd/middleware"
	"churchapi/internal/dto"
	"churchapi/internal/service"
)

type Routers struct {
	Service       *service.Service
	AllowedOrigin string
}

func NewRouters(r *Routers) *ginext.Engine {
	app := ginext.New("release")

	app.Use(middleware.LoggingMiddleware())
	app.Use(corsConfig(r.AllowedOrigin))

	app.GET("/", func(c *ginext.Context) {
		c.JSON(200, dto.Response{
			Success: true,
			Message: "Welcome to the Church API",
			Data:    map[string]string{"status": "Server is running successfully!", "timestamp": time.Now().UTC().Format(time.RFC3339)},
		})
	})

	apiGroup := app.Group("/api")

	apiGroup.GET("/health", func(c *ginext.Context) {
		c.JSON(200, dto.Response{Success: true, Message: "healthy"})
	})

	contacts := apiGroup.Group("/contacts")
	contacts.POST("", r.Service.CreateContact)
	contacts.GET("", r.Service.GetAllContacts)
	contacts.GET("/:id", r.Service.GetContactByID)
	contacts.PUT("/:id", r.Service.UpdateContact)
	contacts.DELETE("/:id", r.Service.DeleteContact)

	sermons := apiGroup.Group("/sermons")
	sermons.POST("", r.Service.CreateSermon)
	sermons.GET("", r.Service.GetAllSermons)
	sermons.GET("/featured", r.Service.GetFeaturedSermons)
	sermons.GET("/:id", r.Service.GetSermonByID)
	sermons.PUT("/:id", r.Service.UpdateSermon)
	sermons.DELETE("/:id", r.Service.DeleteSermon)
	sermons.PUT("/:id/download", r.Service.IncrementDownloads)

	events := apiGroup.Group("/events")
	events.POST("", r.Service.CreateEvent)
	events.GET("", r.Service.GetAllEvents)
	events.GET("/upcoming", r.Service.GetUpcomingEvents)
	events.GET("/featured", r.Service.GetFeaturedEvents)
	events.GET("/:id", r.Service.GetEventByID)
	events.PUT("/:id", r.Service.UpdateEvent)
	events.DELETE("/:id", r.Service.DeleteEvent)
	events.POST("/:id/register", r.Service.RegisterForEvent)

	members := apiGroup.Group("/members")
	members.POST("", r.Service.RegisterMember)
	members.GET("", r.Service.GetAllMembers)
	members.GET("/:id", r.Service.GetMemberByID)
	members.PUT("/:id", r.Service.UpdateMember)
	members.DELETE("/:id", r.Service.DeleteMember)
	members.PUT("/:id/approve", r.Service.ApproveMember)

	donations := apiGroup.Group("/donations")
	donations.POST("", r.Service.CreateDonation)
	donations.GET("", r.Service.GetAllDonations)
	donations.GET("/stats", r.Service.GetDonationStats)
	donations.POST("/verify", r.Service.VerifyPayment)
	donations.GET("/:id", r.Service.GetDonationByID)
	donations.PUT("/:id", r.Service.UpdateDonation)
	donations.DELETE("/:id", r.Service.DeleteDonation)

	testimonies := apiGroup.Group("/testimonies")
	testimonies.POST("", r.Service.CreateTestimony)
	testimonies.GET("", r.Service.GetAllTestimonies)
	testimonies.GET("/featured", r.Service.GetFeaturedTestimonies)
	testimonies.GET("/:id", r.Service.GetTestimonyByID)
	testimonies.PUT("/:id", r.Service.UpdateTestimony)
	testimonies.DELETE("/:id", r.Service.DeleteTestimony)
	testimonies.PUT("/:id/approve", r.Service.ApproveTestimony)
	testimonies.PUT("/:id/like", r.Service.LikeTestimony)

	newsletter := apiGroup.Group("/newsletter")
	newsletter.POST("/subscribe", r.Service.Subscribe)
	newsletter.POST("/unsubscribe", r.Service.Unsubscribe)
	newsletter.GET("", r.Service.GetAllSubscribers)
	newsletter.DELETE("/:id", r.Service.DeleteSubscriber)

	app.NoRoute(dto.RouteNotFound)

	return app
}

func corsConfig(origin string) gin.HandlerFunc {
	if origin == "" {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = []string{origin}
	cfg.AllowCredentials = true
	return cors.New(cfg)
}
