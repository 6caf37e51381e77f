package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"villastay/internal/infra/config"
	"villastay/internal/infra/obs"
)

type VillaHTTP interface {
	Catalog(c *gin.Context)
	Featured(c *gin.Context)
	Trending(c *gin.Context)
	Get(c *gin.Context)
}

type EnquiryHTTP interface {
	Submit(c *gin.Context)
	Lookup(c *gin.Context)
}

type AvailabilityHTTP interface {
	BlockedDates(c *gin.Context)
	Check(c *gin.Context)
}

type AuthHTTP interface {
	Login(c *gin.Context)
	Logout(c *gin.Context)
}

type ContactHTTP interface {
	Get(c *gin.Context)
}

type AdminHTTP interface {
	ListEnquiries(c *gin.Context)
	ListBookings(c *gin.Context)
	Conflicts(c *gin.Context)
	Confirm(c *gin.Context)
	MarkContacted(c *gin.Context)
	Cancel(c *gin.Context)
	DeleteBooking(c *gin.Context)
	CreateBlock(c *gin.Context)
	CreateVilla(c *gin.Context)
	UpdateVilla(c *gin.Context)
	DeleteVilla(c *gin.Context)
	AddVillaPhoto(c *gin.Context)
}

type Handlers struct {
	Villa        VillaHTTP
	Enquiry      EnquiryHTTP
	Availability AvailabilityHTTP
	Auth         AuthHTTP
	Contact      ContactHTTP
	Admin        AdminHTTP
	AdminGuard   gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Villa != nil {
		api.GET("/villas", h.Villa.Catalog)
		api.GET("/villas/featured", h.Villa.Featured)
		api.GET("/villas/trending", h.Villa.Trending)
		api.GET("/villas/:id", h.Villa.Get)
	}
	if h.Availability != nil {
		api.GET("/villas/:id/blocked-dates", h.Availability.BlockedDates)
		api.GET("/villas/:id/availability", h.Availability.Check)
	}
	if h.Enquiry != nil {
		api.POST("/enquiries", h.Enquiry.Submit)
		api.GET("/enquiries", h.Enquiry.Lookup)
	}
	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
	}
	if h.Contact != nil {
		api.GET("/contact", h.Contact.Get)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		if h.AdminGuard != nil {
			adminGroup.Use(h.AdminGuard)
		}
		adminGroup.GET("/enquiries", h.Admin.ListEnquiries)
		adminGroup.GET("/bookings", h.Admin.ListBookings)
		adminGroup.GET("/enquiries/:id/conflicts", h.Admin.Conflicts)
		adminGroup.POST("/enquiries/:id/confirm", h.Admin.Confirm)
		adminGroup.POST("/enquiries/:id/contacted", h.Admin.MarkContacted)
		adminGroup.POST("/enquiries/:id/cancel", h.Admin.Cancel)
		adminGroup.DELETE("/bookings/:id", h.Admin.DeleteBooking)
		adminGroup.POST("/blocks", h.Admin.CreateBlock)
		adminGroup.POST("/villas", h.Admin.CreateVilla)
		adminGroup.PUT("/villas/:id", h.Admin.UpdateVilla)
		adminGroup.DELETE("/villas/:id", h.Admin.DeleteVilla)
		adminGroup.POST("/villas/:id/photos", h.Admin.AddVillaPhoto)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
