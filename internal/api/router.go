package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/courtreserve/court-reserve-backend/internal/availability"
	availabilityHttp "github.com/courtreserve/court-reserve-backend/internal/availability/http"
	"github.com/courtreserve/court-reserve-backend/internal/booking"
	bookingHttp "github.com/courtreserve/court-reserve-backend/internal/booking/http"
	"github.com/courtreserve/court-reserve-backend/internal/coach"
	coachHttp "github.com/courtreserve/court-reserve-backend/internal/coach/http"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	courtHttp "github.com/courtreserve/court-reserve-backend/internal/court/http"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	equipmentHttp "github.com/courtreserve/court-reserve-backend/internal/equipment/http"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
	pricingHttp "github.com/courtreserve/court-reserve-backend/internal/pricing/http"
)

// Config holds the services the router exposes over HTTP.
type Config struct {
	IsProduction        bool
	ProdOrigins         string // comma-separated allowed origins in production
	CourtService        court.Service
	EquipmentService    equipment.Service
	CoachService        coach.Service
	PricingService      pricing.Service
	AvailabilityService availability.Service
	BookingService      booking.Service
}

// NewRouter assembles middleware and registers routes for every module.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	equipmentHandler := equipmentHttp.NewHandler(cfg.EquipmentService)
	coachHandler := coachHttp.NewHandler(cfg.CoachService)
	pricingHandler := pricingHttp.NewHandler(cfg.PricingService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)

	root := r.Group("")
	{
		courtHttp.RegisterRoutes(root, courtHandler)
		equipmentHttp.RegisterRoutes(root, equipmentHandler)
		coachHttp.RegisterRoutes(root, coachHandler)
		pricingHttp.RegisterRoutes(root, pricingHandler)
		availabilityHttp.RegisterRoutes(root, availabilityHandler)
		bookingHttp.RegisterRoutes(root, bookingHandler)
	}

	return r
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
