package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/courtreserve/court-reserve-backend/internal/api"
	"github.com/courtreserve/court-reserve-backend/internal/availability"
	"github.com/courtreserve/court-reserve-backend/internal/booking"
	"github.com/courtreserve/court-reserve-backend/internal/coach"
	"github.com/courtreserve/court-reserve-backend/internal/court"
	"github.com/courtreserve/court-reserve-backend/internal/equipment"
	"github.com/courtreserve/court-reserve-backend/internal/pricing"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	RedisClient  *redis.Client // nil disables the slot-grid cache
	SlotCacheTTL time.Duration
	Logger       *zap.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Court Module
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo)

	// Equipment Module
	equipmentRepo := equipment.NewPgxRepository(cfg.DBPool)
	equipmentService := equipment.NewService(equipmentRepo)

	// Coach Module
	coachRepo := coach.NewPgxRepository(cfg.DBPool)
	coachService := coach.NewService(coachRepo)

	// Pricing Module
	pricingRepo := pricing.NewPgxRepository(cfg.DBPool)
	pricingService := pricing.NewService(pricingRepo, courtService, coachService, equipmentService)

	// Availability Module
	var slotCache *availability.SlotCache
	if cfg.RedisClient != nil {
		slotCache = availability.NewSlotCache(cfg.RedisClient, cfg.SlotCacheTTL)
	}
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, courtService, coachService, equipmentService, slotCache)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, availabilityService, pricingService, cfg.Logger)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		CourtService:        courtService,
		EquipmentService:    equipmentService,
		CoachService:        coachService,
		PricingService:      pricingService,
		AvailabilityService: availabilityService,
		BookingService:      bookingService,
	})

	return &Container{Router: router}
}
