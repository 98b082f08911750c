package api

import (
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/handler"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/api/middleware"
	"github.com/edwinyoner/winner-systems-smart-parking-platform-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func SetupRouter(
	authService *service.AuthService,
	catalogService *service.CatalogService,
	facilityService *service.FacilityService,
	pricingService *service.PricingService,
	occupancyService *service.OccupancyService,
	authMw *middleware.AuthMiddleware,
	wsManager *handler.WebSocketManager,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// websocket occupancy feed, no auth on the upgrade
	wsHandler := handler.NewWebSocketHandler(wsManager, log)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authHandler := handler.NewAuthHandler(authService)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
	}

	v1 := r.Group("/api/v1")
	v1.Use(authMw.Authenticate())
	{
		shiftH := handler.NewShiftHandler(catalogService)
		shiftRoutes := v1.Group("/shifts")
		{
			shiftRoutes.POST("", authMw.AuthorizeRole("admin"), shiftH.CreateShift)
			shiftRoutes.GET("", shiftH.ListShifts)
			shiftRoutes.GET("/:id", shiftH.GetShift)
			shiftRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), shiftH.UpdateShift)
			shiftRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), shiftH.DeleteShift)
			shiftRoutes.POST("/:id/restore", authMw.AuthorizeRole("admin"), shiftH.RestoreShift)
		}

		rateH := handler.NewRateHandler(catalogService)
		rateRoutes := v1.Group("/rates")
		{
			rateRoutes.POST("", authMw.AuthorizeRole("admin"), rateH.CreateRate)
			rateRoutes.GET("", rateH.ListRates)
			rateRoutes.GET("/:id", rateH.GetRate)
			rateRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), rateH.UpdateRate)
			rateRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), rateH.DeleteRate)
			rateRoutes.POST("/:id/restore", authMw.AuthorizeRole("admin"), rateH.RestoreRate)
		}

		parkingH := handler.NewParkingHandler(facilityService, occupancyService)
		pricingH := handler.NewPricingHandler(pricingService)
		parkingRoutes := v1.Group("/parkings")
		{
			parkingRoutes.POST("", authMw.AuthorizeRole("admin"), parkingH.CreateParking)
			parkingRoutes.GET("", parkingH.ListParkings)
			parkingRoutes.GET("/:id", parkingH.GetParking)
			parkingRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), parkingH.UpdateParking)
			parkingRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), parkingH.DeleteParking)
			parkingRoutes.GET("/:id/occupancy", parkingH.GetParkingOccupancy)

			parkingRoutes.POST("/:id/zones", authMw.AuthorizeRole("admin"), parkingH.CreateZone)
			parkingRoutes.GET("/:id/zones", parkingH.ListZones)

			parkingRoutes.POST("/:id/shift-rates", authMw.AuthorizeRole("admin"), pricingH.ConfigureShiftRates)
			parkingRoutes.GET("/:id/shift-rates", pricingH.GetParkingShiftRates)
			parkingRoutes.GET("/:id/rate", pricingH.ResolveRate)
		}

		zoneH := handler.NewZoneHandler(facilityService, occupancyService)
		zoneRoutes := v1.Group("/zones")
		{
			zoneRoutes.GET("/:id", zoneH.GetZone)
			zoneRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), zoneH.UpdateZone)
			zoneRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), zoneH.DeleteZone)
			zoneRoutes.GET("/:id/occupancy", zoneH.GetZoneOccupancy)
			zoneRoutes.POST("/:id/spaces", authMw.AuthorizeRole("admin"), zoneH.CreateSpace)
			zoneRoutes.GET("/:id/spaces", zoneH.ListSpaces)
		}

		spaceH := handler.NewSpaceHandler(facilityService)
		spaceRoutes := v1.Group("/spaces")
		{
			spaceRoutes.GET("/:id", spaceH.GetSpace)
			spaceRoutes.PUT("/:id", authMw.AuthorizeRole("admin"), spaceH.UpdateSpace)
			spaceRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), spaceH.DeleteSpace)
			spaceRoutes.PATCH("/:id/status", authMw.AuthorizeRole("admin", "operator"), spaceH.UpdateSpaceStatus)
		}

		shiftRateRoutes := v1.Group("/shift-rates")
		{
			shiftRateRoutes.DELETE("/:id", authMw.AuthorizeRole("admin"), pricingH.DeleteShiftRateConfig)
			shiftRateRoutes.PATCH("/:id/toggle", authMw.AuthorizeRole("admin"), pricingH.ToggleShiftRateStatus)
		}
	}
	return r
}
