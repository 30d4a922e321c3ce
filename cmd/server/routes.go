package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"stable-route.backend/internal/interfaces/http/handlers"
	"stable-route.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	adminHandler            *handlers.AdminHandler
	routeHandler            *handlers.RouteHandler
	transferHandler         *handlers.TransferHandler
	settlementHandler       *handlers.SettlementHandler
	adminAuthMiddleware     gin.HandlerFunc
	transportAuthMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Public route and fee lookups
		routes := v1.Group("/routes")
		{
			routes.GET("/key", d.routeHandler.GetRoute)
			routes.GET("/configured", d.routeHandler.ListConfiguredRoutes)
			routes.GET("/plan", d.routeHandler.PlanRoute)
			routes.GET("/destinations", d.routeHandler.ListDestinationTokens)
		}

		fees := v1.Group("/fees")
		{
			fees.GET("/estimate", d.routeHandler.EstimateFee)
		}

		// Transfer dispatch and lookups
		transfers := v1.Group("/transfers")
		{
			transfers.POST("", middleware.IdempotencyMiddleware(), d.transferHandler.CreateTransfer)
			transfers.POST("/with-swap", middleware.IdempotencyMiddleware(), d.transferHandler.CreateTransferWithSwap)
			transfers.GET("", d.transferHandler.ListTransfers)
			transfers.GET("/:id", d.transferHandler.GetTransfer)
			transfers.GET("/:id/events", d.transferHandler.GetTransferEvents)
		}

		// Inbound settlement, restricted to authenticated transport relayers
		settlements := v1.Group("/settlements")
		settlements.Use(d.transportAuthMiddleware)
		{
			settlements.POST("/inbound", middleware.IdempotencyMiddleware(), d.settlementHandler.HandleInbound)
		}

		// Operator configuration
		admin := v1.Group("/admin")
		admin.Use(d.adminAuthMiddleware)
		{
			admin.POST("/routes", d.adminHandler.ConfigureRoute)
			admin.GET("/routes", d.adminHandler.ListRoutes)

			admin.POST("/protocol-contracts", d.adminHandler.SetProtocolContract)
			admin.GET("/protocol-contracts", d.adminHandler.ListProtocolContracts)

			admin.POST("/authorized-senders", d.adminHandler.SetAuthorizedSender)
			admin.GET("/authorized-senders", d.adminHandler.ListAuthorizedSenders)

			admin.POST("/supported-tokens", d.adminHandler.SetSupportedToken)
			admin.GET("/supported-tokens", d.adminHandler.ListSupportedTokens)

			admin.PUT("/fee-config", d.adminHandler.UpdateFeeConfig)
			admin.GET("/fee-config", d.adminHandler.GetFeeConfig)

			admin.POST("/fee-collectors", d.adminHandler.SetFeeCollector)
			admin.GET("/fee-collectors", d.adminHandler.ListFeeCollectors)
			admin.GET("/fee-balances", d.adminHandler.ListFeeBalances)

			admin.POST("/pause", d.adminHandler.Pause)
			admin.POST("/resume", d.adminHandler.Resume)
			admin.GET("/pause", d.adminHandler.GetPauseState)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", middleware.MetricsHandler())
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Admin-API-Key, Idempotency-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
