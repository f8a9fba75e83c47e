package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"reclaim-market/internal/models"
	"reclaim-market/internal/service"
	"reclaim-market/internal/util"
)

// Handler contains HTTP handlers
type Handler struct {
	auth      *service.AuthService
	materials *service.MaterialService
	orders    *service.OrderService
	payments  *service.PaymentService
	stats     *service.StatsService
}

// NewHandler creates a new HTTP handler
func NewHandler(
	auth *service.AuthService,
	materials *service.MaterialService,
	orders *service.OrderService,
	payments *service.PaymentService,
	stats *service.StatsService,
) *Handler {
	return &Handler{
		auth:      auth,
		materials: materials,
		orders:    orders,
		payments:  payments,
		stats:     stats,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	router.GET("/materials", h.listMaterials)
	router.GET("/materials/:id", h.getMaterial)

	authed := router.Group("", h.Authenticate())
	{
		authed.GET("/auth/me", h.me)

		seller := authed.Group("", RequireRole(models.RoleSeller))
		{
			seller.POST("/materials", h.createMaterial)
			seller.PUT("/materials/:id", h.updateMaterial)
			seller.DELETE("/materials/:id", h.deleteMaterial)
			seller.GET("/materials/my", h.myMaterials)
			seller.PUT("/orders/:id/approve", h.decideOrder)
			seller.PUT("/orders/:id/pickup", h.pickupOrder)
			seller.GET("/orders/my-sells", h.mySells)
			seller.GET("/stats/seller", h.sellerStats)
		}

		buyer := authed.Group("", RequireRole(models.RoleBuyer))
		{
			buyer.POST("/orders", h.createOrder)
			buyer.PUT("/orders/:id/complete", h.completeOrder)
			buyer.GET("/orders/my-buys", h.myBuys)
			buyer.POST("/payments/create", h.createPaymentIntent)
			buyer.POST("/payments/verify", h.verifyPayment)
			buyer.GET("/stats/buyer", h.buyerStats)
		}

		admin := authed.Group("", RequireRole(models.RoleAdmin))
		{
			admin.GET("/orders/admin/all", h.allOrders)
			admin.PUT("/orders/admin/:id/cancel", h.adminCancelOrder)
			admin.GET("/users/admin/all", h.listUsers)
			admin.PUT("/users/admin/:id/toggle", h.toggleUserBlock)
			admin.GET("/stats/admin", h.adminStats)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
