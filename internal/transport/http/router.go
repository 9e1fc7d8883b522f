package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/light-bringer/fnb-pricing-service/internal/platform/logger"
)

// NewRouter wires the pricing API routes.
func NewRouter(h *PricingHandler, log *logger.Logger, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/brands", h.ListBrands)
		v1.GET("/brands/:brand/items", h.ListItems)
		v1.GET("/brands/:brand/items/:item/prices", h.CurrentRows)
		v1.POST("/brands/:brand/items/:item/evaluations", h.Evaluate)
		v1.POST("/brands/:brand/items/:item/commits", h.Commit)
		v1.GET("/transactions", h.ListTransactions)
		v1.GET("/transactions/:batch_id", h.GetBatch)
	}

	return r
}
