package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter builds the gin engine with CORS, request logging, recovery and the v1 routes.
func SetupRouter(feeHandler *FeeHandler, statusHandler *StatusHandler, zapLogger *zap.Logger) *gin.Engine {
	router := gin.New()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))
	router.Use(ZapLoggerMiddleware(zapLogger))
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.POST("/fees", feeHandler.EstimateFee)
		v1.POST("/fees/batch", feeHandler.EstimateBatch)
		v1.GET("/chains", feeHandler.ListChains)
		v1.GET("/coins", feeHandler.ListCoins)

		v1.POST("/tx/watch", statusHandler.Watch)
		v1.GET("/tx/:chain/:hash", statusHandler.GetStatus)
		v1.DELETE("/tx/:chain/:hash", statusHandler.StopWatch)
		v1.GET("/tx/:chain/:hash/stream", statusHandler.Stream)
	}

	return router
}
