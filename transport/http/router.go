// Package http is the network edge of the gate: it maps inbound HTTP
// requests onto the verification engine's two operations and carries
// the engine's bodies back unchanged.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dictgate/dictgate/corpus"
	"github.com/dictgate/dictgate/service"
)

// SetupRouter sets up the Gin router. A nil gatherer disables the
// metrics endpoint.
func SetupRouter(gate *service.GateService, corp *corpus.Corpus, logger *slog.Logger, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(RequestLogger(logger), gin.Recovery())

	handlers := NewGateHandlers(gate)

	// The gate protocol: GET starts a run, POST answers the
	// outstanding challenge.
	router.GET("/", handlers.Issue)
	router.POST("/", handlers.Answer)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"corpus_words": corp.Len(),
		})
	})

	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return router
}
