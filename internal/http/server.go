// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarif/internal/http/handlers"
	"tarif/internal/http/middleware"
	"tarif/internal/modules/invoice"
	"tarif/internal/modules/pricing"
	"tarif/internal/modules/ratesheet"
	"tarif/internal/modules/routing"
)

type ServerDeps struct {
	Rates          *ratesheet.Service
	Pricing        *pricing.Service
	Routes         *routing.Service
	Invoices       *invoice.Service
	DefaultTaxPct  float64
	MaxUploadBytes int64
}

type Server struct {
	rates  *handlers.RateSheetHandler
	routes *handlers.RouteHandler
	quotes *handlers.QuoteHandler

	maxUploadBytes int64
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		rates:  handlers.NewRateSheetHandler(deps.Rates),
		routes: handlers.NewRouteHandler(deps.Routes),
		quotes: handlers.NewQuoteHandler(handlers.QuoteDeps{
			Rates:         deps.Rates,
			Pricing:       deps.Pricing,
			Routes:        deps.Routes,
			Invoices:      deps.Invoices,
			DefaultTaxPct: deps.DefaultTaxPct,
		}),
		maxUploadBytes: deps.MaxUploadBytes,
	}
}

func (s *Server) Routes() http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())
	if s.maxUploadBytes > 0 {
		r.MaxMultipartMemory = s.maxUploadBytes
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	api := r.Group("/api")
	api.POST("/ratesheets", s.limitBody, s.rates.Upload)
	api.GET("/rates", s.rates.List)
	api.GET("/rates/:location", s.rates.Get)

	api.POST("/routes/estimate", s.routes.Estimate)
	api.GET("/routes/latest", s.routes.Latest)

	api.POST("/quotes", s.quotes.Quote)
	api.POST("/invoices", s.quotes.Invoice)
	return r
}

func (s *Server) limitBody(c *gin.Context) {
	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}
	c.Next()
}
