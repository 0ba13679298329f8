// README: Route estimate handlers; failures come back as advisories.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tarif/internal/modules/routing"
)

type RouteHandler struct {
	routes *routing.Service
}

func NewRouteHandler(svc *routing.Service) *RouteHandler {
	return &RouteHandler{routes: svc}
}

type routeReq struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Estimate handles POST /api/routes/estimate.
func (h *RouteHandler) Estimate(c *gin.Context) {
	var req routeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	est, err := h.routes.Estimate(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		writeRouteError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"estimate": est})
}

// Latest handles GET /api/routes/latest.
func (h *RouteHandler) Latest(c *gin.Context) {
	writeJSON(c, http.StatusOK, h.routes.Latest())
}
