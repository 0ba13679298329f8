// README: Base handler utilities (JSON helpers, loose numeric fields, error mapping).
package handlers

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"tarif/internal/modules/ratesheet"
	"tarif/internal/modules/routing"
)

type errorResponse struct {
	Error    string `json:"error"`
	Advisory string `json:"advisory,omitempty"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// optionalNumber parses a loose JSON value ("12,5", 12.5, "") and reports
// nil when the caller left it unset or unparseable.
func optionalNumber(raw any) *float64 {
	v := ratesheet.ParseNumber(raw, math.NaN())
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func numberOr(raw any, def float64) float64 {
	return ratesheet.ParseNumber(raw, def)
}

func writeRateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ratesheet.ErrUnsupportedFormat):
		writeError(c, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, ratesheet.ErrEmptyWorkbook):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ratesheet.ErrNotLoaded), errors.Is(err, ratesheet.ErrLocationNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusBadRequest, err.Error())
	}
}

func writeRouteError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, routing.ErrInvalidEndpoint):
		status = http.StatusBadRequest
	case errors.Is(err, routing.ErrSuperseded):
		status = http.StatusConflict
	case errors.Is(err, routing.ErrNoRoute):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, routing.ErrMissingCredential):
		status = http.StatusServiceUnavailable
	}
	writeJSON(c, status, errorResponse{Error: err.Error(), Advisory: routing.Advisory(err)})
}
