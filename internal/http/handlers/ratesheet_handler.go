// README: Rate sheet upload and rate preview handlers.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tarif/internal/modules/ratesheet"
)

type RateSheetHandler struct {
	rates *ratesheet.Service
}

func NewRateSheetHandler(svc *ratesheet.Service) *RateSheetHandler {
	return &RateSheetHandler{rates: svc}
}

type rateTableResp struct {
	Sheet           string            `json:"sheet"`
	Count           int               `json:"count"`
	Locations       []string          `json:"locations"`
	BoundHeaders    map[string]string `json:"bound_headers"`
	DefaultLocation string            `json:"default_location,omitempty"`
}

func newRateTableResp(t *ratesheet.RateTable) rateTableResp {
	bound := make(map[string]string, len(t.Mapping()))
	for f, col := range t.Mapping() {
		bound[string(f)] = col.Label
	}
	resp := rateTableResp{
		Sheet:        t.SheetName(),
		Count:        t.Len(),
		Locations:    t.Locations(),
		BoundHeaders: bound,
	}
	if rec, ok := t.Default(); ok {
		resp.DefaultLocation = rec.Location
	}
	return resp
}

// Upload handles POST /api/ratesheets with a multipart "file" field.
func (h *RateSheetHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusBadRequest, "missing file")
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable file")
		return
	}
	defer f.Close()

	t, err := h.rates.Load(c.Request.Context(), fh.Filename, f)
	if err != nil {
		writeRateError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, newRateTableResp(t))
}

// List handles GET /api/rates.
func (h *RateSheetHandler) List(c *gin.Context) {
	t := h.rates.Current()
	if t == nil {
		writeRateError(c, ratesheet.ErrNotLoaded)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"sheet": t.SheetName(), "rates": t.Records()})
}

// Get handles GET /api/rates/:location.
func (h *RateSheetHandler) Get(c *gin.Context) {
	rec, err := h.rates.Lookup(strings.TrimSpace(c.Param("location")))
	if err != nil {
		writeRateError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}
