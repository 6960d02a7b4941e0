package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"TOURMAP_BACK-END/internal/geo"
	"TOURMAP_BACK-END/internal/repository"
	"TOURMAP_BACK-END/internal/utils"
)

// MapHandler serves the GeoJSON export consumed by the map client
type MapHandler struct {
	highlights HighlightStore
	logger     *zap.Logger
}

// NewMapHandler creates a new MapHandler
func NewMapHandler(highlights HighlightStore, logger *zap.Logger) *MapHandler {
	return &MapHandler{highlights: highlights, logger: logger}
}

// Highlights handles GET /map/highlights
// @Summary GeoJSON of all approved highlights
// @Description Point coordinates are [longitude, latitude]
// @Tags map
// @Produce json
// @Success 200 {object} map[string]interface{} "GeoJSON FeatureCollection"
// @Failure 500 {object} utils.ErrorBody
// @Router /map/highlights [get]
func (h *MapHandler) Highlights(w http.ResponseWriter, r *http.Request) {
	highlights, err := h.highlights.List(r.Context(), repository.HighlightsApproved)
	if err != nil {
		internalError(w, h.logger, "export highlights", err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, geo.HighlightsToFeatureCollection(highlights))
}
