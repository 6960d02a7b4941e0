// Package geo turns highlights into GeoJSON for the map client.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"TOURMAP_BACK-END/internal/models"
)

// HighlightsToFeatureCollection builds a point FeatureCollection from the
// approved highlights that have both coordinates. Points are [lon, lat].
func HighlightsToFeatureCollection(highlights []models.Highlight) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, h := range highlights {
		if !h.IsApproved || h.Latitude == nil || h.Longitude == nil {
			continue
		}

		f := geojson.NewFeature(orb.Point{*h.Longitude, *h.Latitude})
		f.Properties = geojson.Properties{
			"id":                  h.ID.String(),
			"name":                h.Name,
			"description":         h.Description,
			"category":            string(h.Category),
			"businessDescription": h.BusinessDescription,
		}
		fc.Append(f)
	}
	return fc
}
