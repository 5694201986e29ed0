package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/msomdec/ocean-watch/internal/content"
)

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   geoJSONPoint      `json:"geometry"`
	Properties hotspotProperties `json:"properties"`
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type hotspotProperties struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Severity string `json:"severity,omitempty"`
	Date     string `json:"date,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// toGeoJSON converts hotspots to a FeatureCollection. GeoJSON orders
// coordinates longitude first.
func toGeoJSON(hotspots []content.Hotspot) geoJSONCollection {
	fc := geoJSONCollection{Type: "FeatureCollection", Features: make([]geoJSONFeature, len(hotspots))}
	for i, h := range hotspots {
		fc.Features[i] = geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONPoint{Type: "Point", Coordinates: [2]float64{h.Lon, h.Lat}},
			Properties: hotspotProperties{
				ID:       h.ID,
				Type:     h.Type,
				Severity: h.Severity,
				Date:     h.Date,
				Notes:    h.Notes,
			},
		}
	}
	return fc
}

// DataHandler serves the dashboard datasets as downloadable files.
type DataHandler struct {
	datasets *content.Datasets
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(datasets *content.Datasets) *DataHandler {
	return &DataHandler{datasets: datasets}
}

// HandleSampleData serves the indicator series.
// GET /assets/data/sample-data.json
func (h *DataHandler) HandleSampleData(w http.ResponseWriter, r *http.Request) {
	writeDownload(w, "sample-data.json", h.datasets)
}

// HandleHotspots serves the hotspots as GeoJSON.
// GET /assets/data/geojson.json
func (h *DataHandler) HandleHotspots(w http.ResponseWriter, r *http.Request) {
	writeDownload(w, "geojson.json", toGeoJSON(h.datasets.Hotspots))
}

func writeDownload(w http.ResponseWriter, filename string, data any) {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		slog.Error("encode download", "file", filename, "error", err)
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred.")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(body)
}
