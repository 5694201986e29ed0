package content

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// DatePoint is one dated observation.
type DatePoint struct {
	Date  string  `yaml:"date" json:"date"`
	Value float64 `yaml:"value" json:"value"`
}

// Year returns the four-digit year of the observation.
func (p DatePoint) Year() string {
	return p.Date[:4]
}

// RegionValue is a value attributed to an ocean region or land region.
type RegionValue struct {
	Region string  `yaml:"region" json:"region"`
	Value  float64 `yaml:"value" json:"value"`
}

// YearCount counts events in a year.
type YearCount struct {
	Year  int `yaml:"year" json:"year"`
	Count int `yaml:"count" json:"count"`
}

// TypeShare is a percentage share of a category.
type TypeShare struct {
	Type  string  `yaml:"type" json:"type"`
	Value float64 `yaml:"value" json:"value"`
}

// Hotspot is a located problem area shown on the dashboard.
type Hotspot struct {
	ID       string  `yaml:"id"`
	Type     string  `yaml:"type"`
	Severity string  `yaml:"severity"`
	Date     string  `yaml:"date"`
	Notes    string  `yaml:"notes"`
	Lat      float64 `yaml:"lat"`
	Lon      float64 `yaml:"lon"`
}

// Datasets holds the dashboard indicator series. The JSON form matches the
// downloadable sample-data.json; hotspots are published separately as GeoJSON.
type Datasets struct {
	SeaTemperature       []DatePoint   `yaml:"sea_temperature" json:"sea_temperature"`
	PlasticByRegion      []RegionValue `yaml:"plastic_by_region" json:"plastic_by_region"`
	FishingPressure      []RegionValue `yaml:"fishing_pressure" json:"fishing_pressure"`
	CoralBleachingByYear []YearCount   `yaml:"coral_bleaching_by_year" json:"coral_bleaching_by_year"`
	PlasticTypes         []TypeShare   `yaml:"plastic_types" json:"plastic_types"`
	Hotspots             []Hotspot     `yaml:"hotspots" json:"-"`
}

// Stat is a headline number on the dashboard.
type Stat struct {
	Label string
	Value string
}

func loadDatasets() (*Datasets, error) {
	raw, err := files.ReadFile("datasets.yaml")
	if err != nil {
		return nil, fmt.Errorf("read datasets: %w", err)
	}

	var d Datasets
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("parse datasets: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (d *Datasets) validate() error {
	if len(d.SeaTemperature) == 0 {
		return fmt.Errorf("datasets: sea_temperature is empty")
	}
	for _, p := range d.SeaTemperature {
		if _, err := time.Parse(time.DateOnly, p.Date); err != nil {
			return fmt.Errorf("datasets: sea_temperature date %q: %w", p.Date, err)
		}
	}
	seen := make(map[string]bool, len(d.Hotspots))
	for _, h := range d.Hotspots {
		if h.ID == "" || seen[h.ID] {
			return fmt.Errorf("datasets: hotspot id %q missing or duplicated", h.ID)
		}
		seen[h.ID] = true
		if h.Lat < -90 || h.Lat > 90 || h.Lon < -180 || h.Lon > 180 {
			return fmt.Errorf("datasets: hotspot %s has invalid coordinates", h.ID)
		}
	}
	return nil
}

// Stats returns the headline numbers derived from the series.
func (d *Datasets) Stats() []Stat {
	first := d.SeaTemperature[0]
	last := d.SeaTemperature[len(d.SeaTemperature)-1]

	var plastic float64
	for _, r := range d.PlasticByRegion {
		plastic += r.Value
	}

	peak := YearCount{}
	for _, y := range d.CoralBleachingByYear {
		if y.Count > peak.Count {
			peak = y
		}
	}

	return []Stat{
		{Label: "Sea surface temperature " + last.Year() + " (°C)", Value: fmt.Sprintf("%.1f", last.Value)},
		{Label: "Warming since " + first.Year() + " (°C)", Value: fmt.Sprintf("+%.1f", last.Value-first.Value)},
		{Label: "Plastic entering the ocean (sample tonnes)", Value: fmt.Sprintf("%.0f", plastic)},
		{Label: fmt.Sprintf("Bleaching events at peak (%d)", peak.Year), Value: fmt.Sprintf("%d", peak.Count)},
		{Label: "Active hotspots", Value: fmt.Sprintf("%d", len(d.Hotspots))},
	}
}
