package geo

import (
	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

// Severity weights for the density surface. Heavier alerts pull more
// color into their neighborhood.
const (
	weightCritical = 3.0
	weightWarning  = 2.0
	weightInfo     = 1.0
)

// FeatureCollection is a GeoJSON feature collection holding the heat
// points. Emitted verbatim to the presentation layer.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON point feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   PointGeometry  `json:"geometry"`
	Properties HeatProperties `json:"properties"`
}

// PointGeometry carries coordinates in GeoJSON order: [lon, lat].
type PointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// HeatProperties identifies the alert behind a heat point so the overlay
// can link back to it.
type HeatProperties struct {
	Weight   float64        `json:"weight"`
	Severity model.Severity `json:"severity"`
	AlertID  string         `json:"alert_id"`
}

// BuildHeat joins OPEN alerts to their vehicle's last known position and
// emits one weighted point feature per alert that resolves to a position.
// Alerts whose vehicle is unknown or positionless contribute nothing, so
// the collection never holds more features than there are resolvable open
// alerts. The collection is rebuilt from scratch on every call.
func BuildHeat(p *Projector, alerts []model.Alert, vehicles []model.Vehicle) FeatureCollection {
	index := make(map[string]model.Vehicle, len(vehicles))
	for _, v := range vehicles {
		index[v.ID] = v
	}

	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, a := range alerts {
		if a.Status != model.StatusOpen {
			continue
		}
		v, ok := index[a.VehicleID]
		if !ok {
			continue
		}
		proj, ok := p.ProjectVehicle(v)
		if !ok {
			continue
		}

		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: PointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{proj.Coordinate.Lon, proj.Coordinate.Lat},
			},
			Properties: HeatProperties{
				Weight:   severityWeight(a.Severity),
				Severity: a.Severity,
				AlertID:  a.ID,
			},
		})
	}
	return fc
}

func severityWeight(s model.Severity) float64 {
	switch s {
	case model.SeverityCritical:
		return weightCritical
	case model.SeverityWarning:
		return weightWarning
	default:
		return weightInfo
	}
}
