// Package geo maps raw planar telemetry coordinates onto stable map
// coordinates and builds the weighted point collection backing the
// incident density overlay.
package geo

import (
	"hash/fnv"
	"math"

	"github.com/daivikpurani/Autonomous-Fleet-Response-System/internal/monitor/model"
)

const (
	// Anchor of the synthetic corridor fan, in the Boston Seaport district.
	anchorLat = 42.3519
	anchorLon = -71.0434

	// Approximate meters per degree of latitude. Longitude scaling is
	// derived from this at the anchor latitude.
	metersPerDegreeLat = 111320.0

	// Radial spacing between corridor anchors, in meters.
	corridorSpacingMeters = 350.0
)

// Coordinate is a geographic position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Projection is the map-facing output for one vehicle: where to draw the
// marker and which way it faces. Heading is a compass bearing in degrees,
// clockwise from north, normalized to [0, 360).
type Projection struct {
	Coordinate Coordinate `json:"coordinate"`
	Heading    float64    `json:"heading"`
}

// corridor is one synthetic path of the fan. Each corridor has its own
// anchor, offset from the Seaport anchor, and a fixed compass bearing the
// raw planar frame is rotated into.
type corridor struct {
	anchor     Coordinate
	bearingRad float64
}

// Projector deterministically assigns each vehicle identity to one of a
// fixed set of synthetic corridors and converts the vehicle's raw planar
// coordinates into geographic ones in that corridor's frame. The mapping
// is a pure function of (vehicleID, x, y), which keeps markers stable
// across recomputations.
type Projector struct {
	corridors []corridor
}

// NewProjector builds a projector with pathCount corridors fanned evenly
// around the anchor. pathCount values below one are clamped to one.
func NewProjector(pathCount int) *Projector {
	if pathCount < 1 {
		pathCount = 1
	}

	corridors := make([]corridor, pathCount)
	for i := range corridors {
		// Spread anchors on a ring around the center, each corridor
		// heading outward along its own radial.
		angle := 2 * math.Pi * float64(i) / float64(pathCount)
		corridors[i] = corridor{
			anchor:     offset(Coordinate{Lat: anchorLat, Lon: anchorLon}, corridorSpacingMeters*math.Sin(angle), corridorSpacingMeters*math.Cos(angle)),
			bearingRad: angle,
		}
	}

	return &Projector{corridors: corridors}
}

// DefaultCenter returns the view center used before any vehicle has
// reported a position.
func (p *Projector) DefaultCenter() Coordinate {
	return Coordinate{Lat: anchorLat, Lon: anchorLon}
}

// Project converts a raw planar position in meters into a geographic
// coordinate and heading. The corridor is selected by hashing vehicleID,
// so a given vehicle always lands on the same corridor. A non-nil yaw
// (radians, counter-clockwise from the local +x axis) overrides the
// corridor-tangent heading.
func (p *Projector) Project(vehicleID string, x, y float64, yaw *float64) Projection {
	c := p.corridors[corridorIndex(vehicleID, len(p.corridors))]

	// Rotate the local frame so +x runs along the corridor bearing, then
	// split into east/north displacement.
	sin, cos := math.Sin(c.bearingRad), math.Cos(c.bearingRad)
	east := x*sin + y*cos
	north := x*cos - y*sin

	heading := radToDeg(c.bearingRad)
	if yaw != nil {
		// Local counter-clockwise yaw turns the compass bearing the
		// opposite way.
		heading = radToDeg(c.bearingRad) - radToDeg(*yaw)
	}

	return Projection{
		Coordinate: offset(c.anchor, east, north),
		Heading:    normalizeDeg(heading),
	}
}

// ProjectVehicle projects a vehicle record, reporting false when the
// record carries no usable position.
func (p *Projector) ProjectVehicle(v model.Vehicle) (Projection, bool) {
	if !v.HasPosition() {
		return Projection{}, false
	}
	return p.Project(v.ID, *v.X, *v.Y, v.Yaw), true
}

// corridorIndex hashes id with FNV-1a and reduces it onto [0, n).
func corridorIndex(id string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(id))
	return int(h.Sum32() % uint32(n))
}

// offset displaces a coordinate by east/north meters using an
// equirectangular approximation, which is accurate at corridor scale.
func offset(c Coordinate, eastMeters, northMeters float64) Coordinate {
	return Coordinate{
		Lat: c.Lat + northMeters/metersPerDegreeLat,
		Lon: c.Lon + eastMeters/(metersPerDegreeLat*math.Cos(degToRad(c.Lat))),
	}
}

func radToDeg(r float64) float64 { return r * 180 / math.Pi }

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
