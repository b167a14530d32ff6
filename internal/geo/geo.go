// Package geo provides flat-earth distance and bearing math for the short
// ranges involved in jetway matching.
package geo

import "math"

// MetersPerDegree is the scale for one degree of latitude.
const MetersPerDegree = 60 * 1982.0

// FarAway is returned by Distance when either position is a filter.
const FarAway = 1.0e10

// Pos is a WGS84 position in degrees.
type Pos struct {
	Lat float64
	Lon float64
}

// Filter returns a sentinel position without coordinates. Distance to a
// filter is always FarAway, so degenerate definitions never match anything.
func Filter() Pos {
	return Pos{Lat: math.NaN(), Lon: math.NaN()}
}

// IsFilter reports whether p is the coordinate-less sentinel.
func (p Pos) IsFilter() bool {
	return math.IsNaN(p.Lat) || math.IsNaN(p.Lon)
}

// Distance returns the flat-earth distance between a and b in meters.
func Distance(a, b Pos) float64 {
	if a.IsFilter() || b.IsFilter() {
		return FarAway
	}

	dlat := MetersPerDegree * (a.Lat - b.Lat)
	dlon := MetersPerDegree * (a.Lon - b.Lon) * math.Cos(radians(a.Lat))
	return math.Sqrt(dlat*dlat + dlon*dlon)
}

// Project returns p offset by dist meters along compass heading hdg.
// Only meant for short offsets where the flat-earth error is immaterial.
func Project(p Pos, dist, hdg float64) Pos {
	cosLat := math.Cos(radians(p.Lat))
	return Pos{
		Lat: p.Lat + dist/MetersPerDegree*math.Cos(radians(hdg)),
		Lon: p.Lon + dist/(MetersPerDegree*cosLat)*math.Sin(radians(hdg)),
	}
}

// NormalizeHeading reduces hdg to [0, 360).
func NormalizeHeading(hdg float64) float64 {
	hdg = math.Mod(hdg, 360.0)
	if hdg < 0 {
		hdg += 360.0
	}
	return hdg
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
