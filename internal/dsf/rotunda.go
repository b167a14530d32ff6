package dsf

import (
	"fmt"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/log"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// JetwayVariant selects the native facade used for the synthesized rotundas.
type JetwayVariant int

// The four native jetway styles of XP12.
const (
	LightSolid JetwayVariant = iota
	LightGlass
	DarkSolid
	DarkGlass
)

var variantResources = [4]string{
	"Jetway_1_solid.fac",
	"Jetway_1_glass.fac",
	"Jetway_2_solid.fac",
	"Jetway_2_glass.fac",
}

// Valid reports whether v is one of the four styles.
func (v JetwayVariant) Valid() bool {
	return v >= LightSolid && v <= DarkGlass
}

// Resource returns the facade file for the variant.
func (v JetwayVariant) Resource() string {
	return variantResources[v]
}

// DefaultResource returns the stock library path of the variant's facade.
func (v JetwayVariant) DefaultResource() string {
	return "lib/airport/Ramp_Equipment/Jetways/" + v.Resource()
}

// AddRotundas appends a facade definition for resource and one two-point
// rotunda polygon per matched jetway. The polygon starts at the matched
// object's position and ends one rotunda length behind it along the placed
// object's heading; the placed orientation is authoritative, not the SAM
// definition's own heading.
//
// Each jetway's stored position is moved to the projected point afterward,
// so the apt.dat record later anchors at the rotunda center.
func (t *Tile) AddRotundas(jetways []*sam.Jetway, resource string, rotundaLength float64, lg *log.Logger) {
	t.lines = append(t.lines, rawLine("POLYGON_DEF "+resource))

	for _, jw := range jetways {
		if jw.MatchedRef == nil {
			lg.Warnf("unmatched sam jetway: '%s' %f %f", jw.Name, jw.Pos.Lat, jw.Pos.Lon)
			continue
		}

		start := jw.MatchedRef.Position()
		hdg := jw.MatchedRef.ObjectHeading()
		end := geo.Project(start, -rotundaLength, hdg)

		t.lines = append(t.lines,
			rawLine(fmt.Sprintf("# '%s'", jw.Name)),
			rawLine(fmt.Sprintf("BEGIN_POLYGON %d 5 3", t.facadeCount)),
			rawLine("BEGIN_WINDING"),
			rawLine(fmt.Sprintf("POLYGON_POINT %0.7f %0.7f 0.0", start.Lon, start.Lat)),
			rawLine(fmt.Sprintf("POLYGON_POINT %0.7f %0.7f 0.0", end.Lon, end.Lat)),
			rawLine("END_WINDING"),
			rawLine("END_POLYGON"))

		jw.Pos = end
	}
}
