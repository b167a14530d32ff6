// Package sam models the jetway and dock definitions a SAM-equipped airport
// declares in sam.xml.
package sam

import (
	"github.com/hotbso/sam-2-xp12/internal/geo"
)

// Height band (meters) of jetways that XP12 can represent natively.
// Definitions outside the band are dropped at load time.
const (
	MinHeight = 3.5
	MaxHeight = 6.0
)

// Band is an admissible jetway height range in meters.
type Band struct {
	Min, Max float64
}

// DefaultBand covers the heights the native XP12 jetways can represent.
func DefaultBand() Band { return Band{Min: MinHeight, Max: MaxHeight} }

// MatchedRef is the non-owning view of the tile object reference a jetway
// definition was matched against.
type MatchedRef interface {
	Position() geo.Pos
	ObjectHeading() float64
}

// Jetway is one virtual jetway definition from sam.xml.
type Jetway struct {
	Name        string
	Pos         geo.Pos
	Heading     float64 // base heading as declared
	Height      float64
	CabinLength float64 // cabinPos attribute, drives the tunnel class
	MaxExtend   float64
	JwHeading   float64 // base heading plus initialRot1
	CabHeading  float64 // initialRot2, relative to JwHeading
	LengthCode  int     // XP12 tunnel class 0..3, -1 if unsupported

	// MatchedRef is set by the matcher and read by the rotunda synthesizer
	// and the apt.dat injector. Nil while unmatched.
	MatchedRef MatchedRef
}

// Dock is one VDGS dock definition from sam.xml.
type Dock struct {
	Pos     geo.Pos
	Heading float64
}

// lengthCode buckets cabinLength into the XP12 tunnel classes. The ranges
// overlap and the last matching range wins, matching the native tunnel
// models which grow with the class.
func lengthCode(cabinLength float64) int {
	code := -1
	if cabinLength >= 11 && cabinLength <= 23 {
		code = 0
	}
	if cabinLength >= 14 && cabinLength <= 29 {
		code = 1
	}
	if cabinLength >= 17 && cabinLength <= 38 {
		code = 2
	}
	if cabinLength >= 20 && cabinLength <= 47 {
		code = 3
	}
	return code
}
