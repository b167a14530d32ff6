// Package dsf works on the line-oriented text projection of scenery tiles
// as produced by DSFTool. It matches placed objects against SAM definitions,
// removes and renumbers the matched records and synthesizes the native
// rotunda polygons.
package dsf

import (
	"fmt"
	"strings"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// Deleted marks an object definition removed by Renumber. Records carrying
// it render as comments and never reach the binary encoder.
const Deleted = -1

// ObjectDef is one OBJECT_DEF record, identified by its position in the
// definition list. The index doubles as the foreign key used by every
// reference and is never reused once assigned.
type ObjectDef struct {
	Index    int
	Resource string // referenced model path, may contain blanks

	IsJetway bool // set by Match
	IsDock   bool // set by Match

	samChecked bool
	samJW      bool
}

// IsSAMJetway reports whether the referenced model is SAM-controlled,
// probing at most once per definition.
func (d *ObjectDef) IsSAMJetway(probe func(string) bool) bool {
	if !d.samChecked {
		d.samChecked = true
		d.samJW = probe(d.Resource)
	}
	return d.samJW
}

// RefKind distinguishes the placement record flavors. The height-qualified
// kinds carry one extra field.
type RefKind int

const (
	RefObject RefKind = iota // OBJECT: lon lat hdg
	RefMSL                   // OBJECT_MSL: lon lat height hdg
	RefAGL                   // OBJECT_AGL: lon lat height hdg
)

// Keyword returns the record keyword for the kind.
func (k RefKind) Keyword() string {
	switch k {
	case RefMSL:
		return "OBJECT_MSL"
	case RefAGL:
		return "OBJECT_AGL"
	default:
		return "OBJECT"
	}
}

// ObjectRef is one placed instance of an ObjectDef.
type ObjectRef struct {
	Def       *ObjectDef
	TypeIndex int     // foreign key, remapped by Renumber
	Kind      RefKind
	Pos       geo.Pos
	Heading   float64
	Params    string // trailing fields kept verbatim for low-diff output

	IsDock bool // set by Match

	// MatchedDef backlinks to the SAM definition that claimed this
	// reference. Last write wins if several definitions claim it.
	MatchedDef *sam.Jetway
}

// Position implements sam.MatchedRef.
func (r *ObjectRef) Position() geo.Pos { return r.Pos }

// ObjectHeading implements sam.MatchedRef.
func (r *ObjectRef) ObjectHeading() float64 { return r.Heading }

// line is one record of the tile text, tagged by concrete type.
type line interface {
	emit(out []string) []string
}

// rawLine is an opaque passthrough line.
type rawLine string

func (l rawLine) emit(out []string) []string { return append(out, string(l)) }

// defLine renders an OBJECT_DEF, preceded by its index as a comment.
type defLine struct{ d *ObjectDef }

func (l defLine) emit(out []string) []string {
	out = append(out, fmt.Sprintf("# %d", l.d.Index))
	if l.d.Index == Deleted {
		return append(out, "# deleted OBJECT_DEF "+l.d.Resource)
	}
	return append(out, "OBJECT_DEF "+l.d.Resource)
}

// refLine renders an OBJECT placement.
type refLine struct{ r *ObjectRef }

func (l refLine) emit(out []string) []string {
	r := l.r
	if r.TypeIndex == Deleted {
		return append(out, fmt.Sprintf("# deleted %s %d %s", r.Kind.Keyword(), r.TypeIndex, r.Params))
	}
	return append(out, fmt.Sprintf("%s %d %s", r.Kind.Keyword(), r.TypeIndex, r.Params))
}

// Tile holds the parsed records of one scenery tile in original document
// order, so the rewritten output stays diffable against the input.
type Tile struct {
	Path string // source .dsf path, for reporting

	lines       []line
	Defs        []*ObjectDef
	Refs        []*ObjectRef
	facadeCount int // number of POLYGON_DEF records seen

	NumJetways int // references matched as jetways
	NumDocks   int // references flagged as docks
}

// Lines serializes the tile back to DSFTool text form.
func (t *Tile) Lines() []string {
	var out []string
	for _, l := range t.lines {
		out = l.emit(out)
	}
	return out
}

// String implements fmt.Stringer for log output.
func (t *Tile) String() string {
	return strings.ReplaceAll(t.Path, "\\", "/")
}
