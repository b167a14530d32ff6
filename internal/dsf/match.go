package dsf

import (
	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/log"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// dockRadius is the fixed distance below which a placed object counts as a
// SAM dock.
const dockRadius = 1.0

// Match pairs the tile's object references against the SAM definitions and
// flags the matched records in place. probe checks whether a model resource
// is SAM-controlled; Match caches its answer per definition.
//
// For each jetway definition all references within radius are candidates.
// If one of them is confirmed SAM-controlled it alone is taken, otherwise
// every spatial candidate is accepted. The fallback mirrors the behavior of
// earlier converter releases; whether multi-matching was ever intended is
// unclear, but converted sceneries depend on it.
func (t *Tile) Match(jetways []*sam.Jetway, docks []*sam.Dock, radius float64, probe func(string) bool) {
	for _, jw := range jetways {
		var candidates []*ObjectRef
		for _, r := range t.Refs {
			if geo.Distance(jw.Pos, r.Pos) < radius {
				candidates = append(candidates, r)
			}
		}

		// A confirmed SAM-controlled object wins alone.
		haveSAM := false
		for _, r := range candidates {
			if r.Def.IsSAMJetway(probe) {
				haveSAM = true
				t.acceptJetway(jw, r)
				break
			}
		}

		if !haveSAM {
			for _, r := range candidates {
				t.acceptJetway(jw, r)
			}
		}
	}

	for _, r := range t.Refs {
		if nearDock(r, docks) {
			r.IsDock = true
			r.Def.IsDock = true
			t.NumDocks++
		}
	}
}

// acceptJetway records one jetway match with bidirectional links.
func (t *Tile) acceptJetway(jw *sam.Jetway, r *ObjectRef) {
	r.MatchedDef = jw
	jw.MatchedRef = r
	r.Def.IsJetway = true
	t.NumJetways++
}

// nearDock reports whether r lies within dockRadius of any dock definition.
func nearDock(r *ObjectRef, docks []*sam.Dock) bool {
	for _, d := range docks {
		if geo.Distance(d.Pos, r.Pos) < dockRadius {
			return true
		}
	}
	return false
}

// ReportMatches logs the matched definitions and references of the tile.
func (t *Tile) ReportMatches(lg *log.Logger) {
	if t.NumJetways > 0 {
		lg.Infof("OBJECT_DEFs belonging to jetways in %s", t)
		for _, d := range t.Defs {
			if d.IsJetway {
				lg.Infof("%3d: OBJECT_DEF %s", d.Index, d.Resource)
			}
		}

		lg.Infof("OBJECT refs belonging to jetways in %s", t)
		for _, r := range t.Refs {
			if r.Def.IsJetway && r.MatchedDef != nil {
				lg.Infof(" %-8s %s %d %s", r.MatchedDef.Name, r.Kind.Keyword(), r.TypeIndex, r.Params)
			}
		}
	}

	if t.NumDocks > 0 {
		lg.Infof("OBJECT_DEFs that are docks in %s", t)
		for _, d := range t.Defs {
			if d.IsDock {
				lg.Infof(" OBJECT_DEF %s", d.Resource)
			}
		}
	}
}
