package dsf

import (
	"fmt"
	"testing"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

func noProbe(string) bool { return false }

func testJetway(lat, lon float64) *sam.Jetway {
	return &sam.Jetway{
		Name:        "Gate 1",
		Pos:         geo.Pos{Lat: lat, Lon: lon},
		Heading:     90,
		Height:      4.0,
		CabinLength: 15,
		JwHeading:   90,
		CabHeading:  10,
		LengthCode:  1,
	}
}

func TestMatchSingleCandidate(t *testing.T) {
	t.Parallel()

	tile, err := Parse("test.dsf", []string{
		"OBJECT_DEF objects/jetway.obj",
		"OBJECT_DEF objects/unrelated.obj",
		"OBJECT 0 11.00000000 49.50000000 90.00000000",
		"OBJECT 1 11.10000000 49.60000000 0.00000000",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, noProbe)

	if tile.NumJetways != 1 {
		t.Fatalf("NumJetways = %d, want 1", tile.NumJetways)
	}
	if jw.MatchedRef == nil {
		t.Fatal("jetway not linked to its reference")
	}
	if tile.Refs[0].MatchedDef != jw {
		t.Error("reference not backlinked to the jetway")
	}
	if !tile.Defs[0].IsJetway {
		t.Error("owning def not flagged")
	}
	if tile.Defs[1].IsJetway {
		t.Error("unrelated def flagged")
	}
}

func TestMatchProbeTieBreak(t *testing.T) {
	t.Parallel()

	// Two objects of different types within the radius; only the second
	// one's model carries the SAM marker.
	tile, err := Parse("test.dsf", []string{
		"OBJECT_DEF objects/shadow.obj",
		"OBJECT_DEF objects/jetway.obj",
		"OBJECT 0 11.00000010 49.50000010 90.00000000",
		"OBJECT 1 11.00000000 49.50000000 90.00000000",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	probe := func(resource string) bool { return resource == "objects/jetway.obj" }

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, probe)

	if tile.NumJetways != 1 {
		t.Fatalf("NumJetways = %d, want 1 (probe must pick a unique match)", tile.NumJetways)
	}
	if jw.MatchedRef != sam.MatchedRef(tile.Refs[1]) {
		t.Error("SAM-controlled candidate not selected")
	}
	if tile.Defs[0].IsJetway {
		t.Error("non-SAM candidate flagged despite marker tie-break")
	}
}

func TestMatchAllCandidatesFallback(t *testing.T) {
	t.Parallel()

	// No candidate is confirmed SAM-controlled: all of them are accepted.
	tile, err := Parse("test.dsf", []string{
		"OBJECT_DEF objects/a.obj",
		"OBJECT_DEF objects/b.obj",
		"OBJECT 0 11.00000010 49.50000010 90.00000000",
		"OBJECT 1 11.00000000 49.50000000 90.00000000",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, noProbe)

	if tile.NumJetways != 2 {
		t.Fatalf("NumJetways = %d, want 2 (fallback accepts all spatial candidates)", tile.NumJetways)
	}
	if !tile.Defs[0].IsJetway || !tile.Defs[1].IsJetway {
		t.Error("fallback must flag every candidate's def")
	}
}

func TestMatchRadius(t *testing.T) {
	t.Parallel()

	tile, err := Parse("test.dsf", []string{
		"OBJECT_DEF objects/a.obj",
		"OBJECT 0 11.00000000 49.50001000 90.00000000", // ~1.2m north
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, noProbe)

	if tile.NumJetways != 0 {
		t.Fatalf("object outside the radius matched")
	}
}

func TestMatchDockThreshold(t *testing.T) {
	t.Parallel()

	// Place one dock and two objects 0.99m and 1.01m due north of it.
	dock := &sam.Dock{Pos: geo.Pos{Lat: 49.5, Lon: 11.0}}
	near := geo.Project(dock.Pos, 0.99, 0)
	far := geo.Project(dock.Pos, 1.01, 0)

	tile, err := Parse("test.dsf", []string{
		"OBJECT_DEF objects/dock.obj",
		"OBJECT_DEF objects/other.obj",
		refRecord(0, near),
		refRecord(1, far),
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	tile.Match(nil, []*sam.Dock{dock}, 0.5, noProbe)

	if tile.NumDocks != 1 {
		t.Fatalf("NumDocks = %d, want 1", tile.NumDocks)
	}
	if !tile.Refs[0].IsDock || !tile.Defs[0].IsDock {
		t.Error("object at 0.99m not flagged as dock")
	}
	if tile.Refs[1].IsDock || tile.Defs[1].IsDock {
		t.Error("object at 1.01m flagged as dock")
	}
}

func refRecord(idx int, p geo.Pos) string {
	return fmt.Sprintf("OBJECT %d %.8f %.8f 90.00000000", idx, p.Lon, p.Lat)
}
