package dsf

import (
	"math"
	"strings"
	"testing"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

func TestAddRotundas(t *testing.T) {
	t.Parallel()

	tile := parseTile(t, []string{
		"POLYGON_DEF facades/fence.fac",
		"POLYGON_DEF facades/wall.fac",
		"OBJECT_DEF objects/jw.obj",
		"OBJECT 0 11.00000000 49.50000000 90.00000000",
	})

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, noProbe)
	if jw.MatchedRef == nil {
		t.Fatal("setup: jetway not matched")
	}

	unmatched := testJetway(49.6, 11.1)
	unmatched.Name = "Gate 2"

	tile.AddRotundas([]*sam.Jetway{jw, unmatched}, DarkGlass.DefaultResource(), 1.0, nil)

	out := tile.Lines()
	text := strings.Join(out, "\n")

	if !strings.Contains(text, "POLYGON_DEF lib/airport/Ramp_Equipment/Jetways/Jetway_2_glass.fac") {
		t.Errorf("facade definition missing:\n%s", text)
	}

	// New facade gets the next free polygon definition slot.
	if !strings.Contains(text, "BEGIN_POLYGON 2 5 3") {
		t.Errorf("polygon does not use facade index 2:\n%s", text)
	}

	// Exactly one polygon: the unmatched definition is skipped.
	if n := strings.Count(text, "BEGIN_POLYGON"); n != 1 {
		t.Errorf("polygons = %d, want 1", n)
	}

	// First point anchors at the matched object's position.
	if !strings.Contains(text, "POLYGON_POINT 11.0000000 49.5000000 0.0") {
		t.Errorf("start point missing:\n%s", text)
	}

	// Second point lies one meter behind, against the placed heading (90°),
	// so due west: longitude shrinks, latitude stays.
	end := geo.Project(geo.Pos{Lat: 49.5, Lon: 11.0}, -1.0, 90.0)
	if end.Lon >= 11.0 {
		t.Fatalf("projection sanity: end.Lon = %v", end.Lon)
	}

	// The jetway position now carries the rotunda center.
	if math.Abs(jw.Pos.Lon-end.Lon) > 1e-12 || math.Abs(jw.Pos.Lat-end.Lat) > 1e-12 {
		t.Errorf("jetway position not moved to the projected point: %+v", jw.Pos)
	}

	// The unmatched definition keeps its position.
	if unmatched.Pos.Lat != 49.6 {
		t.Errorf("unmatched jetway position mutated: %+v", unmatched.Pos)
	}
}

func TestAddRotundasCustomResource(t *testing.T) {
	t.Parallel()

	tile := parseTile(t, []string{
		"OBJECT_DEF objects/jw.obj",
		"OBJECT 0 11.00000000 49.50000000 90.00000000",
	})

	jw := testJetway(49.5, 11.0)
	tile.Match([]*sam.Jetway{jw}, nil, 0.5, noProbe)

	tile.AddRotundas([]*sam.Jetway{jw}, "MyLib/custom_jw.fac", 1.0, nil)

	text := strings.Join(tile.Lines(), "\n")
	if !strings.Contains(text, "POLYGON_DEF MyLib/custom_jw.fac") {
		t.Errorf("custom facade definition missing:\n%s", text)
	}
}
