package dsf

import "strings"

// LibraryResource reports whether the resource path references one of the
// SAM library packs.
func LibraryResource(name string) bool {
	return strings.Contains(name, "SAM_Library") || strings.Contains(name, "SAM3_Library")
}

// Renumber removes the matched object definitions from the tile and assigns
// the survivors compact indices in their original order. When
// removeLibraryObjects is set, definitions referencing the SAM library packs
// are removed as well.
//
// Deleted records stay in the line sequence and render as comments; only
// the reference remapping makes them disappear from the binary encoding.
// Returns false if nothing was removed, in which case the tile must not be
// rewritten at all.
func (t *Tile) Renumber(removeLibraryObjects bool) bool {
	changed := false

	newIndex := 0
	for _, d := range t.Defs {
		if d.IsJetway || d.IsDock || (removeLibraryObjects && LibraryResource(d.Resource)) {
			d.Index = Deleted
			changed = true
			continue
		}
		d.Index = newIndex
		newIndex++
	}

	if !changed {
		return false
	}

	// Remap every reference. A single indirection suffices, definitions are
	// never removed transitively through other definitions.
	for _, r := range t.Refs {
		r.TypeIndex = r.Def.Index
	}

	return true
}
