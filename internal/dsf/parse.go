package dsf

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse builds a Tile from decoded tile text. Only OBJECT_DEF and
// OBJECT[_MSL|_AGL] records are interpreted; everything else, comments and
// blank lines included, passes through untouched.
func Parse(path string, lines []string) (*Tile, error) {
	t := &Tile{Path: path}

	for n, l := range lines {
		l = strings.TrimRight(l, " \t\r\n")

		switch {
		case strings.HasPrefix(l, "OBJECT_DEF"):
			// The resource path may contain blanks, take the raw remainder.
			d := &ObjectDef{
				Index:    len(t.Defs),
				Resource: strings.TrimPrefix(l, "OBJECT_DEF "),
			}
			t.Defs = append(t.Defs, d)
			t.lines = append(t.lines, defLine{d})

		case strings.HasPrefix(l, "OBJECT"):
			r, err := t.parseRef(l)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, n+1, err)
			}
			t.Refs = append(t.Refs, r)
			t.lines = append(t.lines, refLine{r})

		case strings.HasPrefix(l, "POLYGON_DEF"):
			t.facadeCount++
			t.lines = append(t.lines, rawLine(l))

		default:
			t.lines = append(t.lines, rawLine(l))
		}
	}

	return t, nil
}

// parseRef decodes one OBJECT[_MSL|_AGL] record.
func (t *Tile) parseRef(l string) (*ObjectRef, error) {
	kw, idxField, params, ok := split3(l)
	if !ok {
		return nil, fmt.Errorf("malformed object reference %q", l)
	}

	var kind RefKind
	switch kw {
	case "OBJECT":
		kind = RefObject
	case "OBJECT_MSL":
		kind = RefMSL
	case "OBJECT_AGL":
		kind = RefAGL
	default:
		return nil, fmt.Errorf("unknown object record %q", kw)
	}

	idx, err := strconv.Atoi(idxField)
	if err != nil {
		return nil, fmt.Errorf("object type index %q: %w", idxField, err)
	}
	if idx < 0 || idx >= len(t.Defs) {
		return nil, fmt.Errorf("object type index %d out of range (%d defs)", idx, len(t.Defs))
	}

	r := &ObjectRef{
		Def:       t.Defs[idx],
		TypeIndex: idx,
		Kind:      kind,
		Params:    params,
	}

	words := strings.Fields(params)
	want := 3
	if kind != RefObject {
		want = 4
	}
	if len(words) < want {
		return nil, fmt.Errorf("object reference %q: want %d fields, got %d", l, want, len(words))
	}

	if r.Pos.Lon, err = strconv.ParseFloat(words[0], 64); err != nil {
		return nil, fmt.Errorf("object longitude %q: %w", words[0], err)
	}
	if r.Pos.Lat, err = strconv.ParseFloat(words[1], 64); err != nil {
		return nil, fmt.Errorf("object latitude %q: %w", words[1], err)
	}

	if kind == RefObject {
		if r.Heading, err = strconv.ParseFloat(words[2], 64); err != nil {
			return nil, fmt.Errorf("object heading %q: %w", words[2], err)
		}
		return r, nil
	}

	height, err := strconv.ParseFloat(words[2], 64)
	if err != nil {
		return nil, fmt.Errorf("object height %q: %w", words[2], err)
	}
	// Imported sceneries occasionally carry negative heights which the
	// text2dsf encoder rejects; clamp before any round trip.
	if height < 0 {
		words[2] = "0.0"
		r.Params = strings.Join(words, " ")
	}

	if r.Heading, err = strconv.ParseFloat(words[3], 64); err != nil {
		return nil, fmt.Errorf("object heading %q: %w", words[3], err)
	}

	return r, nil
}

// split3 splits a record into keyword, second token and the verbatim
// remainder.
func split3(s string) (kw, second, rest string, ok bool) {
	i := strings.IndexByte(s, ' ')
	if i < 0 {
		return "", "", "", false
	}
	kw = s[:i]

	s = strings.TrimLeft(s[i:], " ")
	i = strings.IndexByte(s, ' ')
	if i < 0 {
		return "", "", "", false
	}
	second = s[:i]

	rest = strings.TrimLeft(s[i:], " ")
	if rest == "" {
		return "", "", "", false
	}

	return kw, second, rest, true
}
