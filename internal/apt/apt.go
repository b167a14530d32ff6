// Package apt rewrites the textual airport data file, adding one native
// jetway record per converted SAM definition.
package apt

import (
	"fmt"
	"strings"

	"github.com/hotbso/sam-2-xp12/internal/geo"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// Record formats the native 1500 jetway line for jw. Headings are
// normalized, the cabin heading is relative to the jetway heading.
func Record(jw *sam.Jetway, jwType int) string {
	jwHdg := geo.NormalizeHeading(jw.JwHeading)
	cabHdg := geo.NormalizeHeading(jw.JwHeading + jw.CabHeading)

	return fmt.Sprintf("1500 %0.8f %0.8f %0.1f %d %d %0.1f %0.1f %0.1f",
		jw.Pos.Lat, jw.Pos.Lon, jwHdg, jwType, jw.LengthCode, jwHdg, jw.CabinLength, cabHdg)
}

// InjectJetways copies lines, inserting the jetway records directly before
// each line whose first token is the end-of-airport marker "99". Only
// definitions that were matched to a placed object and carry a supported
// tunnel class are emitted.
func InjectJetways(lines []string, jetways []*sam.Jetway, jwType int) []string {
	out := make([]string, 0, len(lines)+2*len(jetways))

	for _, l := range lines {
		if fields := strings.Fields(l); len(fields) > 0 && fields[0] == "99" {
			for _, jw := range jetways {
				if jw.MatchedRef == nil || jw.LengthCode < 0 {
					continue
				}
				out = append(out, fmt.Sprintf("# '%s'", jw.Name), Record(jw, jwType))
			}
		}
		out = append(out, l)
	}

	return out
}
