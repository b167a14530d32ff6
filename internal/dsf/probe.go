package dsf

import (
	"bufio"
	"os"
	"strings"
)

// markerToken appears in the model files of SAM-controlled jetways.
const markerToken = "sam/jetway/rotate1"

// ProbeForMarker reports whether the model file at path contains the SAM
// animation dataref. A missing or unreadable file is no error, the resource
// then simply is not SAM-controlled.
func ProbeForMarker(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if strings.Contains(sc.Text(), markerToken) {
			return true
		}
	}

	return false
}
