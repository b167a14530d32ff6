package convert

import (
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/invopop/yaml"
)

// manifest records what a conversion run produced. The per-tile checksum is
// taken over the emitted text projection, so a later run can tell whether a
// tile was produced by this tool.
type manifest struct {
	JwType int         `json:"jw_type"`
	Tiles  []tileEntry `json:"tiles,omitempty"`
}

// tileEntry is one rewritten tile in the manifest.
type tileEntry struct {
	Path string `json:"path"`
	Hash string `json:"xxh64"`
}

// add records a rewritten tile and the checksum of its text form.
func (m *manifest) add(path string, lines []string) {
	sum := xxhash.Sum64String(strings.Join(lines, "\n"))
	m.Tiles = append(m.Tiles, tileEntry{
		Path: strings.ReplaceAll(path, "\\", "/"),
		Hash: fmt.Sprintf("%016x", sum),
	})
}

// write marshals the manifest to path as YAML.
func (m *manifest) write(path string) error {
	raw, err := yaml.Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
