// Package convert drives a full SAM-to-native conversion run over one
// airport scenery tree.
package convert

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hotbso/sam-2-xp12/internal/apt"
	"github.com/hotbso/sam-2-xp12/internal/dsf"
	"github.com/hotbso/sam-2-xp12/internal/log"
	"github.com/hotbso/sam-2-xp12/internal/sam"
)

// Well-known names inside the scenery tree.
const (
	NavDataDir = "Earth nav data"
	BackupDir  = NavDataDir + ".pre_s2n"
	AptDat     = "apt.dat"
	SamXML     = "sam.xml"

	// MarkerFile signals "native jetway mode enabled" to the runtime.
	// Presence is the signal, content is irrelevant.
	MarkerFile = "use_autodgs"

	// ManifestFile records checksums of the rewritten tiles.
	ManifestFile = "sam_2_xp12_manifest.yml"
)

// Options selects the conversion behavior for one run.
type Options struct {
	SceneryDir       string    // airport scenery root holding sam.xml and Earth nav data
	ToolPath         string    // DSFTool binary
	JwType           int       // native jetway style 0..3
	MatchRadius      float64
	RotundaLength    float64
	Resources        [4]string // facade override per style, empty entries use the stock library
	HeightBand       sam.Band  // admissible jetway heights, zero value means the native band
	RemoveLibObjects bool
	DryRun           bool
}

// CountMismatchError reports that the matched object total across all tiles
// does not account for every usable SAM definition. It aborts the run before
// any tile is rewritten; usually the match radius or the marker heuristic
// needs adjusting.
type CountMismatchError struct {
	Defined int // usable jetway definitions in sam.xml
	Matched int // jetway objects matched across all tiles
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("jetway count mismatch: sam.xml defines %d, matched %d tile objects", e.Defined, e.Matched)
}

// tileFile couples a parsed tile with its destination paths.
type tileFile struct {
	tile *dsf.Tile
	dst  string // tile in the live tree
	txt  string // text sidecar next to dst
}

// Run converts the scenery tree at opts.SceneryDir. All reads come from the
// backup tree; the live tree is only written after every tile matched. A dry
// run leaves the scenery untouched: no backup is created and the decode
// sidecars go to a scratch dir.
func Run(opts Options, lg *log.Logger) error {
	variant := dsf.JetwayVariant(opts.JwType)
	if !variant.Valid() {
		return fmt.Errorf("jetway type %d not in 0..3", opts.JwType)
	}

	if err := checkTree(opts); err != nil {
		return err
	}

	navDir := filepath.Join(opts.SceneryDir, NavDataDir)
	backupDir := filepath.Join(opts.SceneryDir, BackupDir)

	srcDir, workDir := backupDir, navDir
	if opts.DryRun {
		if _, err := os.Stat(backupDir); err != nil {
			srcDir = navDir
		}
		tmp, err := os.MkdirTemp("", "sam_2_xp12")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		workDir = tmp
	} else if _, err := os.Stat(backupDir); os.IsNotExist(err) {
		if err := copyTree(navDir, backupDir); err != nil {
			return fmt.Errorf("backup copy: %w", err)
		}
		lg.Infof("created backup copy %q", backupDir)
	}

	band := opts.HeightBand
	if band == (sam.Band{}) {
		band = sam.DefaultBand()
	}

	jetways, docks, err := sam.Load(filepath.Join(opts.SceneryDir, SamXML), band, lg)
	if err != nil {
		return err
	}
	lg.Infof("found %d jetways and %d docks in sam.xml", len(jetways), len(docks))

	probe := func(resource string) bool {
		return dsf.ProbeForMarker(filepath.Join(opts.SceneryDir, filepath.FromSlash(resource)))
	}

	codec := dsf.Codec{ToolPath: opts.ToolPath}
	tiles, err := loadTiles(srcDir, navDir, workDir, codec, lg)
	if err != nil {
		return err
	}

	totalJw, totalDocks := 0, 0
	for _, tf := range tiles {
		tf.tile.Match(jetways, docks, opts.MatchRadius, probe)
		totalJw += tf.tile.NumJetways
		totalDocks += tf.tile.NumDocks
		tf.tile.ReportMatches(lg.With("tile", tf.tile.String()))
	}
	lg.Infof("identified %d jetways and %d docks in %d tiles", totalJw, totalDocks, len(tiles))

	// All-or-nothing: verify the totals before any tile is rewritten.
	if totalJw != len(jetways) {
		return &CountMismatchError{Defined: len(jetways), Matched: totalJw}
	}

	if opts.DryRun {
		lg.Infof("dry run, no files written")
		return nil
	}

	resource := variant.DefaultResource()
	if r := opts.Resources[opts.JwType]; r != "" {
		resource = r
	}

	man := manifest{JwType: opts.JwType}
	for _, tf := range tiles {
		if !tf.tile.Renumber(opts.RemoveLibObjects) {
			// Zero matches here; the tile stays byte-for-byte untouched.
			continue
		}

		tf.tile.AddRotundas(jetways, resource, opts.RotundaLength, lg)

		lines := tf.tile.Lines()
		if err := codec.Encode(lines, tf.txt, tf.dst); err != nil {
			return err
		}

		man.add(tf.dst, lines)
		lg.Infof("rewrote %s", tf.tile)
	}

	if err := injectAptDat(navDir, backupDir, jetways, opts.JwType); err != nil {
		return err
	}

	reportLibraryLeftovers(tiles, lg)

	if err := man.write(filepath.Join(opts.SceneryDir, ManifestFile)); err != nil {
		return err
	}

	// Zero-byte marker; its presence enables native jetway mode.
	if err := os.WriteFile(filepath.Join(navDir, MarkerFile), nil, 0o644); err != nil {
		return err
	}

	lg.Infof("done")
	return nil
}

// checkTree refuses to run against a tree missing the required pieces.
func checkTree(opts Options) error {
	if fi, err := os.Stat(opts.ToolPath); err != nil || fi.IsDir() {
		return fmt.Errorf("DSFTool %q is not pointing to a file", opts.ToolPath)
	}

	navDir := filepath.Join(opts.SceneryDir, NavDataDir)
	if fi, err := os.Stat(navDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("no %q folder found in %q", NavDataDir, opts.SceneryDir)
	}

	if _, err := os.Stat(filepath.Join(navDir, AptDat)); err != nil {
		return fmt.Errorf("no %q file found in %q", AptDat, navDir)
	}

	return nil
}

// loadTiles decodes and parses every tile under srcDir in lexical walk
// order, so repeated runs process tiles deterministically. Text sidecars go
// under workDir, which a dry run points at a scratch dir.
func loadTiles(srcDir, navDir, workDir string, codec dsf.Codec, lg *log.Logger) ([]tileFile, error) {
	var tiles []tileFile

	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".dsf") {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		dst := filepath.Join(navDir, rel)
		base := strings.TrimSuffix(filepath.Join(workDir, rel), filepath.Ext(rel))
		if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
			return err
		}

		lg.Infof("processing %s", path)
		lines, err := codec.Decode(path, base+".txt_pre")
		if err != nil {
			return err
		}

		tile, err := dsf.Parse(path, lines)
		if err != nil {
			return err
		}

		tiles = append(tiles, tileFile{tile: tile, dst: dst, txt: base + ".txt"})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return tiles, nil
}

// injectAptDat reads the untouched apt.dat from the backup and writes the
// augmented one into the live tree.
func injectAptDat(navDir, backupDir string, jetways []*sam.Jetway, jwType int) error {
	raw, err := os.ReadFile(filepath.Join(backupDir, AptDat))
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	lines = apt.InjectJetways(lines, jetways, jwType)

	return os.WriteFile(filepath.Join(navDir, AptDat), []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// reportLibraryLeftovers warns about surviving SAM library references.
func reportLibraryLeftovers(tiles []tileFile, lg *log.Logger) {
	found := false
	for _, tf := range tiles {
		for _, d := range tf.tile.Defs {
			if d.Index != dsf.Deleted && dsf.LibraryResource(d.Resource) {
				if !found {
					found = true
					lg.Warnf("there are still references to the SAM library")
				}
				lg.Infof(" OBJECT_DEF %s", d.Resource)
			}
		}
	}

	if !found {
		lg.Infof("no more references to SAM*_Library found")
	}
}

// RestoreBackup replaces the live Earth nav data tree with the backup copy
// and removes the run manifest. Used by the undo command.
func RestoreBackup(sceneryDir string, lg *log.Logger) error {
	navDir := filepath.Join(sceneryDir, NavDataDir)
	backupDir := filepath.Join(sceneryDir, BackupDir)

	if fi, err := os.Stat(backupDir); err != nil || !fi.IsDir() {
		return fmt.Errorf("no backup %q to restore from", backupDir)
	}

	if err := os.RemoveAll(navDir); err != nil {
		return err
	}
	if err := copyTree(backupDir, navDir); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(sceneryDir, ManifestFile)); err != nil && !os.IsNotExist(err) {
		return err
	}

	lg.Infof("restored %q from %q", navDir, backupDir)
	return nil
}

// copyTree recursively copies the directory src to dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, raw, 0o644)
	})
}
