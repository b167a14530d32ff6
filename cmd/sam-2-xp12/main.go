// Command sam-2-xp12 converts SAM jetways and docks of an airport scenery
// into XP12 native jetways.
package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/hotbso/sam-2-xp12/internal/vars"
)

type rootCmd struct {
	Version versionCmd `command:"version" description:"Show version information"`
	Convert convertCmd `command:"convert" description:"Convert SAM jetways/docks to XP12 native jetways"`
	Inspect inspectCmd `command:"inspect" description:"Match definitions against tiles and report, write nothing"`
	Undo    undoCmd    `command:"undo" description:"Restore the scenery from the pre-conversion backup"`
}

func main() {
	var root rootCmd
	parser := flags.NewParser(&root, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

type versionCmd struct{}

// Execute prints the version information.
func (c *versionCmd) Execute(_ []string) error {
	vars.Print()
	return nil
}
