package main

import (
	"errors"
	"fmt"

	"github.com/hotbso/sam-2-xp12/internal/convert"
	"github.com/hotbso/sam-2-xp12/internal/log"
)

// Defaults that apply when neither flag nor config set a value.
const (
	defaultMatchRadius   = 0.5
	defaultRotundaLength = 1.0
)

type convertCmd struct {
	JwType           *int     `short:"t" long:"jw-type" description:"Native jetway style: 0 light-solid, 1 light-glass, 2 dark-solid, 3 dark-glass" required:"true"`
	MatchRadius      *float64 `long:"jw-match-radius" description:"Distance in meters to match sam coordinates with scenery objects (default: 0.5)"`
	RotundaLength    *float64 `long:"jw-rotunda-length" description:"Length of the rotunda segment in meters (default: 1.0)"`
	RemoveLibObjects bool     `long:"remove-sam-lib-objects" description:"Remove all references to the SAM*_Library"`
	DryRun           bool     `long:"dry-run" description:"Match and report only, write nothing"`

	commonOpts
}

// commonOpts are shared by convert, inspect and undo.
type commonOpts struct {
	Scenery string `long:"scenery" default:"." description:"Airport scenery folder (holds sam.xml and Earth nav data)"`
	Config  string `short:"c" long:"config" description:"Optional tool config file (yaml/json)"`
	DsfTool string `long:"dsftool" description:"Path to the DSFTool binary (default: next to this executable)"`
	Verbose []bool `short:"v" long:"verbose" description:"Log at debug level"`

	cfgRadius  *float64 // jw_match_radius from the config file
	cfgRotunda *float64 // jw_rotunda_length from the config file
}

// Execute runs a full conversion.
func (c *convertCmd) Execute(_ []string) error {
	opts, lg, err := c.commonOpts.build()
	if err != nil {
		return err
	}

	opts.JwType = *c.JwType
	opts.MatchRadius = c.radius(c.MatchRadius)
	opts.RotundaLength = c.rotundaLength(c.RotundaLength)
	opts.RemoveLibObjects = c.RemoveLibObjects
	opts.DryRun = c.DryRun

	if err := convert.Run(opts, lg); err != nil {
		var cme *convert.CountMismatchError
		if errors.As(err, &cme) {
			lg.Errorf("%v; adjust --jw-match-radius or check the scenery", cme)
		} else {
			lg.Errorf("conversion failed: %v", err)
		}
		return err
	}

	fmt.Println("conversion done, log written to", lg.LogFile)
	return nil
}

type inspectCmd struct {
	MatchRadius *float64 `long:"jw-match-radius" description:"Distance in meters to match sam coordinates with scenery objects (default: 0.5)"`

	commonOpts
}

// Execute matches and reports without writing anything.
func (c *inspectCmd) Execute(_ []string) error {
	opts, lg, err := c.commonOpts.build()
	if err != nil {
		return err
	}

	opts.MatchRadius = c.radius(c.MatchRadius)
	opts.DryRun = true

	if err := convert.Run(opts, lg); err != nil {
		lg.Errorf("inspection failed: %v", err)
		return err
	}

	fmt.Println("inspection done, log written to", lg.LogFile)
	return nil
}

type undoCmd struct {
	commonOpts
}

// Execute restores the live tree from the backup copy.
func (c *undoCmd) Execute(_ []string) error {
	lg := log.New(c.Scenery, c.level())

	if err := convert.RestoreBackup(c.Scenery, lg); err != nil {
		lg.Errorf("undo failed: %v", err)
		return err
	}

	fmt.Println("restored from backup")
	return nil
}
