package dsf

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ToolError reports a failed DSFTool invocation. Any non-zero exit is fatal
// to the whole run; partial output must not be trusted.
type ToolError struct {
	Cmd      string
	ExitCode int
	Stderr   string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%s: exit %d: %s", e.Cmd, e.ExitCode, strings.TrimSpace(e.Stderr))
}

// Codec converts between the binary tile format and its text projection by
// shelling out to DSFTool.
type Codec struct {
	ToolPath string
}

// Decode converts the binary tile at dsfPath into text lines, using txtPath
// as the intermediate text file.
func (c Codec) Decode(dsfPath, txtPath string) ([]string, error) {
	if err := c.run("-dsf2text", dsfPath, txtPath); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(txtPath)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(raw), "\n")
	// Drop the artifact of a trailing newline.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	return lines, nil
}

// Encode writes lines to txtPath and converts them into the binary tile at
// dsfPath.
func (c Codec) Encode(lines []string, txtPath, dsfPath string) error {
	if err := os.WriteFile(txtPath, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		return err
	}

	return c.run("-text2dsf", txtPath, dsfPath)
}

// run executes DSFTool and maps a non-zero exit to a ToolError.
func (c Codec) run(args ...string) error {
	cmd := exec.Command(c.ToolPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		te := &ToolError{
			Cmd:      c.ToolPath + " " + strings.Join(args, " "),
			ExitCode: -1,
			Stderr:   stderr.String(),
		}
		if ee, ok := err.(*exec.ExitError); ok {
			te.ExitCode = ee.ExitCode()
		} else if te.Stderr == "" {
			te.Stderr = err.Error()
		}
		return te
	}

	return nil
}
