package main

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/creachadair/command"
	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/mds/slice"
)

var listFlags struct {
	All bool `flag:"a,Include archived entries in the output"`
}

// runList implements the "list" subcommand: it prints the site labels known
// to the configuration file in neatly-aligned columns.
func runList(env *command.Env) error {
	cfg, err := loadConfig(env)
	if err != nil {
		return err
	}

	labels := mapset.Keys(cfg.Sites)

	const lineWidth = 80
	const padding = 2

	var maxWidth int
	for label, site := range cfg.Sites {
		if site.Archived && !listFlags.All {
			labels.Discard(label)
			continue
		}
		maxWidth = max(maxWidth, len(label))
	}
	if labels.Len() == 0 {
		fmt.Fprintln(env, "No sites configured.")
		return nil
	}

	fieldWidth := maxWidth + padding
	numCols := (lineWidth + fieldWidth - 1) / fieldWidth
	numRows := (labels.Len() + numCols - 1) / numCols

	elts := labels.Slice()
	slices.Sort(elts)

	cols := slice.Chunks(elts, numRows)
	tw := tabwriter.NewWriter(os.Stdout, maxWidth, 0, padding, ' ', 0)
	for r := 0; r < numRows; r++ {
		fmt.Fprintln(tw, strings.Join(slice.Strip(cols, r), "\t"))
	}
	return tw.Flush()
}
