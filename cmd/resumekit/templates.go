package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/alnah/go-resumekit"
)

// runTemplates lists the template catalogue.
func runTemplates(args []string, env *Environment) error {
	flags, positional, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: templates takes no arguments", ErrTooManyArgs)
	}

	list := resumekit.Templates()

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}

	tw := tabwriter.NewWriter(env.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tLAYOUT")
	for _, t := range list {
		id := t.ID
		if id == resumekit.DefaultTemplateID {
			id += " (default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, t.Name, t.Category, t.Layout)
	}
	return tw.Flush()
}
