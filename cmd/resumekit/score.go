package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/alnah/go-resumekit"
	"github.com/alnah/go-resumekit/internal/yamlutil"
)

// runScore scores one resume and prints the report.
func runScore(args []string, env *Environment) error {
	flags, positional, err := parseScoreFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if flags.json && flags.yaml {
		return fmt.Errorf("%w: --json and --yaml are exclusive", ErrInvalidFormat)
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	text, err := readInput(input, env)
	if err != nil {
		return err
	}

	report := resumekit.Score(text)

	switch {
	case flags.json:
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case flags.yaml:
		out, err := yamlutil.Marshal(report)
		if err != nil {
			return err
		}
		_, err = env.Stdout.Write(out)
		return err
	default:
		printReport(env.Stdout, report)
		return nil
	}
}

// printReport outputs a human-readable score report.
func printReport(w io.Writer, r resumekit.ScoreReport) {
	fmt.Fprintf(w, "ATS score: %d/100 (%s)\n", r.Score, r.Grade)
	fmt.Fprintf(w, "Words: %d\n", r.WordCount)

	printList(w, "Strengths", "[OK]", r.Strengths)
	printList(w, "Issues", "[ISSUE]", r.Issues)
	printList(w, "Suggestions", "[TIP]", r.Suggestions)

	if len(r.MissingSections) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Missing sections: %s\n", strings.Join(r.MissingSections, ", "))
	}

	if len(r.SectionSuggestions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Consider adding:")
		for _, s := range r.SectionSuggestions {
			fmt.Fprintf(w, "  %s: %s\n", s.Section, s.Description)
			fmt.Fprintf(w, "    %s\n", s.Benefit)
		}
	}
}

func printList(w io.Writer, title, tag string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  %s %s\n", tag, item)
	}
}
