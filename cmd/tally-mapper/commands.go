package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"tally-mapper/internal/common"
	"tally-mapper/internal/diagnostic"
	"tally-mapper/internal/reconcile"
	"tally-mapper/internal/structure"
	"tally-mapper/internal/tally"
	"tally-mapper/internal/validation"
)

type command func(a *app, args []string) error

var commands = map[string]command{
	"structure":   runStructure,
	"new":         runNew,
	"form-values": runFormValues,
	"apply":       runApply,
	"route":       runRoute,
	"diff":        runDiff,
	"resolve":     runResolve,
}

func commandNames() string {
	return strings.Join(common.SortedKeys(commands), ", ")
}

func wantArgs(fs *flag.FlagSet, n int, usage string) error {
	if fs.NArg() != n {
		return fmt.Errorf("%s: expected %s", fs.Name(), usage)
	}

	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

// runStructure prints every section with the paths it binds.
func runStructure(a *app, args []string) error {
	fs := newFlagSet("structure")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.dump("structure", a.st)

	for _, s := range a.st.Sections {
		fmt.Fprintf(a.out, "%s\t%s\n", s.ID, s.Title)

		for _, sub := range s.Subsections {
			for _, p := range structure.BoundPaths(sub) {
				fmt.Fprintf(a.out, "\t%s\t%s\n", sub.Kind(), p)
			}
		}
	}

	return nil
}

// runNew prints an empty results record for the election.
func runNew(a *app, args []string) error {
	fs := newFlagSet("new")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return a.writeJSON(tally.NewResults(*a.election))
}

func runFormValues(a *app, args []string) error {
	fs := newFlagSet("form-values")
	id := fs.String("section", "", "Section id")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wantArgs(fs, 1, "results.json"); err != nil {
		return err
	}

	r, err := a.loadResults(fs.Arg(0))
	if err != nil {
		return err
	}

	if *id == "" {
		all, err := a.mapper.ToAllFormValues(a.st, r)
		if err != nil {
			return err
		}

		return a.writeYAML(all)
	}

	s, err := a.section(*id)
	if err != nil {
		return err
	}

	fv, err := a.mapper.ToFormValues(s, r)
	if err != nil {
		return err
	}

	return a.writeYAML(fv)
}

func runApply(a *app, args []string) error {
	fs := newFlagSet("apply")
	id := fs.String("section", "", "Section id")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wantArgs(fs, 2, "results.json values.yaml"); err != nil {
		return err
	}

	s, err := a.section(*id)
	if err != nil {
		return err
	}

	r, err := a.loadResults(fs.Arg(0))
	if err != nil {
		return err
	}

	fv, err := a.loadFormValues(fs.Arg(1))
	if err != nil {
		return err
	}

	out, err := a.mapper.ApplyFormValues(s, r, fv)
	if err != nil {
		return err
	}

	a.log.Info("form values applied", "section", s.ID, "values", len(fv))

	return a.writeJSON(out)
}

func runRoute(a *app, args []string) error {
	fs := newFlagSet("route")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wantArgs(fs, 1, "findings.yaml"); err != nil {
		return err
	}

	findings, err := diagnostic.LoadFile(fs.Arg(0))
	if err != nil {
		return err
	}

	r, err := validation.NewRouter(a.st)
	if err != nil {
		return err
	}

	for _, f := range findings.All() {
		s, err := r.SectionFor(f)
		if err != nil {
			return err
		}

		fmt.Fprintf(a.out, "%s\t%s\t%s\t%s\n", f.Code, f.Severity(), validation.Classify(f), s.ID)
	}

	severities := validation.SeverityMap(findings.Errors, findings.Warnings)
	for _, p := range common.SortedKeys(severities) {
		fmt.Fprintf(a.out, "%s\t%s\n", p, severities[p])
	}

	return nil
}

func runDiff(a *app, args []string) error {
	fs := newFlagSet("diff")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wantArgs(fs, 2, "first.json second.json"); err != nil {
		return err
	}

	first, second, err := a.loadPair(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	rec, err := reconcile.NewEngine(a.st, a.mapper).Compare(first, second)
	if err != nil {
		return err
	}

	r, err := validation.NewRouter(a.st)
	if err != nil {
		return err
	}

	if err := reconcile.Locate(rec.Discrepancies, r); err != nil {
		return err
	}

	a.log.Info("entries compared", "paths", len(rec.Corrections), "discrepancies", len(rec.Discrepancies))

	return reconcile.WriteReport(a.out, rec.Discrepancies)
}

func runResolve(a *app, args []string) error {
	fs := newFlagSet("resolve")
	action := fs.String("action", "", "keep_first, keep_second or discard_both")
	values := fs.String("values", "", "Resolution form values (YAML) applied over the first entry")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := wantArgs(fs, 2, "first.json second.json"); err != nil {
		return err
	}

	first, second, err := a.loadPair(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return err
	}

	if *values != "" {
		if *action != "" {
			return errors.New("-action and -values are mutually exclusive")
		}

		resolution, err := a.loadFormValues(*values)
		if err != nil {
			return err
		}

		out, err := reconcile.NewEngine(a.st, a.mapper).ApplyResolution(first, resolution)
		if err != nil {
			return err
		}

		return a.writeJSON(out)
	}

	act, err := reconcile.ParseAction(*action)
	if err != nil {
		return err
	}

	out, err := reconcile.Resolve(act, first, second)
	if err != nil {
		return err
	}

	a.log.Info("entries resolved", "action", act)

	return a.writeJSON(out)
}

func (a *app) loadPair(firstName, secondName string) (*tally.Results, *tally.Results, error) {
	first, err := a.loadResults(firstName)
	if err != nil {
		return nil, nil, err
	}

	second, err := a.loadResults(secondName)
	if err != nil {
		return nil, nil, err
	}

	return first, second, nil
}
