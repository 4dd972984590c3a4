package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"tally-mapper/internal/coerce"
	"tally-mapper/internal/config"
	"tally-mapper/internal/election"
	"tally-mapper/internal/mapper"
	"tally-mapper/internal/structure"
	"tally-mapper/internal/tally"
)

type app struct {
	cfg      config.Config
	out      io.Writer
	log      *slog.Logger
	election *tally.Election
	st       structure.Structure
	mapper   *mapper.Mapper
}

func newApp(cfg config.Config, out io.Writer, log *slog.Logger) (*app, error) {
	if cfg.ElectionFile == "" {
		return nil, errors.New("election definition required (use -e or " + config.EnvElection + ")")
	}

	e, err := election.LoadFile(cfg.ElectionFile, cfg.ElectionFormat, cfg.CSVOptions()...)
	if err != nil {
		return nil, err
	}

	st, err := structure.Build(*e, structure.WithVariant(cfg.Variant))
	if err != nil {
		return nil, err
	}

	log.Debug("election loaded",
		"file", cfg.ElectionFile,
		"lists", len(e.PoliticalGroups),
		"sections", st.Len(),
		"locale", cfg.Locale.String(),
	)

	a := &app{
		cfg:      cfg,
		out:      out,
		log:      log,
		election: e,
		st:       st,
		mapper:   mapper.New(coerce.New(cfg.Locale)),
	}
	a.dump("election", e)

	return a, nil
}

// dump writes a spew dump of v to the log output in -debug mode.
func (a *app) dump(label string, v any) {
	if !a.cfg.Debug {
		return
	}

	a.log.Debug(label, "dump", spew.Sdump(v))
}

func (a *app) section(id string) (structure.Section, error) {
	if id == "" {
		return structure.Section{}, errors.New("-section is required")
	}

	s, ok := a.st.Section(id)
	if !ok {
		return structure.Section{}, fmt.Errorf("unknown section %q", id)
	}

	return s, nil
}

// loadResults reads a results record and checks it fits the election.
func (a *app) loadResults(name string) (*tally.Results, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read results %s: %w", name, err)
	}

	var r tally.Results
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse results %s: %w", name, err)
	}

	if !r.MatchesShape(*a.election) {
		return nil, fmt.Errorf("results %s do not match the lists and candidates of the election", name)
	}

	a.dump("results "+name, &r)

	return &r, nil
}

func (a *app) loadFormValues(name string) (mapper.FormValues, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read form values %s: %w", name, err)
	}

	var fv mapper.FormValues
	if err := yaml.Unmarshal(data, &fv); err != nil {
		return nil, fmt.Errorf("failed to parse form values %s: %w", name, err)
	}

	return fv, nil
}

func (a *app) writeJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (a *app) writeYAML(v any) error {
	enc := yaml.NewEncoder(a.out)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return err
	}

	return enc.Close()
}
