// Package config parses the command line and environment of tally-mapper.
//
// Flags win over environment variables, which win over a .env file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"tally-mapper/internal/coerce"
	"tally-mapper/internal/election"
	"tally-mapper/internal/structure"
)

// Environment variable names.
const (
	EnvElection       = "TALLY_ELECTION"
	EnvElectionFormat = "TALLY_ELECTION_FORMAT"
	EnvVariant        = "TALLY_VARIANT"
	EnvLocale         = "TALLY_LOCALE"
	EnvLogLevel       = "TALLY_LOG_LEVEL"
	EnvDebug          = "TALLY_DEBUG"
	EnvCSVComma       = "TALLY_CSV_COMMA"
	EnvCSVLatin1      = "TALLY_CSV_LATIN1"

	defaultEnvFile = ".env"
)

// Config is the parsed configuration of one invocation.
type Config struct {
	ElectionFile   string
	ElectionFormat election.Format
	Variant        structure.Variant
	Locale         language.Tag
	LogLevel       slog.Level
	Debug          bool
	CSVComma       rune
	CSVLatin1      bool

	// Command is the subcommand name; Args are the arguments after it.
	Command string
	Args    []string
}

// CSVOptions returns the candidate list options selected by c.
func (c Config) CSVOptions() []election.CSVOption {
	opts := []election.CSVOption{election.WithComma(c.CSVComma)}
	if c.CSVLatin1 {
		opts = append(opts, election.WithLatin1())
	}

	return opts
}

// ParseVariant accepts "first-session" and "counts-only".
func ParseVariant(s string) (structure.Variant, error) {
	switch s {
	case "", "first-session":
		return structure.VariantFirstSession, nil
	case "counts-only":
		return structure.VariantCountsOnly, nil
	default:
		return 0, fmt.Errorf("unknown variant %q (want first-session or counts-only)", s)
	}
}

type rawConfig struct {
	envFile  string
	election string
	format   string
	variant  string
	locale   string
	logLevel string
	comma    string
	debug    bool
	latin1   bool
	verbose  bool
}

// Parse reads global flags from args, then fills unset values from the
// environment. The first non-flag argument is the subcommand.
func Parse(args []string, output io.Writer) (Config, error) {
	var raw rawConfig

	fset := flag.NewFlagSet("tally-mapper", flag.ContinueOnError)
	fset.SetOutput(output)

	fset.StringVar(&raw.envFile, "env", "", "Environment file to load (default .env when present)")
	fset.StringVar(&raw.election, "e", "", "Election definition file (or "+EnvElection+")")
	fset.StringVar(&raw.format, "format", "", "Election file format: yaml or csv (default from extension)")
	fset.StringVar(&raw.variant, "variant", "", "Form variant: first-session or counts-only")
	fset.StringVar(&raw.locale, "locale", "", "Number formatting locale (default nl)")
	fset.StringVar(&raw.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fset.StringVar(&raw.comma, "csv-comma", "", "Field separator of candidate CSV files")
	fset.BoolVar(&raw.latin1, "csv-latin1", false, "Candidate CSV files are ISO 8859-1 encoded")
	fset.BoolVar(&raw.debug, "debug", false, "Dump intermediate values (implies -log-level debug)")
	fset.BoolVar(&raw.verbose, "v", false, "Shorthand for -log-level debug")

	if err := fset.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(raw.envFile); err != nil {
		return Config{}, err
	}

	fallback(&raw.election, EnvElection)
	fallback(&raw.format, EnvElectionFormat)
	fallback(&raw.variant, EnvVariant)
	fallback(&raw.locale, EnvLocale)
	fallback(&raw.logLevel, EnvLogLevel)
	fallback(&raw.comma, EnvCSVComma)

	var err error

	if !raw.debug {
		if raw.debug, err = envBool(EnvDebug); err != nil {
			return Config{}, err
		}
	}

	if !raw.latin1 {
		if raw.latin1, err = envBool(EnvCSVLatin1); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		ElectionFile: raw.election,
		Debug:        raw.debug,
		CSVLatin1:    raw.latin1,
		Locale:       coerce.DefaultLanguage,
		LogLevel:     slog.LevelInfo,
		CSVComma:     ',',
	}

	if raw.format != "" {
		if cfg.ElectionFormat, err = election.ParseFormat(raw.format); err != nil {
			return Config{}, err
		}
	}

	if cfg.Variant, err = ParseVariant(raw.variant); err != nil {
		return Config{}, err
	}

	if raw.locale != "" {
		if cfg.Locale, err = language.Parse(raw.locale); err != nil {
			return Config{}, fmt.Errorf("invalid locale %q: %w", raw.locale, err)
		}
	}

	if raw.logLevel != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(raw.logLevel)); err != nil {
			return Config{}, fmt.Errorf("invalid log level: %w", err)
		}
	}

	// dumps are logged at debug level
	if raw.verbose || cfg.Debug {
		cfg.LogLevel = slog.LevelDebug
	}

	if raw.comma != "" {
		r := []rune(raw.comma)
		if len(r) != 1 {
			return Config{}, fmt.Errorf("csv separator must be one character, got %q", raw.comma)
		}

		cfg.CSVComma = r[0]
	}

	rest := fset.Args()
	if len(rest) == 0 {
		return Config{}, errors.New("missing command")
	}

	cfg.Command = rest[0]
	cfg.Args = rest[1:]

	return cfg, nil
}

// loadEnvFile loads the given file, or .env when none is given and one
// exists. Variables already set are kept.
func loadEnvFile(name string) error {
	if name == "" {
		if err := godotenv.Load(defaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", defaultEnvFile, err)
		}

		return nil
	}

	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("failed to load %s: %w", name, err)
	}

	return nil
}

func fallback(dst *string, env string) {
	if *dst == "" {
		*dst = os.Getenv(env)
	}
}

func envBool(name string) (bool, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false, nil
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", name, err)
	}

	return b, nil
}
