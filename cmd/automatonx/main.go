package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/comalice/automatonx"
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/production"
	"github.com/comalice/automatonx/internal/scanner"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// fallbackSeparator is used when the default composite names are ambiguous.
const fallbackSeparator = ","

type options struct {
	file      string
	separator string
	dot       bool
	words     string
	saveDir   string
	format    string
	scan      string
	logLevel  string
	logFormat string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("automatonx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.file, "file", "", "automaton document (.yaml, .yml or .json); built-in example when empty")
	fs.StringVar(&o.separator, "sep", "", "separator between member labels of composite DFA states")
	fs.BoolVar(&o.dot, "dot", false, "print Graphviz DOT for the automaton and its DFA")
	fs.StringVar(&o.words, "words", "", "comma-separated words to test for membership (one symbol per character)")
	fs.StringVar(&o.saveDir, "save-dir", "", "directory to persist the automaton and its DFA in")
	fs.StringVar(&o.format, "format", "yaml", "persistence format: yaml or json")
	fs.StringVar(&o.scan, "scan", "", "tokenize and validate an arithmetic expression, then exit")
	fs.StringVar(&o.logLevel, "log-level", getEnv("AUTOMATONX_LOG_LEVEL", "info"), "log level: debug, info, warn, error")
	fs.StringVar(&o.logFormat, "log-format", "text", "log format: text or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := newLogger(stderr, o.logLevel, o.logFormat)
	slog.SetDefault(logger)

	if o.scan != "" {
		for tok := range scanner.Tokens(o.scan) {
			fmt.Fprintln(stdout, tok)
		}
		if err := scanner.Validate(o.scan); err != nil {
			fmt.Fprintln(stdout, "invalid:", err)
			return 1
		}
		return 0
	}

	if err := analyze(ctx, o, stdout, logger); err != nil {
		logger.Error("analysis failed", "err", err)
		return 1
	}
	return 0
}

func analyze(ctx context.Context, o options, w io.Writer, logger *slog.Logger) error {
	config, err := loadConfig(o.file)
	if err != nil {
		return err
	}
	logger.Info("loaded automaton", "id", config.ID, "version", primitives.ComputeVersion(&config), "app_version", Version)

	nfa, err := config.Build()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Automaton %s:\n%s\n", config.ID, nfa)
	grammar := automatonx.ToRegularGrammar(nfa)
	fmt.Fprintf(w, "Regular grammar:\n%s\n", grammar)
	if reduced := grammar.Reduce(); reduced.String() != grammar.String() {
		fmt.Fprintf(w, "Reduced grammar:\n%s\n", reduced)
	}

	kind := "non-deterministic"
	if automatonx.IsDeterministic(nfa) {
		kind = "deterministic"
	}
	fmt.Fprintf(w, "The automaton is %s.\n\n", kind)

	dfa, err := automatonx.Determinize(nfa, automatonx.WithNameSeparator(o.separator), automatonx.WithLogger(logger))
	if errors.Is(err, automatonx.ErrAmbiguousCompositeName) && o.separator == "" {
		logger.Warn("composite names collide, retrying with a separator", "sep", fallbackSeparator, "err", err)
		dfa, err = automatonx.Determinize(nfa, automatonx.WithNameSeparator(fallbackSeparator), automatonx.WithLogger(logger))
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Converted DFA:\n%s\n", dfa)

	if o.dot {
		v := &production.DefaultVisualizer{}
		fmt.Fprintf(w, "%s\n%s\n", v.ExportDOT(nfa, nil), v.ExportDOT(dfa, nil))
	}

	if o.words != "" {
		runner := core.NewRunner(nfa, core.WithID(config.ID), core.WithLogger(logger))
		for _, word := range strings.Split(o.words, ",") {
			accepted, err := runner.Run(ctx, automatonx.Word(word))
			if err != nil {
				return fmt.Errorf("word %q: %w", word, err)
			}
			fmt.Fprintf(w, "%q accepted: %v\n", word, accepted)
		}
	}

	if o.saveDir != "" {
		p, err := newPersister(o.format, o.saveDir)
		if err != nil {
			return err
		}
		for _, c := range []primitives.AutomatonConfig{config, primitives.FromAutomaton(config.ID+"-dfa", dfa)} {
			if err := p.Save(ctx, c); err != nil {
				return err
			}
			logger.Info("saved automaton", "id", c.ID, "dir", o.saveDir, "format", o.format)
		}
	}
	return nil
}

func loadConfig(path string) (primitives.AutomatonConfig, error) {
	if path == "" {
		return labExample(), nil
	}
	return production.DecodeFile(path)
}

func newPersister(format, dir string) (production.Persister, error) {
	switch format {
	case "yaml":
		return production.NewYAMLPersister(dir)
	case "json":
		return production.NewJSONPersister(dir)
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

// labExample is the four-state NFA in which q0 branches to q1 and q2 on a.
func labExample() primitives.AutomatonConfig {
	return primitives.AutomatonConfig{
		ID:       "lab",
		States:   []string{"q0", "q1", "q2", "q3"},
		Alphabet: []string{"a", "b"},
		Start:    "q0",
		Accept:   []string{"q3"},
		Transitions: []primitives.TransitionConfig{
			{From: "q0", Symbol: "a", To: []string{"q1", "q2"}},
			{From: "q1", Symbol: "b", To: []string{"q1"}},
			{From: "q1", Symbol: "a", To: []string{"q2"}},
			{From: "q2", Symbol: "a", To: []string{"q1"}},
			{From: "q2", Symbol: "b", To: []string{"q3"}},
		},
	}
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
