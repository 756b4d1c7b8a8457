package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/automatonx"
	"github.com/comalice/automatonx/internal/core"
	"github.com/comalice/automatonx/internal/primitives"
	"github.com/comalice/automatonx/internal/production"
)

func main() {
	word := flag.String("word", "abaab", "input fed to the automaton one symbol per tick")
	interval := flag.Duration("interval", time.Second, "delay between symbols")
	dir := flag.String("dir", os.TempDir(), "directory the automaton document is saved in")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	nfa, err := automatonx.NewBuilder("p").
		State("p").On("a", "p", "q").On("b", "p").
		State("q").On("b", "r").
		State("r").Accept().
		Build()
	if err != nil {
		logger.Error("build automaton", "err", err)
		os.Exit(1)
	}

	persister, err := production.NewYAMLPersister(*dir)
	if err != nil {
		logger.Error("create persister", "err", err)
		os.Exit(1)
	}
	if err := persister.Save(context.Background(), primitives.FromAutomaton("ends-with-ab", nfa)); err != nil {
		logger.Error("save automaton", "err", err)
		os.Exit(1)
	}

	publishChan := make(chan core.StepRecord, 100)
	publisher := production.NewChannelPublisher(publishChan)
	defer publisher.Close()

	visualizer := &production.DefaultVisualizer{}
	runner := core.NewRunner(nfa,
		core.WithID("ends-with-ab"),
		core.WithPublisher(publisher),
		core.WithLogger(logger),
	)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	ctx := context.Background()
	symbols := automatonx.Word(*word)
	fmt.Println("Start:", runner.Current())
	if len(symbols) == 0 {
		fmt.Printf("Demo complete: empty word accepted=%v\n", runner.Accepting())
		return
	}
	for i := 0; ; {
		select {
		case <-ticker.C:
			if err := runner.Step(ctx, symbols[i]); err != nil {
				fmt.Printf("Step error: %v\n", err)
				return
			}
			fmt.Printf("\n--- Symbol %d: %s ---\n", i+1, symbols[i])
			fmt.Println("Current states:", runner.Current())
			fmt.Println("DOT:\n" + visualizer.ExportDOT(nfa, runner.Current()))
			// Demo publish consumption
			select {
			case step := <-publishChan:
				fmt.Printf("Published: %v -> %v (accepting=%v)\n", step.From, step.To, step.Accepting)
			default:
			}
			i++
			if i >= len(symbols) || runner.Stuck() {
				fmt.Printf("Demo complete: %q accepted=%v\n", *word, runner.Accepting())
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
