package main

import (
	"context"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/PonomareVlad/grammy-match-query/internal/config"
	"github.com/PonomareVlad/grammy-match-query/internal/dispatch"
	"github.com/PonomareVlad/grammy-match-query/internal/exit"
	"github.com/PonomareVlad/grammy-match-query/internal/rules"
	"github.com/PonomareVlad/grammy-match-query/internal/stream"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	filters, exitResult := buildFilters(cfg)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	dispatcher := dispatch.New(filters, cfg.RateLimit)
	dispatcher.SetEmitRecords(!cfg.CountOnly)

	total := dispatch.Stats{PerFilter: make(map[string]int)}
	for _, filter := range filters {
		total.PerFilter[filter.Name] = 0
	}

	for _, source := range inputSources(cfg) {
		stats, err := runSource(ctx, dispatcher, source)
		mergeStats(&total, stats)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", source.name, err)
			return 1
		}
	}

	if cfg.CountOnly {
		printTotals(total)
	}

	return 0
}

// inputSource defers opening so stdin and files run through one code path.
type inputSource struct {
	name string
	path string // empty for stdin
}

func inputSources(cfg *config.Config) []inputSource {
	if len(cfg.InputFiles) == 0 {
		return []inputSource{{name: "stdin"}}
	}

	sources := make([]inputSource, 0, len(cfg.InputFiles))
	for _, file := range cfg.InputFiles {
		sources = append(sources, inputSource{name: file, path: file})
	}
	return sources
}

func runSource(ctx context.Context, dispatcher *dispatch.Dispatcher, source inputSource) (dispatch.Stats, error) {
	reader := os.Stdin
	if source.path != "" {
		f, err := os.Open(source.path)
		if err != nil {
			return dispatch.Stats{}, err
		}
		defer f.Close()
		reader = f
	}

	return dispatcher.Run(ctx, stream.Updates(ctx, reader))
}

func buildFilters(cfg *config.Config) ([]dispatch.Filter, *exit.Result) {
	var filters []dispatch.Filter

	if cfg.RulesFile != "" {
		f, err := os.Open(cfg.RulesFile)
		if err != nil {
			return nil, exit.Errorf("Error: %v\n", err)
		}
		parsed, err := rules.Parse(f)
		f.Close()
		if err != nil {
			return nil, exit.Errorf("Error: %s: %v\n", cfg.RulesFile, err)
		}

		fromRules, err := dispatch.FromRules(parsed)
		if err != nil {
			return nil, exit.Errorf("Error: %s: %v\n", cfg.RulesFile, err)
		}
		filters = append(filters, fromRules...)
	}

	fromQueries, err := dispatch.FromQueries(cfg.Queries)
	if err != nil {
		return nil, exit.Errorf("Error: %v\n", err)
	}
	filters = append(filters, fromQueries...)

	return filters, nil
}

func mergeStats(total *dispatch.Stats, stats dispatch.Stats) {
	total.Updates += stats.Updates
	total.Matches += stats.Matches
	for name, count := range stats.PerFilter {
		total.PerFilter[name] += count
	}
}

func printTotals(total dispatch.Stats) {
	for _, name := range slices.Sorted(maps.Keys(total.PerFilter)) {
		fmt.Printf("%s: %d\n", name, total.PerFilter[name])
	}
	fmt.Printf("updates: %d, matches: %d\n", total.Updates, total.Matches)
}
