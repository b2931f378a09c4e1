/*
Package main implements a spell-checking CLI and REPL over a Hunspell-style
affix/word-list dictionary.

Note: this is a BETA release. APIs and functionality may rapidly change.

nuspell loads a ".aff"/".dic" pair, spell-checks words, and for a misspelled
word produces a list of suggested corrections in the order they are found. Repeat loads of the
same dictionary are served from a msgpack-encoded cache of the word list so
startup on a large dictionary stays fast after the first run.

# Usage

Check words interactively against a dictionary:

	nuspell -dict /usr/share/hunspell/en_US

Enable debug logging and a custom cache directory:

	nuspell -dict ./testdata/en_US -cache ./testdata/.cache -d

# Configuration

Runtime tuning is managed through a TOML file covering suggestion limits,
cache behavior, and CLI display options:

	[suggest]
	max_suggestions = 15
	max_ngram_suggestions = 4
	enable_ngram_fallback = true

	[cache]
	enabled = true

	[cli]
	max_displayed = 10
	show_suggestions = true

The config file is created with defaults on first run if it doesn't exist.

# CLI Mode

The REPL reads one word per line from stdin and prints whether it spells
correctly; on a miss it prints the Suggestor's candidates.

	inputHandler := cli.NewInputHandler(dict, suggestor, maxDisplayed, showSuggestions)
	err := inputHandler.Start()
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bsiegert/nuspell/internal/cli"
	"github.com/bsiegert/nuspell/internal/utils"
	"github.com/bsiegert/nuspell/pkg/config"
	"github.com/bsiegert/nuspell/pkg/nuspell"
	"github.com/bsiegert/nuspell/pkg/parse"
	"github.com/bsiegert/nuspell/pkg/suggest"
)

const (
	version = "0.1.0-beta"
	gh      = "https://github.com/bsiegert/nuspell"
)

// sigHandler exits cleanly on SIGINT/SIGTERM.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main loads a dictionary and runs the spell-checking REPL; it does not
// implement spelling or suggestion logic itself, only the flow between
// packages.
func main() {
	sigHandler()

	dictPath := flag.String("dict", "", "Base path (without extension) of the .aff/.dic pair to load")
	cacheDir := flag.String("cache", "", "Directory for the compiled-dictionary cache (default: the executable's directory)")
	configPath := flag.String("config", "", "Path to config.toml (default: platform config dir)")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	showVersion := flag.Bool("version", false, "Show current version")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	if *dictPath == "" {
		log.Fatal("missing required -dict flag")
		os.Exit(1)
	}

	appConfig, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
		os.Exit(1)
	}
	log.Debugf("using config at: %s", usedPath)

	resolvedCacheDir := *cacheDir
	if resolvedCacheDir == "" {
		if pr, prErr := utils.NewPathResolver(); prErr == nil {
			resolvedCacheDir = pr.GetExecutableDir()
		}
	}

	var dict *nuspell.Dictionary
	if appConfig.Cache.Enabled {
		dict, err = parse.LoadFromPathCached(*dictPath, resolvedCacheDir)
	} else {
		dict, err = parse.LoadFromPath(*dictPath)
	}
	if err != nil {
		log.Fatalf("failed to load dictionary %s: %v", *dictPath, err)
		os.Exit(1)
	}
	log.Debugf("loaded dictionary: %d stems", dict.Words.Size())

	opts := suggest.DefaultOptions()
	opts.MaxSuggestions = appConfig.Suggest.MaxSuggestions
	opts.MaxNgramSuggestions = appConfig.Suggest.MaxNgramSuggestions
	opts.EnableNgramFallback = appConfig.Suggest.EnableNgramFallback
	suggestor := suggest.New(dict, opts)

	inputHandler := cli.NewInputHandler(dict, suggestor, appConfig.CLI.MaxDisplayed, appConfig.CLI.ShowSuggestions)
	if err := inputHandler.Start(); err != nil {
		log.Fatalf("REPL error: %v", err)
		os.Exit(1)
	}
}

// printVersion renders a styled version banner, in the same idiom the
// teacher's wordserve binary uses for its own -version flag.
func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ nuspell ] Hunspell-compatible spell-checking core")
	logger.Print("", "version", version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}
